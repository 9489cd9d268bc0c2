// pkg/version/version.go - build version information for the wheelhouse tools.

package version

import (
	"fmt"
	"strings"
)

// Set at build time via -ldflags; a plain `go build` carries "unknown".
var (
	appName   = "wheelhouse"
	version   = "unknown"
	branch    = "unknown"
	revision  = "unknown"
	goVersion = "unknown"
	buildDate = "unknown"
)

// Info describes the running build.
type Info struct {
	Version   string
	Branch    string
	Revision  string
	GoVersion string
	BuildDate string
}

// Version returns the build information stamped into this binary.
func Version() Info {
	return Info{
		Version:   version,
		Branch:    branch,
		Revision:  revision,
		GoVersion: goVersion,
		BuildDate: buildDate,
	}
}

// Print outputs the application name and version string.
func Print() {
	fmt.Printf("%s %s\n", appName, version)
}

// PrintFull prints the application name and detailed version information.
func PrintFull() {
	Print()
	v := Version()
	for _, row := range []struct{ label, value string }{
		{"branch", v.Branch},
		{"revision", v.Revision},
		{"build date", v.BuildDate},
		{"go version", v.GoVersion},
	} {
		fmt.Printf("  %s: \t%s\n", row.label, row.value)
	}
}

// Normalize trims trailing ".0" segments from version strings so that
// "1.0.0" and "1.0" compare as the same release.
func Normalize(v string) string {
	parts := strings.Split(v, ".")
	for len(parts) > 1 && parts[len(parts)-1] == "0" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ".")
}
