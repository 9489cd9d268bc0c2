// pkg/sysinfo/sysinfo.go - session facts for the install log.

package sysinfo

import (
	"os"
	"os/user"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// Facts is the machine snapshot recorded at the start of a session.
type Facts struct {
	Hostname     string
	OS           string
	OSVersion    string
	Architecture string
	Username     string
	Model        string
	Manufacturer string
	Elevated     bool
}

// Gather collects the facts. Everything is best effort; missing pieces
// stay empty rather than failing the run.
func Gather() Facts {
	facts := Facts{
		Architecture: GetSystemArchitecture(),
		Elevated:     isElevated(),
	}

	if hostname, err := os.Hostname(); err == nil {
		facts.Hostname = hostname
	}

	if info, err := host.Info(); err == nil {
		facts.OS = info.Platform
		facts.OSVersion = info.PlatformVersion
	} else {
		facts.OS = runtime.GOOS
	}

	if u, err := user.Current(); err == nil {
		facts.Username = u.Username
	} else if name := os.Getenv("USERNAME"); name != "" {
		facts.Username = name
	}

	fillMachineFacts(&facts)
	return facts
}

// GetSystemArchitecture returns a normalized string for the local system arch.
func GetSystemArchitecture() string {
	arch := runtime.GOARCH
	switch arch {
	case "amd64", "x86_64":
		return "x64"
	case "386":
		return "x86"
	default:
		// e.g. "arm64", or any other
		return arch
	}
}
