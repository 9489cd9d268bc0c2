// pkg/status/status.go - installed-package state checks via pip.

package status

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/macrodata/wheelhouse/pkg/logging"
	"github.com/macrodata/wheelhouse/pkg/python"
	"github.com/macrodata/wheelhouse/pkg/utils"
	"github.com/macrodata/wheelhouse/pkg/version"
	"github.com/macrodata/wheelhouse/pkg/wheel"
)

// execCommand is abstracted for testing
var execCommand = exec.Command

// Action describes what installing the archive would do to the package
// already on the machine.
type Action int

const (
	ActionInstall   Action = iota // not currently installed
	ActionUpgrade                 // archive is newer than installed
	ActionDowngrade               // archive is older than installed
	ActionReinstall               // same version already installed
)

// String returns the human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionInstall:
		return "install"
	case ActionUpgrade:
		return "upgrade"
	case ActionDowngrade:
		return "downgrade"
	case ActionReinstall:
		return "reinstall"
	default:
		return "unknown"
	}
}

// InstalledVersion returns the installed version of pkg via pip show, or
// an empty string when the package is not installed. Absence is not an
// error; a broken pip is.
func InstalledVersion(interp *python.Interp, pkg string) (string, error) {
	cmd := execCommand(interp.Path, "-m", "pip", "show", pkg)
	utils.HideConsoleWindow(cmd)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		combined := out.String() + stderr.String()
		if strings.Contains(strings.ToLower(combined), "not found") {
			return "", nil
		}
		return "", fmt.Errorf("pip show %s failed: %w | stderr: %s", pkg, err, strings.TrimSpace(stderr.String()))
	}

	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "Version:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Version:")), nil
		}
	}
	return "", nil
}

// Check compares the installed version against the archive.
func Check(installedVersion string, w *wheel.Wheel) Action {
	if installedVersion == "" {
		return ActionInstall
	}
	if w.Version == "" {
		// Unparseable archive filename; pip will sort it out.
		logging.Debug("Archive version unknown, treating as reinstall",
			"installed", installedVersion, "archive", w.Path)
		return ActionReinstall
	}

	// Equality first, after trimming trailing zero segments, so odd
	// version strings that go-version cannot parse still match
	// themselves.
	if version.Normalize(installedVersion) == version.Normalize(w.Version) {
		return ActionReinstall
	}

	if IsOlderVersion(installedVersion, w.Version) {
		return ActionUpgrade
	}
	if IsOlderVersion(w.Version, installedVersion) {
		return ActionDowngrade
	}
	return ActionReinstall
}

// IsOlderVersion compares versions, returning true if `local` is strictly
// older than `remote`. Unparseable versions never force an action.
func IsOlderVersion(local, remote string) bool {
	vLocal, errLocal := goversion.NewVersion(local)
	vRemote, errRemote := goversion.NewVersion(remote)

	if errLocal != nil || errRemote != nil {
		logging.Debug("Parse error => skipping version comparison",
			"local", local,
			"remote", remote,
			"errLocal", errLocal,
			"errRemote", errRemote,
		)
		return false
	}
	return vLocal.LessThan(vRemote)
}
