// pkg/installer/installer.go - the install sequence for the dashboard wheel.
//
// The sequence is strictly ordered and has exactly two failure tiers.
// Fatal: no archive found, archive install failed. Warning: helper
// package install failed, shortcut creation failed. Warnings are logged
// and carried in the Result; fatal conditions abort the run with a
// non-zero exit in the caller. Nothing is retried.

package installer

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/macrodata/wheelhouse/pkg/blocking"
	"github.com/macrodata/wheelhouse/pkg/config"
	"github.com/macrodata/wheelhouse/pkg/logging"
	"github.com/macrodata/wheelhouse/pkg/python"
	"github.com/macrodata/wheelhouse/pkg/shortcut"
	"github.com/macrodata/wheelhouse/pkg/status"
	"github.com/macrodata/wheelhouse/pkg/utils"
	"github.com/macrodata/wheelhouse/pkg/wheel"
)

// ErrInstallFailed is the fatal condition for a failed archive install.
var ErrInstallFailed = errors.New("wheel installation failed")

// Seams abstracted for testing.
var (
	execCommand = exec.Command
	findInterp  = python.Find
	processScan = blocking.RunningDashboardProcesses
)

// Options adjusts a single run of the sequence.
type Options struct {
	CheckOnly  bool
	NoShortcut bool
}

// Result records what a run did, for the final banner and for --checkonly
// reports.
type Result struct {
	Archive         *wheel.Wheel
	Meta            *wheel.Metadata // nil when the archive could not be read
	Interp          *python.Interp  // nil when no interpreter was found
	InstalledBefore string          // version present before the run, "" = none
	Action          status.Action
	HelperWarning   error
	ShortcutWarning error
	ShortcutPath    string
}

// Run drives the install sequence against the configured wheel directory.
// The returned error is always a fatal condition; warnings ride along in
// the Result.
func Run(cfg *config.Configuration, opts Options) (*Result, error) {
	// Step 1: locate the archive. Nothing else may run before this
	// check fails or passes.
	w, err := wheel.Find(cfg.WheelDir, cfg.EffectiveWheelPattern())
	if err != nil {
		return nil, err
	}
	res := &Result{Archive: w}
	logging.Info("Found wheel archive", "file", filepath.Base(w.Path))

	if meta, err := wheel.ReadMetadata(w.Path); err == nil {
		res.Meta = meta
		logging.Debug("Archive metadata", "name", meta.Name, "version", meta.Version, "summary", meta.Summary)
	} else {
		logging.Debug("Could not read archive metadata", "error", err)
	}

	interp, interpErr := findInterp(cfg.PythonPath)
	if interpErr != nil {
		logging.Warn("No Python interpreter located", "error", interpErr)
	} else {
		res.Interp = interp
		if v, err := interp.Version(); err == nil {
			logging.Info("Using Python interpreter", "path", interp.Path, "version", v)
		}
		if !interp.PipAvailable() {
			logging.Warn("pip is not available for this interpreter", "path", interp.Path)
		}

		if installed, err := status.InstalledVersion(interp, cfg.PackageName); err == nil {
			res.InstalledBefore = installed
		} else {
			logging.Debug("Installed-version check failed", "error", err)
		}
	}
	res.Action = status.Check(res.InstalledBefore, w)
	logActionPlan(cfg, res)

	if opts.CheckOnly {
		logging.Info("Check-only run; no changes made")
		return res, nil
	}

	if running := processScan(cfg.EffectiveRunModule()); len(running) > 0 {
		logging.Warn("The dashboard appears to be running; installed files may be in use",
			"processes", strings.Join(running, ", "))
	}

	// Step 2: helper packages, best effort. A failure here never blocks
	// the archive install.
	if interpErr != nil {
		res.HelperWarning = interpErr
		logging.Warn("Skipping helper packages, no interpreter to install with")
	} else if out, err := InstallHelpers(interp, cfg.HelperPackages); err != nil {
		res.HelperWarning = err
		logging.Warn("Helper package install failed, continuing",
			"packages", strings.Join(cfg.HelperPackages, ", "), "error", err)
	} else {
		logging.Info("Installed helper packages", "packages", strings.Join(cfg.HelperPackages, ", "))
		logOutputLines(out)
	}

	// Step 3: the archive itself. Failure is fatal.
	if interpErr != nil {
		return res, fmt.Errorf("cannot install %s: %w", filepath.Base(w.Path), interpErr)
	}
	if out, err := InstallWheel(interp, w); err != nil {
		logging.Error("Failed to install wheel archive", "file", filepath.Base(w.Path), "error", err)
		logOutputLines(out)
		return res, fmt.Errorf("%w: %v", ErrInstallFailed, err)
	} else {
		logging.Info("Successfully installed wheel archive", "file", filepath.Base(w.Path))
		logOutputLines(out)
	}

	// Steps 4-6: the desktop shortcut, best effort.
	if cfg.NoShortcut || opts.NoShortcut {
		logging.Info("Shortcut creation disabled, skipping")
		return res, nil
	}

	workDir, err := interp.PackagePath(cfg.PackageName)
	if err != nil {
		logging.Debug("Could not resolve installed package path", "package", cfg.PackageName, "error", err)
		workDir = ""
	}

	linkPath, err := shortcut.Create(shortcut.Options{
		Name:        cfg.ShortcutName,
		DisplayName: cfg.DisplayName,
		Description: cfg.Description,
		Target:      interp.Path,
		Arguments:   "-m " + cfg.EffectiveRunModule(),
		WorkingDir:  workDir,
	})
	if err != nil {
		res.ShortcutWarning = err
		logging.Warn("Shortcut creation failed, continuing", "error", err)
	} else {
		res.ShortcutPath = linkPath
		logging.Info("Created desktop shortcut", "path", linkPath)
	}

	return res, nil
}

// logActionPlan reports what the run is about to do to the installed
// package, in upgrade-style terms.
func logActionPlan(cfg *config.Configuration, res *Result) {
	archiveVersion := res.Archive.Version
	if archiveVersion == "" && res.Meta != nil {
		archiveVersion = res.Meta.Version
	}

	switch res.Action {
	case status.ActionInstall:
		logging.Info("Package not currently installed",
			"package", cfg.PackageName, "archive_version", archiveVersion)
	case status.ActionUpgrade:
		logging.Info("Upgrading installed package",
			"package", cfg.PackageName, "from", res.InstalledBefore, "to", archiveVersion)
	case status.ActionDowngrade:
		logging.Warn("Archive is older than the installed package",
			"package", cfg.PackageName, "installed", res.InstalledBefore, "archive", archiveVersion)
	case status.ActionReinstall:
		logging.Info("Package already installed at this version",
			"package", cfg.PackageName, "version", res.InstalledBefore)
	}
}

// InstallHelpers installs the shortcut helper packages in a single pip
// invocation. Best effort: the caller logs a failure and moves on.
func InstallHelpers(interp *python.Interp, packages []string) (string, error) {
	if len(packages) == 0 {
		return "", nil
	}
	args := append([]string{"-m", "pip", "install"}, packages...)
	return runCMD(interp.Path, args)
}

// InstallWheel installs the located archive. The caller treats any error
// as fatal.
func InstallWheel(interp *python.Interp, w *wheel.Wheel) (string, error) {
	if digest, err := utils.FileSHA256(w.Path); err == nil {
		logging.Debug("Archive digest", "file", filepath.Base(w.Path), "sha256", digest)
	}

	return runCMD(interp.Path, []string{"-m", "pip", "install", w.Path})
}

// Uninstall removes the installed package via pip.
func Uninstall(interp *python.Interp, pkg string) (string, error) {
	return runCMD(interp.Path, []string{"-m", "pip", "uninstall", "-y", pkg})
}

// runCMD executes a command and its arguments, capturing output.
func runCMD(command string, arguments []string) (string, error) {
	cmd := execCommand(command, arguments...)
	utils.HideConsoleWindow(cmd)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// Capture BOTH error (which has exit status) and stderr
		combinedErr := fmt.Errorf("command execution failed: %w | stderr: %s", err, strings.TrimSpace(stderr.String()))
		return out.String(), combinedErr
	}
	return out.String(), nil
}

// logOutputLines relays pip's output into the session log at debug level.
func logOutputLines(output string) {
	for _, line := range utils.CleanOutputLines(output) {
		logging.Debug(line)
	}
}
