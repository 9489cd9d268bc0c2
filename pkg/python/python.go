// pkg/python/python.go - locating and probing the Python interpreter.
//
// The installer never bundles Python; it finds whatever interpreter the
// machine already has, preferring an explicitly configured path, then the
// Windows py launcher, then python/python3 on PATH. Every candidate is
// resolved through the interpreter itself (sys.executable) so venv shims
// and launcher indirection end up as a concrete executable path, which is
// what the desktop shortcut needs as a target.

package python

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/macrodata/wheelhouse/pkg/logging"
	"github.com/macrodata/wheelhouse/pkg/utils"
)

// execCommand is abstracted for testing
var execCommand = exec.Command

// Interp is a resolved Python interpreter.
type Interp struct {
	Path string // absolute path to the interpreter executable
}

// ErrNotFound is returned when no usable interpreter could be located.
var ErrNotFound = fmt.Errorf("no Python interpreter found")

// Find locates a usable interpreter. An explicit path (from configuration)
// wins; otherwise candidates are probed in platform order.
func Find(explicit string) (*Interp, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("configured Python path %s: %w", explicit, err)
		}
		resolved, err := resolveExecutable(explicit, nil)
		if err != nil {
			return nil, fmt.Errorf("configured Python at %s is not runnable: %w", explicit, err)
		}
		return &Interp{Path: resolved}, nil
	}

	for _, candidate := range interpreterCandidates() {
		found, err := exec.LookPath(candidate.name)
		if err != nil {
			continue
		}
		resolved, err := resolveExecutable(found, candidate.extraArgs)
		if err != nil {
			logging.Debug("Interpreter candidate failed probe", "candidate", found, "error", err)
			continue
		}
		logging.Debug("Resolved Python interpreter", "candidate", candidate.name, "path", resolved)
		return &Interp{Path: resolved}, nil
	}

	return nil, ErrNotFound
}

type candidate struct {
	name      string
	extraArgs []string
}

// interpreterCandidates returns lookup names in preference order. On
// Windows the py launcher comes first and plain "python" before
// "python3", which is usually the Microsoft Store alias.
func interpreterCandidates() []candidate {
	if runtime.GOOS == "windows" {
		return []candidate{
			{name: "py", extraArgs: []string{"-3"}},
			{name: "python"},
			{name: "python3"},
		}
	}
	return []candidate{
		{name: "python3"},
		{name: "python"},
	}
}

// resolveExecutable asks the interpreter for its own sys.executable,
// which both validates that it runs and unwinds launcher indirection.
func resolveExecutable(path string, extraArgs []string) (string, error) {
	args := append(append([]string{}, extraArgs...), "-c", "import sys; print(sys.executable)")
	out, _, err := run(path, args...)
	if err != nil {
		return "", err
	}
	resolved := strings.TrimSpace(out)
	if resolved == "" {
		return "", fmt.Errorf("interpreter at %s reported no executable path", path)
	}
	return resolved, nil
}

// Version returns the interpreter version, e.g. "3.12.1".
func (i *Interp) Version() (string, error) {
	out, errOut, err := run(i.Path, "--version")
	if err != nil {
		return "", fmt.Errorf("querying Python version: %w", err)
	}
	// Some releases print the banner to stderr.
	banner := strings.TrimSpace(out)
	if banner == "" {
		banner = strings.TrimSpace(errOut)
	}
	return strings.TrimSpace(strings.TrimPrefix(banner, "Python")), nil
}

// PipAvailable reports whether the interpreter can run pip at all.
func (i *Interp) PipAvailable() bool {
	_, _, err := run(i.Path, "-m", "pip", "--version")
	return err == nil
}

// PackagePath returns the directory an installed package was imported
// from. The desktop shortcut uses it as the working directory.
func (i *Interp) PackagePath(pkg string) (string, error) {
	probe := fmt.Sprintf("import os, %s; print(os.path.dirname(%s.__file__))", pkg, pkg)
	out, _, err := run(i.Path, "-c", probe)
	if err != nil {
		return "", fmt.Errorf("package %s not importable: %w", pkg, err)
	}
	return strings.TrimSpace(out), nil
}

// run executes the interpreter with the given arguments, returning
// captured stdout and stderr.
func run(command string, arguments ...string) (string, string, error) {
	cmd := execCommand(command, arguments...)
	utils.HideConsoleWindow(cmd)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return out.String(), stderr.String(),
			fmt.Errorf("command execution failed: %w | stderr: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out.String(), stderr.String(), nil
}
