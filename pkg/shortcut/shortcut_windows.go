//go:build windows
// +build windows

// pkg/shortcut/shortcut_windows.go - shortcut creation via Windows Script Host.

package shortcut

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows"

	"github.com/macrodata/wheelhouse/pkg/logging"
	"github.com/macrodata/wheelhouse/pkg/utils"
)

var commandCscript = filepath.Join(os.Getenv("WINDIR"), "system32", "cscript.exe")

// execCommand is abstracted for testing
var execCommand = exec.Command

// Create renders the shortcut script, runs it through cscript, and
// removes it. The returned path is where the shortcut was created.
// CreateShortcut overwrites an existing link of the same name, so
// re-running the installer never accumulates duplicates.
func Create(opts Options) (string, error) {
	content, err := renderWindowsScript(opts)
	if err != nil {
		return "", err
	}

	out, err := runScriptFile(scriptFileName, content, runCscript)
	for _, line := range utils.CleanOutputLines(out) {
		logging.Debug(line)
	}
	if err != nil {
		return "", err
	}

	desktop, err := desktopDir()
	if err != nil {
		// The script already created the link; only the reported
		// path is unknown.
		return opts.Name + ".lnk", nil
	}
	return filepath.Join(desktop, opts.Name+".lnk"), nil
}

// Remove deletes the desktop shortcut if present.
func Remove(opts Options) error {
	desktop, err := desktopDir()
	if err != nil {
		return fmt.Errorf("locating desktop folder: %w", err)
	}

	linkPath := filepath.Join(desktop, opts.Name+".lnk")
	if err := os.Remove(linkPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("removing shortcut %s: %w", linkPath, err)
	}
	logging.Info("Removed desktop shortcut", "path", linkPath)
	return nil
}

// runCscript executes the script with the console script host.
func runCscript(scriptPath string) (string, error) {
	cmd := execCommand(commandCscript, "//Nologo", scriptPath)
	utils.HideConsoleWindow(cmd)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return out.String(),
			fmt.Errorf("cscript failed: %w | stderr: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out.String(), nil
}

// desktopDir resolves the user's desktop folder, tolerating OneDrive
// redirection via the known-folder API.
func desktopDir() (string, error) {
	if path, err := windows.KnownFolderPath(windows.FOLDERID_Desktop, 0); err == nil && path != "" {
		return path, nil
	}

	profile := os.Getenv("USERPROFILE")
	if profile == "" {
		return "", fmt.Errorf("desktop folder not resolvable")
	}
	return filepath.Join(profile, "Desktop"), nil
}
