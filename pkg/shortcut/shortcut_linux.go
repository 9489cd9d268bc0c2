//go:build linux
// +build linux

// pkg/shortcut/shortcut_linux.go - .desktop launcher entries.

package shortcut

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/macrodata/wheelhouse/pkg/logging"
)

// Create writes an executable .desktop entry to the user's desktop,
// falling back to the local applications directory when no desktop
// folder exists. Rewriting the same file keeps re-runs duplicate-free.
func Create(opts Options) (string, error) {
	content, err := renderDesktopEntry(opts)
	if err != nil {
		return "", err
	}

	dir, err := entryDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating launcher directory %s: %w", dir, err)
	}

	entryPath := filepath.Join(dir, entryFileName(opts.Name))
	if err := os.WriteFile(entryPath, []byte(content), 0755); err != nil {
		return "", fmt.Errorf("writing launcher entry: %w", err)
	}
	return entryPath, nil
}

// Remove deletes the launcher entry from both candidate locations.
func Remove(opts Options) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	name := entryFileName(opts.Name)
	for _, dir := range []string{
		filepath.Join(home, "Desktop"),
		filepath.Join(home, ".local", "share", "applications"),
	} {
		entryPath := filepath.Join(dir, name)
		if err := os.Remove(entryPath); err == nil {
			logging.Info("Removed launcher entry", "path", entryPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("removing launcher entry %s: %w", entryPath, err)
		}
	}
	return nil
}

// entryDir picks ~/Desktop when it exists, otherwise the per-user
// applications directory.
func entryDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	desktop := filepath.Join(home, "Desktop")
	if info, err := os.Stat(desktop); err == nil && info.IsDir() {
		return desktop, nil
	}
	return filepath.Join(home, ".local", "share", "applications"), nil
}
