//go:build !windows
// +build !windows

package utils

import "os/exec"

// HideConsoleWindow is a no-op outside Windows.
func HideConsoleWindow(cmd *exec.Cmd) {}
