//go:build windows
// +build windows

package utils

import (
	"os/exec"
	"syscall"
)

// HideConsoleWindow keeps child processes from flashing a console window
// when the installer is launched from Explorer.
func HideConsoleWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow: true,
	}
}
