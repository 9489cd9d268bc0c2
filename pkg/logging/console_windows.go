//go:build windows
// +build windows

package logging

import "golang.org/x/sys/windows"

// enableColors enables ANSI colors for the Windows console, on both
// streams since non-verbose runs log to stderr.
func enableColors() {
	for _, handle := range []windows.Handle{windows.Stdout, windows.Stderr} {
		var mode uint32
		if err := windows.GetConsoleMode(handle, &mode); err == nil {
			mode |= windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING
			_ = windows.SetConsoleMode(handle, mode)
		}
	}
}
