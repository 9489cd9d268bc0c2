//go:build !windows
// +build !windows

package utils

// PatchWindowsArgs is a no-op outside Windows; os.Args is already split
// correctly by the shell.
func PatchWindowsArgs() {}
