//go:build !windows && !linux
// +build !windows,!linux

package shortcut

import "fmt"

// Create has no implementation on this platform. The caller treats the
// error as a warning, so the install itself still completes.
func Create(opts Options) (string, error) {
	return "", fmt.Errorf("desktop shortcuts are not supported on this platform")
}

// Remove is a no-op on this platform.
func Remove(opts Options) error {
	return nil
}
