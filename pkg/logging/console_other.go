//go:build !windows
// +build !windows

package logging

// enableColors is a no-op outside Windows; terminals there handle ANSI
// sequences natively.
func enableColors() {}
