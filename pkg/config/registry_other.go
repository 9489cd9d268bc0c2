//go:build !windows
// +build !windows

package config

// applyRegistryOverrides is a no-op outside Windows; policy configuration
// is registry-based and has no equivalent elsewhere.
func applyRegistryOverrides(config *Configuration) {}
