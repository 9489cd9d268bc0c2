//go:build windows
// +build windows

// pkg/config/registry_windows.go - policy overrides from the Windows registry.

package config

import (
	"log"
	"strconv"
	"strings"

	"golang.org/x/sys/windows/registry"
)

// applyRegistryOverrides loads configuration values pushed by enterprise
// policy under HKLM. Missing keys or values leave the defaults in place.
func applyRegistryOverrides(config *Configuration) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, PolicyRegistryPath, registry.READ)
	if err != nil {
		// No policy key present; the common case.
		return
	}
	defer key.Close()

	loadStringFromRegistry(key, "PackageName", &config.PackageName)
	loadStringFromRegistry(key, "DisplayName", &config.DisplayName)
	loadStringFromRegistry(key, "Description", &config.Description)
	loadStringFromRegistry(key, "WheelDir", &config.WheelDir)
	loadStringFromRegistry(key, "WheelPattern", &config.WheelPattern)
	loadStringFromRegistry(key, "PythonPath", &config.PythonPath)
	loadStringFromRegistry(key, "RunModule", &config.RunModule)
	loadStringFromRegistry(key, "LaunchURL", &config.LaunchURL)
	loadStringFromRegistry(key, "ShortcutName", &config.ShortcutName)
	loadStringFromRegistry(key, "LogDir", &config.LogDir)

	loadBoolFromRegistry(key, "NoShortcut", &config.NoShortcut)
	loadBoolFromRegistry(key, "Debug", &config.Debug)
	loadBoolFromRegistry(key, "Verbose", &config.Verbose)
	loadBoolFromRegistry(key, "CheckOnly", &config.CheckOnly)

	loadStringArrayFromRegistry(key, "HelperPackages", &config.HelperPackages)
}

// loadStringFromRegistry applies a policy string value when one is set.
func loadStringFromRegistry(key registry.Key, name string, target *string) {
	val, _, err := key.GetStringValue(name)
	if err != nil || val == "" {
		return
	}
	*target = val
	log.Printf("Policy: Loaded %s = %s", name, val)
}

// loadBoolFromRegistry applies a policy boolean stored either as a DWORD
// or as a string like "true"/"1".
func loadBoolFromRegistry(key registry.Key, name string, target *bool) {
	if val, _, err := key.GetIntegerValue(name); err == nil {
		*target = val != 0
		log.Printf("Policy: Loaded %s = %t", name, *target)
		return
	}

	val, _, err := key.GetStringValue(name)
	if err != nil {
		return
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return
	}
	*target = parsed
	log.Printf("Policy: Loaded %s = %t", name, parsed)
}

// loadStringArrayFromRegistry applies a policy list stored either as
// REG_MULTI_SZ or as one comma-separated string.
func loadStringArrayFromRegistry(key registry.Key, name string, target *[]string) {
	vals, _, err := key.GetStringsValue(name)
	if err != nil {
		joined, _, strErr := key.GetStringValue(name)
		if strErr != nil {
			return
		}
		vals = strings.Split(joined, ",")
	}

	cleaned := make([]string, 0, len(vals))
	for _, val := range vals {
		if trimmed := strings.TrimSpace(val); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return
	}
	*target = cleaned
	log.Printf("Policy: Loaded %s = %v", name, cleaned)
}
