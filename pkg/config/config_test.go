package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.Equal(t, "macro_database", cfg.PackageName)
	assert.Equal(t, "Economic Dashboard", cfg.DisplayName)
	assert.Equal(t, "Economic Indicators Dashboard", cfg.Description)
	assert.Equal(t, ".", cfg.WheelDir)
	assert.Equal(t, []string{"pywin32", "winshell"}, cfg.HelperPackages)
	assert.Equal(t, "http://localhost:8501", cfg.LaunchURL)
	assert.Equal(t, "Economic Dashboard", cfg.ShortcutName)
	assert.NotEmpty(t, cfg.LogDir)
	assert.False(t, cfg.NoShortcut)
	assert.False(t, cfg.CheckOnly)
}

func TestEffectiveWheelPattern(t *testing.T) {
	cfg := GetDefaultConfig()
	assert.Equal(t, "macro_database-*.whl", cfg.EffectiveWheelPattern())

	cfg.PackageName = "other_pkg"
	assert.Equal(t, "other_pkg-*.whl", cfg.EffectiveWheelPattern())

	cfg.WheelPattern = "dashboard-*.whl"
	assert.Equal(t, "dashboard-*.whl", cfg.EffectiveWheelPattern())
}

func TestEffectiveRunModule(t *testing.T) {
	cfg := GetDefaultConfig()
	assert.Equal(t, "macro_database.run", cfg.EffectiveRunModule())

	cfg.RunModule = "macro_database.serve"
	assert.Equal(t, "macro_database.serve", cfg.EffectiveRunModule())
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err, "a missing configuration file is the normal case")

	assert.Equal(t, "macro_database", cfg.PackageName)
	assert.Equal(t, ".", cfg.WheelDir)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wheelhouse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"PackageName: custom_pkg\n"+
			"DisplayName: Custom Dashboard\n"+
			"NoShortcut: true\n"+
			"WheelDir: C:\\Installers\n",
	), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "custom_pkg", cfg.PackageName)
	assert.Equal(t, "Custom Dashboard", cfg.DisplayName)
	assert.True(t, cfg.NoShortcut)
	assert.Equal(t, `C:\Installers`, cfg.WheelDir)

	// Unset keys keep their defaults.
	assert.Equal(t, "http://localhost:8501", cfg.LaunchURL)
	assert.Equal(t, []string{"pywin32", "winshell"}, cfg.HelperPackages)
	assert.Equal(t, "custom_pkg-*.whl", cfg.EffectiveWheelPattern())
}

func TestLoadConfigRejectsBadYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wheelhouse.yaml")
	require.NoError(t, os.WriteFile(path, []byte("PackageName: [unclosed\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wheelhouse.yaml")

	cfg := GetDefaultConfig()
	cfg.PackageName = "custom_pkg"
	cfg.PythonPath = "/usr/local/bin/python3"
	cfg.Verbose = true
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "custom_pkg", loaded.PackageName)
	assert.Equal(t, "/usr/local/bin/python3", loaded.PythonPath)
	assert.True(t, loaded.Verbose)
	assert.Equal(t, cfg.LaunchURL, loaded.LaunchURL)
}
