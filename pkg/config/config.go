// pkg/config/config.go - configuration settings for wheelhouse.

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the configuration file looked up in the working
// directory, next to the wheel archives. Its absence is normal: the
// installer then runs on defaults plus any policy registry overrides.
const ConfigFileName = "wheelhouse.yaml"

// Registry path for enterprise policy configuration (Windows only).
const PolicyRegistryPath = `SOFTWARE\Wheelhouse\Config`

// Configuration holds the configurable options for wheelhouse in YAML format.
type Configuration struct {
	PackageName    string   `yaml:"PackageName"`
	DisplayName    string   `yaml:"DisplayName"`
	Description    string   `yaml:"Description"`
	WheelDir       string   `yaml:"WheelDir"`
	WheelPattern   string   `yaml:"WheelPattern"`
	HelperPackages []string `yaml:"HelperPackages"`
	PythonPath     string   `yaml:"PythonPath"`
	RunModule      string   `yaml:"RunModule"`
	LaunchURL      string   `yaml:"LaunchURL"`
	ShortcutName   string   `yaml:"ShortcutName"`
	NoShortcut     bool     `yaml:"NoShortcut"`
	LogDir         string   `yaml:"LogDir"`
	CheckOnly      bool     `yaml:"CheckOnly"`
	Debug          bool     `yaml:"Debug"`
	Verbose        bool     `yaml:"Verbose"`
}

// EffectiveWheelPattern returns the glob used to locate the archive.
// An explicit WheelPattern wins; otherwise the pattern is derived from
// the package name so renaming the package keeps the two in step.
func (c *Configuration) EffectiveWheelPattern() string {
	if c.WheelPattern != "" {
		return c.WheelPattern
	}
	return c.PackageName + "-*.whl"
}

// EffectiveRunModule returns the module the desktop shortcut invokes.
func (c *Configuration) EffectiveRunModule() string {
	if c.RunModule != "" {
		return c.RunModule
	}
	return c.PackageName + ".run"
}

// LoadConfig loads the configuration from a YAML file over the defaults.
// A missing file is not an error; the installer then runs on defaults.
// Policy registry settings are applied last and win either way.
func LoadConfig(path string) (*Configuration, error) {
	if path == "" {
		path = ConfigFileName
	}

	config := GetDefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			log.Printf("Failed to parse configuration file: %v", err)
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Normal case: nothing shipped a wheelhouse.yaml.
	default:
		log.Printf("Failed to read configuration file: %v", err)
		return nil, err
	}

	// Empty fields fall back to defaults.
	if config.PackageName == "" {
		config.PackageName = "macro_database"
	}
	if config.WheelDir == "" {
		config.WheelDir = "."
	}
	if config.LogDir == "" {
		config.LogDir = defaultLogDir()
	}

	applyRegistryOverrides(config)
	return config, nil
}

// SaveConfig saves the current configuration to a YAML file.
func SaveConfig(config *Configuration, path string) error {
	if path == "" {
		path = ConfigFileName
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		log.Printf("Failed to serialize configuration: %v", err)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Printf("Failed to create configuration directory: %v", err)
			return err
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("Failed to write configuration file: %v", err)
		return err
	}

	return nil
}

// GetDefaultConfig provides default configuration values for the
// Economic Dashboard wheel this installer ships with.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		PackageName:    "macro_database",
		DisplayName:    "Economic Dashboard",
		Description:    "Economic Indicators Dashboard",
		WheelDir:       ".",
		HelperPackages: []string{"pywin32", "winshell"},
		LaunchURL:      "http://localhost:8501",
		ShortcutName:   "Economic Dashboard",
		LogDir:         defaultLogDir(),
		Debug:          false,
		Verbose:        false,
		CheckOnly:      false,
	}
}

// defaultLogDir picks a per-user log location so the installer never
// needs elevation just to write its own logs.
func defaultLogDir() string {
	if runtime.GOOS == "windows" {
		if base := os.Getenv("LOCALAPPDATA"); base != "" {
			return filepath.Join(base, "Wheelhouse", "Logs")
		}
	}
	if cache, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cache, "wheelhouse", "logs")
	}
	return filepath.Join(os.TempDir(), "wheelhouse-logs")
}
