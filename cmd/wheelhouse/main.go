// cmd/wheelhouse/main.go

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/macrodata/wheelhouse/pkg/blocking"
	"github.com/macrodata/wheelhouse/pkg/config"
	"github.com/macrodata/wheelhouse/pkg/installer"
	"github.com/macrodata/wheelhouse/pkg/launch"
	"github.com/macrodata/wheelhouse/pkg/logging"
	"github.com/macrodata/wheelhouse/pkg/python"
	"github.com/macrodata/wheelhouse/pkg/shortcut"
	"github.com/macrodata/wheelhouse/pkg/sysinfo"
	"github.com/macrodata/wheelhouse/pkg/utils"
	"github.com/macrodata/wheelhouse/pkg/version"
	"github.com/macrodata/wheelhouse/pkg/wheel"
)

var logger *logging.Logger

func main() {
	utils.PatchWindowsArgs()

	// Define command-line flags.
	showConfig := pflag.Bool("show-config", false, "Display the current configuration and exit.")
	checkOnly := pflag.Bool("checkonly", false, "Locate the wheel archive and report what would happen, but don't install.")
	noShortcut := pflag.Bool("no-shortcut", false, "Skip creating the desktop shortcut.")
	launchFlag := pflag.Bool("launch", false, "Start the dashboard after a successful install.")
	uninstallFlag := pflag.Bool("uninstall", false, "Remove the installed package and its desktop shortcut.")
	wheelDir := pflag.String("dir", "", "Directory to search for the wheel archive (defaults to the working directory).")
	configPath := pflag.String("config", "", "Path to an alternate configuration file.")
	versionFlag := pflag.Bool("version", false, "Print the version and exit.")

	// Count the number of -v flags.
	var verbosity int
	pflag.CountVarP(&verbosity, "verbose", "v", "Increase verbosity (e.g. -v, -vv)")
	pflag.Parse()

	// Load configuration (only once)
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Fold the flags into the configuration.
	if verbosity > 0 {
		cfg.Verbose = true
		if verbosity >= 2 {
			cfg.Debug = true
		}
	}
	if *wheelDir != "" {
		cfg.WheelDir = *wheelDir
	}
	if *checkOnly {
		cfg.CheckOnly = true
	}
	if *noShortcut {
		cfg.NoShortcut = true
	}

	// Initialize logger.
	logger = logging.New(verbosity > 0)
	if err := logging.Init(cfg); err != nil {
		logger.Fatal("Error initializing logger: %v", err)
	}
	defer logging.CloseLogger()

	// Handle --version flag.
	if *versionFlag {
		if verbosity > 0 {
			version.PrintFull()
		} else {
			version.Print()
		}
		os.Exit(0)
	}

	// Show configuration if requested.
	if *showConfig {
		if cfgYaml, err := yaml.Marshal(cfg); err == nil {
			logger.Printf("Current configuration:\n%s", string(cfgYaml))
		}
		os.Exit(0)
	}

	// Ensure mutually exclusive flags are not set.
	if *uninstallFlag && (cfg.CheckOnly || *launchFlag) {
		logger.Warning("Conflicting flags: --uninstall cannot be combined with --checkonly or --launch")
		pflag.Usage()
		os.Exit(1)
	}
	if *launchFlag && cfg.CheckOnly {
		logger.Warning("Conflicting flags: --launch and --checkonly are mutually exclusive")
		pflag.Usage()
		os.Exit(1)
	}

	// Handle system signals for graceful shutdown.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-signalChan
		logger.Warning("Signal received, exiting gracefully: %s", sig.String())
		logging.CloseLogger()
		os.Exit(1)
	}()

	// Determine run type.
	var runType string
	if *uninstallFlag {
		runType = "uninstall"
	} else if cfg.CheckOnly {
		runType = "checkonly"
	} else {
		runType = "manual"
	}
	logger.Printf("Run type: %s", runType)

	facts := sysinfo.Gather()
	logging.Debug("Session facts",
		"hostname", facts.Hostname,
		"os", facts.OS,
		"os_version", facts.OSVersion,
		"arch", facts.Architecture,
		"user", facts.Username,
		"model", facts.Model,
		"manufacturer", facts.Manufacturer,
		"elevated", facts.Elevated)

	var code int
	if *uninstallFlag {
		code = runUninstall(cfg)
	} else {
		code = runInstall(cfg, *launchFlag)
	}
	logging.CloseLogger()
	os.Exit(code)
}

// runInstall drives the install sequence and reports the outcome.
func runInstall(cfg *config.Configuration, doLaunch bool) int {
	res, err := installer.Run(cfg, installer.Options{CheckOnly: cfg.CheckOnly, NoShortcut: cfg.NoShortcut})
	if err != nil {
		switch {
		case errors.Is(err, wheel.ErrNoArchive):
			logger.Error("No wheel archive found: %v", err)
			logger.Printf("Place the %s wheel next to this installer (or pass --dir) and run it again.", cfg.PackageName)
		case errors.Is(err, installer.ErrInstallFailed):
			logger.Error("Installation failed: %v", err)
		default:
			logger.Error("Installation aborted: %v", err)
		}
		return 1
	}

	if cfg.CheckOnly {
		printCheckReport(res)
		return 0
	}

	printBanner(cfg, res)

	if doLaunch {
		if res.Interp == nil {
			logger.Warning("Cannot launch the dashboard: no Python interpreter was found")
		} else if err := launch.Start(res.Interp, cfg.EffectiveRunModule(), cfg.LaunchURL); err != nil {
			logger.Warning("Failed to launch the dashboard: %v", err)
		}
	}
	return 0
}

// runUninstall removes the installed package and its desktop shortcut.
func runUninstall(cfg *config.Configuration) int {
	if running := blocking.RunningDashboardProcesses(cfg.EffectiveRunModule()); len(running) > 0 {
		logger.Warning("The dashboard appears to be running: %s", strings.Join(running, ", "))
	}

	code := 0
	interp, err := python.Find(cfg.PythonPath)
	if err != nil {
		logger.Error("No Python interpreter found, cannot uninstall %s: %v", cfg.PackageName, err)
		code = 1
	} else if out, err := installer.Uninstall(interp, cfg.PackageName); err != nil {
		logger.Error("Failed to uninstall %s: %v", cfg.PackageName, err)
		code = 1
	} else {
		for _, line := range utils.CleanOutputLines(out) {
			logger.Debug("%s", line)
		}
		logger.Success("Uninstalled %s", cfg.PackageName)
	}

	if err := shortcut.Remove(shortcut.Options{Name: cfg.ShortcutName}); err != nil {
		logger.Warning("Could not remove the desktop shortcut: %v", err)
	}
	return code
}

// printCheckReport summarizes a --checkonly run.
func printCheckReport(res *installer.Result) {
	archiveVersion := res.Archive.Version
	if archiveVersion == "" && res.Meta != nil {
		archiveVersion = res.Meta.Version
	}
	installed := res.InstalledBefore
	if installed == "" {
		installed = "(not installed)"
	}
	logger.Printf("Archive:   %s (version %s)", filepath.Base(res.Archive.Path), archiveVersion)
	logger.Printf("Installed: %s", installed)
	logger.Printf("Action:    %s", res.Action)
}

// printBanner prints the closing success banner, including the manual
// fallbacks for anything the warning tier skipped.
func printBanner(cfg *config.Configuration, res *installer.Result) {
	installedVersion := res.Archive.Version
	if installedVersion == "" && res.Meta != nil {
		installedVersion = res.Meta.Version
	}

	logger.Printf("============================================================")
	if installedVersion != "" {
		logger.Success("%s %s installed successfully!", cfg.DisplayName, installedVersion)
	} else {
		logger.Success("%s installed successfully!", cfg.DisplayName)
	}
	switch {
	case res.ShortcutPath != "":
		logger.Printf("Desktop shortcut: %s", res.ShortcutPath)
	case res.ShortcutWarning != nil:
		logger.Warning("The desktop shortcut could not be created: %v", res.ShortcutWarning)
		logger.Printf("Start the dashboard manually with: python -m %s", cfg.EffectiveRunModule())
	default:
		logger.Printf("Run it any time with: python -m %s", cfg.EffectiveRunModule())
	}
	if res.HelperWarning != nil {
		logger.Warning("Helper packages were not installed: %v", res.HelperWarning)
		logger.Printf("Install them later with: pip install %s", strings.Join(cfg.HelperPackages, " "))
	}
	logger.Printf("Dashboard URL: %s", cfg.LaunchURL)
	logger.Printf("Log folder: %s", logging.GetCurrentLogDir())
	logger.Printf("============================================================")
}
