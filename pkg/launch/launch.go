// pkg/launch/launch.go - starting the installed dashboard.

package launch

import (
	"fmt"
	"os/exec"

	"github.com/pkg/browser"

	"github.com/macrodata/wheelhouse/pkg/logging"
	"github.com/macrodata/wheelhouse/pkg/python"
	"github.com/macrodata/wheelhouse/pkg/utils"
)

// execCommand is abstracted for testing
var execCommand = exec.Command

// Start runs the dashboard module detached from the installer and opens
// the served URL in the default browser. The dashboard keeps running
// after the installer exits, the same as launching it from the desktop
// shortcut.
func Start(interp *python.Interp, runModule, url string) error {
	cmd := execCommand(interp.Path, "-m", runModule)
	utils.HideConsoleWindow(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting dashboard module %s: %w", runModule, err)
	}
	logging.Info("Launched dashboard", "module", runModule, "pid", cmd.Process.Pid)

	if err := cmd.Process.Release(); err != nil {
		logging.Debug("Could not release dashboard process handle", "error", err)
	}

	if url == "" {
		return nil
	}
	if err := browser.OpenURL(url); err != nil {
		logging.Warn("Could not open browser", "url", url, "error", err)
	} else {
		logging.Info("Opened dashboard in browser", "url", url)
	}
	return nil
}
