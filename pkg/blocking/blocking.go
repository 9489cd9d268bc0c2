// pkg/blocking/blocking.go - detection of a running dashboard before install.
//
// Installing over a running instance is not fatal, but pywin32 DLLs and
// compiled extension modules can be locked while the dashboard serves, so
// the sequence warns when it finds one.

package blocking

import (
	"fmt"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/macrodata/wheelhouse/pkg/logging"
)

// RunningDashboardProcesses scans for Python processes whose command line
// references the dashboard module and returns a description of each.
// The scan is best effort: an unreadable process list just means no
// warning.
func RunningDashboardProcesses(runModule string) []string {
	logging.Debug("Checking for running dashboard processes", "module", runModule)

	processes, err := process.Processes()
	if err != nil {
		logging.Error("Failed to get process list", "error", err)
		return nil
	}

	// The top-level package name matches both "python -m macro_database.run"
	// and the streamlit child process serving from the package directory.
	pkgRoot := strings.ToLower(packageRoot(runModule))

	self := int32(os.Getpid())
	var running []string
	for _, proc := range processes {
		if proc.Pid == self {
			continue
		}

		name, err := proc.Name()
		if err != nil {
			continue
		}
		if !strings.Contains(strings.ToLower(name), "python") {
			continue
		}

		cmdline, err := proc.Cmdline()
		if err != nil || cmdline == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(cmdline), pkgRoot) {
			continue
		}

		logging.Debug("Found running dashboard process", "pid", proc.Pid, "name", name)
		running = append(running, fmt.Sprintf("%s (pid %d)", name, proc.Pid))
	}

	if len(running) == 0 {
		logging.Debug("No dashboard processes running", "module", runModule)
	}
	return running
}

// packageRoot returns the top-level package of a dotted module path.
func packageRoot(runModule string) string {
	if i := strings.Index(runModule, "."); i > 0 {
		return runModule[:i]
	}
	return runModule
}
