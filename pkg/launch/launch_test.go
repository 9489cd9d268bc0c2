package launch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrodata/wheelhouse/pkg/python"
)

// TestHelperProcess is the stand-in dashboard process the faked exec
// dispatches to.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	code, _ := strconv.Atoi(os.Getenv("HELPER_EXIT"))
	os.Exit(code)
}

func fakeDashboard(t *testing.T, rec *[][]string) {
	t.Helper()
	orig := execCommand
	execCommand = func(command string, args ...string) *exec.Cmd {
		*rec = append(*rec, append([]string{command}, args...))
		cs := append([]string{"-test.run=TestHelperProcess", "--", command}, args...)
		cmd := exec.Command(os.Args[0], cs...)
		cmd.Env = append(os.Environ(),
			"GO_WANT_HELPER_PROCESS=1",
			fmt.Sprintf("HELPER_EXIT=%d", 0),
		)
		return cmd
	}
	t.Cleanup(func() { execCommand = orig })
}

func TestStartRunsModule(t *testing.T) {
	var rec [][]string
	fakeDashboard(t, &rec)

	err := Start(&python.Interp{Path: "python"}, "macro_database.run", "")
	require.NoError(t, err)

	require.Len(t, rec, 1)
	assert.Equal(t, []string{"python", "-m", "macro_database.run"}, rec[0])
}

func TestStartFailsWhenInterpreterMissing(t *testing.T) {
	err := Start(&python.Interp{Path: filepath.Join(t.TempDir(), "python")}, "macro_database.run", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "macro_database.run")
}
