package python

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHelperProcess is the stand-in interpreter fakePython dispatches to.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	fmt.Print(os.Getenv("HELPER_STDOUT"))
	fmt.Fprint(os.Stderr, os.Getenv("HELPER_STDERR"))
	code, _ := strconv.Atoi(os.Getenv("HELPER_EXIT"))
	os.Exit(code)
}

func fakePython(t *testing.T, rec *[][]string, stdout, stderr string, exitCode int) {
	t.Helper()
	orig := execCommand
	execCommand = func(command string, args ...string) *exec.Cmd {
		if rec != nil {
			*rec = append(*rec, append([]string{command}, args...))
		}
		cs := append([]string{"-test.run=TestHelperProcess", "--", command}, args...)
		cmd := exec.Command(os.Args[0], cs...)
		cmd.Env = append(os.Environ(),
			"GO_WANT_HELPER_PROCESS=1",
			"HELPER_STDOUT="+stdout,
			"HELPER_STDERR="+stderr,
			"HELPER_EXIT="+strconv.Itoa(exitCode),
		)
		return cmd
	}
	t.Cleanup(func() { execCommand = orig })
}

func TestInterpreterCandidates(t *testing.T) {
	candidates := interpreterCandidates()
	require.NotEmpty(t, candidates)

	if runtime.GOOS == "windows" {
		assert.Equal(t, "py", candidates[0].name)
		assert.Equal(t, []string{"-3"}, candidates[0].extraArgs)
	} else {
		assert.Equal(t, "python3", candidates[0].name)
		assert.Equal(t, "python", candidates[1].name)
	}
}

func TestFindExplicitMissingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "python")
	_, err := Find(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestFindExplicitResolvesThroughInterpreter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "python")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0755))

	var rec [][]string
	fakePython(t, &rec, "/opt/python/bin/python3\n", "", 0)

	interp, err := Find(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/python/bin/python3", interp.Path)

	require.Len(t, rec, 1)
	assert.Contains(t, rec[0], "import sys; print(sys.executable)")
}

func TestFindExplicitNotRunnable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "python")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0755))

	fakePython(t, nil, "", "bad interpreter\n", 1)

	_, err := Find(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not runnable")
}

func TestVersionParsesStdoutBanner(t *testing.T) {
	fakePython(t, nil, "Python 3.12.1\n", "", 0)

	v, err := (&Interp{Path: "python"}).Version()
	require.NoError(t, err)
	assert.Equal(t, "3.12.1", v)
}

func TestVersionParsesStderrBanner(t *testing.T) {
	// Python 2 printed the banner to stderr.
	fakePython(t, nil, "", "Python 2.7.18\n", 0)

	v, err := (&Interp{Path: "python"}).Version()
	require.NoError(t, err)
	assert.Equal(t, "2.7.18", v)
}

func TestPipAvailable(t *testing.T) {
	fakePython(t, nil, "pip 24.0 from site-packages\n", "", 0)
	assert.True(t, (&Interp{Path: "python"}).PipAvailable())
}

func TestPipNotAvailable(t *testing.T) {
	fakePython(t, nil, "", "No module named pip\n", 1)
	assert.False(t, (&Interp{Path: "python"}).PipAvailable())
}

func TestPackagePath(t *testing.T) {
	var rec [][]string
	fakePython(t, &rec, "/opt/python/lib/site-packages/macro_database\n", "", 0)

	dir, err := (&Interp{Path: "python"}).PackagePath("macro_database")
	require.NoError(t, err)
	assert.Equal(t, "/opt/python/lib/site-packages/macro_database", dir)

	require.Len(t, rec, 1)
	assert.Contains(t, rec[0][len(rec[0])-1], "macro_database.__file__")
}

func TestPackagePathNotImportable(t *testing.T) {
	fakePython(t, nil, "", "ModuleNotFoundError: No module named 'macro_database'\n", 1)

	_, err := (&Interp{Path: "python"}).PackagePath("macro_database")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not importable")
}
