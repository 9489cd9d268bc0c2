//go:build linux
// +build linux

package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCreatesLauncherEntry(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := t.TempDir()
	writeWheel(t, dir, "macro_database-1.0.0-py3-none-any.whl")

	rec := &execRecorder{}
	fakePip(t, rec, 0, 0)
	interp := fakeInterp(t)
	stubInterp(t, interp, nil)
	stubProcessScan(t, nil)

	cfg := testConfig(t, dir)
	cfg.NoShortcut = false

	res, err := Run(cfg, Options{})
	require.NoError(t, err)
	assert.Nil(t, res.ShortcutWarning)

	wantPath := filepath.Join(home, ".local", "share", "applications", "economic-dashboard.desktop")
	assert.Equal(t, wantPath, res.ShortcutPath)

	content, err := os.ReadFile(wantPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Exec="+interp.Path+" -m macro_database.run")
}

func TestRunShortcutFailureIsWarning(t *testing.T) {
	// Point HOME at a regular file so the launcher directory cannot be
	// created.
	bogusHome := filepath.Join(t.TempDir(), "homefile")
	require.NoError(t, os.WriteFile(bogusHome, []byte("x"), 0644))
	t.Setenv("HOME", bogusHome)

	dir := t.TempDir()
	writeWheel(t, dir, "macro_database-1.0.0-py3-none-any.whl")

	rec := &execRecorder{}
	fakePip(t, rec, 0, 0)
	stubInterp(t, fakeInterp(t), nil)
	stubProcessScan(t, nil)

	cfg := testConfig(t, dir)
	cfg.NoShortcut = false

	res, err := Run(cfg, Options{})
	require.NoError(t, err, "a failed shortcut never fails the install")
	assert.Error(t, res.ShortcutWarning)
	assert.Empty(t, res.ShortcutPath)
	assert.Len(t, rec.calls, 2, "the wheel was still installed")
}
