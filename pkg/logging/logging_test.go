package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrodata/wheelhouse/pkg/config"
)

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestLogMessageLevelGating(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{logger: log.New(&buf, "", 0), logLevel: LevelInfo}

	l.logMessage(LevelDebug, "hidden")
	l.logMessage(LevelInfo, "shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "key=value")
}

func TestLogMessageErrorSeparator(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{logger: log.New(&buf, "", 0), logLevel: LevelDebug}

	l.logMessage(LevelError, "install failed")
	assert.Contains(t, buf.String(), "----------------------------------------")
	assert.Contains(t, buf.String(), "install failed")
}

func TestLogMessageLongPairListWraps(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{logger: log.New(&buf, "", 0), logLevel: LevelDebug}

	l.logMessage(LevelInfo, "facts",
		"a", 1, "b", 2, "c", 3, "d", 4, "e", 5)

	out := buf.String()
	assert.Contains(t, out, "\n        a: 1")
	assert.Contains(t, out, "\n        e: 5")
}

func TestStandaloneLoggerPrintf(t *testing.T) {
	l := New(true)
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Printf("checked %d archives", 3)
	out := buf.String()
	assert.Contains(t, out, "checked 3 archives")
	assert.Regexp(t, `\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\]`, out)
}

func TestStandaloneLoggerColors(t *testing.T) {
	l := New(true)
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Success("done")
	assert.True(t, strings.HasPrefix(buf.String(), colorGreen))
	assert.Contains(t, buf.String(), colorReset)
}

func TestPruneOldSessions(t *testing.T) {
	base := t.TempDir()

	names := []string{
		"2026-08-25-090000", "2026-08-25-090001", "2026-08-25-090002",
		"2026-08-25-090003", "2026-08-25-090004", "2026-08-25-090005",
		"2026-08-25-090006", "2026-08-25-090007", "2026-08-25-090008",
		"2026-08-25-090009", "2026-08-25-090010", "2026-08-25-090011",
		"2026-08-25-090012",
	}
	for _, name := range names {
		require.NoError(t, os.Mkdir(filepath.Join(base, name), 0755))
	}
	require.NoError(t, os.Mkdir(filepath.Join(base, "not-a-session"), 0755))

	pruneOldSessions(base)

	for _, name := range names[:3] {
		_, err := os.Stat(filepath.Join(base, name))
		assert.True(t, os.IsNotExist(err), "oldest session %s must be pruned", name)
	}
	for _, name := range names[3:] {
		_, err := os.Stat(filepath.Join(base, name))
		assert.NoError(t, err, "recent session %s must survive", name)
	}
	_, err := os.Stat(filepath.Join(base, "not-a-session"))
	assert.NoError(t, err, "non-session directories are left alone")
}

func TestInitCreatesSessionLog(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.LogDir = t.TempDir()

	require.NoError(t, Init(cfg))
	defer CloseLogger()

	sessionDir := GetCurrentLogDir()
	require.NotEmpty(t, sessionDir)
	assert.True(t, strings.HasPrefix(sessionDir, cfg.LogDir))

	Info("session log test line", "step", "verify")

	data, err := os.ReadFile(filepath.Join(sessionDir, "install.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "session log test line")
	assert.Contains(t, string(data), "step=verify")
}
