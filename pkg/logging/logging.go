// pkg/logging/logging.go - timestamped logging for the wheelhouse installer.
//
// Each run logs to a timestamped session directory under the configured
// log dir (YYYY-MM-DD-HHMMss format), mirrored to the console. Old session
// directories are pruned at startup.

package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/macrodata/wheelhouse/pkg/config"
)

// LogLevel represents the severity of the log message.
type LogLevel int

const (
	// Define log levels.
	LevelError LogLevel = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// String returns the string representation of the LogLevel.
func (ll LogLevel) String() string {
	switch ll {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// keepSessions is how many timestamped session directories survive the
// startup sweep.
const keepSessions = 10

// Logger encapsulates console plus per-session file logging.
type Logger struct {
	mu           sync.RWMutex
	logger       *log.Logger
	logLevel     LogLevel
	logFile      *os.File
	logDir       string // current timestamped session directory
	sessionStart time.Time
	hostname     string
}

// singleton instance and sync.Once for thread-safe initialization
var (
	instance *Logger
	once     sync.Once
)

// Init initializes the singleton Logger based on the provided configuration.
// It must be called before any package-level logging functions are used.
func Init(cfg *config.Configuration) error {
	var initErr error
	once.Do(func() {
		instance, initErr = newLogger(cfg)
	})
	return initErr
}

// newLogger creates a new Logger instance based on the configuration.
func newLogger(cfg *config.Configuration) (*Logger, error) {
	sessionStart := time.Now()

	baseDir := cfg.LogDir
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base log directory: %w", err)
	}

	// Format: YYYY-MM-DD-HHMMss
	logDir := filepath.Join(baseDir, sessionStart.Format("2006-01-02-150405"))
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session log directory %s: %w", logDir, err)
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "unknown"
	}

	logFilePath := filepath.Join(logDir, "install.log")
	logFile, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open main log file: %w", err)
	}

	level := LevelInfo
	if cfg.Verbose || cfg.Debug {
		level = LevelDebug
	}

	l := &Logger{
		logger:       log.New(io.MultiWriter(os.Stdout, logFile), "", 0),
		logLevel:     level,
		logFile:      logFile,
		logDir:       logDir,
		sessionStart: sessionStart,
		hostname:     hostname,
	}

	// One-shot retention sweep; the installer exits quickly, so no
	// background cleanup routine is needed.
	pruneOldSessions(baseDir)

	return l, nil
}

// pruneOldSessions removes session directories beyond keepSessions,
// newest first. Failures are ignored.
func pruneOldSessions(baseDir string) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return
	}

	var sessionDirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			// Timestamp format YYYY-MM-DD-HHMMss
			if len(entry.Name()) == 17 && strings.Count(entry.Name(), "-") == 3 {
				sessionDirs = append(sessionDirs, entry.Name())
			}
		}
	}

	// Name order is timestamp order for this format.
	sort.Sort(sort.Reverse(sort.StringSlice(sessionDirs)))

	for i := keepSessions; i < len(sessionDirs); i++ {
		os.RemoveAll(filepath.Join(baseDir, sessionDirs[i]))
	}
}

// CloseLogger closes the session log file if it's open.
func CloseLogger() {
	if instance == nil {
		return
	}
	instance.mu.Lock()
	defer instance.mu.Unlock()

	if instance.logFile != nil {
		if err := instance.logFile.Close(); err != nil {
			fmt.Printf("Failed to close main log file: %v\n", err)
		}
		instance.logFile = nil
	}
}

// logMessage is the core logging method for the structured package-level API.
func (l *Logger) logMessage(level LogLevel, message string, keyValues ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logger == nil {
		fmt.Printf("LOGGING NOT INITIALIZED: %s %s %v\n", level.String(), message, keyValues)
		return
	}

	if level > l.logLevel {
		return
	}

	ts := time.Now().Format("2006-01-02 15:04:05")
	baseLine := fmt.Sprintf("[%s] %-5s %s", ts, level.String(), message)

	// Append key-value pairs; long pair lists get continuation lines.
	if len(keyValues)/2 > 4 {
		for i := 0; i < len(keyValues); i += 2 {
			if i+1 < len(keyValues) {
				baseLine += fmt.Sprintf("\n        %v: %v", keyValues[i], keyValues[i+1])
			}
		}
	} else {
		for i := 0; i < len(keyValues); i += 2 {
			if i+1 < len(keyValues) {
				baseLine += fmt.Sprintf(" %v=%v", keyValues[i], keyValues[i+1])
			}
		}
	}

	// Error separator keeps failures easy to spot in install.log.
	if level == LevelError {
		baseLine = "\n----------------------------------------\n" + baseLine
	}

	l.logger.Println(baseLine)

	if l.logFile != nil {
		l.logFile.Sync()
	}
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGreen  = "\033[32m"
)

// Info logs informational messages.
func Info(message string, keyValues ...interface{}) {
	if instance == nil {
		fmt.Printf("LOGGING NOT INITIALIZED: INFO %s %v\n", message, keyValues)
		return
	}
	instance.logMessage(LevelInfo, message, keyValues...)
}

// Debug logs debug messages.
func Debug(message string, keyValues ...interface{}) {
	if instance == nil {
		fmt.Printf("LOGGING NOT INITIALIZED: DEBUG %s %v\n", message, keyValues)
		return
	}
	instance.logMessage(LevelDebug, message, keyValues...)
}

// Warn logs warning messages.
func Warn(message string, keyValues ...interface{}) {
	if instance == nil {
		fmt.Printf("LOGGING NOT INITIALIZED: WARN %s %v\n", message, keyValues)
		return
	}
	instance.logMessage(LevelWarn, message, keyValues...)
}

// Error logs error messages.
func Error(message string, keyValues ...interface{}) {
	if instance == nil {
		fmt.Printf("LOGGING NOT INITIALIZED: ERROR %s %v\n", message, keyValues)
		return
	}
	instance.logMessage(LevelError, message, keyValues...)
}

// New creates a standalone console Logger for use before Init.
func New(verbose bool) *Logger {
	enableColors()

	output := os.Stdout
	if !verbose {
		output = os.Stderr
	}
	l := log.New(output, "", 0)
	return &Logger{
		logger:   l,
		logLevel: LevelInfo, // default log level
		logFile:  nil,       // no file logging for this instance
	}
}

// SetOutput changes the output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetOutput(w)
}

// colorPrintf prints a colored message.
func (l *Logger) colorPrintf(color, format string, v ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ts := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, v...)
	l.logger.Printf("%s[%s] %s%s", color, ts, msg, colorReset)
}

// Printf prints a regular message.
func (l *Logger) Printf(format string, v ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ts := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, v...)
	l.logger.Printf("[%s] %s", ts, msg)
}

// Info prints an informational message (instance method counterpart to the package-level Info).
func (l *Logger) Info(format string, v ...interface{}) {
	l.Printf(format, v...)
}

// Success prints a success message in green.
func (l *Logger) Success(format string, v ...interface{}) {
	l.colorPrintf(colorGreen, format, v...)
}

// Error prints an error message in red.
func (l *Logger) Error(format string, v ...interface{}) {
	l.colorPrintf(colorRed, format, v...)
}

// Warning prints a warning message in yellow.
func (l *Logger) Warning(format string, v ...interface{}) {
	l.colorPrintf(colorYellow, format, v...)
}

// Debug prints a debug message in blue.
func (l *Logger) Debug(format string, v ...interface{}) {
	l.colorPrintf(colorBlue, format, v...)
}

// Fatal prints an error message in red and exits.
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.Error(format, v...)
	os.Exit(1)
}

// GetCurrentLogDir returns the current timestamped session directory.
func GetCurrentLogDir() string {
	if instance == nil {
		return ""
	}
	instance.mu.RLock()
	defer instance.mu.RUnlock()
	return instance.logDir
}
