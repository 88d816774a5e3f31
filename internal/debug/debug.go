// Package debug provides opt-in file logging for the generator. Logging is
// off unless Init is called or MVIEW_DEBUG names a log file.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnvVar names the environment variable holding the debug log path.
const EnvVar = "MVIEW_DEBUG"

var (
	out     io.Writer
	logFile *os.File
	mu      sync.Mutex
	envOnce sync.Once
)

// Init starts logging to the file at path, appending to it.
// If path is empty, uses "mview-debug.log" in the current directory.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	envOnce.Do(func() {})
	return initLocked(path)
}

// initLocked does the actual init work. Caller must hold mu.
func initLocked(path string) error {
	if path == "" {
		path = "mview-debug.log"
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	out = f
	return nil
}

// SetOutput sends log lines to w. Pass nil to disable logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	envOnce.Do(func() {})
	out = w
}

// Close closes the debug log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	out = nil
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

// Log writes a message to the debug log with a timestamp.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	fromEnvLocked()
	if out == nil {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(out, "[%s] %s\n", timestamp, msg)
	if logFile != nil {
		logFile.Sync()
	}
}

// fromEnvLocked opens the file named by MVIEW_DEBUG the first time logging
// is attempted. Caller must hold mu.
func fromEnvLocked() {
	envOnce.Do(func() {
		path := os.Getenv(EnvVar)
		if path == "" || out != nil {
			return
		}
		if err := initLocked(path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", EnvVar, err)
		}
	})
}
