// Package log provides file-backed loggers shared across the application.
// Log output never goes to the terminal: the TUI owns stdout, so everything
// is written to a log file in the config directory. Error and warning lines
// are additionally forwarded to Sentry when telemetry is enabled.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/agenthub-io/agenthub/internal/sentry"
)

var (
	InfoLog    *log.Logger
	WarningLog *log.Logger
	ErrorLog   *log.Logger
)

var logFile *os.File

// defaultLogFileName is the name of the log file inside the config dir.
const defaultLogFileName = "agenthub.log"

// Initialize opens the log file and wires the package loggers. It must be
// called once at startup, before any logger is used. When telemetryEnabled
// is true, error and warning output is tee'd into Sentry.
func Initialize(telemetryEnabled bool) {
	dir, err := configDir()
	if err != nil {
		// Fall back to discarding output rather than crashing the TUI.
		initWriters(io.Discard, telemetryEnabled)
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		initWriters(io.Discard, telemetryEnabled)
		return
	}

	f, err := os.OpenFile(filepath.Join(dir, defaultLogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		initWriters(io.Discard, telemetryEnabled)
		return
	}
	logFile = f
	initWriters(f, telemetryEnabled)
}

func initWriters(w io.Writer, telemetryEnabled bool) {
	infoW, warnW, errW := w, w, w
	if telemetryEnabled {
		warnW = sentry.NewWriter(w, sentry.LevelWarning)
		errW = sentry.NewWriter(w, sentry.LevelError)
	}
	flags := log.LstdFlags | log.Lshortfile
	InfoLog = log.New(infoW, "INFO: ", flags)
	WarningLog = log.New(warnW, "WARNING: ", flags)
	ErrorLog = log.New(errW, "ERROR: ", flags)
}

// Close flushes and closes the log file.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Path returns the log file location, for the debug command.
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultLogFileName), nil
}

func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "agenthub"), nil
}
