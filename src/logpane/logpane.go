// FILE: logpane/src/logpane/logpane.go
// Package logpane captures log records in process and filters them for an
// in-app viewer.
package logpane

import (
	"log/slog"
	"sync"

	"logpane/src/internal/capture"
	"logpane/src/internal/core"
	"logpane/src/internal/viewer"
)

type (
	Level  = core.Level
	Record = core.Record
	Viewer = viewer.State
	Frame  = viewer.Frame
	Canvas = viewer.Canvas
)

const (
	LevelError = core.LevelError
	LevelWarn  = core.LevelWarn
	LevelInfo  = core.LevelInfo
	LevelDebug = core.LevelDebug
	LevelTrace = core.LevelTrace

	// SlogLevelTrace is the slog level captured as LevelTrace
	SlogLevelTrace = capture.LevelTrace
)

var (
	ErrAlreadyInitialized = capture.ErrAlreadyInitialized
	ErrNotInitialized     = capture.ErrNotInitialized
)

var (
	activeMu sync.Mutex
	active   *Capture
)

// Init registers a capture with default options
func Init() error {
	return NewBuilder().Init()
}

// Current returns the registered capture, or nil before Init
func Current() *Capture {
	activeMu.Lock()
	defer activeMu.Unlock()
	return active
}

// Logger returns a slog logger tagging records with target. Before Init it
// wraps the current default logger.
func Logger(target string) *slog.Logger {
	if c := Current(); c != nil {
		return c.Logger(target)
	}
	return slog.Default().With(capture.TargetKey, target)
}

// Handler returns the registered capture's slog handler
func Handler() (slog.Handler, error) {
	c := Current()
	if c == nil {
		return nil, ErrNotInitialized
	}
	return c.Handler(), nil
}

// Log captures an event through the registered capture; a no-op before Init
func Log(level Level, target, message string) {
	capture.Record(level, target, message)
}

// Logf formats and captures an event; a no-op before Init
func Logf(level Level, target, format string, args ...any) {
	capture.Recordf(level, target, format, args...)
}

// NewViewer creates a viewer over the registered capture
func NewViewer() (*Viewer, error) {
	c := Current()
	if c == nil {
		return nil, ErrNotInitialized
	}
	return c.NewViewer()
}

// ClearLogs empties the registered capture's store
func ClearLogs() {
	if c := Current(); c != nil {
		c.Clear()
	}
}

// Teardown unregisters the capture and restores the previous default
// logger. Init may be called again afterwards.
func Teardown() error {
	activeMu.Lock()
	defer activeMu.Unlock()
	if err := capture.Teardown(); err != nil {
		return err
	}
	active = nil
	return nil
}
