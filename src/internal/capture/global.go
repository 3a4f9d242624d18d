// FILE: logpane/src/internal/capture/global.go
package capture

import (
	"errors"
	"io"
	stdlog "log"
	"log/slog"
	"sync"
	"sync/atomic"

	"logpane/src/internal/core"
)

var (
	// ErrAlreadyInitialized is returned when a sink is already registered
	ErrAlreadyInitialized = errors.New("log sink already initialized")
	// ErrNotInitialized is returned by operations that need a registered sink
	ErrNotInitialized = errors.New("log sink not initialized")
)

var (
	registerMu  sync.Mutex
	current     atomic.Pointer[Sink]
	prevDefault *slog.Logger
	prevWriter  io.Writer
	prevFlags   int
)

// Init registers s as the process-wide sink and routes the default slog
// logger, and with it the standard log package, into it. A second call fails
// with ErrAlreadyInitialized and leaves the first sink in place.
func Init(s *Sink) error {
	if s == nil {
		return errors.New("cannot register nil sink")
	}

	registerMu.Lock()
	defer registerMu.Unlock()

	if current.Load() != nil {
		s.logger.Warn("msg", "Sink registration rejected, already initialized",
			"component", "capture")
		return ErrAlreadyInitialized
	}

	prevDefault = slog.Default()
	prevWriter, prevFlags = stdlog.Writer(), stdlog.Flags()
	current.Store(s)
	slog.SetDefault(slog.New(NewHandler(s)))

	s.logger.Info("msg", "Capture sink registered",
		"component", "capture",
		"threshold", s.threshold.String())
	return nil
}

// Current returns the registered sink, or nil before Init
func Current() *Sink {
	return current.Load()
}

// Record captures an event through the registered sink. Before Init it does
// nothing.
func Record(level core.Level, target, message string) {
	if s := current.Load(); s != nil {
		s.Record(level, target, message)
	}
}

// Recordf formats and captures an event through the registered sink
func Recordf(level core.Level, target, format string, args ...any) {
	if s := current.Load(); s != nil {
		s.Recordf(level, target, format, args...)
	}
}

// Teardown unregisters the sink and restores the slog default that was in
// place before Init. Records already stored stay in the sink's store.
func Teardown() error {
	registerMu.Lock()
	defer registerMu.Unlock()

	s := current.Swap(nil)
	if s == nil {
		return ErrNotInitialized
	}
	if prevDefault != nil {
		slog.SetDefault(prevDefault)
		// SetDefault leaves the log package redirected when handed the
		// built-in handler
		stdlog.SetOutput(prevWriter)
		stdlog.SetFlags(prevFlags)
		prevDefault, prevWriter = nil, nil
	}

	s.logger.Info("msg", "Capture sink unregistered", "component", "capture")
	return nil
}
