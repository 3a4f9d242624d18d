// FILE: logpane/src/internal/capture/sink.go
package capture

import (
	"fmt"
	"sync/atomic"
	"time"

	"logpane/src/internal/config"
	"logpane/src/internal/core"
	"logpane/src/internal/flow"
	"logpane/src/internal/store"

	"github.com/lixenwraith/log"
)

// Sink turns log calls into records and stores them. Record may be called
// from any goroutine and never fails or panics into the caller.
type Sink struct {
	store     *store.RingStore
	insert    func(core.Record) uint64 // st.Insert; replaced in tests
	threshold core.Level
	denied    map[string]struct{}
	limiter   *flow.Limiter
	startTime time.Time
	logger    *log.Logger

	// Statistics
	totalAccepted  atomic.Uint64
	totalBelow     atomic.Uint64
	totalDenied    atomic.Uint64
	totalRecovered atomic.Uint64
	lastAccepted   atomic.Value // time.Time
}

// New creates a sink writing into st. Only the capture-related fields of
// opts are used.
func New(st *store.RingStore, opts *config.Options, logger *log.Logger) (*Sink, error) {
	if st == nil {
		return nil, fmt.Errorf("capture sink requires a store")
	}
	if opts == nil {
		opts = config.Defaults()
	}
	if logger == nil {
		logger = log.NewLogger()
	}

	threshold, err := core.ParseLevel(opts.LevelThreshold)
	if err != nil {
		return nil, fmt.Errorf("invalid level threshold: %w", err)
	}

	s := &Sink{
		store:     st,
		insert:    st.Insert,
		threshold: threshold,
		denied:    make(map[string]struct{}, len(opts.DeniedTargets)),
		limiter:   flow.NewLimiter(opts.RateLimit, logger),
		startTime: time.Now(),
		logger:    logger,
	}
	for _, target := range opts.DeniedTargets {
		s.denied[target] = struct{}{}
	}
	s.lastAccepted.Store(time.Time{})

	logger.Debug("msg", "Capture sink created",
		"component", "capture_sink",
		"threshold", threshold.String(),
		"denied_targets", len(s.denied))

	return s, nil
}

// Enabled reports whether a record with this level and target would reach
// the store, ignoring rate limits
func (s *Sink) Enabled(level core.Level, target string) bool {
	if !level.AtLeast(s.threshold) {
		return false
	}
	_, denied := s.denied[target]
	return !denied
}

// Record captures one event. The message must already be fully rendered.
func (s *Sink) Record(level core.Level, target, message string) {
	defer s.recoverPanic()

	if !level.AtLeast(s.threshold) {
		s.totalBelow.Add(1)
		return
	}
	if _, denied := s.denied[target]; denied {
		s.totalDenied.Add(1)
		return
	}

	r := core.NewRecord(level, target, message)
	if !s.limiter.Allow(r) {
		return
	}

	s.insert(r)
	s.totalAccepted.Add(1)
	s.lastAccepted.Store(r.Time)
}

// Recordf formats the message before the call returns, so arguments are not
// retained. Formatting is skipped for records that would be dropped.
func (s *Sink) Recordf(level core.Level, target, format string, args ...any) {
	if !s.Enabled(level, target) {
		// counts the drop without rendering
		s.Record(level, target, "")
		return
	}
	defer s.recoverPanic()
	s.Record(level, target, fmt.Sprintf(format, args...))
}

// recoverPanic swallows a failure inside the write path. The store's lock is
// released by its own deferred unlock, so other writers are unaffected.
func (s *Sink) recoverPanic() {
	if r := recover(); r != nil {
		s.totalRecovered.Add(1)
	}
}

// Store returns the store the sink writes into
func (s *Sink) Store() *store.RingStore {
	return s.store
}

// Threshold returns the least severe level accepted
func (s *Sink) Threshold() core.Level {
	return s.threshold
}

// Dropped counts records rejected after passing the level and target checks
// plus records lost to a recovered failure
func (s *Sink) Dropped() uint64 {
	return s.limiter.Dropped() + s.totalRecovered.Load()
}

// StartTime returns when the sink was created
func (s *Sink) StartTime() time.Time {
	return s.startTime
}

// GetStats returns sink statistics
func (s *Sink) GetStats() map[string]any {
	lastAccepted, _ := s.lastAccepted.Load().(time.Time)

	return map[string]any{
		"threshold":       s.threshold.String(),
		"total_accepted":  s.totalAccepted.Load(),
		"total_below":     s.totalBelow.Load(),
		"total_denied":    s.totalDenied.Load(),
		"total_recovered": s.totalRecovered.Load(),
		"dropped":         s.Dropped(),
		"start_time":      s.startTime,
		"last_accepted":   lastAccepted,
		"limiter":         s.limiter.GetStats(),
		"store":           s.store.GetStats(),
	}
}
