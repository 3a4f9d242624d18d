// FILE: logpane/src/internal/store/store.go
package store

import (
	"sync"
	"sync/atomic"

	"logpane/src/internal/core"

	"github.com/lixenwraith/log"
)

// RingStore holds captured records in insertion order. With a positive
// capacity the oldest records are evicted first; zero capacity is unbounded.
// Safe for concurrent use by many writers and readers.
type RingStore struct {
	mu       sync.RWMutex
	buf      []core.Record
	head     int // index of the oldest record once the ring has wrapped
	count    int
	capacity int
	nextSeq  uint64

	// Targets in first-seen order, kept across Clear
	categories   []string
	seenTargets  map[string]struct{}
	maxTargetLen int

	logger *log.Logger

	// Statistics
	totalInserted atomic.Uint64
	totalEvicted  atomic.Uint64
	totalCleared  atomic.Uint64
}

// Snapshot is a point-in-time copy of the store. It shares no memory with
// the live buffer.
type Snapshot struct {
	Records      []core.Record
	Categories   []string
	MaxTargetLen int
	Evicted      uint64
}

// New creates a store. A capacity of zero or less disables eviction.
func New(capacity int, logger *log.Logger) *RingStore {
	if logger == nil {
		logger = log.NewLogger()
	}
	if capacity < 0 {
		capacity = 0
	}

	s := &RingStore{
		capacity:    capacity,
		seenTargets: make(map[string]struct{}),
		logger:      logger,
	}
	if capacity > 0 {
		s.buf = make([]core.Record, 0, min(capacity, 1024))
	}

	logger.Debug("msg", "Ring store created",
		"component", "ring_store",
		"capacity", capacity)
	return s
}

// Insert stamps the record with the next sequence id and appends it, evicting
// the oldest record when the store is full. It returns the assigned id.
func (s *RingStore) Insert(r core.Record) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	r.Seq = s.nextSeq

	switch {
	case s.capacity > 0 && s.count == s.capacity:
		s.buf[s.head] = r
		s.head = (s.head + 1) % s.capacity
		s.totalEvicted.Add(1)
	default:
		// head stays 0 until the ring first wraps
		s.buf = append(s.buf, r)
		s.count++
	}

	if _, ok := s.seenTargets[r.Target]; !ok {
		s.seenTargets[r.Target] = struct{}{}
		s.categories = append(s.categories, r.Target)
		s.maxTargetLen = max(s.maxTargetLen, len(r.Target))
	}

	s.totalInserted.Add(1)
	return r.Seq
}

// Snapshot copies the current records, oldest first. The read lock is held
// only for the copy.
func (s *RingStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Records:      s.copyRecords(make([]core.Record, 0, s.count)),
		Categories:   append([]string(nil), s.categories...),
		MaxTargetLen: s.maxTargetLen,
		Evicted:      s.totalEvicted.Load(),
	}
}

// SnapshotInto behaves like Snapshot but reuses dst's backing array for the
// records, letting a per-frame caller avoid reallocating every frame.
func (s *RingStore) SnapshotInto(dst []core.Record) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Records:      s.copyRecords(dst[:0]),
		Categories:   append([]string(nil), s.categories...),
		MaxTargetLen: s.maxTargetLen,
		Evicted:      s.totalEvicted.Load(),
	}
}

// copyRecords appends the live records in order. MUST be called with the
// lock held.
func (s *RingStore) copyRecords(dst []core.Record) []core.Record {
	if s.count == 0 {
		return dst
	}
	dst = append(dst, s.buf[s.head:s.count]...)
	return append(dst, s.buf[:s.head]...)
}

// Clear removes every record. Sequence ids keep increasing afterwards.
func (s *RingStore) Clear() {
	s.mu.Lock()
	removed := s.count
	clear(s.buf)
	s.buf = s.buf[:0]
	s.head = 0
	s.count = 0
	s.mu.Unlock()

	s.totalCleared.Add(uint64(removed))
	s.logger.Debug("msg", "Ring store cleared",
		"component", "ring_store",
		"removed", removed)
}

// SetCapacity changes the bound, evicting the oldest records if the store
// now holds more than the new capacity. Zero means unbounded.
func (s *RingStore) SetCapacity(capacity int) {
	if capacity < 0 {
		capacity = 0
	}

	s.mu.Lock()
	records := s.copyRecords(make([]core.Record, 0, s.count))
	evicted := 0
	if capacity > 0 && len(records) > capacity {
		evicted = len(records) - capacity
		records = records[evicted:]
	}
	s.buf = records
	s.head = 0
	s.count = len(records)
	s.capacity = capacity
	s.mu.Unlock()

	s.totalEvicted.Add(uint64(evicted))
	s.logger.Info("msg", "Ring store capacity changed",
		"component", "ring_store",
		"capacity", capacity,
		"evicted", evicted)
}

// Len returns the number of records currently held
func (s *RingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Capacity returns the configured bound, zero when unbounded
func (s *RingStore) Capacity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capacity
}

// GetStats returns store statistics
func (s *RingStore) GetStats() map[string]any {
	s.mu.RLock()
	count, capacity, categories := s.count, s.capacity, len(s.categories)
	s.mu.RUnlock()

	return map[string]any{
		"records":        count,
		"capacity":       capacity,
		"categories":     categories,
		"total_inserted": s.totalInserted.Load(),
		"total_evicted":  s.totalEvicted.Load(),
		"total_cleared":  s.totalCleared.Load(),
	}
}
