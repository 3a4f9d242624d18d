package store

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"logpane/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func messages(records []core.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Message
	}
	return out
}

func assertStrictlyIncreasing(t *testing.T, records []core.Record) {
	t.Helper()
	for i := 1; i < len(records); i++ {
		require.Less(t, records[i-1].Seq, records[i].Seq, "sequence at index %d", i)
	}
}

func TestRingStore_InsertAssignsSequence(t *testing.T) {
	s := New(0, newTestLogger())

	first := s.Insert(core.NewRecord(core.LevelInfo, "app", "a"))
	second := s.Insert(core.NewRecord(core.LevelInfo, "app", "b"))
	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)

	snap := s.Snapshot()
	assert.Equal(t, []string{"a", "b"}, messages(snap.Records))
	assert.Equal(t, uint64(1), snap.Records[0].Seq)
}

func TestRingStore_Eviction(t *testing.T) {
	const capacity = 5

	for _, k := range []int{1, 3, 5, 12} {
		t.Run(fmt.Sprintf("Overflow%d", k), func(t *testing.T) {
			s := New(capacity, newTestLogger())
			for i := 0; i < capacity+k; i++ {
				s.Insert(core.NewRecord(core.LevelInfo, "", fmt.Sprint(i)))
			}

			snap := s.Snapshot()
			require.Len(t, snap.Records, capacity)

			expected := make([]string, 0, capacity)
			for i := k; i < capacity+k; i++ {
				expected = append(expected, fmt.Sprint(i))
			}
			assert.Equal(t, expected, messages(snap.Records))
			assertStrictlyIncreasing(t, snap.Records)
			assert.Equal(t, uint64(k), snap.Evicted)
		})
	}
}

func TestRingStore_EndToEndEviction(t *testing.T) {
	s := New(3, newTestLogger())
	s.Insert(core.NewRecord(core.LevelInfo, "", "a"))
	s.Insert(core.NewRecord(core.LevelWarn, "", "b"))
	s.Insert(core.NewRecord(core.LevelError, "", "c"))
	s.Insert(core.NewRecord(core.LevelDebug, "", "d"))

	snap := s.Snapshot()
	require.Len(t, snap.Records, 3)
	assert.Equal(t, []string{"b", "c", "d"}, messages(snap.Records))
	assert.Equal(t, core.LevelWarn, snap.Records[0].Level)
	assert.Equal(t, core.LevelError, snap.Records[1].Level)
	assert.Equal(t, core.LevelDebug, snap.Records[2].Level)
}

func TestRingStore_SnapshotIsIndependent(t *testing.T) {
	s := New(2, newTestLogger())
	s.Insert(core.NewRecord(core.LevelInfo, "", "a"))
	s.Insert(core.NewRecord(core.LevelInfo, "", "b"))

	snap := s.Snapshot()
	s.Insert(core.NewRecord(core.LevelInfo, "", "c"))
	s.Clear()

	assert.Equal(t, []string{"a", "b"}, messages(snap.Records))
}

func TestRingStore_SnapshotInto(t *testing.T) {
	s := New(0, newTestLogger())
	s.Insert(core.NewRecord(core.LevelInfo, "", "a"))

	buf := make([]core.Record, 0, 16)
	snap := s.SnapshotInto(buf)
	assert.Equal(t, []string{"a"}, messages(snap.Records))
	assert.Equal(t, 16, cap(snap.Records))
}

func TestRingStore_Clear(t *testing.T) {
	s := New(3, newTestLogger())
	for i := 0; i < 5; i++ {
		s.Insert(core.NewRecord(core.LevelInfo, "net", fmt.Sprint(i)))
	}

	s.Clear()
	snap := s.Snapshot()
	assert.Empty(t, snap.Records)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, []string{"net"}, snap.Categories, "categories survive clear")

	seq := s.Insert(core.NewRecord(core.LevelInfo, "", "after"))
	assert.Equal(t, uint64(6), seq, "sequence keeps increasing after clear")
	assert.Equal(t, []string{"after"}, messages(s.Snapshot().Records))
}

func TestRingStore_ClearConcurrentWithInsert(t *testing.T) {
	for i := 0; i < 200; i++ {
		s := New(0, newTestLogger())

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Insert(core.NewRecord(core.LevelInfo, "race", "only"))
		}()
		go func() {
			defer wg.Done()
			s.Clear()
		}()
		wg.Wait()

		records := s.Snapshot().Records
		require.LessOrEqual(t, len(records), 1)
		if len(records) == 1 {
			assert.Equal(t, "only", records[0].Message)
			assert.Equal(t, "race", records[0].Target)
			assert.Equal(t, uint64(1), records[0].Seq)
		}
	}
}

func TestRingStore_PanicInsideInsertReleasesLock(t *testing.T) {
	s := New(0, newTestLogger())
	s.Insert(core.NewRecord(core.LevelInfo, "app", "first"))

	// A nil target index makes Insert panic while holding the lock
	s.seenTargets = nil
	assert.Panics(t, func() {
		s.Insert(core.NewRecord(core.LevelInfo, "new-target", "second"))
	})
	s.seenTargets = map[string]struct{}{"app": {}}

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for range 4 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				s.Insert(core.NewRecord(core.LevelInfo, "app", "after"))
			}()
			go func() {
				defer wg.Done()
				s.Snapshot()
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("store lock was not released by the panicking insert")
	}

	records := s.Snapshot().Records
	assert.Len(t, records, 6)
	assertStrictlyIncreasing(t, records)
}

func TestRingStore_ConcurrentWriters(t *testing.T) {
	testCases := []struct {
		name     string
		capacity int
		writers  int
		perWrite int
	}{
		{name: "Unbounded", capacity: 0, writers: 8, perWrite: 500},
		{name: "BoundedOverflow", capacity: 1000, writers: 8, perWrite: 500},
		{name: "BoundedUnderflow", capacity: 10000, writers: 4, perWrite: 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(tc.capacity, newTestLogger())

			var wg sync.WaitGroup
			var outOfOrder atomic.Bool
			stop := make(chan struct{})
			readerDone := make(chan struct{})

			// A reader snapshots continuously while writers run
			go func() {
				defer close(readerDone)
				for {
					select {
					case <-stop:
						return
					default:
						records := s.Snapshot().Records
						for i := 1; i < len(records); i++ {
							if records[i-1].Seq >= records[i].Seq {
								outOfOrder.Store(true)
							}
						}
					}
				}
			}()

			for w := 0; w < tc.writers; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					for i := 0; i < tc.perWrite; i++ {
						s.Insert(core.NewRecord(core.LevelDebug, fmt.Sprintf("w%d", w), fmt.Sprint(i)))
					}
				}(w)
			}
			wg.Wait()
			close(stop)
			<-readerDone
			assert.False(t, outOfOrder.Load(), "reader observed out-of-order snapshot")

			total := tc.writers * tc.perWrite
			expected := total
			if tc.capacity > 0 {
				expected = min(total, tc.capacity)
			}

			snap := s.Snapshot()
			assert.Len(t, snap.Records, expected)
			assertStrictlyIncreasing(t, snap.Records)
			assert.Equal(t, uint64(total), snap.Records[len(snap.Records)-1].Seq)
			assert.Len(t, snap.Categories, tc.writers)
		})
	}
}

func TestRingStore_SetCapacity(t *testing.T) {
	s := New(0, newTestLogger())
	for i := 0; i < 6; i++ {
		s.Insert(core.NewRecord(core.LevelInfo, "", fmt.Sprint(i)))
	}

	s.SetCapacity(4)
	assert.Equal(t, []string{"2", "3", "4", "5"}, messages(s.Snapshot().Records))

	s.Insert(core.NewRecord(core.LevelInfo, "", "6"))
	assert.Equal(t, []string{"3", "4", "5", "6"}, messages(s.Snapshot().Records))

	s.SetCapacity(0)
	s.Insert(core.NewRecord(core.LevelInfo, "", "7"))
	assert.Equal(t, []string{"3", "4", "5", "6", "7"}, messages(s.Snapshot().Records))
	assert.Equal(t, 0, s.Capacity())
}

func TestRingStore_Categories(t *testing.T) {
	s := New(2, newTestLogger())
	s.Insert(core.NewRecord(core.LevelInfo, "db", "x"))
	s.Insert(core.NewRecord(core.LevelInfo, "http::server", "x"))
	s.Insert(core.NewRecord(core.LevelInfo, "db", "x"))
	s.Insert(core.NewRecord(core.LevelInfo, "", "x"))

	snap := s.Snapshot()
	assert.Equal(t, []string{"db", "http::server", ""}, snap.Categories)
	assert.Equal(t, len("http::server"), snap.MaxTargetLen)

	stats := s.GetStats()
	assert.Equal(t, uint64(4), stats["total_inserted"])
	assert.Equal(t, uint64(2), stats["total_evicted"])
}
