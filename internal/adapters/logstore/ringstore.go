package logstore

import (
	"context"
	"sync"
	"time"

	"github.com/AGmitmanipal/AI-PET/internal/domain/geom"
	"github.com/AGmitmanipal/AI-PET/internal/domain/model"
	"github.com/AGmitmanipal/AI-PET/pkg/metrics"
)

// RingStore implements Store with a capacity-bounded slice. IDs come
// from a monotonic counter owned by the store, never from the clock,
// so rapid successive admissions cannot collide.
type RingStore struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	nextID   uint64
	now      func() time.Time
}

// NewRingStore creates a RingStore with configuration options.
func NewRingStore(opts ...Option) *RingStore {
	s := &RingStore{
		capacity: DefaultCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.entries = make([]Entry, 0, s.capacity)
	return s
}

// Append admits a new entry and evicts from the front beyond capacity.
func (s *RingStore) Append(_ context.Context, src model.Source, vec geom.Vector2) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	e := Entry{
		ID:        s.nextID,
		Timestamp: s.now().Format(time.RFC3339Nano),
		Source:    src,
		Vector:    vec,
	}
	s.entries = append(s.entries, e)
	for len(s.entries) > s.capacity {
		s.entries = s.entries[1:]
		metrics.RecordLogEviction()
	}
	metrics.UpdateLogSize(len(s.entries))
	return e
}

// Snapshot returns the ordered entries, oldest first.
func (s *RingStore) Snapshot(_ context.Context) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the current number of entries.
func (s *RingStore) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Capacity returns the maximum number of retained entries.
func (s *RingStore) Capacity() int {
	return s.capacity
}
