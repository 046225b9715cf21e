// Package logstore defines the bounded control-event log.
package logstore

import "time"

// Option applies a configuration option to the RingStore.
type Option func(*RingStore)

// WithCapacity sets the maximum number of retained entries.
func WithCapacity(capacity int) Option {
	return func(s *RingStore) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// WithClock injects the time source used for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *RingStore) {
		if now != nil {
			s.now = now
		}
	}
}
