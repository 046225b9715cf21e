// Package feed carries raw pointer samples from an input surface to
// the controller.
//
// The queue is a bounded in-memory buffer and the pump is its single
// consumer, so samples are delivered in arrival order — the ordering
// guarantee the drag state machines depend on.
package feed

import (
	"context"
	"sync"

	"github.com/AGmitmanipal/AI-PET/internal/domain/model"
	"github.com/AGmitmanipal/AI-PET/pkg/metrics"
)

// Default queue configuration.
const defaultBufferSize = 1024

// Sample is the payload type flowing through the feed.
// Using the model.PointerSample type for type safety.
type Sample = model.PointerSample

// Queue provides non-blocking enqueue and channel-based dequeue
// semantics for pointer samples.
type Queue interface {
	// Enqueue adds a sample. Returns false if the queue is full or
	// closed; the sample is dropped, never queued late.
	Enqueue(ctx context.Context, s Sample) bool

	// Dequeue returns a channel receiving samples in arrival order.
	// The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Sample

	// Len returns the current number of buffered samples.
	Len(ctx context.Context) int

	// Close shuts the queue down. After closing, no new samples are
	// accepted and the dequeue channel drains then closes.
	Close() error

	// IsClosed reports whether the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	samples chan Sample
	buffer  int
	mu      sync.RWMutex
	closed  bool
}

// NewInMemoryQueue creates a queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		buffer: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.samples = make(chan Sample, q.buffer)
	metrics.UpdateFeedDepth(0)
	return q
}

// Enqueue adds a sample to the feed.
func (q *InMemoryQueue) Enqueue(ctx context.Context, s Sample) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordFeedDrop()
		return false
	}

	select {
	case q.samples <- s:
		metrics.UpdateFeedDepth(len(q.samples))
		return true
	case <-ctx.Done():
		metrics.RecordFeedDrop()
		return false
	default:
		metrics.RecordFeedDrop()
		return false // buffer full
	}
}

// Dequeue returns the sample channel.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Sample {
	return q.samples
}

// Len returns the current number of buffered samples.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.samples)
}

// Close shuts the queue down.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.samples)
	q.closed = true
	return nil
}

// IsClosed reports whether the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
