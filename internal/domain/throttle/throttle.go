// Package throttle implements per-source leading-edge rate limiting.
package throttle

import (
	"context"
	"sync"
	"time"

	"github.com/AGmitmanipal/AI-PET/internal/domain/model"
)

// DefaultWindow is the suppression window opened by an admitted event.
const DefaultWindow = 250 * time.Millisecond

// Limiter coalesces a burst of move events into at most one admission
// per window and source. It is leading-edge: the first event of a burst
// is admitted and opens the window, every later event inside the window
// is dropped (not queued, never delivered late).
type Limiter interface {
	// Admit reports whether an event for src may be logged now. An
	// admission re-arms the suppression window for that source.
	Admit(ctx context.Context, src model.Source) bool

	// Cancel closes any open window for src so the next burst is
	// admitted without residual delay. Stop events call this before
	// logging their terminal zero vector.
	Cancel(ctx context.Context, src model.Source)

	// Window returns the configured suppression window.
	Window() time.Duration
}

// leadingEdge implements Limiter with one explicit deadline per source.
// There is no timer goroutine: a window is "open" while the clock is
// before its deadline, which keeps behavior deterministic under an
// injected clock.
type leadingEdge struct {
	mu       sync.Mutex
	window   time.Duration
	now      func() time.Time
	deadline [model.SourceCount]time.Time
}

// NewLeadingEdge creates a Limiter with configuration options.
func NewLeadingEdge(opts ...Option) Limiter {
	l := &leadingEdge{
		window: DefaultWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *leadingEdge) Admit(_ context.Context, src model.Source) bool {
	if !src.Valid() {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Before(l.deadline[src]) {
		return false // window still open, suppress
	}
	l.deadline[src] = now.Add(l.window)
	return true
}

func (l *leadingEdge) Cancel(_ context.Context, src model.Source) {
	if !src.Valid() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.deadline[src] = time.Time{}
}

func (l *leadingEdge) Window() time.Duration {
	return l.window
}
