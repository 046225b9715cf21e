package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/AGmitmanipal/AI-PET/pkg/logger"
	"github.com/AGmitmanipal/AI-PET/pkg/metrics"
)

// Handler consumes samples delivered by the pump. The controller
// implements this.
type Handler interface {
	Handle(ctx context.Context, s Sample) bool
}

// Pump is the feed's single consumer: it drains the queue and hands
// each sample to the handler, preserving arrival order. Exactly one
// pump runs per queue.
type Pump struct {
	queue    Queue
	handler  Handler
	shutdown chan struct{}
	done     chan struct{}
	logger   logger.Logger
}

// NewPump creates a pump for the given queue and handler.
func NewPump(queue Queue, handler Handler, opts ...PumpOption) *Pump {
	p := &Pump{
		queue:    queue,
		handler:  handler,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("feed")
	}
	return p
}

// Run drains the queue until ctx is canceled, Shutdown is called, or
// the queue closes.
func (p *Pump) Run(ctx context.Context) {
	defer close(p.done)

	samples := p.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case s, ok := <-samples:
			if !ok {
				return
			}
			start := time.Now()
			handled := p.handler.Handle(ctx, s)
			metrics.RecordPumpLatency(float64(time.Since(start).Microseconds()) / 1e3)
			metrics.UpdateFeedDepth(p.queue.Len(ctx))
			if !handled {
				p.logger.Debug(ctx, "sample ignored",
					logger.String("source", s.Source.String()),
					logger.String("kind", s.Kind.String()),
				)
			}
		}
	}
}

// Shutdown stops the pump and waits for the loop to exit or ctx to
// time out.
func (p *Pump) Shutdown(ctx context.Context) error {
	close(p.shutdown)
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("pump shutdown timed out: %w", ctx.Err())
	}
}
