// Package feed carries raw pointer samples to the controller.
package feed

import "github.com/AGmitmanipal/AI-PET/pkg/logger"

// Option applies a configuration option to the InMemoryQueue.
type Option func(*InMemoryQueue)

// WithBuffer sets the sample buffer size.
func WithBuffer(size int) Option {
	return func(q *InMemoryQueue) {
		if size > 0 {
			q.buffer = size
		}
	}
}

// PumpOption applies a configuration option to the Pump.
type PumpOption func(*Pump)

// WithPumpLogger sets a custom logger for the pump.
func WithPumpLogger(l logger.Logger) PumpOption {
	return func(p *Pump) {
		if l != nil {
			p.logger = l
		}
	}
}
