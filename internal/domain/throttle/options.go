// Package throttle implements per-source leading-edge rate limiting.
package throttle

import "time"

// Option applies a configuration option to the Limiter.
type Option func(*leadingEdge)

// WithWindow sets the suppression window. Non-positive values keep the
// default.
func WithWindow(w time.Duration) Option {
	return func(l *leadingEdge) {
		if w > 0 {
			l.window = w
		}
	}
}

// WithClock injects the time source. Tests use a fake clock to step
// through windows deterministically.
func WithClock(now func() time.Time) Option {
	return func(l *leadingEdge) {
		if now != nil {
			l.now = now
		}
	}
}
