// Package session implements the per-joystick drag state machine.
package session

import "github.com/AGmitmanipal/AI-PET/internal/domain/geom"

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithMoveHandler sets the callback fired on every drag sample.
func WithMoveHandler(fn MoveFunc) Option {
	return func(s *Session) {
		s.onMove = fn
	}
}

// WithStopHandler sets the callback fired once per drag end.
func WithStopHandler(fn StopFunc) Option {
	return func(s *Session) {
		s.onStop = fn
	}
}

// WithGeometry sets the initial container measurement.
func WithGeometry(g geom.Geometry) Option {
	return func(s *Session) {
		s.geo = g
	}
}
