// Package session implements the per-joystick drag state machine.
//
// A session is either Idle or Dragging. Start computes the initial
// vector and emits a move notification, every move sample recomputes
// and emits again (rate limiting is the throttle's job, not the
// session's), and End snaps the vector to zero and emits a single stop
// notification. Move samples arriving while Idle are ignored, which
// defends against stray global listeners firing before a start.
package session

import (
	"math"

	"github.com/AGmitmanipal/AI-PET/internal/domain/geom"
	"github.com/AGmitmanipal/AI-PET/internal/domain/model"
)

// State of the drag machine.
type State int

const (
	// Idle is the initial and terminal state.
	Idle State = iota
	// Dragging is active while exactly one pointer drives the knob.
	Dragging
)

// MoveFunc receives every recomputed vector while a drag is active,
// unthrottled, so the live readout can track the knob synchronously.
type MoveFunc func(src model.Source, vec geom.Vector2)

// StopFunc is invoked once when a drag ends. prior is the vector the
// session held immediately before snapping to zero.
type StopFunc func(src model.Source, prior geom.Vector2)

// Session tracks one joystick's drag state and last-known vector. Each
// joystick supports exactly one concurrent interaction; there is no
// multi-touch. Sessions are not goroutine safe — the Controller
// serializes all access.
type Session struct {
	source model.Source
	geo    geom.Geometry
	state  State
	vector geom.Vector2
	onMove MoveFunc
	onStop StopFunc
}

// New creates a Session for src with configuration options.
func New(src model.Source, opts ...Option) *Session {
	s := &Session{source: src}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Source returns the joystick this session drives.
func (s *Session) Source() model.Source {
	return s.source
}

// State returns the current drag state.
func (s *Session) State() State {
	return s.state
}

// Active reports whether a drag is in progress.
func (s *Session) Active() bool {
	return s.state == Dragging
}

// Vector returns the last-known control vector.
func (s *Session) Vector() geom.Vector2 {
	return s.vector
}

// SetGeometry records the container measurement supplied by the
// presentation layer. Until this is called with a valid geometry,
// Start and Move are no-ops.
func (s *Session) SetGeometry(g geom.Geometry) {
	s.geo = g
}

// Geometry returns the current container measurement.
func (s *Session) Geometry() geom.Geometry {
	return s.geo
}

// Start begins a drag at the absolute pointer position (x, y) and
// emits the initial move notification. Returns false without any state
// change when the container has not been measured yet or the
// coordinates are malformed. A Start while already Dragging is treated
// as a fresh sample for the same interaction.
func (s *Session) Start(x, y float64) bool {
	if !s.geo.Valid() || !finite(x, y) {
		return false
	}
	s.state = Dragging
	s.sample(x, y)
	return true
}

// Move updates an active drag with a new pointer position and emits a
// move notification. Ignored while Idle or on malformed coordinates.
func (s *Session) Move(x, y float64) bool {
	if s.state != Dragging {
		return false
	}
	if !s.geo.Valid() || !finite(x, y) {
		return false
	}
	s.sample(x, y)
	return true
}

// End terminates a drag: the vector is forced to zero, a single stop
// notification fires with the prior vector, and the session returns to
// Idle. Ignored while Idle.
func (s *Session) End() bool {
	if s.state != Dragging {
		return false
	}
	prior := s.vector
	s.vector = geom.Zero
	s.state = Idle
	if s.onStop != nil {
		s.onStop(s.source, prior)
	}
	return true
}

func (s *Session) sample(x, y float64) {
	s.vector = s.geo.Map(x, y)
	if s.onMove != nil {
		s.onMove(s.source, s.vector)
	}
}

func finite(x, y float64) bool {
	// NaN is the only malformed coordinate an input layer can hand us;
	// infinities clamp like any far-away point.
	return !math.IsNaN(x) && !math.IsNaN(y)
}
