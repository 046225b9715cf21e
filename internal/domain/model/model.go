// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"

	"github.com/AGmitmanipal/AI-PET/internal/domain/geom"
)

// Source identifies which joystick produced an event.
type Source int

// The two joysticks. Cardinality is fixed: every per-source piece of
// state (drag state, throttle window) is sized by SourceCount.
const (
	Left Source = iota
	Right

	SourceCount = 2
)

// Valid reports whether s names one of the two joysticks.
func (s Source) Valid() bool {
	return s >= Left && s < SourceCount
}

func (s Source) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// ParseSource converts a source name back to a Source.
func ParseSource(name string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return 0, fmt.Errorf("unknown source %q", name)
	}
}

// SampleKind distinguishes the phases of a pointer or touch interaction.
type SampleKind int

const (
	// SampleDown begins a drag (pointer-down / touch-start).
	SampleDown SampleKind = iota
	// SampleMove updates an active drag (pointer-move / touch-move).
	SampleMove
	// SampleUp ends a drag (pointer-up / touch-end). Coordinates are
	// ignored; the vector snaps to zero.
	SampleUp
)

func (k SampleKind) String() string {
	switch k {
	case SampleDown:
		return "down"
	case SampleMove:
		return "move"
	case SampleUp:
		return "up"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// PointerSample is one raw input event as delivered by the presentation
// layer: absolute screen coordinates (clientX, clientY) plus the
// joystick they are aimed at.
type PointerSample struct {
	Source Source
	Kind   SampleKind
	X      float64
	Y      float64
}

// LogEntry is one admitted control event. Entries are created immutably
// at admission time and never mutated. IDs are assigned from a
// monotonic counter owned by the log store.
type LogEntry struct {
	ID        uint64
	Timestamp string
	Source    Source
	Vector    geom.Vector2
}
