// Package logstore defines the bounded, time-ordered log of admitted
// control events and its in-memory ring implementation.
package logstore

import (
	"context"

	"github.com/AGmitmanipal/AI-PET/internal/domain/geom"
	"github.com/AGmitmanipal/AI-PET/internal/domain/model"
)

// DefaultCapacity bounds the log to the most recent admissions.
const DefaultCapacity = 10

// Entry is one admitted control event.
// Using the model.LogEntry type for consistency across layers.
type Entry = model.LogEntry

// Store holds the most recent admitted entries, oldest first.
type Store interface {
	// Append admits a new entry for src, assigning the next monotonic
	// ID and a wall-clock timestamp, evicting the oldest entries once
	// capacity is exceeded. The created entry is returned.
	Append(ctx context.Context, src model.Source, vec geom.Vector2) Entry

	// Snapshot returns a copy of all current entries in admission
	// order, oldest first. The copy is safe to hold across later
	// appends.
	Snapshot(ctx context.Context) []Entry

	// Len returns the current number of entries.
	Len(ctx context.Context) int

	// Capacity returns the maximum number of retained entries.
	Capacity() int
}
