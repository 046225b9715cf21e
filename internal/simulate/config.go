// Package simulate drives the controller with synthetic drag gestures
// for demos and soak runs: ramp a pointer toward a target vector, hold
// it there, release, and watch the coalesced log come out the other
// side.
package simulate

import "time"

// Default simulation parameters.
const (
	defaultGestures       = 6
	defaultSampleInterval = 16 * time.Millisecond // ~60Hz pointer rate
	defaultRamp           = 200 * time.Millisecond
	defaultHold           = 500 * time.Millisecond
	defaultWindow         = 250 * time.Millisecond
	defaultLogCapacity    = 10
	defaultFeedBuffer     = 1024
)

// Config holds the simulation parameters.
type Config struct {
	// Gestures is the number of drag gestures to perform, alternating
	// between the two joysticks.
	Gestures int

	// SampleInterval is the synthetic pointer sample rate.
	SampleInterval time.Duration

	// Ramp is how long a gesture takes to reach its target vector.
	Ramp time.Duration

	// Hold is how long the pointer stays at the target before release.
	Hold time.Duration

	// Window is the controller's throttle window.
	Window time.Duration

	// LogCapacity bounds the controller's event log.
	LogCapacity int

	// FeedBuffer bounds the pointer sample queue.
	FeedBuffer int

	// Seed makes gesture targets reproducible.
	Seed int64

	// ExportPath, when set, receives the final log export.
	ExportPath string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Gestures:       defaultGestures,
		SampleInterval: defaultSampleInterval,
		Ramp:           defaultRamp,
		Hold:           defaultHold,
		Window:         defaultWindow,
		LogCapacity:    defaultLogCapacity,
		FeedBuffer:     defaultFeedBuffer,
		Seed:           1,
	}
}
