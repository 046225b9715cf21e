// Package config defines controller configuration structures and loading hooks.
//
// Conventions:
// - Keep fields koanf-tagged and provide New(...) with defaults.
// - All loading functions accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import "context"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// ThrottleWindowMS is the per-source leading-edge suppression
	// window for log admissions, in milliseconds.
	ThrottleWindowMS int `koanf:"throttle_window_ms"`

	// LogCapacity bounds the in-memory event log.
	LogCapacity int `koanf:"log_capacity"`

	// FeedBuffer bounds the pointer sample queue.
	FeedBuffer int `koanf:"feed_buffer"`

	// PadRadius is the joystick interaction radius used by the
	// terminal presentation, in character cells.
	PadRadius int `koanf:"pad_radius"`

	// ExportPath is where the log export artifact is written.
	ExportPath string `koanf:"export_path"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use
// and currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		ThrottleWindowMS: 250,
		LogCapacity:      10,
		FeedBuffer:       1024,
		PadRadius:        8,
		ExportPath:       "ai-pet-leash-logs.json",
	}
}
