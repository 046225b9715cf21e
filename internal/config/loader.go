package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if LEASH_CONFIG is set
//  3. env (prefix LEASH_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("LEASH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: LEASH_LOG_LEVEL, LEASH_THROTTLE_WINDOW_MS, ...
	// Preserve underscores to match the koanf tags on the struct.
	envProvider := env.Provider("LEASH_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "leash_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.ThrottleWindowMS <= 0:
		return fmt.Errorf("%w: throttle_window_ms must be positive", ErrInvalidConfig)
	case c.LogCapacity <= 0:
		return fmt.Errorf("%w: log_capacity must be positive", ErrInvalidConfig)
	case c.FeedBuffer <= 0:
		return fmt.Errorf("%w: feed_buffer must be positive", ErrInvalidConfig)
	case c.PadRadius <= 0:
		return fmt.Errorf("%w: pad_radius must be positive", ErrInvalidConfig)
	case strings.TrimSpace(c.ExportPath) == "":
		return fmt.Errorf("%w: export_path must not be empty", ErrInvalidConfig)
	}
	return nil
}
