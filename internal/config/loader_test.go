package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AGmitmanipal/AI-PET/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		ctx := context.Background()
		// Convey re-runs this block for every leaf; scrub anything a
		// previous leaf set. t.Setenv registers restoration for the
		// process environment at test end.
		for _, key := range []string{
			"LEASH_CONFIG", "LEASH_LOG_LEVEL", "LEASH_THROTTLE_WINDOW_MS", "LEASH_LOG_CAPACITY",
		} {
			t.Setenv(key, "")
			So(os.Unsetenv(key), ShouldBeNil)
		}

		Convey("When loading with no overrides", func() {
			cfg, err := config.Load(ctx)

			Convey("Then the defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.ThrottleWindowMS, ShouldEqual, 250)
				So(cfg.LogCapacity, ShouldEqual, 10)
				So(cfg.FeedBuffer, ShouldEqual, 1024)
				So(cfg.PadRadius, ShouldEqual, 8)
				So(cfg.ExportPath, ShouldEqual, "ai-pet-leash-logs.json")
			})
		})

		Convey("When environment variables override defaults", func() {
			t.Setenv("LEASH_LOG_LEVEL", "debug")
			t.Setenv("LEASH_THROTTLE_WINDOW_MS", "100")
			t.Setenv("LEASH_LOG_CAPACITY", "25")

			cfg, err := config.Load(ctx)

			Convey("Then the env values win", func() {
				So(err, ShouldBeNil)
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.ThrottleWindowMS, ShouldEqual, 100)
				So(cfg.LogCapacity, ShouldEqual, 25)
				// Untouched fields keep their defaults.
				So(cfg.FeedBuffer, ShouldEqual, 1024)
			})
		})

		Convey("When a YAML file is layered in", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "leash.yaml")
			So(os.WriteFile(path, []byte("log_capacity: 5\npad_radius: 12\n"), 0o600), ShouldBeNil)
			t.Setenv("LEASH_CONFIG", path)

			Convey("Then file values apply", func() {
				cfg, err := config.Load(ctx)
				So(err, ShouldBeNil)
				So(cfg.LogCapacity, ShouldEqual, 5)
				So(cfg.PadRadius, ShouldEqual, 12)
			})

			Convey("And env still beats the file", func() {
				t.Setenv("LEASH_LOG_CAPACITY", "7")
				cfg, err := config.Load(ctx)
				So(err, ShouldBeNil)
				So(cfg.LogCapacity, ShouldEqual, 7)
			})
		})

		Convey("When the file path does not exist", func() {
			t.Setenv("LEASH_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			_, err := config.Load(ctx)

			Convey("Then loading fails with the load sentinel", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})

		Convey("When a value is invalid", func() {
			t.Setenv("LEASH_THROTTLE_WINDOW_MS", "0")
			_, err := config.Load(ctx)

			Convey("Then validation fails with the invalid sentinel", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}
