package simulate

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/AGmitmanipal/AI-PET/internal/adapters/feed"
	"github.com/AGmitmanipal/AI-PET/internal/app"
	"github.com/AGmitmanipal/AI-PET/internal/domain/geom"
	"github.com/AGmitmanipal/AI-PET/internal/domain/model"
	"github.com/AGmitmanipal/AI-PET/pkg/logger"
)

// Synthetic container layout: two pads side by side, sized like their
// on-screen counterparts (160px pad, 56px knob -> radius 52).
var containers = [model.SourceCount]geom.Geometry{
	{CenterX: 120, CenterY: 220, Radius: 52},
	{CenterX: 360, CenterY: 220, Radius: 52},
}

const drainTimeout = 2 * time.Second

// Run executes the full gesture simulation against a fresh controller.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get().Named("simulate")
	log.Info(ctx, "starting gesture simulation",
		logger.Int("gestures", cfg.Gestures),
		logger.String("interval", cfg.SampleInterval.String()),
		logger.String("hold", cfg.Hold.String()),
		logger.String("window", cfg.Window.String()),
	)

	svc := app.New(
		app.WithThrottleWindow(cfg.Window),
		app.WithLogCapacity(cfg.LogCapacity),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start controller: %w", err)
	}
	defer svc.Stop()

	for src := model.Source(0); src.Valid(); src++ {
		svc.SetGeometry(ctx, src, containers[src])
	}

	queue := feed.NewInMemoryQueue(feed.WithBuffer(cfg.FeedBuffer))
	pump := feed.NewPump(queue, svc)
	go pump.Run(ctx)

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducible gestures, not crypto
	gestures := generateGestures(rng, cfg.Gestures)

	sent := 0
	for i, g := range gestures {
		n, err := playGesture(ctx, queue, cfg, g)
		sent += n
		if err != nil {
			return err
		}
		log.Debug(ctx, "gesture complete",
			logger.Int("gesture", i+1),
			logger.String("source", g.Source.String()),
			logger.Float64("x", g.Target.X),
			logger.Float64("y", g.Target.Y),
		)
	}

	if err := drain(ctx, queue); err != nil {
		return err
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()
	if err := pump.Shutdown(shutdownCtx); err != nil {
		return err
	}

	entries := svc.Snapshot(ctx)
	log.Info(ctx, "simulation finished",
		logger.Int("samplesSent", sent),
		logger.Int("logEntries", len(entries)),
		logger.Any("stats", svc.GetStats(ctx)),
	)
	for _, e := range entries {
		log.Info(ctx, "log entry",
			logger.Uint64("id", e.ID),
			logger.String("ts", e.Timestamp),
			logger.String("source", e.Source.String()),
			logger.Float64("x", e.Vector.X),
			logger.Float64("y", e.Vector.Y),
		)
	}

	if cfg.ExportPath != "" {
		if err := svc.ExportToFile(ctx, cfg.ExportPath); err != nil {
			return err
		}
		log.Info(ctx, "log exported", logger.String("path", cfg.ExportPath))
	}
	return nil
}

// playGesture streams one gesture's samples through the feed in real
// time: down at center, ramp to the target, hold, release.
func playGesture(ctx context.Context, queue feed.Queue, cfg *Config, g Gesture) (int, error) {
	container := containers[g.Source]
	sent := 0

	push := func(kind model.SampleKind, x, y float64) error {
		if !queue.Enqueue(ctx, feed.Sample{Source: g.Source, Kind: kind, X: x, Y: y}) {
			if queue.IsClosed() {
				return fmt.Errorf("enqueue sample: %w", feed.ErrClosed)
			}
			// Buffer full: the sample is dropped, like a missed pointer
			// event. The gesture carries on.
			return nil
		}
		sent++
		return nil
	}

	if err := push(model.SampleDown, container.CenterX, container.CenterY); err != nil {
		return sent, err
	}

	rampSteps := int(cfg.Ramp / cfg.SampleInterval)
	if rampSteps < 1 {
		rampSteps = 1
	}
	for step := 1; step <= rampSteps; step++ {
		frac := float64(step) / float64(rampSteps)
		x, y := pointerAt(container, geom.Vector2{X: g.Target.X * frac, Y: g.Target.Y * frac})
		if err := sleepCtx(ctx, cfg.SampleInterval); err != nil {
			return sent, err
		}
		if err := push(model.SampleMove, x, y); err != nil {
			return sent, err
		}
	}

	holdSteps := int(cfg.Hold / cfg.SampleInterval)
	x, y := pointerAt(container, g.Target)
	for step := 0; step < holdSteps; step++ {
		if err := sleepCtx(ctx, cfg.SampleInterval); err != nil {
			return sent, err
		}
		if err := push(model.SampleMove, x, y); err != nil {
			return sent, err
		}
	}

	if err := push(model.SampleUp, x, y); err != nil {
		return sent, err
	}
	return sent, nil
}

// drain waits for the pump to work through everything we queued.
func drain(ctx context.Context, queue feed.Queue) error {
	deadline := time.Now().Add(drainTimeout)
	for queue.Len(ctx) > 0 {
		if time.Now().After(deadline) {
			return fmt.Errorf("feed did not drain within %s", drainTimeout)
		}
		if err := sleepCtx(ctx, 5*time.Millisecond); err != nil {
			return err
		}
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
