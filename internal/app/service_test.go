package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/AGmitmanipal/AI-PET/internal/adapters/feed"
	"github.com/AGmitmanipal/AI-PET/internal/app"
	"github.com/AGmitmanipal/AI-PET/internal/domain/geom"
	"github.com/AGmitmanipal/AI-PET/internal/domain/model"
	"github.com/AGmitmanipal/AI-PET/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

// fakeClock steps time manually so throttle windows are exact.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// Containers sized like their on-screen counterparts: radius 52.
var (
	leftPad  = geom.Geometry{CenterX: 120, CenterY: 220, Radius: 52}
	rightPad = geom.Geometry{CenterX: 360, CenterY: 220, Radius: 52}
)

func startService(clock *fakeClock) *app.Service {
	svc := app.New(
		app.WithThrottleWindow(250*time.Millisecond),
		app.WithClock(clock.Now),
	)
	So(svc.Start(context.Background()), ShouldBeNil)
	svc.SetGeometry(context.Background(), model.Left, leftPad)
	svc.SetGeometry(context.Background(), model.Right, rightPad)
	return svc
}

func down(svc *app.Service, src model.Source, x, y float64) bool {
	return svc.Handle(context.Background(), feed.Sample{Source: src, Kind: model.SampleDown, X: x, Y: y})
}

func move(svc *app.Service, src model.Source, x, y float64) bool {
	return svc.Handle(context.Background(), feed.Sample{Source: src, Kind: model.SampleMove, X: x, Y: y})
}

func up(svc *app.Service, src model.Source) bool {
	return svc.Handle(context.Background(), feed.Sample{Source: src, Kind: model.SampleUp})
}

func TestService(t *testing.T) {
	Convey("Given a started controller", t, func() {
		ctx := context.Background()
		clock := newFakeClock()
		svc := startService(clock)
		defer svc.Stop()

		Convey("When a burst of moves lands inside one window", func() {
			down(svc, model.Left, 146, 194)
			for i := 0; i < 10; i++ {
				clock.Advance(16 * time.Millisecond)
				move(svc, model.Left, 146, 194)
			}

			Convey("Then exactly one entry is logged for the burst", func() {
				So(len(svc.Snapshot(ctx)), ShouldEqual, 1)
			})

			Convey("And the live vector tracked every sample regardless", func() {
				v := svc.Vector(ctx, model.Left)
				So(v.X, ShouldAlmostEqual, 0.5)
				So(v.Y, ShouldAlmostEqual, 0.5)
			})
		})

		Convey("When the left pad is held at (0.5, 0.5) for 500ms then released", func() {
			// Offset (26, -26) on a radius-52 pad normalizes to (0.5, 0.5).
			// Samples run at ~60Hz: the down at t=0 plus moves through
			// t=480ms span two 250ms windows.
			down(svc, model.Left, 146, 194)
			for i := 0; i < 30; i++ {
				clock.Advance(16 * time.Millisecond)
				move(svc, model.Left, 146, 194)
			}
			up(svc, model.Left)

			Convey("Then the log holds two held entries plus the terminal zero", func() {
				snap := svc.Snapshot(ctx)
				So(len(snap), ShouldEqual, 3)
				for _, e := range snap[:2] {
					So(e.Source, ShouldEqual, model.Left)
					So(e.Vector.X, ShouldAlmostEqual, 0.5)
					So(e.Vector.Y, ShouldAlmostEqual, 0.5)
				}
				So(snap[2].Vector, ShouldResemble, geom.Zero)
				So(snap[2].Source, ShouldEqual, model.Left)
			})

			Convey("And the live vector snapped back to zero", func() {
				So(svc.Vector(ctx, model.Left), ShouldResemble, geom.Zero)
				So(svc.Active(ctx, model.Left), ShouldBeFalse)
			})
		})

		Convey("When a drag ends while the throttle window is still open", func() {
			down(svc, model.Left, 172, 220) // (1, 0), admitted, window opens
			clock.Advance(10 * time.Millisecond)
			up(svc, model.Left)

			Convey("Then the terminal zero entry bypasses the window", func() {
				snap := svc.Snapshot(ctx)
				So(len(snap), ShouldEqual, 2)
				So(snap[1].Vector, ShouldResemble, geom.Zero)
			})

			Convey("And the next burst is admitted without residual delay", func() {
				down(svc, model.Left, 172, 220)
				So(len(svc.Snapshot(ctx)), ShouldEqual, 3)
			})
		})

		Convey("When a drag never leaves the center", func() {
			down(svc, model.Left, 120, 220) // maps to (0,0), admitted
			clock.Advance(10 * time.Millisecond)
			up(svc, model.Left)

			Convey("Then no extra terminal zero entry is logged", func() {
				snap := svc.Snapshot(ctx)
				So(len(snap), ShouldEqual, 1)
				So(snap[0].Vector, ShouldResemble, geom.Zero)
			})
		})

		Convey("When both joysticks are dragged simultaneously", func() {
			down(svc, model.Left, 146, 194)
			down(svc, model.Right, 360, 168) // straight up -> (0, 1)
			for i := 0; i < 5; i++ {
				clock.Advance(16 * time.Millisecond)
				move(svc, model.Left, 146, 194)
				move(svc, model.Right, 360, 168)
			}

			Convey("Then throttling and logging stay independent per source", func() {
				snap := svc.Snapshot(ctx)
				So(len(snap), ShouldEqual, 2)
				So(snap[0].Source, ShouldEqual, model.Left)
				So(snap[1].Source, ShouldEqual, model.Right)
				So(svc.Vector(ctx, model.Right).Y, ShouldAlmostEqual, 1.0)
			})
		})

		Convey("When the log overflows its capacity", func() {
			for i := 0; i < 15; i++ {
				down(svc, model.Left, 172, 220)
				clock.Advance(time.Millisecond)
				up(svc, model.Left) // two entries per cycle, window cancelled
				clock.Advance(time.Millisecond)
			}

			Convey("Then only the 10 most recent entries remain, ordered", func() {
				snap := svc.Snapshot(ctx)
				So(len(snap), ShouldEqual, 10)
				for i := 1; i < len(snap); i++ {
					So(snap[i].ID, ShouldBeGreaterThan, snap[i-1].ID)
				}
				So(snap[9].ID, ShouldEqual, 30)
			})
		})

		Convey("When malformed samples arrive", func() {
			okNaN := down(svc, model.Left, math.NaN(), 100)
			okSrc := svc.Handle(ctx, feed.Sample{Source: model.Source(9), Kind: model.SampleDown, X: 1, Y: 1})
			okStray := move(svc, model.Right, 360, 220)

			Convey("Then they are no-ops with no log entries", func() {
				So(okNaN, ShouldBeFalse)
				So(okSrc, ShouldBeFalse)
				So(okStray, ShouldBeFalse)
				So(svc.Snapshot(ctx), ShouldBeEmpty)
				So(svc.Vector(ctx, model.Left), ShouldResemble, geom.Zero)
			})
		})

		Convey("When stats are requested", func() {
			down(svc, model.Left, 146, 194)
			stats := svc.GetStats(ctx)

			Convey("Then they describe the running controller", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["activeDrags"], ShouldEqual, 1)
				So(stats["logLength"], ShouldEqual, 1)
				So(stats["run_id"], ShouldNotBeEmpty)
			})
		})
	})

	Convey("Given a controller that was never started", t, func() {
		svc := app.New()

		Convey("Then samples are rejected and reads are zero-valued", func() {
			So(svc.Handle(context.Background(), feed.Sample{Source: model.Left, Kind: model.SampleDown}), ShouldBeFalse)
			So(svc.Vector(context.Background(), model.Left), ShouldResemble, geom.Zero)
			So(svc.Snapshot(context.Background()), ShouldBeNil)
		})
	})
}

func TestServiceExport(t *testing.T) {
	Convey("Given a controller with logged entries", t, func() {
		ctx := context.Background()
		clock := newFakeClock()
		svc := startService(clock)
		defer svc.Stop()

		down(svc, model.Left, 146, 194)
		clock.Advance(300 * time.Millisecond)
		move(svc, model.Left, 172, 220)
		clock.Advance(10 * time.Millisecond)
		up(svc, model.Left)

		Convey("When the log is exported", func() {
			var buf bytes.Buffer
			err := svc.Export(ctx, &buf)

			Convey("Then the document is a JSON array matching the stored values", func() {
				So(err, ShouldBeNil)

				var out []struct {
					ID        uint64  `json:"id"`
					Timestamp string  `json:"timestamp"`
					Source    string  `json:"source"`
					X         float64 `json:"x"`
					Y         float64 `json:"y"`
				}
				So(json.Unmarshal(buf.Bytes(), &out), ShouldBeNil)
				So(len(out), ShouldEqual, 3)

				snap := svc.Snapshot(ctx)
				for i, e := range snap {
					So(out[i].ID, ShouldEqual, e.ID)
					So(out[i].Timestamp, ShouldEqual, e.Timestamp)
					So(out[i].Source, ShouldEqual, e.Source.String())
					So(out[i].X, ShouldAlmostEqual, e.Vector.X)
					So(out[i].Y, ShouldAlmostEqual, e.Vector.Y)
				}
			})
		})

		Convey("When asked for the artifact name", func() {
			So(svc.ExportName(), ShouldEqual, "ai-pet-leash-logs.json")
		})
	})

	Convey("Given a controller with an empty log", t, func() {
		svc := startService(newFakeClock())
		defer svc.Stop()

		Convey("When an export is attempted", func() {
			var buf bytes.Buffer
			err := svc.Export(context.Background(), &buf)

			Convey("Then it reports the empty log and writes nothing", func() {
				So(err, ShouldNotBeNil)
				So(buf.Len(), ShouldEqual, 0)
			})
		})
	})
}
