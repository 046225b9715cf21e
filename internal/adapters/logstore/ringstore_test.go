package logstore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/AGmitmanipal/AI-PET/internal/adapters/logstore"
	"github.com/AGmitmanipal/AI-PET/internal/domain/geom"
	"github.com/AGmitmanipal/AI-PET/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRingStore(t *testing.T) {
	Convey("Given a new ring store", t, func() {
		ctx := context.Background()

		Convey("When created with default options", func() {
			s := logstore.NewRingStore()

			Convey("Then it is empty with the default capacity", func() {
				So(s.Len(ctx), ShouldEqual, 0)
				So(s.Capacity(), ShouldEqual, logstore.DefaultCapacity)
				So(s.Snapshot(ctx), ShouldBeEmpty)
			})
		})

		Convey("When entries are appended", func() {
			s := logstore.NewRingStore()
			first := s.Append(ctx, model.Left, geom.Vector2{X: 0.5, Y: 0.5})
			second := s.Append(ctx, model.Right, geom.Vector2{X: -1, Y: 0})

			Convey("Then IDs are monotonic and order is oldest-first", func() {
				So(first.ID, ShouldEqual, 1)
				So(second.ID, ShouldEqual, 2)

				snap := s.Snapshot(ctx)
				So(len(snap), ShouldEqual, 2)
				So(snap[0], ShouldResemble, first)
				So(snap[1], ShouldResemble, second)
			})

			Convey("And snapshots are isolated from later appends", func() {
				snap := s.Snapshot(ctx)
				s.Append(ctx, model.Left, geom.Zero)
				So(len(snap), ShouldEqual, 2)
				So(s.Len(ctx), ShouldEqual, 3)
			})
		})

		Convey("When more than capacity entries are appended", func() {
			s := logstore.NewRingStore(logstore.WithCapacity(10))
			for i := 0; i < 25; i++ {
				s.Append(ctx, model.Source(i%model.SourceCount), geom.Vector2{X: float64(i) / 25})
			}

			Convey("Then only the 10 most recent remain, oldest first", func() {
				snap := s.Snapshot(ctx)
				So(len(snap), ShouldEqual, 10)
				So(snap[0].ID, ShouldEqual, 16)
				So(snap[9].ID, ShouldEqual, 25)
				for i := 1; i < len(snap); i++ {
					So(snap[i].ID, ShouldBeGreaterThan, snap[i-1].ID)
				}
			})
		})

		Convey("When a fixed clock is injected", func() {
			at := time.Date(2025, 3, 14, 9, 26, 53, 589793238, time.UTC)
			s := logstore.NewRingStore(logstore.WithClock(func() time.Time { return at }))
			e := s.Append(ctx, model.Left, geom.Zero)

			Convey("Then the timestamp is the wall-clock string at admission", func() {
				So(e.Timestamp, ShouldEqual, at.Format(time.RFC3339Nano))
			})
		})

		Convey("When IDs are compared under rapid succession", func() {
			s := logstore.NewRingStore(logstore.WithCapacity(100), logstore.WithClock(func() time.Time {
				return time.Unix(0, 0) // identical wall clock for every entry
			}))
			seen := map[uint64]bool{}
			for i := 0; i < 100; i++ {
				e := s.Append(ctx, model.Left, geom.Zero)
				So(seen[e.ID], ShouldBeFalse)
				seen[e.ID] = true
			}

			Convey("Then no two entries ever collide", func() {
				So(len(seen), ShouldEqual, 100)
			})
		})
	})
}

func ExampleRingStore_Snapshot() {
	s := logstore.NewRingStore(logstore.WithCapacity(2))
	ctx := context.Background()
	s.Append(ctx, model.Left, geom.Vector2{X: 1})
	s.Append(ctx, model.Right, geom.Vector2{Y: 1})
	s.Append(ctx, model.Left, geom.Zero)
	for _, e := range s.Snapshot(ctx) {
		fmt.Println(e.ID, e.Source)
	}
	// Output:
	// 2 right
	// 3 left
}
