package loop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTask(t *testing.T) {
	Convey("Given a task ticking every few milliseconds", t, func() {
		var calls atomic.Int32
		task := New(2*time.Millisecond, func(context.Context) {
			calls.Add(1)
		})

		Convey("It should not run before Start", func() {
			time.Sleep(10 * time.Millisecond)
			So(calls.Load(), ShouldEqual, 0)
			So(task.Running(), ShouldBeFalse)
		})

		Convey("When started", func() {
			task.Start()
			So(task.Running(), ShouldBeTrue)

			Convey("It should call the function repeatedly", func() {
				So(waitFor(func() bool { return calls.Load() >= 3 }), ShouldBeTrue)
			})

			Convey("And stopped, it should never call the function again", func() {
				So(waitFor(func() bool { return calls.Load() >= 1 }), ShouldBeTrue)
				task.Stop()
				task.Wait()
				So(task.Running(), ShouldBeFalse)

				seen := calls.Load()
				time.Sleep(15 * time.Millisecond)
				So(calls.Load(), ShouldEqual, seen)
			})
		})

		Convey("Stop on a stopped task should be harmless", func() {
			task.Stop()
			task.Stop()
			task.Wait()
			So(task.Running(), ShouldBeFalse)
		})
	})

	Convey("Given a task restarted while running", t, func() {
		runs := make(chan context.Context, 64)
		task := New(2*time.Millisecond, func(ctx context.Context) {
			select {
			case runs <- ctx:
			default:
			}
		})

		task.Start()
		first := <-runs
		task.Start()
		Reset(func() {
			task.Stop()
			task.Wait()
		})

		Convey("The first run should be cancelled", func() {
			So(waitFor(func() bool { return first.Err() != nil }), ShouldBeTrue)
		})

		Convey("Only the new run should keep ticking", func() {
			var current context.Context
			So(waitFor(func() bool {
				current = <-runs
				return current != first
			}), ShouldBeTrue)
			So(current.Err(), ShouldBeNil)
		})
	})
}

func TestStartEvery(t *testing.T) {
	Convey("Given a task created with a long interval", t, func() {
		var calls atomic.Int32
		task := New(time.Hour, func(context.Context) { calls.Add(1) })

		Reset(func() {
			task.Stop()
			task.Wait()
		})

		Convey("StartEvery with a non-positive interval should stop it without panicking", func() {
			task.Start()
			So(func() { task.StartEvery(0) }, ShouldNotPanic)
			So(task.Running(), ShouldBeFalse)

			time.Sleep(5 * time.Millisecond)
			So(calls.Load(), ShouldEqual, 0)
		})

		Convey("StartEvery should tick at the new interval", func() {
			task.StartEvery(time.Millisecond)
			So(waitFor(func() bool { return calls.Load() >= 2 }), ShouldBeTrue)
			So(task.Running(), ShouldBeTrue)
		})
	})
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}
