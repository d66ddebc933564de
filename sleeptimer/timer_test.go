package sleeptimer

import (
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// newManual returns a timer whose loop never fires on its own, so tests drive it with Tick.
func newManual(onExpire func()) *Timer {
	return New(Options{OnExpire: onExpire, Interval: time.Hour})
}

func tickN(t *Timer, n int) {
	for i := 0; i < n; i++ {
		t.Tick()
	}
}

func TestCountdown(t *testing.T) {
	Convey("Given an idle timer", t, func() {
		var expirations atomic.Int32
		timer := newManual(func() { expirations.Add(1) })
		Reset(timer.Close)

		So(timer.State().Phase(), ShouldEqual, Idle)

		for _, minutes := range []int{1, 2, 5} {
			Convey("When started for "+time.Duration(minutes*int(time.Minute)).String(), func() {
				timer.Start(minutes)
				So(timer.State(), ShouldResemble, State{Active: true, Remaining: minutes * 60, SelectedMinutes: minutes})

				Convey("Ticking through the whole duration should expire exactly once", func() {
					tickN(timer, minutes*60-1)
					So(timer.State().Phase(), ShouldEqual, Running)
					So(timer.State().Remaining, ShouldEqual, 1)
					So(expirations.Load(), ShouldEqual, 0)

					timer.Tick()
					So(timer.State().Phase(), ShouldEqual, Idle)
					So(timer.State().Remaining, ShouldEqual, 0)
					So(expirations.Load(), ShouldEqual, 1)

					tickN(timer, 10)
					So(expirations.Load(), ShouldEqual, 1)
					So(timer.ticks.Running(), ShouldBeFalse)
				})
			})
		}

		Convey("Ticking while idle should change nothing", func() {
			tickN(timer, 5)
			So(timer.State(), ShouldResemble, State{})
		})

		Convey("Starting with a non-positive duration should be ignored", func() {
			timer.Start(0)
			timer.Start(-5)
			So(timer.State().Phase(), ShouldEqual, Idle)
		})
	})
}

func TestPauseResume(t *testing.T) {
	Convey("Given a running timer with 42 seconds left", t, func() {
		timer := newManual(nil)
		Reset(timer.Close)

		timer.Start(1)
		tickN(timer, 18)
		So(timer.State().Remaining, ShouldEqual, 42)

		Convey("Pause should freeze the countdown and stop the loop", func() {
			timer.Pause()
			So(timer.State().Phase(), ShouldEqual, Paused)
			So(timer.ticks.Running(), ShouldBeFalse)

			tickN(timer, 5)
			So(timer.State().Remaining, ShouldEqual, 42)

			Convey("Resume should continue from exactly 42", func() {
				time.Sleep(5 * time.Millisecond)
				timer.Resume()
				So(timer.State().Phase(), ShouldEqual, Running)
				So(timer.State().Remaining, ShouldEqual, 42)
				So(timer.ticks.Running(), ShouldBeTrue)

				timer.Tick()
				So(timer.State().Remaining, ShouldEqual, 41)
			})

			Convey("Pausing again should be a no-op", func() {
				before := timer.State()
				timer.Pause()
				So(timer.State(), ShouldResemble, before)
			})
		})

		Convey("Resume while running should be a no-op", func() {
			timer.Resume()
			So(timer.State(), ShouldResemble, State{Active: true, Remaining: 42, SelectedMinutes: 1})
		})

		Convey("Start while running should restart with the new duration", func() {
			timer.Start(5)
			So(timer.State(), ShouldResemble, State{Active: true, Remaining: 300, SelectedMinutes: 5})
		})
	})

	Convey("Given an idle timer", t, func() {
		timer := newManual(nil)
		Reset(timer.Close)

		Convey("Pause, Resume and Stop should all leave it untouched", func() {
			timer.Pause()
			timer.Resume()
			timer.Stop()
			So(timer.State(), ShouldResemble, State{})
		})
	})
}

func TestStop(t *testing.T) {
	Convey("Given a paused timer", t, func() {
		timer := newManual(nil)
		Reset(timer.Close)
		timer.Start(10)
		tickN(timer, 3)
		timer.Pause()

		Convey("Stop should zero it out", func() {
			timer.Stop()
			So(timer.State(), ShouldResemble, State{})
			So(timer.ticks.Running(), ShouldBeFalse)
		})
	})
}

func TestPlayingSignal(t *testing.T) {
	Convey("Given a running timer while audio plays", t, func() {
		timer := newManual(nil)
		Reset(timer.Close)

		timer.SetPlaying(true)
		timer.Start(15)
		tickN(timer, 100)
		before := timer.State()

		Convey("When playback stops, the timer should pause without losing time", func() {
			timer.SetPlaying(false)
			after := timer.State()
			So(after.Phase(), ShouldEqual, Paused)
			So(after.Remaining, ShouldEqual, before.Remaining)
			So(after.SelectedMinutes, ShouldEqual, before.SelectedMinutes)
		})

		Convey("When playback keeps going, nothing should change", func() {
			timer.SetPlaying(true)
			So(timer.State(), ShouldResemble, before)
		})

		Convey("When the timer is already paused, a stop in playback should change nothing", func() {
			timer.Pause()
			paused := timer.State()
			timer.SetPlaying(false)
			So(timer.State(), ShouldResemble, paused)
		})
	})

	Convey("Given playback that was reported stopped", t, func() {
		var expirations atomic.Int32
		timer := newManual(func() { expirations.Add(1) })
		Reset(timer.Close)

		timer.SetPlaying(true)
		timer.SetPlaying(false)

		Convey("A new countdown starts paused and never burns down", func() {
			timer.Start(1)
			So(timer.State(), ShouldResemble, State{Active: true, Paused: true, Remaining: 60, SelectedMinutes: 1})
			So(timer.ticks.Running(), ShouldBeFalse)

			tickN(timer, 60)
			So(timer.State().Remaining, ShouldEqual, 60)
			So(expirations.Load(), ShouldEqual, 0)

			Convey("Resume keeps it paused until playback runs again", func() {
				timer.Resume()
				So(timer.State().Phase(), ShouldEqual, Paused)

				timer.SetPlaying(true)
				So(timer.State().Phase(), ShouldEqual, Paused)

				timer.Resume()
				So(timer.State().Phase(), ShouldEqual, Running)
				So(timer.State().Remaining, ShouldEqual, 60)
			})
		})

		Convey("A repeated not-playing signal pauses a countdown that was resumed", func() {
			timer.SetPlaying(true)
			timer.Start(5)
			So(timer.State().Phase(), ShouldEqual, Running)

			timer.SetPlaying(false)
			timer.SetPlaying(false)
			So(timer.State().Phase(), ShouldEqual, Paused)
			So(timer.State().Remaining, ShouldEqual, 300)
		})
	})

	Convey("Given a timer that never heard from playback", t, func() {
		timer := newManual(nil)
		Reset(timer.Close)

		Convey("It counts down on its own", func() {
			timer.Start(1)
			tickN(timer, 59)
			So(timer.State().Phase(), ShouldEqual, Running)
			So(timer.State().Remaining, ShouldEqual, 1)
		})
	})
}

func TestSubscribe(t *testing.T) {
	Convey("Given a subscribed listener", t, func() {
		timer := newManual(nil)
		Reset(timer.Close)

		var seen []State
		unsubscribe := timer.Subscribe(func(s State) { seen = append(seen, s) })

		Convey("It should receive every change in order", func() {
			timer.Start(1)
			timer.Tick()
			timer.Pause()
			timer.Resume()
			timer.Stop()

			So(len(seen), ShouldEqual, 5)
			So(seen[0].Remaining, ShouldEqual, 60)
			So(seen[1].Remaining, ShouldEqual, 59)
			So(seen[2].Phase(), ShouldEqual, Paused)
			So(seen[3].Phase(), ShouldEqual, Running)
			So(seen[4], ShouldResemble, State{})
		})

		Convey("No-ops should not notify", func() {
			timer.Pause()
			timer.Tick()
			So(seen, ShouldBeEmpty)
		})

		Convey("After unsubscribing it should hear nothing", func() {
			unsubscribe()
			timer.Start(1)
			So(seen, ShouldBeEmpty)
		})
	})
}

func TestClose(t *testing.T) {
	Convey("Given a timer ticking in real time", t, func() {
		var notified atomic.Int32
		timer := New(Options{Interval: time.Millisecond})
		timer.Subscribe(func(State) { notified.Add(1) })
		timer.Start(60)

		Convey("Close should stop the loop for good", func() {
			deadline := time.Now().Add(time.Second)
			for timer.State().Remaining == 3600 && time.Now().Before(deadline) {
				time.Sleep(time.Millisecond)
			}
			So(timer.State().Remaining, ShouldBeLessThan, 3600)

			timer.Close()
			seen := notified.Load()
			remaining := timer.State().Remaining
			time.Sleep(10 * time.Millisecond)

			So(notified.Load(), ShouldEqual, seen)
			So(timer.State().Remaining, ShouldEqual, remaining)
			So(timer.ticks.Running(), ShouldBeFalse)

			timer.Start(5)
			So(timer.State().Remaining, ShouldEqual, remaining)
		})
	})
}

func TestFormatRemaining(t *testing.T) {
	Convey("FormatRemaining", t, func() {
		So(State{Remaining: 900}.FormatRemaining(), ShouldEqual, "15:00")
		So(State{Remaining: 61}.FormatRemaining(), ShouldEqual, "1:01")
		So(State{}.FormatRemaining(), ShouldEqual, "0:00")
		So(Paused.String(), ShouldEqual, "paused")
	})
}
