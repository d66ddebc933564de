package player_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bedtime-cli/bedtime/player"
	"github.com/bedtime-cli/bedtime/player/playertest"
	. "github.com/smartystreets/goconvey/convey"
)

const trackLength = 180 * time.Second

// newManual returns a controller whose refresh never fires by itself.
func newManual(options ...player.Option) (*player.Controller, *playertest.Backend) {
	backend := playertest.New(trackLength)
	options = append([]player.Option{player.WithRefreshInterval(time.Hour)}, options...)
	return player.NewController(backend, options...), backend
}

type recorder struct {
	mu       sync.Mutex
	statuses []player.Status
}

func (r *recorder) record(s player.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, s)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.statuses)
}

func (r *recorder) all() []player.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]player.Status(nil), r.statuses...)
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

func TestPlayback(t *testing.T) {
	Convey("Given a loaded three minute story", t, func() {
		ctrl, backend := newManual()
		Reset(ctrl.Close)

		So(ctrl.Load(context.Background(), "https://cdn.example.com/owl.mp3"), ShouldBeNil)
		res := backend.Last()

		status := ctrl.Status()
		So(status.Loaded, ShouldBeTrue)
		So(status.Duration, ShouldEqual, trackLength)
		So(status.IsLoading, ShouldBeFalse)
		So(status.IsPlaying, ShouldBeFalse)

		Convey("Playing for three ticks and pausing should keep the position", func() {
			So(ctrl.Play(), ShouldBeNil)
			for i := 0; i < 3; i++ {
				res.Advance(time.Second)
				ctrl.Refresh()
			}

			So(ctrl.Status().IsPlaying, ShouldBeTrue)
			So(ctrl.Status().CurrentTime, ShouldEqual, 3*time.Second)

			So(ctrl.Pause(), ShouldBeNil)
			So(ctrl.Status().IsPlaying, ShouldBeFalse)
			So(ctrl.Status().CurrentTime, ShouldEqual, 3*time.Second)
			So(res.Playing(), ShouldBeFalse)
		})

		Convey("Play and Pause should be idempotent", func() {
			So(ctrl.Play(), ShouldBeNil)
			So(ctrl.Play(), ShouldBeNil)
			So(ctrl.Status().IsPlaying, ShouldBeTrue)

			So(ctrl.Pause(), ShouldBeNil)
			So(ctrl.Pause(), ShouldBeNil)
			So(ctrl.Status().IsPlaying, ShouldBeFalse)
		})

		Convey("TogglePlayPause should alternate", func() {
			So(ctrl.TogglePlayPause(), ShouldBeNil)
			So(ctrl.Status().IsPlaying, ShouldBeTrue)
			So(ctrl.TogglePlayPause(), ShouldBeNil)
			So(ctrl.Status().IsPlaying, ShouldBeFalse)
		})

		Convey("Seek should clamp into the track", func() {
			So(ctrl.Seek(-5*time.Second), ShouldBeNil)
			So(ctrl.Status().CurrentTime, ShouldEqual, time.Duration(0))

			So(ctrl.Seek(42*time.Second), ShouldBeNil)
			So(ctrl.Status().CurrentTime, ShouldEqual, 42*time.Second)
			So(ctrl.Status().Progress(), ShouldAlmostEqual, 42.0/180.0)

			So(ctrl.Seek(time.Hour), ShouldBeNil)
			So(ctrl.Status().CurrentTime, ShouldEqual, trackLength)
		})

		Convey("Skip should move relative to the playhead", func() {
			So(ctrl.Seek(10*time.Second), ShouldBeNil)
			So(ctrl.Skip(30*time.Second), ShouldBeNil)
			So(ctrl.Status().CurrentTime, ShouldEqual, 40*time.Second)
			So(ctrl.Skip(-time.Minute), ShouldBeNil)
			So(ctrl.Status().CurrentTime, ShouldEqual, time.Duration(0))
		})

		Convey("Volume and rate should clamp and reach the resource", func() {
			So(ctrl.SetVolume(1.5), ShouldBeNil)
			So(ctrl.Status().Volume, ShouldEqual, 1.0)
			So(ctrl.SetVolume(-1), ShouldBeNil)
			So(ctrl.Status().Volume, ShouldEqual, 0.0)
			So(ctrl.SetVolume(0.4), ShouldBeNil)
			So(res.Volume(), ShouldEqual, 0.4)

			So(ctrl.SetPlaybackRate(3), ShouldBeNil)
			So(ctrl.Status().PlaybackRate, ShouldEqual, 2.0)
			So(ctrl.SetPlaybackRate(0.1), ShouldBeNil)
			So(ctrl.Status().PlaybackRate, ShouldEqual, 0.5)
			So(res.Rate(), ShouldEqual, 0.5)
		})

		Convey("Stop should rewind and keep the resource", func() {
			So(ctrl.Play(), ShouldBeNil)
			res.Advance(10 * time.Second)
			ctrl.Refresh()

			So(ctrl.Stop(), ShouldBeNil)
			So(ctrl.Status().IsPlaying, ShouldBeFalse)
			So(ctrl.Status().CurrentTime, ShouldEqual, time.Duration(0))
			So(ctrl.Status().Loaded, ShouldBeTrue)
			So(res.Closed(), ShouldBeFalse)
			So(ctrl.Play(), ShouldBeNil)
		})

		Convey("Reaching the end should stop and rewind without replaying", func() {
			rec := &recorder{}
			ctrl.Subscribe(rec.record)

			So(ctrl.Play(), ShouldBeNil)
			res.Advance(trackLength + time.Second)
			ctrl.Refresh()

			status := ctrl.Status()
			So(status.IsPlaying, ShouldBeFalse)
			So(status.CurrentTime, ShouldEqual, time.Duration(0))
			pos, err := res.Position()
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, time.Duration(0))
			So(res.Playing(), ShouldBeFalse)

			emitted := rec.count()
			ctrl.Refresh()
			So(rec.count(), ShouldEqual, emitted)
		})

		Convey("Unload should release the resource", func() {
			ctrl.Unload()
			So(res.Closed(), ShouldBeTrue)
			So(ctrl.Status().Loaded, ShouldBeFalse)
			So(ctrl.Status().Duration, ShouldEqual, time.Duration(0))

			So(ctrl.Pause(), ShouldBeNil)
			So(ctrl.Seek(time.Second), ShouldBeNil)
			So(ctrl.Stop(), ShouldBeNil)
			So(errors.Is(ctrl.Play(), player.ErrNoResourceLoaded), ShouldBeTrue)
		})

		Convey("A rejected command should leave the resource loaded but paused", func() {
			res.FailNext(errors.New("device busy"))

			err := ctrl.Play()
			So(errors.Is(err, player.ErrPlaybackFailure), ShouldBeTrue)
			So(errors.Is(ctrl.Status().Err, player.ErrPlaybackFailure), ShouldBeTrue)
			So(ctrl.Status().IsPlaying, ShouldBeFalse)
			So(ctrl.Status().Loaded, ShouldBeTrue)

			Convey("And the controller should stay usable", func() {
				So(ctrl.Play(), ShouldBeNil)
				So(ctrl.Status().IsPlaying, ShouldBeTrue)
				So(ctrl.Status().Err, ShouldBeNil)
			})
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a controller", t, func() {
		ctrl, backend := newManual()
		Reset(ctrl.Close)

		Convey("A failed load should surface a load failure", func() {
			backend.FailOpen(errors.New("connection reset by peer"))

			err := ctrl.Load(context.Background(), "https://cdn.example.com/missing.mp3")
			So(errors.Is(err, player.ErrLoadFailure), ShouldBeTrue)

			status := ctrl.Status()
			So(errors.Is(status.Err, player.ErrLoadFailure), ShouldBeTrue)
			So(status.IsLoading, ShouldBeFalse)
			So(status.Loaded, ShouldBeFalse)

			Convey("And Play should report that nothing is loaded", func() {
				So(func() { err = ctrl.Play() }, ShouldNotPanic)
				So(errors.Is(err, player.ErrNoResourceLoaded), ShouldBeTrue)
				So(errors.Is(ctrl.Status().Err, player.ErrNoResourceLoaded), ShouldBeTrue)
			})
		})

		Convey("Loading should report progress to subscribers", func() {
			rec := &recorder{}
			ctrl.Subscribe(rec.record)

			So(ctrl.Load(context.Background(), "a.mp3"), ShouldBeNil)
			statuses := rec.all()
			So(len(statuses), ShouldEqual, 2)
			So(statuses[0].IsLoading, ShouldBeTrue)
			So(statuses[1].IsLoading, ShouldBeFalse)
			So(statuses[1].Loaded, ShouldBeTrue)
		})

		Convey("Loading a second source should release the first", func() {
			So(ctrl.Load(context.Background(), "a.mp3"), ShouldBeNil)
			So(ctrl.Play(), ShouldBeNil)
			backend.Last().Advance(20 * time.Second)
			ctrl.Refresh()

			So(ctrl.Load(context.Background(), "b.mp3"), ShouldBeNil)

			opened := backend.Opened()
			So(len(opened), ShouldEqual, 2)
			So(opened[0].Closed(), ShouldBeTrue)
			So(opened[1].Closed(), ShouldBeFalse)

			status := ctrl.Status()
			So(status.Source, ShouldEqual, "b.mp3")
			So(status.CurrentTime, ShouldEqual, time.Duration(0))
			So(status.IsPlaying, ShouldBeFalse)
		})

		Convey("Volume and rate set before loading should apply on load", func() {
			So(ctrl.SetVolume(0.3), ShouldBeNil)
			So(ctrl.SetPlaybackRate(1.25), ShouldBeNil)
			So(ctrl.Load(context.Background(), "a.mp3"), ShouldBeNil)

			So(backend.Last().Volume(), ShouldEqual, 0.3)
			So(backend.Last().Rate(), ShouldEqual, 1.25)
		})

		Convey("A cancelled context should fail the load", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			err := ctrl.Load(ctx, "a.mp3")
			So(errors.Is(err, player.ErrLoadFailure), ShouldBeTrue)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})

		Convey("Options should set the initial volume and rate", func() {
			c, _ := newManual(player.WithVolume(0.5), player.WithPlaybackRate(9))
			defer c.Close()
			So(c.Status().Volume, ShouldEqual, 0.5)
			So(c.Status().PlaybackRate, ShouldEqual, 2.0)
		})
	})
}

func TestClose(t *testing.T) {
	Convey("Given a playing controller refreshing every millisecond", t, func() {
		backend := playertest.New(trackLength)
		ctrl := player.NewController(backend, player.WithRefreshInterval(time.Millisecond))
		rec := &recorder{}
		ctrl.Subscribe(rec.record)

		So(ctrl.Load(context.Background(), "a.mp3"), ShouldBeNil)
		So(ctrl.Play(), ShouldBeNil)
		before := rec.count()
		So(waitFor(func() bool { return rec.count() > before+2 }), ShouldBeTrue)

		Convey("Close should release everything and silence subscribers", func() {
			ctrl.Close()
			emitted := rec.count()

			So(backend.Last().Closed(), ShouldBeTrue)
			So(ctrl.Status().IsPlaying, ShouldBeFalse)

			time.Sleep(20 * time.Millisecond)
			So(rec.count(), ShouldEqual, emitted)

			Convey("And later commands should do nothing", func() {
				So(errors.Is(ctrl.Load(context.Background(), "b.mp3"), player.ErrClosed), ShouldBeTrue)
				So(errors.Is(ctrl.Play(), player.ErrClosed), ShouldBeTrue)
				So(ctrl.Pause(), ShouldBeNil)
				So(ctrl.SetVolume(0.2), ShouldBeNil)
				ctrl.Refresh()
				ctrl.Close()
				So(rec.count(), ShouldEqual, emitted)
				So(len(backend.Opened()), ShouldEqual, 1)
			})
		})
	})
}

func TestSubscribe(t *testing.T) {
	Convey("Given two subscribers", t, func() {
		ctrl, _ := newManual()
		Reset(ctrl.Close)

		first, second := &recorder{}, &recorder{}
		unsubscribe := ctrl.Subscribe(first.record)
		ctrl.Subscribe(second.record)

		Convey("Both should see every change in order", func() {
			So(ctrl.SetVolume(0.2), ShouldBeNil)
			So(ctrl.SetVolume(0.6), ShouldBeNil)

			So(first.count(), ShouldEqual, 2)
			So(second.all()[1].Volume, ShouldEqual, 0.6)
		})

		Convey("An unsubscribed listener should stop receiving", func() {
			unsubscribe()
			So(ctrl.SetVolume(0.2), ShouldBeNil)
			So(first.count(), ShouldEqual, 0)
			So(second.count(), ShouldEqual, 1)
		})
	})
}

func TestFade(t *testing.T) {
	Convey("Given a loaded story", t, func() {
		ctrl, backend := newManual(player.WithVolume(0.8))
		Reset(ctrl.Close)

		So(ctrl.Load(context.Background(), "a.mp3"), ShouldBeNil)
		res := backend.Last()

		Convey("FadeIn should start silent and ramp up to the volume", func() {
			rec := &recorder{}
			ctrl.Subscribe(rec.record)

			So(ctrl.FadeIn(20*time.Millisecond), ShouldBeNil)
			So(ctrl.Status().IsPlaying, ShouldBeTrue)
			So(waitFor(func() bool { return !ctrl.Fading() }), ShouldBeTrue)

			gains := res.Gains()
			So(gains[len(gains)-1], ShouldAlmostEqual, 0.8)
			So(res.Volume(), ShouldAlmostEqual, 0.8)
			for _, s := range rec.all() {
				So(s.Volume, ShouldEqual, 0.8)
			}
		})

		Convey("FadeOut should ramp down, pause and restore the volume", func() {
			So(ctrl.Play(), ShouldBeNil)
			So(ctrl.FadeOut(20*time.Millisecond), ShouldBeNil)

			So(waitFor(func() bool { return !ctrl.Status().IsPlaying }), ShouldBeTrue)
			So(ctrl.Fading(), ShouldBeFalse)
			So(res.Volume(), ShouldAlmostEqual, 0.8)
			So(res.Gains(), ShouldContain, 0.0)
		})

		Convey("Pausing during a fade should cancel it and restore the volume", func() {
			So(ctrl.FadeIn(time.Hour), ShouldBeNil)
			So(ctrl.Fading(), ShouldBeTrue)
			So(res.Volume(), ShouldEqual, 0.0)

			So(ctrl.Pause(), ShouldBeNil)
			So(ctrl.Fading(), ShouldBeFalse)
			So(res.Volume(), ShouldEqual, 0.8)
		})

		Convey("A newer fade should replace the running one", func() {
			So(ctrl.FadeIn(time.Hour), ShouldBeNil)
			So(ctrl.FadeOut(20*time.Millisecond), ShouldBeNil)

			So(waitFor(func() bool { return !ctrl.Status().IsPlaying }), ShouldBeTrue)
			So(ctrl.Fading(), ShouldBeFalse)
			So(res.Volume(), ShouldAlmostEqual, 0.8)
		})

		Convey("Setting the volume during a fade should cancel it", func() {
			So(ctrl.FadeIn(time.Hour), ShouldBeNil)
			So(ctrl.SetVolume(0.5), ShouldBeNil)
			So(ctrl.Fading(), ShouldBeFalse)
			So(res.Volume(), ShouldEqual, 0.5)
		})

		Convey("Unloading during a fade should never touch the released resource", func() {
			So(ctrl.FadeIn(20*time.Millisecond), ShouldBeNil)
			ctrl.Unload()
			gains := len(res.Gains())

			time.Sleep(30 * time.Millisecond)
			So(ctrl.Fading(), ShouldBeFalse)
			So(len(res.Gains()), ShouldEqual, gains)
		})

		Convey("Fades shorter than a nanosecond per step should act at once", func() {
			So(func() { So(ctrl.FadeIn(10*time.Nanosecond), ShouldBeNil) }, ShouldNotPanic)
			So(ctrl.Status().IsPlaying, ShouldBeTrue)
			So(ctrl.Fading(), ShouldBeFalse)
			So(res.Volume(), ShouldEqual, 0.8)

			So(func() { So(ctrl.FadeOut(time.Nanosecond), ShouldBeNil) }, ShouldNotPanic)
			So(ctrl.Status().IsPlaying, ShouldBeFalse)
			So(ctrl.Fading(), ShouldBeFalse)
		})

		Convey("FadeOut while paused should do nothing", func() {
			So(ctrl.FadeOut(time.Second), ShouldBeNil)
			So(ctrl.Fading(), ShouldBeFalse)
		})
	})

	Convey("FadeIn with nothing loaded should report it", t, func() {
		ctrl, _ := newManual()
		defer ctrl.Close()
		So(errors.Is(ctrl.FadeIn(time.Second), player.ErrNoResourceLoaded), ShouldBeTrue)
	})
}

func TestStatus(t *testing.T) {
	Convey("Status helpers", t, func() {
		s := player.Status{
			Loaded:       true,
			IsPlaying:    true,
			CurrentTime:  90 * time.Second,
			Duration:     3 * time.Minute,
			Volume:       0.5,
			PlaybackRate: 1.5,
		}

		So(s.Progress(), ShouldAlmostEqual, 0.5)
		So(s.Remaining(), ShouldEqual, 90*time.Second)
		So(s.String(), ShouldEqual, "playing 1:30/3:00 vol=50% rate=1.5x")
		So(player.Status{}.Progress(), ShouldEqual, 0.0)
		So(player.Status{}.String(), ShouldStartWith, "empty")
	})
}
