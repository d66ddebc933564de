package mini

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/bedtime-cli/bedtime/config"
	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/player"
	"github.com/bedtime-cli/bedtime/player/playertest"
	"github.com/bedtime-cli/bedtime/session"
	"github.com/bedtime-cli/bedtime/sleeptimer"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
	lo.Must0(config.Setup())
}

func TestParseCommand(t *testing.T) {
	Convey("Player input", t, func() {
		for input, want := range map[string]action{
			"":       actionToggle,
			"  ":     actionToggle,
			"p":      actionToggle,
			"P":      actionToggle,
			"stop":   actionStop,
			"f":      actionForward,
			"b":      actionRewind,
			"+":      actionVolumeUp,
			"-":      actionVolumeDown,
			">":      actionFaster,
			"<":      actionSlower,
			"T":      actionSleepPause,
			"q":      actionBack,
			"Q":      actionQuit,
			"help\n": actionHelp,
		} {
			cmd, err := parseCommand(input)
			So(err, ShouldBeNil)
			So(cmd.action, ShouldEqual, want)
		}

		Convey("The sleep command takes optional minutes", func() {
			cmd, err := parseCommand("t 15")
			So(err, ShouldBeNil)
			So(cmd.action, ShouldEqual, actionSleep)
			So(cmd.minutes, ShouldEqual, 15)

			cmd, err = parseCommand("sleep")
			So(err, ShouldBeNil)
			So(cmd.minutes, ShouldEqual, askMinutes)

			_, err = parseCommand("t soon")
			So(err, ShouldNotBeNil)

			_, err = parseCommand("t -5")
			So(err, ShouldNotBeNil)
		})

		Convey("Unknown words suggest the closest command", func() {
			_, err := parseCommand("stpo")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "stop")
		})
	})
}

func TestExecute(t *testing.T) {
	Convey("Given a loaded story in line mode", t, func() {
		backend := playertest.New(3 * time.Minute)
		ctrl := player.NewController(backend, player.WithRefreshInterval(time.Hour))
		s := session.New(ctrl, session.Options{TimerInterval: time.Hour})
		Reset(s.Close)

		var out bytes.Buffer
		m := newMini(context.Background(), &Options{Session: s, Out: &out, In: &bytes.Buffer{}})
		m.state = listenState

		st := &story.Story{ID: "1", Slug: "moon", Title: "Moon", Audio: &story.Audio{URL: "https://cdn/moon.mp3", Duration: 180}}
		So(s.Start(context.Background(), st), ShouldBeNil)

		Convey("An empty line toggles playback", func() {
			leave, err := m.execute("\n")
			So(err, ShouldBeNil)
			So(leave, ShouldBeFalse)
			So(ctrl.Status().IsPlaying, ShouldBeTrue)

			_, err = m.execute("p")
			So(err, ShouldBeNil)
			So(ctrl.Status().IsPlaying, ShouldBeFalse)
		})

		Convey("Volume and speed move in steps", func() {
			lo.Must0(ctrl.SetVolume(0.5))

			_, err := m.execute("+")
			So(err, ShouldBeNil)
			So(ctrl.Status().Volume, ShouldAlmostEqual, 0.6, 0.0001)

			_, err = m.execute(">")
			So(err, ShouldBeNil)
			So(ctrl.Status().PlaybackRate, ShouldEqual, 1.25)
		})

		Convey("Skipping moves the playhead", func() {
			_, err := m.execute("f")
			So(err, ShouldBeNil)
			So(ctrl.Status().CurrentTime, ShouldEqual, 30*time.Second)

			_, err = m.execute("b")
			So(err, ShouldBeNil)
			So(ctrl.Status().CurrentTime, ShouldEqual, time.Duration(0))
		})

		Convey("The sleep timer is started and paused", func() {
			lo.Must0(ctrl.Play())

			_, err := m.execute("t 10")
			So(err, ShouldBeNil)
			So(s.Timer().State().SelectedMinutes, ShouldEqual, 10)
			So(s.Timer().State().Phase(), ShouldEqual, sleeptimer.Running)

			_, err = m.execute("T")
			So(err, ShouldBeNil)
			So(s.Timer().State().Phase(), ShouldEqual, sleeptimer.Paused)

			_, err = m.execute("t 0")
			So(err, ShouldBeNil)
			So(s.Timer().State().Phase(), ShouldEqual, sleeptimer.Idle)
		})

		Convey("Back pauses and leaves the player", func() {
			lo.Must0(ctrl.Play())
			leave, err := m.execute("q")
			So(err, ShouldBeNil)
			So(leave, ShouldBeTrue)
			So(ctrl.Status().IsPlaying, ShouldBeFalse)
			So(m.state, ShouldEqual, quitState)
		})

		Convey("Help is printed", func() {
			_, err := m.execute("?")
			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "sleep timer")
		})
	})
}

func TestTransitions(t *testing.T) {
	Convey("Timer expiry and the end of a story are recognised", t, func() {
		running := sleeptimer.State{Active: true, Remaining: 1, SelectedMinutes: 1}
		So(expired(running, sleeptimer.State{SelectedMinutes: 1}), ShouldBeTrue)
		So(expired(running, sleeptimer.State{}), ShouldBeFalse)

		playing := player.Status{IsPlaying: true, CurrentTime: 179 * time.Second, Duration: 180 * time.Second}
		So(finished(playing, player.Status{Duration: 180 * time.Second}), ShouldBeTrue)

		early := player.Status{IsPlaying: true, CurrentTime: 20 * time.Second, Duration: 180 * time.Second}
		So(finished(early, player.Status{Duration: 180 * time.Second}), ShouldBeFalse)
	})
}
