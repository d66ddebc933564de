// Package session couples a playback controller with a sleep timer for one listening session.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bedtime-cli/bedtime/history"
	"github.com/bedtime-cli/bedtime/log"
	"github.com/bedtime-cli/bedtime/offline"
	"github.com/bedtime-cli/bedtime/player"
	"github.com/bedtime-cli/bedtime/sleeptimer"
	"github.com/bedtime-cli/bedtime/story"
)

// ErrNoAudio is returned when a story without narration is started.
var ErrNoAudio = errors.New("story has no narration")

// Session owns a controller and a sleep timer. Close must be called to release both.
type Session struct {
	ctrl  *player.Controller
	timer *sleeptimer.Timer
	opts  Options

	unsubscribe func()

	mu       sync.Mutex
	story    *story.Story
	closed   bool
	listened atomic.Int64
}

// New takes ownership of ctrl.
func New(ctrl *player.Controller, opts Options) *Session {
	s := &Session{ctrl: ctrl, opts: opts}

	s.timer = sleeptimer.New(sleeptimer.Options{
		OnExpire: s.expire,
		Interval: opts.TimerInterval,
	})

	if v, ok := opts.Volume.Get(); ok {
		_ = ctrl.SetVolume(v)
	}
	if r, ok := opts.Rate.Get(); ok {
		_ = ctrl.SetPlaybackRate(r)
	}

	s.unsubscribe = ctrl.Subscribe(s.observe)
	return s
}

// observe runs under the controller's lock, so it only feeds the timer and
// never calls the controller.
func (s *Session) observe(status player.Status) {
	s.timer.SetPlaying(status.IsPlaying)

	for {
		furthest := s.listened.Load()
		if int64(status.CurrentTime) <= furthest || s.listened.CompareAndSwap(furthest, int64(status.CurrentTime)) {
			break
		}
	}
}

func (s *Session) expire() {
	log.Info("sleep timer expired")

	var err error
	if s.opts.FadeOut > 0 {
		err = s.ctrl.FadeOut(s.opts.FadeOut)
	} else {
		err = s.ctrl.Pause()
	}
	if err != nil {
		log.Warnf("pause on sleep timer: %v", err)
	}

	if s.opts.OnExpire != nil {
		s.opts.OnExpire()
	}
}

// Locator prefers a downloaded narration over streaming it.
func Locator(st *story.Story) (string, error) {
	if path, ok := offline.AudioPath(st.ID).Get(); ok {
		return path, nil
	}

	if !st.HasAudio() {
		return "", fmt.Errorf("%s: %w", st.Title, ErrNoAudio)
	}
	return st.Audio.URL, nil
}

// Start loads the narration of st, replacing the previous story. Depending on
// the options it starts playback and the sleep timer.
func (s *Session) Start(ctx context.Context, st *story.Story) error {
	locator, err := Locator(st)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return player.ErrClosed
	}
	previous := s.story
	s.story = st
	s.mu.Unlock()

	s.saveHistory(previous)
	s.listened.Store(0)

	if err := s.ctrl.Load(ctx, locator); err != nil {
		return err
	}

	if !s.opts.AutoPlay {
		return nil
	}

	if s.opts.FadeIn > 0 {
		err = s.ctrl.FadeIn(s.opts.FadeIn)
	} else {
		err = s.ctrl.Play()
	}
	if err != nil {
		return err
	}

	s.timer.Start(s.opts.SleepMinutes)
	return nil
}

// StartTimer starts the sleep timer, or stops it for non-positive minutes.
func (s *Session) StartTimer(minutes int) {
	if minutes <= 0 {
		s.timer.Stop()
		return
	}
	s.timer.Start(minutes)
}

func (s *Session) Controller() *player.Controller {
	return s.ctrl
}

func (s *Session) Timer() *sleeptimer.Timer {
	return s.timer
}

// Story returns the story being played, or nil.
func (s *Session) Story() *story.Story {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.story
}

// Listened is the furthest position reached in the current story.
func (s *Session) Listened() time.Duration {
	return time.Duration(s.listened.Load())
}

func (s *Session) saveHistory(st *story.Story) {
	if st == nil || !s.opts.SaveHistory {
		return
	}

	if err := history.Save(st, s.Listened()); err != nil {
		log.Warnf("save history: %v", err)
	}
}

// Close stops the timer, then releases the controller. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	st := s.story
	s.mu.Unlock()

	s.timer.Close()
	s.unsubscribe()
	s.ctrl.Close()

	s.saveHistory(st)
}
