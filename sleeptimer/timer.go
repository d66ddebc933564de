// Package sleeptimer implements the countdown that pauses narration when it runs out.
//
// The timer knows nothing about the player. It is handed an expiry callback
// and fed an "is playing" signal by whoever composes it with a player.
package sleeptimer

import (
	"context"
	"sync"
	"time"

	"github.com/bedtime-cli/bedtime/internal/loop"
	"github.com/bedtime-cli/bedtime/log"
)

// Options configure a Timer.
type Options struct {
	// OnExpire is called once each time the countdown reaches zero,
	// after the timer has returned to Idle.
	OnExpire func()

	// Interval between ticks. Defaults to one second.
	Interval time.Duration
}

// Timer is a tick based countdown. Pausing preserves the remaining seconds
// exactly; no wall clock time is ever consulted.
type Timer struct {
	onExpire func()

	// emitMu orders notifications; mu guards the fields below it.
	emitMu sync.Mutex
	mu     sync.Mutex

	state State
	// playing is the last playback signal; signalled is false until the first one.
	playing, signalled bool
	closed             bool

	ticks *loop.Task

	listeners map[int]func(State)
	nextID    int
}

// New creates an idle timer.
func New(options Options) *Timer {
	if options.Interval <= 0 {
		options.Interval = time.Second
	}

	t := &Timer{
		onExpire:  options.OnExpire,
		listeners: make(map[int]func(State)),
	}
	t.ticks = loop.New(options.Interval, t.tick)
	return t
}

// State returns the current snapshot.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Subscribe registers fn to receive every state change. The returned function removes it.
// fn must not call back into the timer's commands.
func (t *Timer) Subscribe(fn func(State)) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++
	t.listeners[id] = fn

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.listeners, id)
	}
}

// Start begins a countdown of the given minutes, replacing any countdown in progress.
// Non-positive durations are ignored. While playback is reported stopped the
// new countdown starts paused.
func (t *Timer) Start(minutes int) {
	if minutes <= 0 {
		return
	}

	t.update(func(s *State) bool {
		*s = State{Active: true, Remaining: minutes * 60, SelectedMinutes: minutes}
		if t.stalledLocked() {
			s.Paused = true
			t.ticks.Stop()
		} else {
			t.ticks.Start()
		}
		log.Infof("sleep timer started for %d minutes", minutes)
		return true
	})
}

// stalledLocked reports whether playback is known to be stopped.
func (t *Timer) stalledLocked() bool {
	return t.signalled && !t.playing
}

// Tick advances the countdown by one second. It does nothing unless the timer is running.
func (t *Timer) Tick() {
	t.tick(nil)
}

func (t *Timer) tick(ctx context.Context) {
	var expired bool

	t.update(func(s *State) bool {
		if ctx != nil && ctx.Err() != nil {
			return false
		}
		if s.Phase() != Running {
			return false
		}

		s.Remaining--
		if s.Remaining <= 0 {
			s.Remaining = 0
			s.Active = false
			s.Paused = false
			t.ticks.Stop()
			expired = true
		}
		return true
	})

	if expired {
		log.Info("sleep timer expired")
		if t.onExpire != nil {
			t.onExpire()
		}
	}
}

// Pause freezes a running countdown.
func (t *Timer) Pause() {
	t.update(t.pauseLocked)
}

func (t *Timer) pauseLocked(s *State) bool {
	if s.Phase() != Running {
		return false
	}
	s.Paused = true
	t.ticks.Stop()
	return true
}

// Resume continues a paused countdown from where it stopped.
// It stays paused while playback is reported stopped.
func (t *Timer) Resume() {
	t.update(func(s *State) bool {
		if s.Phase() != Paused || t.stalledLocked() {
			return false
		}
		s.Paused = false
		t.ticks.Start()
		return true
	})
}

// Stop cancels the countdown and clears it.
func (t *Timer) Stop() {
	t.update(func(s *State) bool {
		if s.Phase() == Idle {
			return false
		}
		*s = State{}
		t.ticks.Stop()
		return true
	})
}

// SetPlaying feeds the playback signal into the timer. A running countdown
// pauses whenever playback is reported stopped. Playing again does not resume it.
func (t *Timer) SetPlaying(playing bool) {
	t.update(func(s *State) bool {
		t.playing, t.signalled = playing, true
		if !playing {
			return t.pauseLocked(s)
		}
		return false
	})
}

// Close stops the countdown for good and waits for the tick loop to exit.
// The timer ignores every command afterwards.
func (t *Timer) Close() {
	t.emitMu.Lock()
	t.mu.Lock()
	t.closed = true
	t.ticks.Stop()
	t.listeners = make(map[int]func(State))
	t.mu.Unlock()
	t.emitMu.Unlock()

	t.ticks.Wait()
}

// update applies mutate under the lock and notifies listeners when it reports a change.
func (t *Timer) update(mutate func(s *State) bool) {
	t.emitMu.Lock()
	defer t.emitMu.Unlock()

	t.mu.Lock()
	if t.closed || !mutate(&t.state) {
		t.mu.Unlock()
		return
	}
	snapshot := t.state
	listeners := make([]func(State), 0, len(t.listeners))
	for _, fn := range t.listeners {
		listeners = append(listeners, fn)
	}
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}
