package player

import (
	"context"
	"sync"
	"time"

	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/internal/loop"
	"github.com/bedtime-cli/bedtime/log"
	"github.com/bedtime-cli/bedtime/util"
)

// Option configures a Controller.
type Option func(*Controller)

// WithVolume sets the initial volume.
func WithVolume(volume float64) Option {
	return func(c *Controller) {
		c.status.Volume = clampVolume(volume)
	}
}

// WithPlaybackRate sets the initial playback rate.
func WithPlaybackRate(rate float64) Option {
	return func(c *Controller) {
		c.status.PlaybackRate = clampRate(rate)
	}
}

// WithRefreshInterval changes how often position is polled while playing.
func WithRefreshInterval(interval time.Duration) Option {
	return func(c *Controller) {
		if interval > 0 {
			c.interval = interval
		}
	}
}

type subscription struct {
	id int
	fn func(Status)
}

// Controller owns one audio resource at a time and reports its status.
//
// Commands are serialized. Subscribers are notified synchronously, in order,
// while the command that caused the change still holds the controller, so a
// subscriber must not call commands on the same controller from inside the
// callback. Status may be read from anywhere.
type Controller struct {
	backend  Backend
	interval time.Duration

	opMu     sync.Mutex
	resource Resource
	gain     float64
	ramp     *ramp
	closed   bool

	mu        sync.RWMutex
	status    Status
	listeners []subscription
	nextID    int

	refresh *loop.Task
	fade    *loop.Task
}

// NewController creates a controller that opens sources through backend.
func NewController(backend Backend, options ...Option) *Controller {
	c := &Controller{
		backend:  backend,
		interval: time.Second,
		status: Status{
			Volume:       constant.DefaultVolume,
			PlaybackRate: constant.DefaultPlaybackRate,
		},
	}

	for _, option := range options {
		option(c)
	}

	c.refresh = loop.New(c.interval, c.refreshStep)
	c.fade = loop.New(c.interval, c.fadeStep)
	return c
}

// Status returns the latest snapshot.
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Subscribe registers fn to receive every status change.
func (c *Controller) Subscribe(fn func(Status)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners = append(c.listeners, subscription{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.listeners {
			if s.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// Load releases the current resource and opens locator in its place.
// The new resource is paused at the beginning.
func (c *Controller) Load(ctx context.Context, locator string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed {
		return ErrClosed
	}

	c.releaseLocked()
	c.update(func(s *Status) {
		*s = Status{
			Source:       locator,
			IsLoading:    true,
			Volume:       s.Volume,
			PlaybackRate: s.PlaybackRate,
		}
	})
	c.emitLocked()

	logger := log.With(log.Fields{"source": locator})

	resource, err := c.backend.Open(ctx, locator)
	if err == nil {
		err = c.prepare(resource)
	}

	if err != nil {
		err = wrap(ErrLoadFailure, err)
		logger.Error(err)
		c.update(func(s *Status) {
			s.IsLoading = false
			s.Err = err
		})
		c.emitLocked()
		return err
	}

	logger.Infof("loaded %s", util.FormatClock(resource.Duration()))
	c.resource = resource
	c.update(func(s *Status) {
		s.Loaded = true
		s.IsLoading = false
		s.Duration = resource.Duration()
	})
	c.emitLocked()
	return nil
}

func (c *Controller) prepare(resource Resource) error {
	if err := resource.SetRate(c.status.PlaybackRate); err != nil {
		_ = resource.Close()
		return err
	}

	if err := resource.SetVolume(c.status.Volume); err != nil {
		_ = resource.Close()
		return err
	}

	c.gain = c.status.Volume
	return nil
}

// Play starts or resumes playback.
func (c *Controller) Play() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed {
		return ErrClosed
	}
	return c.playLocked()
}

func (c *Controller) playLocked() error {
	if c.resource == nil {
		c.update(func(s *Status) { s.Err = ErrNoResourceLoaded })
		c.emitLocked()
		return ErrNoResourceLoaded
	}

	if c.status.IsPlaying {
		return nil
	}

	if err := c.resource.Play(); err != nil {
		return c.failLocked(err)
	}

	c.update(func(s *Status) {
		s.IsPlaying = true
		s.Err = nil
	})
	c.refresh.Start()
	c.emitLocked()
	return nil
}

// Pause halts playback, keeping the position.
func (c *Controller) Pause() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed {
		return nil
	}
	return c.pauseLocked()
}

func (c *Controller) pauseLocked() error {
	if c.resource == nil || !c.status.IsPlaying {
		return nil
	}

	c.cancelFadeLocked(true)
	if err := c.resource.Pause(); err != nil {
		return c.failLocked(err)
	}

	c.refresh.Stop()
	position := c.positionLocked()
	c.update(func(s *Status) {
		s.IsPlaying = false
		s.CurrentTime = position
	})
	c.emitLocked()
	return nil
}

// TogglePlayPause pauses when playing and plays otherwise.
func (c *Controller) TogglePlayPause() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed {
		return nil
	}

	if c.status.IsPlaying {
		return c.pauseLocked()
	}
	return c.playLocked()
}

// Seek moves the playhead. Positions outside the track are clamped to it.
func (c *Controller) Seek(position time.Duration) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed {
		return nil
	}
	return c.seekLocked(position)
}

// Skip moves the playhead by delta relative to the current position.
func (c *Controller) Skip(delta time.Duration) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed || c.resource == nil {
		return nil
	}
	return c.seekLocked(c.positionLocked() + delta)
}

func (c *Controller) seekLocked(position time.Duration) error {
	if c.resource == nil {
		return nil
	}

	position = c.clampPosition(position)
	if err := c.resource.Seek(position); err != nil {
		return c.failLocked(err)
	}

	c.update(func(s *Status) { s.CurrentTime = position })
	c.emitLocked()
	return nil
}

// SetVolume sets the volume, clamped to [0, 1]. It is remembered across loads.
func (c *Controller) SetVolume(volume float64) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed {
		return nil
	}

	volume = clampVolume(volume)
	c.cancelFadeLocked(false)
	c.update(func(s *Status) { s.Volume = volume })

	if c.resource != nil {
		if err := c.resource.SetVolume(volume); err != nil {
			return c.failLocked(err)
		}
		c.gain = volume
	}

	c.emitLocked()
	return nil
}

// SetPlaybackRate sets the speed, clamped to [0.5, 2]. It is remembered across loads.
func (c *Controller) SetPlaybackRate(rate float64) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed {
		return nil
	}

	rate = clampRate(rate)
	c.update(func(s *Status) { s.PlaybackRate = rate })

	if c.resource != nil {
		if err := c.resource.SetRate(rate); err != nil {
			return c.failLocked(err)
		}
	}

	c.emitLocked()
	return nil
}

// Stop halts playback and rewinds. The resource stays loaded.
func (c *Controller) Stop() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed || c.resource == nil {
		return nil
	}

	c.cancelFadeLocked(true)
	c.refresh.Stop()

	if c.status.IsPlaying {
		if err := c.resource.Pause(); err != nil {
			return c.failLocked(err)
		}
	}

	if err := c.resource.Seek(0); err != nil {
		return c.failLocked(err)
	}

	c.update(func(s *Status) {
		s.IsPlaying = false
		s.CurrentTime = 0
	})
	c.emitLocked()
	return nil
}

// Unload releases the resource.
func (c *Controller) Unload() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed || c.resource == nil {
		return
	}

	c.releaseLocked()
	c.update(func(s *Status) {
		*s = Status{Volume: s.Volume, PlaybackRate: s.PlaybackRate}
	})
	c.emitLocked()
}

// Refresh polls the position once and handles the end of the track.
// While playing it runs automatically on the refresh interval.
func (c *Controller) Refresh() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed {
		return
	}
	c.refreshLocked()
}

func (c *Controller) refreshStep(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if ctx.Err() != nil || c.closed {
		return
	}
	c.refreshLocked()
}

func (c *Controller) refreshLocked() {
	if c.resource == nil || !c.status.IsPlaying {
		return
	}

	if c.resource.Ended() {
		c.finishLocked()
		return
	}

	position, err := c.resource.Position()
	if err != nil {
		log.Debugf("refresh: %v", err)
		return
	}

	if duration := c.resource.Duration(); duration > 0 {
		c.update(func(s *Status) { s.Duration = duration })
	}

	position = c.clampPosition(position)
	c.update(func(s *Status) { s.CurrentTime = position })
	c.emitLocked()
}

// finishLocked rewinds after the track played to the end. Nothing replays
// automatically.
func (c *Controller) finishLocked() {
	c.cancelFadeLocked(true)
	c.refresh.Stop()

	if err := c.resource.Pause(); err != nil {
		log.Warnf("pause at end of track: %v", err)
	}
	if err := c.resource.Seek(0); err != nil {
		log.Warnf("rewind at end of track: %v", err)
	}

	log.With(log.Fields{"source": c.status.Source}).Info("finished")
	c.update(func(s *Status) {
		s.IsPlaying = false
		s.CurrentTime = 0
	})
	c.emitLocked()
}

// Close releases the resource and stops every background task. Nothing is
// emitted after Close returns and later commands do nothing.
func (c *Controller) Close() {
	c.opMu.Lock()
	if c.closed {
		c.opMu.Unlock()
		return
	}

	c.closed = true
	c.releaseLocked()

	c.mu.Lock()
	c.listeners = nil
	c.status.IsPlaying = false
	c.status.Loaded = false
	c.mu.Unlock()
	c.opMu.Unlock()

	c.refresh.Wait()
	c.fade.Wait()
}

func (c *Controller) releaseLocked() {
	c.cancelFadeLocked(false)
	c.refresh.Stop()

	if c.resource == nil {
		return
	}

	if err := c.resource.Close(); err != nil {
		log.Warnf("release %s: %v", c.status.Source, err)
	}
	c.resource = nil
}

// failLocked records a rejected transport command and leaves the resource paused.
func (c *Controller) failLocked(err error) error {
	err = wrap(ErrPlaybackFailure, err)
	log.With(log.Fields{"source": c.status.Source}).Error(err)

	c.cancelFadeLocked(true)
	c.refresh.Stop()
	_ = c.resource.Pause()

	c.update(func(s *Status) {
		s.IsPlaying = false
		s.Err = err
	})
	c.emitLocked()
	return err
}

func (c *Controller) positionLocked() time.Duration {
	position, err := c.resource.Position()
	if err != nil {
		return c.status.CurrentTime
	}
	return c.clampPosition(position)
}

func (c *Controller) clampPosition(position time.Duration) time.Duration {
	if position < 0 {
		return 0
	}
	if d := c.status.Duration; d > 0 && position > d {
		return d
	}
	return position
}

// update mutates the status. Callers hold opMu.
func (c *Controller) update(mutate func(*Status)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	mutate(&c.status)
}

func (c *Controller) emitLocked() {
	c.mu.RLock()
	status := c.status
	listeners := make([]subscription, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.RUnlock()

	for _, s := range listeners {
		s.fn(status)
	}
}

func clampVolume(volume float64) float64 {
	return util.Clamp(volume, constant.MinVolume, constant.MaxVolume)
}

func clampRate(rate float64) float64 {
	return util.Clamp(rate, constant.MinPlaybackRate, constant.MaxPlaybackRate)
}
