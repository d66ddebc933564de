package player

import (
	"context"
	"time"

	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/log"
)

// ramp is an in-progress fade. Status.Volume keeps the target volume while
// only the resource gain moves.
type ramp struct {
	from, to float64
	step     int
	pause    bool
}

func (r *ramp) gain() float64 {
	return r.from + (r.to-r.from)*float64(r.step)/constant.FadeSteps
}

// FadeIn starts playback silently and raises the gain to the volume over d.
func (c *Controller) FadeIn(d time.Duration) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed {
		return ErrClosed
	}

	c.cancelFadeLocked(false)
	if c.resource == nil || tooShort(d) || c.status.IsPlaying {
		return c.playLocked()
	}

	if err := c.resource.SetVolume(0); err != nil {
		return c.failLocked(err)
	}
	c.gain = 0

	if err := c.playLocked(); err != nil {
		c.restoreGainLocked()
		return err
	}

	c.startRampLocked(&ramp{from: 0, to: c.status.Volume}, d)
	return nil
}

// FadeOut lowers the gain to silence over d and then pauses.
func (c *Controller) FadeOut(d time.Duration) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed || c.resource == nil || !c.status.IsPlaying {
		return nil
	}

	c.cancelFadeLocked(false)
	if tooShort(d) {
		return c.pauseLocked()
	}

	c.startRampLocked(&ramp{from: c.gain, to: 0, pause: true}, d)
	return nil
}

// Fading reports whether a fade is in progress.
func (c *Controller) Fading() bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.ramp != nil
}

// tooShort reports whether d leaves less than a nanosecond per fade step.
func tooShort(d time.Duration) bool {
	return d/constant.FadeSteps <= 0
}

func (c *Controller) startRampLocked(r *ramp, d time.Duration) {
	c.ramp = r
	c.fade.StartEvery(d / constant.FadeSteps)
}

func (c *Controller) fadeStep(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if ctx.Err() != nil || c.closed || c.ramp == nil || c.resource == nil {
		return
	}

	r := c.ramp
	r.step++

	if err := c.resource.SetVolume(r.gain()); err != nil {
		log.Warnf("fade: %v", err)
	} else {
		c.gain = r.gain()
	}

	if r.step < constant.FadeSteps {
		return
	}

	c.ramp = nil
	c.fade.Stop()

	if r.pause {
		if err := c.pauseLocked(); err != nil {
			return
		}
		c.restoreGainLocked()
	}
}

// cancelFadeLocked abandons the running fade. With restore the gain jumps
// back to the target volume.
func (c *Controller) cancelFadeLocked(restore bool) {
	if c.ramp == nil {
		return
	}

	c.ramp = nil
	c.fade.Stop()

	if restore {
		c.restoreGainLocked()
	}
}

func (c *Controller) restoreGainLocked() {
	if c.resource == nil {
		return
	}

	if err := c.resource.SetVolume(c.status.Volume); err != nil {
		log.Warnf("restore volume: %v", err)
		return
	}
	c.gain = c.status.Volume
}
