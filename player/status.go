package player

import (
	"fmt"
	"time"

	"github.com/bedtime-cli/bedtime/util"
)

// Status is a snapshot of the controller state.
type Status struct {
	Source       string
	Loaded       bool
	IsPlaying    bool
	IsLoading    bool
	CurrentTime  time.Duration
	Duration     time.Duration
	Volume       float64
	PlaybackRate float64
	Err          error
}

// Progress is the played fraction in [0, 1].
func (s Status) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return util.Clamp(float64(s.CurrentTime)/float64(s.Duration), 0, 1)
}

// Remaining is the time left until the end of the track.
func (s Status) Remaining() time.Duration {
	return util.Max(s.Duration-s.CurrentTime, time.Duration(0))
}

func (s Status) String() string {
	state := "paused"
	switch {
	case s.IsLoading:
		state = "loading"
	case !s.Loaded:
		state = "empty"
	case s.IsPlaying:
		state = "playing"
	}

	return fmt.Sprintf(
		"%s %s/%s vol=%.0f%% rate=%.2gx",
		state,
		util.FormatClock(s.CurrentTime),
		util.FormatClock(s.Duration),
		s.Volume*100,
		s.PlaybackRate,
	)
}
