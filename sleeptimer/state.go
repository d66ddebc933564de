package sleeptimer

import (
	"time"

	"github.com/bedtime-cli/bedtime/util"
)

// Phase is the position of the timer in its state machine.
type Phase int

const (
	Idle Phase = iota
	Running
	Paused
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// State is a snapshot of the countdown.
//
// Paused implies Active, and Remaining never exceeds SelectedMinutes*60.
type State struct {
	Active          bool `json:"active"`
	Paused          bool `json:"paused"`
	Remaining       int  `json:"remaining_seconds"`
	SelectedMinutes int  `json:"selected_minutes"`
}

// Phase derives the state machine position from the flags.
func (s State) Phase() Phase {
	switch {
	case !s.Active:
		return Idle
	case s.Paused:
		return Paused
	default:
		return Running
	}
}

// RemainingDuration returns Remaining as a time.Duration.
func (s State) RemainingDuration() time.Duration {
	return time.Duration(s.Remaining) * time.Second
}

// FormatRemaining renders the remaining time as m:ss.
func (s State) FormatRemaining() string {
	return util.FormatClock(s.RemainingDuration())
}
