package constant

import "time"

// Volume and playback rate bounds accepted by the player.
const (
	MinVolume = 0.0
	MaxVolume = 1.0

	MinPlaybackRate = 0.5
	MaxPlaybackRate = 2.0

	DefaultVolume       = 1.0
	DefaultPlaybackRate = 1.0
)

// Fade ramps are split into this many equal volume steps.
const FadeSteps = 20

const (
	DefaultFadeIn  = 2 * time.Second
	DefaultFadeOut = 3 * time.Second
)

// SkipInterval is how far the skip back/forward controls move the playhead.
const SkipInterval = 30 * time.Second

// PlaybackRates lists the speeds offered by the player controls.
var PlaybackRates = []float64{0.5, 0.75, 1.0, 1.25, 1.5, 2.0}

// SleepTimerOptions lists the sleep timer lengths offered to the user, in minutes.
var SleepTimerOptions = []int{5, 10, 15, 30, 45, 60}

// DefaultSleepTimer is the sleep timer length used when the user has no preference.
const DefaultSleepTimer = 15
