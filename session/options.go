package session

import (
	"time"

	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/preferences"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// Options configure a Session.
type Options struct {
	// Volume and Rate are applied to the controller when present.
	Volume mo.Option[float64]
	Rate   mo.Option[float64]

	// SleepMinutes starts the sleep timer with every story. Zero disables it.
	SleepMinutes int

	// AutoPlay starts the narration as soon as it is loaded.
	AutoPlay bool

	// FadeIn and FadeOut are the lengths of the fades on start and on timer expiry.
	// Zero switches the fade off.
	FadeIn  time.Duration
	FadeOut time.Duration

	// SaveHistory records listening progress when the session closes.
	SaveHistory bool

	// OnExpire is called after the timer expired and playback was asked to stop.
	OnExpire func()

	// TimerInterval is the sleep timer tick, one second by default.
	TimerInterval time.Duration
}

// FromConfig builds options from the config file, overridden by the user's preferences.
func FromConfig(prefs *preferences.Preferences) Options {
	opts := Options{
		Volume:       mo.Some(viper.GetFloat64(key.AudioVolume)),
		Rate:         mo.Some(viper.GetFloat64(key.AudioRate)),
		SleepMinutes: viper.GetInt(key.SleepDefaultMinutes),
		AutoPlay:     viper.GetBool(key.AudioAutoPlay),
		SaveHistory:  viper.GetBool(key.HistorySaveOnListen),
	}

	if viper.GetBool(key.AudioFadeIn) {
		opts.FadeIn = time.Duration(viper.GetInt(key.AudioFadeInMs)) * time.Millisecond
	}

	if viper.GetBool(key.SleepFadeOut) {
		opts.FadeOut = time.Duration(viper.GetInt(key.AudioFadeOutMs)) * time.Millisecond
	}

	if prefs != nil {
		opts.Rate = mo.Some(prefs.AudioSpeed)
		opts.SleepMinutes = prefs.SleepTimer
		opts.AutoPlay = prefs.AutoPlay
	}

	return opts
}

// NextPlaybackRate steps to the neighbouring offered rate. Rates off the list
// snap to the nearest offered one in the direction of the step.
func NextPlaybackRate(current float64, faster bool) float64 {
	rates := constant.PlaybackRates
	i, found := slices.BinarySearch(rates, current)

	switch {
	case faster && found:
		i++
	case !faster:
		i--
	}

	return rates[max(0, min(i, len(rates)-1))]
}
