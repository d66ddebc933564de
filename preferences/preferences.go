// Package preferences stores the per-user settings that can be changed from the app,
// layered over the defaults from the config file.
package preferences

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/bedtime-cli/bedtime/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	FontSmall  = "small"
	FontMedium = "medium"
	FontLarge  = "large"
)

// FontSizes lists the accepted values of Preferences.FontSize.
var FontSizes = []string{FontSmall, FontMedium, FontLarge}

// Preferences is everything the user can tune without editing the config file.
type Preferences struct {
	Language      string   `json:"language" jsonschema:"enum=en,enum=pl,enum=ru"`
	AgeGroups     []string `json:"age_groups" jsonschema:"description=Age groups shown in story lists"`
	AutoPlay      bool     `json:"auto_play"`
	SleepTimer    int      `json:"sleep_timer" jsonschema:"description=Default sleep timer in minutes,minimum=0"`
	NightMode     bool     `json:"night_mode"`
	FontSize      string   `json:"font_size" jsonschema:"enum=small,enum=medium,enum=large"`
	AudioSpeed    float64  `json:"audio_speed" jsonschema:"minimum=0.5,maximum=2"`
	Notifications bool     `json:"notifications"`
}

// Defaults returns the preferences of a user who never changed anything.
func Defaults() *Preferences {
	return &Preferences{
		Language:      viper.GetString(key.CatalogLanguage),
		AgeGroups:     append([]string(nil), story.AgeGroups...),
		AutoPlay:      viper.GetBool(key.AudioAutoPlay),
		SleepTimer:    viper.GetInt(key.SleepDefaultMinutes),
		NightMode:     false,
		FontSize:      FontMedium,
		AudioSpeed:    viper.GetFloat64(key.AudioRate),
		Notifications: true,
	}
}

// Validate reports the first invalid field.
func (p *Preferences) Validate() error {
	if !story.ValidLanguage(p.Language) {
		return fmt.Errorf("language: unsupported %q, expected one of %v", p.Language, story.Languages)
	}

	if invalid, ok := lo.Find(p.AgeGroups, func(g string) bool { return !story.ValidAgeGroup(g) }); ok {
		return fmt.Errorf("age_groups: unknown %q, expected some of %v", invalid, story.AgeGroups)
	}

	if p.SleepTimer < 0 {
		return errors.New("sleep_timer: must not be negative")
	}

	if !lo.Contains(FontSizes, p.FontSize) {
		return fmt.Errorf("font_size: unsupported %q, expected one of %v", p.FontSize, FontSizes)
	}

	if p.AudioSpeed < constant.MinPlaybackRate || p.AudioSpeed > constant.MaxPlaybackRate {
		return fmt.Errorf(
			"audio_speed: %v is out of range [%v, %v]",
			p.AudioSpeed, constant.MinPlaybackRate, constant.MaxPlaybackRate,
		)
	}

	return nil
}

// ReaderWidth scales a column width for the chosen font size.
// A larger font means fewer characters per line.
func (p *Preferences) ReaderWidth(base int) int {
	switch p.FontSize {
	case FontSmall:
		return base * 5 / 4
	case FontLarge:
		return base * 3 / 4
	default:
		return base
	}
}

var (
	mu sync.Mutex

	// cacher keeps only what the user set, so changed config defaults still apply to the rest.
	cacher = filesystem.Store[json.RawMessage](where.Preferences(), 0)
)

func load() (*Preferences, error) {
	prefs := Defaults()

	stored, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || len(stored) == 0 {
		return prefs, nil
	}

	if err := json.Unmarshal(stored, prefs); err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	return prefs, nil
}

// Load returns the stored preferences merged over the defaults.
func Load() (*Preferences, error) {
	mu.Lock()
	defer mu.Unlock()
	return load()
}

// Update applies change to the current preferences and saves the result
// when change succeeds and the result is valid.
func Update(change func(*Preferences) error) (*Preferences, error) {
	mu.Lock()
	defer mu.Unlock()

	prefs, err := load()
	if err != nil {
		return nil, err
	}

	if err := change(prefs); err != nil {
		return nil, err
	}

	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	data, err := json.Marshal(prefs)
	if err != nil {
		return nil, err
	}

	return prefs, cacher.Set(data)
}

// Reset forgets every stored preference.
func Reset() error {
	mu.Lock()
	defer mu.Unlock()
	return cacher.Set(nil)
}
