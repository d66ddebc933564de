package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

var setters = map[string]func(p *Preferences, value string) error{
	"language": func(p *Preferences, value string) error {
		p.Language = value
		return nil
	},
	"age_groups": func(p *Preferences, value string) error {
		p.AgeGroups = lo.Uniq(lo.Compact(lo.Map(strings.Split(value, ","), func(g string, _ int) string {
			return strings.TrimSpace(g)
		})))
		return nil
	},
	"auto_play":     boolSetter(func(p *Preferences) *bool { return &p.AutoPlay }),
	"night_mode":    boolSetter(func(p *Preferences) *bool { return &p.NightMode }),
	"notifications": boolSetter(func(p *Preferences) *bool { return &p.Notifications }),
	"sleep_timer": func(p *Preferences, value string) (err error) {
		p.SleepTimer, err = strconv.Atoi(value)
		return err
	},
	"font_size": func(p *Preferences, value string) error {
		p.FontSize = strings.ToLower(value)
		return nil
	},
	"audio_speed": func(p *Preferences, value string) (err error) {
		p.AudioSpeed, err = strconv.ParseFloat(strings.TrimSuffix(value, "x"), 64)
		return err
	},
}

func boolSetter(field func(*Preferences) *bool) func(*Preferences, string) error {
	return func(p *Preferences, value string) (err error) {
		*field(p), err = strconv.ParseBool(value)
		return err
	}
}

// Names lists the preference names accepted by Set, sorted.
func Names() []string {
	names := lo.Keys(setters)
	slices.Sort(names)
	return names
}

// Set parses value into the preference called name and saves it.
func Set(name, value string) (*Preferences, error) {
	setter, ok := setters[name]
	if !ok {
		return nil, fmt.Errorf("unknown preference %q, expected one of %v", name, Names())
	}

	return Update(func(p *Preferences) error {
		if err := setter(p, strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	})
}
