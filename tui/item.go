package tui

import (
	"fmt"
	"strings"

	"github.com/bedtime-cli/bedtime/favorites"
	"github.com/bedtime-cli/bedtime/history"
	"github.com/bedtime-cli/bedtime/icon"
	"github.com/bedtime-cli/bedtime/offline"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/bedtime-cli/bedtime/style"
	"github.com/bedtime-cli/bedtime/util"
)

// sleepOption is an entry of the sleep timer menu. Zero switches the timer off.
type sleepOption int

// listItem implements the list.Item interface, wrapping various domain models for terminal display.
type listItem struct {
	internal any

	favorite, downloaded bool
}

func newStoryItem(s *story.Story) *listItem {
	favorite, _ := favorites.Contains(s.ID)
	return &listItem{internal: s, favorite: favorite, downloaded: offline.Has(s.ID)}
}

func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case *story.Story:
		var marks []string
		if t.favorite {
			marks = append(marks, icon.Get(icon.Heart))
		}
		if t.downloaded {
			marks = append(marks, icon.Get(icon.Download))
		}
		if len(marks) == 0 {
			return e.Title
		}
		return fmt.Sprintf("%s %s", e.Title, strings.Join(marks, " "))
	case *history.Entry:
		return e.Title
	case sleepOption:
		if e == 0 {
			return "Off"
		}
		return util.Quantify(int(e), "minute", "minutes")
	default:
		return t.FilterValue()
	}
}

func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case *story.Story:
		parts := []string{style.AgeTag(e.AgeGroup), fmt.Sprintf("%d min read", e.ReadingTime)}
		if e.HasAudio() {
			parts = append(parts, icon.Get(icon.Play)+" "+util.FormatClock(e.Audio.Length()))
		}
		return strings.Join(parts, "  ")
	case *history.Entry:
		if e.DurationSeconds == 0 {
			return style.Faint("read only")
		}
		return fmt.Sprintf("%s / %s", util.FormatClock(e.Listened()), util.FormatClock(e.Duration()))
	default:
		return ""
	}
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *story.Story:
		return e.Title
	case *history.Entry:
		return e.Title
	case sleepOption:
		return fmt.Sprint(int(e))
	default:
		return ""
	}
}
