package history

import (
	"fmt"
	"time"

	"github.com/bedtime-cli/bedtime/story"
	"github.com/bedtime-cli/bedtime/util"
	"github.com/dustin/go-humanize"
)

// Entry represents a story the user read or listened to.
type Entry struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`

	// ListenedSeconds is the furthest point reached in the narration.
	ListenedSeconds int `json:"listened_seconds"`
	DurationSeconds int `json:"duration_seconds"`

	UpdatedAt time.Time `json:"updated_at"`
}

func newEntry(s *story.Story, listened time.Duration) *Entry {
	e := &Entry{
		ID:              s.ID,
		Slug:            s.Slug,
		Title:           s.Title,
		ListenedSeconds: int(listened.Seconds()),
		UpdatedAt:       time.Now(),
	}

	if s.Audio != nil {
		e.DurationSeconds = s.Audio.Duration
	}
	return e
}

// Listened returns how far the narration got.
func (e *Entry) Listened() time.Duration {
	return time.Duration(e.ListenedSeconds) * time.Second
}

// Duration is zero for stories that were only read.
func (e *Entry) Duration() time.Duration {
	return time.Duration(e.DurationSeconds) * time.Second
}

// Progress is the listened fraction in [0, 1].
func (e *Entry) Progress() float64 {
	if e.DurationSeconds <= 0 {
		return 0
	}
	return util.Clamp(float64(e.ListenedSeconds)/float64(e.DurationSeconds), 0, 1)
}

func (e *Entry) String() string {
	if e.DurationSeconds <= 0 {
		return fmt.Sprintf("%s, read %s", e.Title, humanize.Time(e.UpdatedAt))
	}

	return fmt.Sprintf(
		"%s : %s / %s, %s",
		e.Title,
		util.FormatClock(e.Listened()),
		util.FormatClock(e.Duration()),
		humanize.Time(e.UpdatedAt),
	)
}
