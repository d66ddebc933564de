package catalog

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/bedtime-cli/bedtime/story"
	"github.com/samber/lo"
)

// translated decodes an embedded translation that PostgREST returns either
// as an object or as a one-element array depending on the relationship.
type translated[T any] []T

func (t *translated[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}

	if len(data) > 0 && data[0] == '[' {
		var many []T
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*t = many
		return nil
	}

	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*t = []T{one}
	return nil
}

func (t translated[T]) first() (T, bool) {
	if len(t) == 0 {
		var zero T
		return zero, false
	}
	return t[0], true
}

type storyTranslation struct {
	Language    string `json:"language"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	ReadingTime int    `json:"reading_time"`
}

type storyTagRow struct {
	Tags story.Tag `json:"tags"`
}

type storyRow struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Slug        string    `json:"slug"`
	ReadingTime int       `json:"reading_time"`
	AgeGroup    string    `json:"age_group"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	StoryTags        []storyTagRow                `json:"story_tags"`
	StoryImages      []story.Image                `json:"story_images"`
	StoryTranslation translated[storyTranslation] `json:"story_translation"`
	StoryAudio       []story.Audio                `json:"story_audio"`
}

// toStory prefers translated fields and picks the narration in lang.
func (r *storyRow) toStory(lang string) *story.Story {
	s := &story.Story{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Content:     r.Content,
		Slug:        r.Slug,
		ReadingTime: r.ReadingTime,
		AgeGroup:    r.AgeGroup,
		Images:      r.StoryImages,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Tags: lo.Map(r.StoryTags, func(t storyTagRow, _ int) string {
			return t.Tags.Name
		}),
	}

	if tr, ok := r.StoryTranslation.first(); ok {
		s.Title = lo.Ternary(tr.Title != "", tr.Title, s.Title)
		s.Description = lo.Ternary(tr.Description != "", tr.Description, s.Description)
		s.Content = lo.Ternary(tr.Content != "", tr.Content, s.Content)
		s.ReadingTime = lo.Ternary(tr.ReadingTime != 0, tr.ReadingTime, s.ReadingTime)
	}

	if audio, ok := lo.Find(r.StoryAudio, func(a story.Audio) bool { return a.Language == lang }); ok {
		s.Audio = &audio
	}

	return s
}

type tagTranslation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type tagRow struct {
	story.Tag
	TagTranslation translated[tagTranslation] `json:"tag_translation"`
}

func (r *tagRow) toTag() *story.Tag {
	tag := r.Tag
	if tr, ok := r.TagTranslation.first(); ok {
		tag.Name = lo.Ternary(tr.Name != "", tr.Name, tag.Name)
		tag.Description = lo.Ternary(tr.Description != "", tr.Description, tag.Description)
	}
	return &tag
}
