// Package story defines the catalog's content types and the filtering applied to them.
package story

import (
	"strings"
	"time"

	"github.com/bedtime-cli/bedtime/constant"
	"github.com/samber/lo"
)

// Story is a single bedtime story in one language.
type Story struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	ReadingTime int       `json:"reading_time" jsonschema:"description=Estimated reading time in minutes"`
	AgeGroup    string    `json:"age_group" jsonschema:"enum=3-5,enum=6-8,enum=9-12"`
	Tags        []string  `json:"tags"`
	Images      []Image   `json:"images,omitempty"`
	Audio       *Audio    `json:"audio,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasAudio reports whether the story has narration in its language.
func (s *Story) HasAudio() bool {
	return s.Audio != nil && s.Audio.URL != ""
}

// HasTag matches a tag by name or slug, ignoring case.
func (s *Story) HasTag(tag string) bool {
	return lo.ContainsBy(s.Tags, func(t string) bool {
		return strings.EqualFold(t, tag) || strings.EqualFold(Slugify(t), tag)
	})
}

// Paragraphs splits the content on blank lines.
func (s *Story) Paragraphs() []string {
	return lo.FilterMap(strings.Split(s.Content, "\n\n"), func(p string, _ int) (string, bool) {
		p = strings.TrimSpace(p)
		return p, p != ""
	})
}

func (s *Story) String() string {
	return s.Title
}

// Image is an illustration attached to a story.
type Image struct {
	ID          string `json:"id"`
	Src         string `json:"src"`
	Alt         string `json:"alt"`
	Position    int    `json:"position"`
	FileName    string `json:"file_name,omitempty"`
	FileSize    int64  `json:"file_size,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
	StoragePath string `json:"storage_path,omitempty"`
}

// Audio is the narration of a story in one language.
type Audio struct {
	ID          string    `json:"id"`
	StoryID     string    `json:"story_id"`
	Language    string    `json:"language"`
	URL         string    `json:"audio_url"`
	FileName    string    `json:"file_name,omitempty"`
	FileSize    int64     `json:"file_size,omitempty"`
	Duration    int       `json:"duration,omitempty" jsonschema:"description=Length in seconds"`
	MimeType    string    `json:"mime_type"`
	StoragePath string    `json:"storage_path,omitempty"`
	Narrator    string    `json:"narrator_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Length is the narration duration.
func (a *Audio) Length() time.Duration {
	return time.Duration(a.Duration) * time.Second
}

// Tag is a story category.
type Tag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Locale is a language the catalog is published in.
type Locale struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// AgeGroups lists the supported age groups, youngest first.
var AgeGroups = []string{constant.AgeToddler, constant.AgeChildren, constant.AgePreteen}

// Languages lists the supported language codes.
var Languages = []string{constant.English, constant.Polish, constant.Russian}

// ValidAgeGroup reports whether group is one of AgeGroups.
func ValidAgeGroup(group string) bool {
	return lo.Contains(AgeGroups, group)
}

// ValidLanguage reports whether code is one of Languages.
func ValidLanguage(code string) bool {
	return lo.Contains(Languages, code)
}

// Slugify lowercases s and joins its words with dashes.
func Slugify(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127)
	})
	return strings.Join(fields, "-")
}
