package story

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// SortBy orders filtered stories.
type SortBy string

const (
	SortNewest      SortBy = "newest"
	SortOldest      SortBy = "oldest"
	SortTitle       SortBy = "title"
	SortReadingTime SortBy = "reading_time"
)

// SortOptions lists every accepted SortBy value.
var SortOptions = []SortBy{SortNewest, SortOldest, SortTitle, SortReadingTime}

// ParseSortBy validates s. An empty string means newest first.
func ParseSortBy(s string) (SortBy, error) {
	if s == "" {
		return SortNewest, nil
	}

	sortBy := SortBy(strings.ToLower(s))
	if !lo.Contains(SortOptions, sortBy) {
		return "", fmt.Errorf("unknown sort order %q, expected one of %v", s, SortOptions)
	}
	return sortBy, nil
}

// Filters narrows and orders a list of stories. Zero values match everything.
type Filters struct {
	Query     string
	Tags      []string
	AgeGroups []string
	HasAudio  bool
	SortBy    SortBy
}

// Match reports whether s passes every filter.
func (f Filters) Match(s *Story) bool {
	if f.HasAudio && !s.HasAudio() {
		return false
	}

	if len(f.AgeGroups) > 0 && !lo.Contains(f.AgeGroups, s.AgeGroup) {
		return false
	}

	if len(f.Tags) > 0 && !lo.SomeBy(f.Tags, s.HasTag) {
		return false
	}

	return MatchQuery(s, f.Query)
}

// MatchQuery does a case-insensitive substring search over title,
// description, content and tags.
func MatchQuery(s *Story, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	fields := append([]string{s.Title, s.Description, s.Content}, s.Tags...)
	return lo.SomeBy(fields, func(field string) bool {
		return strings.Contains(strings.ToLower(field), query)
	})
}

// Apply returns the matching stories in the requested order.
// The input slice is left untouched.
func (f Filters) Apply(stories []*Story) []*Story {
	matched := lo.Filter(stories, func(s *Story, _ int) bool {
		return f.Match(s)
	})

	slices.SortStableFunc(matched, f.compare)
	return matched
}

func (f Filters) compare(a, b *Story) int {
	switch f.SortBy {
	case SortOldest:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortReadingTime:
		return a.ReadingTime - b.ReadingTime
	default:
		return b.CreatedAt.Compare(a.CreatedAt)
	}
}
