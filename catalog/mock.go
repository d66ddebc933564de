package catalog

import (
	"context"
	"strings"

	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Mock serves a small built-in catalog. It ignores the language.
type Mock struct {
	stories []*story.Story
	tags    []*story.Tag
}

// NewMock returns the built-in catalog.
func NewMock() *Mock {
	return &Mock{stories: mockStories(), tags: mockTags()}
}

func (m *Mock) Stories(ctx context.Context, _ string) ([]*story.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return story.Filters{}.Apply(m.stories), nil
}

func (m *Mock) StoryByID(ctx context.Context, id, _ string) (*story.Story, error) {
	return m.find(ctx, func(s *story.Story) bool { return s.ID == id })
}

func (m *Mock) StoryBySlug(ctx context.Context, slug, _ string) (*story.Story, error) {
	return m.find(ctx, func(s *story.Story) bool { return s.Slug == slug })
}

func (m *Mock) find(ctx context.Context, predicate func(*story.Story) bool) (*story.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, ok := lo.Find(m.stories, predicate)
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Mock) StoriesByTag(ctx context.Context, tagSlug, _ string) ([]*story.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return story.Filters{Tags: []string{tagSlug}}.Apply(m.stories), nil
}

// Search also accepts fuzzy matches on titles, so "ltlstar" finds "The Little Star".
func (m *Mock) Search(ctx context.Context, query, _ string) ([]*story.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []*story.Story{}, nil
	}

	matched := lo.Filter(m.stories, func(s *story.Story, _ int) bool {
		return story.MatchQuery(s, query) || fuzzy.MatchFold(query, s.Title)
	})
	return story.Filters{}.Apply(matched), nil
}

func (m *Mock) Tags(ctx context.Context, _ string) ([]*story.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.tags, nil
}

func (m *Mock) Locales(ctx context.Context) ([]*story.Locale, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return []*story.Locale{
		{Code: constant.English, Name: "English"},
		{Code: constant.Polish, Name: "Polish"},
		{Code: constant.Russian, Name: "Russian"},
	}, nil
}
