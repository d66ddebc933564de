package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bedtime-cli/bedtime/catalog"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/bedtime-cli/bedtime/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// StoryPicker selects a single story from the results, nil when nothing fits.
type StoryPicker func([]*story.Story) *story.Story

type Options struct {
	Out      io.Writer
	Catalog  catalog.Catalog
	Language string
	Filters  story.Filters
	Page     int
	Limit    int
	Json     bool
	Picker   mo.Option[StoryPicker]

	// IncludeContent keeps the story text in JSON output.
	IncludeContent bool
}

// ParseStoryPicker understands first, last, a zero based index or a slug.
func ParseStoryPicker(description string) (StoryPicker, error) {
	description = strings.TrimSpace(description)

	switch description {
	case "":
		return nil, fmt.Errorf("empty story picker")
	case "first":
		return func(stories []*story.Story) *story.Story {
			if len(stories) == 0 {
				return nil
			}
			return stories[0]
		}, nil
	case "last":
		return func(stories []*story.Story) *story.Story {
			if len(stories) == 0 {
				return nil
			}
			return stories[len(stories)-1]
		}, nil
	}

	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(stories []*story.Story) *story.Story {
			if len(stories) == 0 {
				return nil
			}
			return stories[util.Min(int(idx), len(stories)-1)]
		}, nil
	}

	slug := strings.TrimPrefix(description, "@")
	return func(stories []*story.Story) *story.Story {
		s, _ := lo.Find(stories, func(s *story.Story) bool {
			return s.Slug == slug || s.ID == slug
		})
		return s
	}, nil
}
