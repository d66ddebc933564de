package inline

import (
	"encoding/json"
	"io"

	"github.com/bedtime-cli/bedtime/favorites"
	"github.com/bedtime-cli/bedtime/offline"
	"github.com/bedtime-cli/bedtime/story"
)

type Story struct {
	*story.Story

	Favorite   bool `json:"favorite"`
	Downloaded bool `json:"downloaded"`
}

type Output struct {
	Query      string   `json:"query"`
	Language   string   `json:"language"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	Total      int      `json:"total"`
	Result     []*Story `json:"result"`
}

func newStory(s *story.Story, includeContent bool) *Story {
	if !includeContent {
		stripped := *s
		stripped.Content = ""
		s = &stripped
	}

	favorite, _ := favorites.Contains(s.ID)
	return &Story{
		Story:      s,
		Favorite:   favorite,
		Downloaded: offline.Has(s.ID),
	}
}

func writeJson(out io.Writer, page story.Page[*story.Story], options *Options) error {
	result := make([]*Story, len(page.Items))
	for i, s := range page.Items {
		result[i] = newStory(s, options.IncludeContent)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(&Output{
		Query:      options.Filters.Query,
		Language:   options.Language,
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Total:      page.Total,
		Result:     result,
	})
}
