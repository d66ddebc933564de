package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bedtime-cli/bedtime/internal/backoff"
	"github.com/bedtime-cli/bedtime/log"
	"github.com/bedtime-cli/bedtime/network"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/samber/lo"
)

const (
	storySelect = "*," +
		"story_tags!inner(tag_id,tags!inner(id,name,slug,description,color))," +
		"story_images(id,src,alt,position,file_name,file_size,mime_type,storage_path)," +
		"story_translation!inner(id,language,title,description,content,reading_time)"

	audioSelect = ",story_audio!left(id,story_id,language,audio_url,file_name,file_size," +
		"duration,mime_type,storage_path,narrator_name,created_at,updated_at)"

	tagSelect = "id,name,description,slug,color,tag_translation!inner(id,name,description,language)"
)

// RemoteOptions tunes requests to the hosted catalog.
type RemoteOptions struct {
	// Timeout bounds every attempt. Zero means ten seconds.
	Timeout time.Duration
	Retry   backoff.Policy
}

// Remote reads the catalog from a PostgREST endpoint, such as the REST
// interface of a Supabase project.
type Remote struct {
	endpoint string
	apiKey   string
	options  RemoteOptions
}

// NewRemote targets endpoint, the base URL the tables live under.
func NewRemote(endpoint, apiKey string, options RemoteOptions) *Remote {
	if options.Timeout <= 0 {
		options.Timeout = 10 * time.Second
	}
	if options.Retry.Attempts <= 0 {
		options.Retry = backoff.Default
	}

	return &Remote{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		options:  options,
	}
}

func (r *Remote) headers() map[string]string {
	headers := map[string]string{"Accept": "application/json"}
	if r.apiKey != "" {
		headers["apikey"] = r.apiKey
		headers["Authorization"] = "Bearer " + r.apiKey
	}
	return headers
}

// get decodes the rows of table matching query into out. Server errors and
// transport failures are retried, client errors are not.
func (r *Remote) get(ctx context.Context, table string, query url.Values, out any) error {
	target := r.endpoint + "/" + table + "?" + query.Encode()
	logger := log.With(log.Fields{"table": table})

	attempt := 0
	err := backoff.Retry(ctx, r.options.Retry, func(ctx context.Context) error {
		attempt++
		ctx, cancel := context.WithTimeout(ctx, r.options.Timeout)
		defer cancel()

		body, err := network.Get(ctx, target, r.headers())
		if err != nil {
			logger.Warnf("attempt %d: %v", attempt, err)

			var status *network.StatusError
			if errors.As(err, &status) && !status.Temporary() {
				return backoff.Permanent(err)
			}
			return err
		}
		defer body.Close()

		if err := json.NewDecoder(body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode %s: %w", table, err))
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("catalog %s: %w", table, err)
	}
	return nil
}

func (r *Remote) stories(ctx context.Context, lang string, query url.Values) ([]*story.Story, error) {
	query.Set("story_translation.language", "eq."+lang)
	if !query.Has("order") {
		query.Set("order", "created_at.desc")
	}

	var rows []*storyRow
	if err := r.get(ctx, "stories", query, &rows); err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row *storyRow, _ int) *story.Story {
		return row.toStory(lang)
	}), nil
}

func (r *Remote) single(ctx context.Context, lang, column, value string) (*story.Story, error) {
	stories, err := r.stories(ctx, lang, url.Values{
		"select": {storySelect + audioSelect},
		column:   {"eq." + value},
		"limit":  {"1"},
	})
	if err != nil {
		return nil, err
	}

	if len(stories) == 0 {
		return nil, ErrNotFound
	}
	return stories[0], nil
}

func (r *Remote) Stories(ctx context.Context, lang string) ([]*story.Story, error) {
	return r.stories(ctx, lang, url.Values{"select": {storySelect}})
}

func (r *Remote) StoryByID(ctx context.Context, id, lang string) (*story.Story, error) {
	return r.single(ctx, lang, "id", id)
}

func (r *Remote) StoryBySlug(ctx context.Context, slug, lang string) (*story.Story, error) {
	return r.single(ctx, lang, "slug", slug)
}

func (r *Remote) StoriesByTag(ctx context.Context, tagSlug, lang string) ([]*story.Story, error) {
	return r.stories(ctx, lang, url.Values{
		"select":               {storySelect},
		"story_tags.tags.slug": {"eq." + tagSlug},
	})
}

func (r *Remote) Search(ctx context.Context, query, lang string) ([]*story.Story, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*story.Story{}, nil
	}

	pattern := `"*` + strings.NewReplacer(`"`, "", `\`, "").Replace(query) + `*"`
	return r.stories(ctx, lang, url.Values{
		"select": {storySelect},
		"or": {fmt.Sprintf(
			"(title.ilike.%[1]s,description.ilike.%[1]s,content.ilike.%[1]s)",
			pattern,
		)},
	})
}

func (r *Remote) Tags(ctx context.Context, lang string) ([]*story.Tag, error) {
	var rows []*tagRow
	err := r.get(ctx, "tags", url.Values{
		"select":                   {tagSelect},
		"tag_translation.language": {"eq." + lang},
		"order":                    {"name"},
	}, &rows)
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row *tagRow, _ int) *story.Tag {
		return row.toTag()
	}), nil
}

func (r *Remote) Locales(ctx context.Context) ([]*story.Locale, error) {
	var locales []*story.Locale
	err := r.get(ctx, "locales", url.Values{
		"select":    {"code,name"},
		"is_active": {"eq.true"},
		"order":     {"name"},
	}, &locales)
	return locales, err
}
