// Package catalog fetches stories, tags and locales from a backend.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bedtime-cli/bedtime/auth"
	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/internal/backoff"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/network"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/bedtime-cli/bedtime/where"
	"github.com/spf13/viper"
)

// ErrNotFound is returned when a story or tag does not exist.
var ErrNotFound = errors.New("not found")

// Catalog is a source of stories in several languages.
type Catalog interface {
	// Stories returns every story published in lang, newest first.
	Stories(ctx context.Context, lang string) ([]*story.Story, error)

	// StoryByID returns a story with its narration in lang.
	StoryByID(ctx context.Context, id, lang string) (*story.Story, error)

	// StoryBySlug returns a story with its narration in lang.
	StoryBySlug(ctx context.Context, slug, lang string) (*story.Story, error)

	// StoriesByTag returns stories carrying the tag with the given slug.
	StoriesByTag(ctx context.Context, tagSlug, lang string) ([]*story.Story, error)

	// Search matches query against titles, descriptions and content.
	// An empty query returns no stories.
	Search(ctx context.Context, query, lang string) ([]*story.Story, error)

	// Tags returns every tag, with names in lang.
	Tags(ctx context.Context, lang string) ([]*story.Tag, error)

	// Locales returns the active languages.
	Locales(ctx context.Context) ([]*story.Locale, error)
}

// New builds the catalog selected in the configuration. The remote catalog
// is wrapped so it keeps working offline from its last snapshot.
func New() (Catalog, error) {
	switch source := viper.GetString(key.CatalogSource); source {
	case constant.CatalogMock, "":
		return NewMock(), nil
	case constant.CatalogRemote:
		endpoint := viper.GetString(key.CatalogEndpoint)
		apiKey, err := auth.APIKey()
		if err != nil {
			return nil, fmt.Errorf("catalog api key: %w", err)
		}

		remote := NewRemote(endpoint, apiKey, RemoteOptions{
			Timeout: time.Duration(viper.GetInt(key.CatalogTimeoutSeconds)) * time.Second,
			Retry: backoff.Policy{
				Attempts: viper.GetInt(key.CatalogRetryAttempts),
				Base:     backoff.Default.Base,
				Max:      backoff.Default.Max,
			},
		})

		return NewOffline(remote, where.Catalog(), func(ctx context.Context) bool {
			return network.Online(ctx, endpoint)
		}), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", source)
	}
}

// Find resolves a story by slug, falling back to its ID.
func Find(ctx context.Context, c Catalog, ref, lang string) (*story.Story, error) {
	s, err := c.StoryBySlug(ctx, ref, lang)
	if errors.Is(err, ErrNotFound) {
		s, err = c.StoryByID(ctx, ref, lang)
	}
	if err != nil {
		return nil, fmt.Errorf("story %q: %w", ref, err)
	}
	return s, nil
}
