package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/log"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/metafates/gache"
	"github.com/samber/lo"
)

// ErrOffline is returned when the backend is unreachable and nothing was saved before.
var ErrOffline = errors.New("offline and no saved copy available")

// snapshot is the last successful answer for every request kind.
type snapshot struct {
	Stories map[string][]*story.Story `json:"stories"`
	Details map[string]*story.Story   `json:"details"`
	Tags    map[string][]*story.Tag   `json:"tags"`
	Locales []*story.Locale           `json:"locales"`
	SavedAt time.Time                 `json:"saved_at"`
}

func newSnapshot() *snapshot {
	return &snapshot{
		Stories: make(map[string][]*story.Story),
		Details: make(map[string]*story.Story),
		Tags:    make(map[string][]*story.Tag),
	}
}

func detailKey(lang, ref string) string {
	return lang + "/" + ref
}

// Offline wraps a catalog and saves every successful answer to disk.
// When the backend cannot be reached the saved answers are served instead.
type Offline struct {
	inner  Catalog
	online func(ctx context.Context) bool

	mu    sync.Mutex
	cache *gache.Cache[*snapshot]
}

// NewOffline keeps snapshots of inner at path. online is asked before every
// call, a nil func means always online.
func NewOffline(inner Catalog, path string, online func(ctx context.Context) bool) *Offline {
	if online == nil {
		online = func(context.Context) bool { return true }
	}

	return &Offline{
		inner:  inner,
		online: online,
		cache: filesystem.Store[*snapshot](path, 0),
	}
}

// SavedAt reports when the snapshot was last updated.
func (o *Offline) SavedAt() (time.Time, bool) {
	snap := o.load()
	return snap.SavedAt, !snap.SavedAt.IsZero()
}

func (o *Offline) load() *snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap, expired, err := o.cache.Get()
	if err != nil || expired || snap == nil {
		return newSnapshot()
	}
	return snap
}

func (o *Offline) save(update func(*snapshot)) {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap, expired, err := o.cache.Get()
	if err != nil || expired || snap == nil {
		snap = newSnapshot()
	}

	update(snap)
	snap.SavedAt = time.Now()

	if err := o.cache.Set(snap); err != nil {
		log.Warnf("save catalog snapshot: %v", err)
	}
}

// fetch runs call when online and falls back to the snapshot otherwise or on failure.
func fetch[T any](
	ctx context.Context,
	o *Offline,
	call func() (T, error),
	store func(*snapshot, T),
	saved func(*snapshot) (T, bool),
) (T, error) {
	var (
		value T
		err   = ErrOffline
	)

	if o.online(ctx) {
		value, err = call()
		if err == nil {
			o.save(func(s *snapshot) { store(s, value) })
			return value, nil
		}
		if errors.Is(err, ErrNotFound) {
			return value, err
		}
	}

	if cached, ok := saved(o.load()); ok {
		log.Infof("serving saved catalog: %v", err)
		return cached, nil
	}

	if errors.Is(err, ErrOffline) {
		return value, err
	}
	return value, fmt.Errorf("%w (%w)", err, ErrOffline)
}

func (o *Offline) Stories(ctx context.Context, lang string) ([]*story.Story, error) {
	return fetch(ctx, o,
		func() ([]*story.Story, error) { return o.inner.Stories(ctx, lang) },
		func(s *snapshot, stories []*story.Story) { s.Stories[lang] = stories },
		func(s *snapshot) ([]*story.Story, bool) {
			stories, ok := s.Stories[lang]
			return stories, ok
		},
	)
}

// savedStory looks in the saved details first, then in the saved lists.
func savedStory(s *snapshot, lang string, match func(*story.Story) bool) (*story.Story, bool) {
	for key, st := range s.Details {
		if strings.HasPrefix(key, lang+"/") && match(st) {
			return st, true
		}
	}
	return lo.Find(s.Stories[lang], match)
}

func (o *Offline) StoryByID(ctx context.Context, id, lang string) (*story.Story, error) {
	match := func(s *story.Story) bool { return s.ID == id }
	return fetch(ctx, o,
		func() (*story.Story, error) { return o.inner.StoryByID(ctx, id, lang) },
		func(s *snapshot, st *story.Story) { s.Details[detailKey(lang, st.ID)] = st },
		func(s *snapshot) (*story.Story, bool) { return savedStory(s, lang, match) },
	)
}

func (o *Offline) StoryBySlug(ctx context.Context, slug, lang string) (*story.Story, error) {
	match := func(s *story.Story) bool { return s.Slug == slug }
	return fetch(ctx, o,
		func() (*story.Story, error) { return o.inner.StoryBySlug(ctx, slug, lang) },
		func(s *snapshot, st *story.Story) { s.Details[detailKey(lang, st.ID)] = st },
		func(s *snapshot) (*story.Story, bool) { return savedStory(s, lang, match) },
	)
}

func (o *Offline) StoriesByTag(ctx context.Context, tagSlug, lang string) ([]*story.Story, error) {
	return fetch(ctx, o,
		func() ([]*story.Story, error) { return o.inner.StoriesByTag(ctx, tagSlug, lang) },
		func(*snapshot, []*story.Story) {},
		func(s *snapshot) ([]*story.Story, bool) {
			stories, ok := s.Stories[lang]
			return story.Filters{Tags: []string{tagSlug}}.Apply(stories), ok
		},
	)
}

func (o *Offline) Search(ctx context.Context, query, lang string) ([]*story.Story, error) {
	return fetch(ctx, o,
		func() ([]*story.Story, error) { return o.inner.Search(ctx, query, lang) },
		func(*snapshot, []*story.Story) {},
		func(s *snapshot) ([]*story.Story, bool) {
			stories, ok := s.Stories[lang]
			if query == "" {
				return []*story.Story{}, ok
			}
			return story.Filters{Query: query}.Apply(stories), ok
		},
	)
}

func (o *Offline) Tags(ctx context.Context, lang string) ([]*story.Tag, error) {
	return fetch(ctx, o,
		func() ([]*story.Tag, error) { return o.inner.Tags(ctx, lang) },
		func(s *snapshot, tags []*story.Tag) { s.Tags[lang] = tags },
		func(s *snapshot) ([]*story.Tag, bool) {
			tags, ok := s.Tags[lang]
			return tags, ok
		},
	)
}

func (o *Offline) Locales(ctx context.Context) ([]*story.Locale, error) {
	return fetch(ctx, o,
		func() ([]*story.Locale, error) { return o.inner.Locales(ctx) },
		func(s *snapshot, locales []*story.Locale) { s.Locales = locales },
		func(s *snapshot) ([]*story.Locale, bool) { return s.Locales, s.Locales != nil },
	)
}
