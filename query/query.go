// Package query remembers story searches and suggests them again while typing.
package query

import (
	"strings"
	"sync"
	"time"

	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// search is a remembered query. Hits grow every time it is searched again.
type search struct {
	Query string    `json:"query"`
	Hits  int       `json:"hits"`
	Last  time.Time `json:"last"`
}

var store = filesystem.Store[map[string]*search](where.Queries(), 0)

var (
	mu sync.Mutex

	// memo holds sorted suggestions per normalized prefix until the next Remember.
	memo = make(map[string][]string)
)

// normalize lowercases q and collapses its whitespace.
func normalize(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

func searches() map[string]*search {
	stored, expired, err := store.Get()
	if err != nil || expired || stored == nil {
		return make(map[string]*search)
	}
	return stored
}

// Remember records q, adding weight to its hits.
func Remember(q string, weight int) error {
	q = normalize(q)
	if q == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	all := searches()
	s, ok := all[q]
	if !ok {
		s = &search{Query: q}
		all[q] = s
	}
	s.Hits += weight
	s.Last = time.Now()

	memo = make(map[string][]string)
	return store.Set(all)
}

// SuggestMany lists remembered queries that fuzzily match q,
// most searched first and the most recent among equals.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return nil
	}

	q = normalize(q)

	mu.Lock()
	defer mu.Unlock()

	if suggestions, ok := memo[q]; ok {
		return suggestions
	}

	matches := lo.Filter(lo.Values(searches()), func(s *search, _ int) bool {
		return fuzzy.Match(q, s.Query)
	})
	slices.SortFunc(matches, func(a, b *search) int {
		if a.Hits != b.Hits {
			return b.Hits - a.Hits
		}
		return b.Last.Compare(a.Last)
	})

	suggestions := lo.Map(matches, func(s *search, _ int) string { return s.Query })
	memo[q] = suggestions
	return suggestions
}

// Suggest is the best of SuggestMany.
func Suggest(q string) mo.Option[string] {
	if suggestions := SuggestMany(q); len(suggestions) > 0 {
		return mo.Some(suggestions[0])
	}
	return mo.None[string]()
}
