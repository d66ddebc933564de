// Package favorites keeps the stories the user marked with a heart.
package favorites

import (
	"fmt"
	"sync"
	"time"

	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/bedtime-cli/bedtime/where"
	"github.com/samber/lo"
)

// Entry is a saved favorite. Only enough is kept to list it offline.
type Entry struct {
	ID      string    `json:"id"`
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	AddedAt time.Time `json:"added_at"`
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s (%s)", e.Title, e.Slug)
}

func newEntry(s *story.Story) *Entry {
	return &Entry{
		ID:      s.ID,
		Slug:    s.Slug,
		Title:   s.Title,
		AddedAt: time.Now(),
	}
}

var (
	mu     sync.Mutex
	cacher = filesystem.Store[[]*Entry](where.Favorites(), 0)
)

func get() ([]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return []*Entry{}, nil
	}
	return cached, nil
}

// List returns favorites in the order they were added.
func List() ([]*Entry, error) {
	mu.Lock()
	defer mu.Unlock()
	return get()
}

// Contains reports whether the story with the given ID is a favorite.
func Contains(id string) (bool, error) {
	entries, err := List()
	if err != nil {
		return false, err
	}

	return lo.ContainsBy(entries, func(e *Entry) bool { return e.ID == id }), nil
}

// Add appends s. Adding a favorite twice keeps the first entry.
func Add(s *story.Story) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := get()
	if err != nil {
		return err
	}

	if lo.ContainsBy(entries, func(e *Entry) bool { return e.ID == s.ID }) {
		return nil
	}

	return cacher.Set(append(entries, newEntry(s)))
}

// Remove deletes the favorite with the given ID, if any.
func Remove(id string) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := get()
	if err != nil {
		return err
	}

	kept := lo.Reject(entries, func(e *Entry, _ int) bool { return e.ID == id })
	if len(kept) == len(entries) {
		return nil
	}
	return cacher.Set(kept)
}

// Toggle adds s when it is missing and removes it otherwise.
// It reports whether s is a favorite afterwards.
func Toggle(s *story.Story) (bool, error) {
	mu.Lock()
	defer mu.Unlock()

	entries, err := get()
	if err != nil {
		return false, err
	}

	kept := lo.Reject(entries, func(e *Entry, _ int) bool { return e.ID == s.ID })
	if len(kept) != len(entries) {
		return false, cacher.Set(kept)
	}

	return true, cacher.Set(append(entries, newEntry(s)))
}
