// Package history provides the implementation for tracking and persisting what the user read and listened to.
package history

import (
	"sync"
	"time"

	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/bedtime-cli/bedtime/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

const defaultLimit = 50

var (
	mu sync.Mutex

	// cacher provides a disk-backed list of entries, most recent first.
	cacher = filesystem.Store[[]*Entry](where.History(), 0)
)

func limit() int {
	if n := viper.GetInt(key.HistoryLimit); n > 0 {
		return n
	}
	return defaultLimit
}

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

// Get returns the history, most recent first.
func Get() ([]*Entry, error) {
	mu.Lock()
	defer mu.Unlock()
	return get()
}

// Find returns the entry for the story with the given ID.
func Find(id string) mo.Option[*Entry] {
	entries, err := Get()
	if err != nil {
		return mo.None[*Entry]()
	}

	entry, ok := lo.Find(entries, func(e *Entry) bool { return e.ID == id })
	if !ok {
		return mo.None[*Entry]()
	}
	return mo.Some(entry)
}

// Save moves s to the front of the history, dropping the oldest entries
// beyond the limit. Zero listened marks a story that was only read.
func Save(s *story.Story, listened time.Duration) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := get()
	if err != nil {
		return err
	}

	record := newEntry(s, listened)

	// Keep the furthest point reached so replaying the start does not lose progress.
	if existing, ok := lo.Find(entries, func(e *Entry) bool { return e.ID == s.ID }); ok {
		record.ListenedSeconds = max(record.ListenedSeconds, existing.ListenedSeconds)
		if record.DurationSeconds == 0 {
			record.DurationSeconds = existing.DurationSeconds
		}
	}

	rest := lo.Reject(entries, func(e *Entry, _ int) bool { return e.ID == s.ID })
	entries = append([]*Entry{record}, rest...)

	if n := limit(); len(entries) > n {
		entries = entries[:n]
	}

	return cacher.Set(entries)
}

// Remove permanently deletes the entry of the story with the given ID.
func Remove(id string) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := get()
	if err != nil {
		return err
	}

	return cacher.Set(lo.Reject(entries, func(e *Entry, _ int) bool { return e.ID == id }))
}

// Clear forgets everything.
func Clear() error {
	mu.Lock()
	defer mu.Unlock()
	return cacher.Set([]*Entry{})
}
