package tui

import (
	"fmt"

	"github.com/bedtime-cli/bedtime/catalog"
	"github.com/bedtime-cli/bedtime/favorites"
	"github.com/bedtime-cli/bedtime/history"
	"github.com/bedtime-cli/bedtime/icon"
	"github.com/bedtime-cli/bedtime/internal/ui"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/log"
	"github.com/bedtime-cli/bedtime/query"
	"github.com/bedtime-cli/bedtime/sleeptimer"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	)

type (
	storiesLoadedMsg []*story.Story
	historyLoadedMsg []*history.Entry
	storyOpenedMsg   struct {
		story  *story.Story
		listen bool
	}
	narrationLoadedMsg struct{}
	playerUpdateMsg    struct{}
)

const volumeStep = 0.1

func (b *statefulBubble) loadStories() tea.Cmd {
	return func() tea.Msg {
		stories, err := b.catalog.Stories(b.ctx, b.language)
		if err != nil {
			return err
		}
		return storiesLoadedMsg(stories)
	}
}

func (b *statefulBubble) searchStories(q string) tea.Cmd {
	return func() tea.Msg {
		if err := query.Remember(q, 1); err != nil {
			log.Warnf("remember query: %v", err)
		}

		stories, err := b.catalog.Search(b.ctx, q, b.language)
		if err != nil {
			return err
		}
		return storiesLoadedMsg(stories)
	}
}

func (b *statefulBubble) loadHistory() tea.Cmd {
	return func() tea.Msg {
		entries, err := history.Get()
		if err != nil {
			return err
		}
		return historyLoadedMsg(entries)
	}
}

// openStory fetches the full story, list entries may lack the narration.
func (b *statefulBubble) openStory(ref string, listen bool) tea.Cmd {
	return func() tea.Msg {
		s, err := catalog.Find(b.ctx, b.catalog, ref, b.language)
		if err != nil {
			return err
		}

		if viper.GetBool(key.HistorySaveOnListen) {
			if err := history.Save(s, 0); err != nil {
				log.Warnf("save history: %v", err)
			}
		}
		return storyOpenedMsg{story: s, listen: listen}
	}
}

func (b *statefulBubble) listenTo(s *story.Story) tea.Cmd {
	return func() tea.Msg {
		if err := b.session.Start(b.ctx, s); err != nil {
			return err
		}
		return narrationLoadedMsg{}
	}
}

func (b *statefulBubble) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.updates:
			return playerUpdateMsg{}
		case <-b.ctx.Done():
			return nil
		}
	}
}

// command runs a player command off the UI goroutine and reports failures as a notification.
func (b *statefulBubble) command(name string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			log.Warnf("%s: %v", name, err)
			return fmt.Sprintf("%s %s: %v", icon.Get(icon.Fail), name, err)
		}
		return nil
	}
}

// refreshPlayer copies the latest snapshots and announces an expired timer.
func (b *statefulBubble) refreshPlayer() tea.Cmd {
	previous := b.timer
	b.status = b.session.Controller().Status()
	b.timer = b.session.Timer().State()

	if !b.prefs.Notifications {
		return nil
	}

	if previous.Phase() != sleeptimer.Idle && b.timer.Phase() == sleeptimer.Idle && b.timer.SelectedMinutes > 0 {
		return ui.Notify("%s Sleep timer ended. Good night!", icon.Get(icon.Moon))
	}
	return nil
}

func (b *statefulBubble) toggleFavorite(s *story.Story) tea.Cmd {
	return func() tea.Msg {
		added, err := favorites.Toggle(s)
		if err != nil {
			return err
		}

		if added {
			return fmt.Sprintf("%s Added %q to favorites", icon.Get(icon.Heart), s.Title)
		}
		return fmt.Sprintf("Removed %q from favorites", s.Title)
	}
}

func (b *statefulBubble) selectedStory() (*story.Story, bool) {
	item, ok := b.storiesC.SelectedItem().(*listItem)
	if !ok {
		return nil, false
	}
	s, ok := item.internal.(*story.Story)
	return s, ok
}

func (b *statefulBubble) selectedHistoryEntry() (*history.Entry, bool) {
	item, ok := b.historyC.SelectedItem().(*listItem)
	if !ok {
		return nil, false
	}
	e, ok := item.internal.(*history.Entry)
	return e, ok
}

// markFavorite flips the heart on the list item of s.
func (b *statefulBubble) markFavorite(s *story.Story) {
	for _, it := range b.storiesC.Items() {
		if item, ok := it.(*listItem); ok && item.internal == s {
			item.favorite = !item.favorite
		}
	}
}

func (b *statefulBubble) setStories(stories []*story.Story) tea.Cmd {
	shown := story.Filters{AgeGroups: b.prefs.AgeGroups}
	stories = lo.Filter(stories, func(s *story.Story, _ int) bool { return shown.Match(s) })

	return b.storiesC.SetItems(lo.Map(stories, func(s *story.Story, _ int) list.Item {
		return newStoryItem(s)
	}))
}

func (b *statefulBubble) setHistory(entries []*history.Entry) tea.Cmd {
	return b.historyC.SetItems(lo.Map(entries, func(e *history.Entry, _ int) list.Item {
		return &listItem{internal: e}
	}))
}
