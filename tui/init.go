package tui

import (
	"github.com/bedtime-cli/bedtime/player"
	"github.com/bedtime-cli/bedtime/sleeptimer"
	tea "github.com/charmbracelet/bubbletea"
)

// Init subscribes to the player and loads the first screen.
func (b *statefulBubble) Init() tea.Cmd {
	b.unsubscribe = append(b.unsubscribe,
		b.session.Controller().Subscribe(func(player.Status) { b.signal() }),
		b.session.Timer().Subscribe(func(sleeptimer.State) { b.signal() }),
	)
	b.status = b.session.Controller().Status()
	b.timer = b.session.Timer().State()

	var first tea.Cmd
	switch {
	case b.options.Story != nil:
		b.setState(playerState)
		first = b.openStory(b.options.Story.Slug, true)
	case b.options.History:
		b.setState(loadingState)
		first = b.loadHistory()
	default:
		b.setState(loadingState)
		first = b.loadStories()
	}

	b.startLoading("Fetching stories")
	return tea.Batch(first, b.spinnerC.Tick, b.waitForUpdate())
}
