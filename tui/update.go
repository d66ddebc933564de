package tui

import (
	"strings"

	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/icon"
	"github.com/bedtime-cli/bedtime/internal/ui"
	"github.com/bedtime-cli/bedtime/query"
	"github.com/bedtime-cli/bedtime/session"
	"github.com/bedtime-cli/bedtime/sleeptimer"
	"github.com/bedtime-cli/bedtime/util"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// captures notification strings and their expiry
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case error:
		b.stopLoading()
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, cmd
	case spinner.TickMsg:
		var tick tea.Cmd
		b.spinnerC, tick = b.spinnerC.Update(msg)
		return b, tea.Batch(cmd, tick)
	case playerUpdateMsg:
		return b, tea.Batch(cmd, b.refreshPlayer(), b.waitForUpdate())
	case storiesLoadedMsg:
		b.stopLoading()
		b.storiesC.ResetSelected()
		if b.state != storiesState {
			b.newState(storiesState)
		}
		return b, tea.Batch(cmd, b.setStories(msg))
	case historyLoadedMsg:
		b.stopLoading()
		b.historyC.ResetSelected()
		b.newState(historyState)
		return b, tea.Batch(cmd, b.setHistory(msg))
	case storyOpenedMsg:
		b.stopLoading()
		b.selected = msg.story
		b.readerC.SetContent(b.renderStory(msg.story))
		b.readerC.GotoTop()

		if msg.listen && msg.story.HasAudio() {
			b.startLoading("Loading narration")
			b.newState(playerState)
			return b, tea.Batch(cmd, b.listenTo(msg.story))
		}

		if b.state == playerState {
			b.setState(readState)
		} else {
			b.newState(readState)
		}
		if msg.listen {
			return b, tea.Batch(cmd, ui.Notify("%q has no narration yet", msg.story.Title))
		}
		return b, cmd
	case narrationLoadedMsg:
		b.stopLoading()
		return b, tea.Batch(cmd, b.refreshPlayer())
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, b.quit()
		}

		if b.busy && b.state != errorState {
			if bubblesKey.Matches(msg, b.keymap.back) && b.state != playerState {
				b.stopLoading()
				b.previousState()
			}
			return b, cmd
		}

		if bubblesKey.Matches(msg, b.keymap.back) && b.state != searchState {
			b.previousState()
			return b, cmd
		}
	}

	var stateCmd tea.Cmd
	switch b.state {
	case storiesState:
		stateCmd = b.updateStories(msg)
	case searchState:
		stateCmd = b.updateSearch(msg)
	case historyState:
		stateCmd = b.updateHistory(msg)
	case readState:
		stateCmd = b.updateRead(msg)
	case playerState:
		stateCmd = b.updatePlayer(msg)
	case sleepState:
		stateCmd = b.updateSleep(msg)
	case errorState:
		stateCmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, stateCmd)
}

func (b *statefulBubble) quit() tea.Cmd {
	for _, unsubscribe := range b.unsubscribe {
		unsubscribe()
	}
	b.unsubscribe = nil
	return tea.Quit
}

func (b *statefulBubble) updateStories(msg tea.Msg) (cmd tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b.quit()
		case bubblesKey.Matches(msg, b.keymap.search):
			b.inputC.SetValue("")
			b.newState(searchState)
			return b.inputC.Focus()
		case bubblesKey.Matches(msg, b.keymap.history):
			b.startLoading("Loading history")
			return b.loadHistory()
		case bubblesKey.Matches(msg, b.keymap.favorite):
			if s, ok := b.selectedStory(); ok {
				b.markFavorite(s)
				return b.toggleFavorite(s)
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.listen), bubblesKey.Matches(msg, b.keymap.read):
			s, ok := b.selectedStory()
			if !ok {
				return nil
			}
			b.startLoading("Opening " + s.Title)
			return b.openStory(s.Slug, bubblesKey.Matches(msg, b.keymap.listen))
		}
	}

	b.storiesC, cmd = b.storiesC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (cmd tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.inputC.Blur()
			b.previousState()
			return nil
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion):
			if suggestion, ok := b.searchSuggestion.Get(); ok {
				b.inputC.SetValue(suggestion)
				b.inputC.CursorEnd()
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			q := strings.TrimSpace(b.inputC.Value())
			if q == "" {
				return nil
			}
			b.inputC.Blur()
			b.storiesC.Title = "Results for " + q
			b.startLoading("Searching")
			b.previousState()
			return b.searchStories(q)
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)
	b.searchSuggestion = query.Suggest(b.inputC.Value())
	return cmd
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (cmd tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b.quit()
		case bubblesKey.Matches(msg, b.keymap.listen), bubblesKey.Matches(msg, b.keymap.read):
			e, ok := b.selectedHistoryEntry()
			if !ok {
				return nil
			}
			b.startLoading("Opening " + e.Title)
			return b.openStory(e.Slug, bubblesKey.Matches(msg, b.keymap.listen))
		}
	}

	b.historyC, cmd = b.historyC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateRead(msg tea.Msg) (cmd tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.listen) && b.selected != nil {
		if !b.selected.HasAudio() {
			return ui.Notify("%q has no narration yet", b.selected.Title)
		}

		if current := b.session.Story(); b.status.Loaded && current != nil && current.ID == b.selected.ID {
			b.newState(playerState)
			return nil
		}

		b.startLoading("Loading narration")
		b.newState(playerState)
		return b.listenTo(b.selected)
	}

	b.readerC, cmd = b.readerC.Update(msg)
	return cmd
}

func (b *statefulBubble) updatePlayer(m tea.Msg) tea.Cmd {
	msg, ok := m.(tea.KeyMsg)
	if !ok {
		return nil
	}

	ctrl := b.session.Controller()
	timer := b.session.Timer()

	switch {
	case bubblesKey.Matches(msg, b.keymap.quit):
		return b.quit()
	case bubblesKey.Matches(msg, b.keymap.playPause):
		return b.command("play", ctrl.TogglePlayPause)
	case bubblesKey.Matches(msg, b.keymap.stop):
		return b.command("stop", ctrl.Stop)
	case bubblesKey.Matches(msg, b.keymap.forward):
		return b.command("skip", func() error { return ctrl.Skip(constant.SkipInterval) })
	case bubblesKey.Matches(msg, b.keymap.rewind):
		return b.command("skip", func() error { return ctrl.Skip(-constant.SkipInterval) })
	case bubblesKey.Matches(msg, b.keymap.volumeUp), bubblesKey.Matches(msg, b.keymap.volumeDown):
		step := volumeStep
		if bubblesKey.Matches(msg, b.keymap.volumeDown) {
			step = -step
		}
		volume := util.Clamp(b.status.Volume+step, constant.MinVolume, constant.MaxVolume)
		return b.command("volume", func() error { return ctrl.SetVolume(volume) })
	case bubblesKey.Matches(msg, b.keymap.faster), bubblesKey.Matches(msg, b.keymap.slower):
		rate := session.NextPlaybackRate(b.status.PlaybackRate, bubblesKey.Matches(msg, b.keymap.faster))
		return b.command("speed", func() error { return ctrl.SetPlaybackRate(rate) })
	case bubblesKey.Matches(msg, b.keymap.sleep):
		b.sleepC.ResetSelected()
		b.newState(sleepState)
		return nil
	case bubblesKey.Matches(msg, b.keymap.sleepPause):
		switch b.timer.Phase() {
		case sleeptimer.Running:
			go timer.Pause()
		case sleeptimer.Paused:
			go timer.Resume()
		}
		return nil
	case bubblesKey.Matches(msg, b.keymap.favorite):
		if s := b.session.Story(); s != nil {
			b.markFavorite(s)
			return b.toggleFavorite(s)
		}
	case bubblesKey.Matches(msg, b.keymap.read):
		if b.selected != nil {
			b.newState(readState)
		}
	case bubblesKey.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}

	return nil
}

func (b *statefulBubble) updateSleep(msg tea.Msg) (cmd tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.confirm) {
		item, ok := b.sleepC.SelectedItem().(*listItem)
		if !ok {
			return nil
		}

		minutes := int(item.internal.(sleepOption))
		b.previousState()

		go b.session.StartTimer(minutes)

		if minutes == 0 {
			return ui.Notify("Sleep timer off")
		}
		return ui.Notify("%s Sleeping in %s", icon.Get(icon.Moon), util.Quantify(minutes, "minute", "minutes"))
	}

	b.sleepC, cmd = b.sleepC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.quit) {
		return b.quit()
	}
	return nil
}
