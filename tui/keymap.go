package tui

import (
	"github.com/bedtime-cli/bedtime/color"
	"github.com/bedtime-cli/bedtime/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
)

// statefulKeymap defines the keyboard interactions available within various application states.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	confirm, back,
	search, acceptSearchSuggestion,
	read, listen, favorite, history,
	playPause, stop, forward, rewind,
	volumeUp, volumeDown, faster, slower,
	sleep, sleepPause,
	up, down, left, right,
	top, bottom,
	showHelp key.Binding
}

// setState updates the active keymap configuration to match the specified application state.
func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		acceptSearchSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept search suggestion"),
		),
		read: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "read"),
		),
		listen: key.NewBinding(
			key.WithKeys("enter", "p"),
			key.WithHelp(style.Fg(color.Moon)("enter"), style.Fg(color.Moon)("listen")),
		),
		favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		history: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "history"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop"),
		),
		forward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "+30s"),
		),
		rewind: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "-30s"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "volume down"),
		),
		faster: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp(">", "faster"),
		),
		slower: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("<", "slower"),
		),
		sleep: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "sleep timer"),
		),
		sleepPause: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "pause/resume timer"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "left"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "right"),
		),
		top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case loadingState:
		return to2(h(k.forceQuit, k.back))
	case storiesState:
		return h(k.listen, k.read, k.search, k.favorite), h(k.listen, k.read, k.search, k.favorite, k.history, k.quit)
	case searchState:
		return to2(h(k.confirm, k.acceptSearchSuggestion, k.back, k.forceQuit))
	case historyState:
		return to2(h(k.listen, k.read, k.back))
	case readState:
		return to2(h(k.listen, k.up, k.down, k.back))
	case playerState:
		return h(k.playPause, k.rewind, k.forward, k.sleep, k.back, k.showHelp),
			h(k.playPause, k.stop, k.rewind, k.forward, k.volumeDown, k.volumeUp, k.slower, k.faster, k.sleep, k.sleepPause, k.favorite, k.read, k.back, k.forceQuit)
	case sleepState:
		return to2(h(k.confirm, k.back))
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:             k.up,
		CursorDown:           k.down,
		NextPage:             k.right,
		PrevPage:             k.left,
		GoToStart:            k.top,
		GoToEnd:              k.bottom,
		ClearFilter:          k.back,
		CancelWhileFiltering: k.back,
		AcceptWhileFiltering: k.confirm,
		ShowFullHelp:         k.showHelp,
		CloseFullHelp:        k.showHelp,
		Quit:                 k.quit,
		ForceQuit:            k.forceQuit,
	}
}
