package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/bedtime-cli/bedtime/catalog"
	"github.com/bedtime-cli/bedtime/color"
	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/internal/ui"
	"github.com/bedtime-cli/bedtime/player"
	"github.com/bedtime-cli/bedtime/preferences"
	"github.com/bedtime-cli/bedtime/session"
	"github.com/bedtime-cli/bedtime/sleeptimer"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/bedtime-cli/bedtime/util"
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// statefulBubble encapsulates the application state, including component models and workflow tracking.
type statefulBubble struct {
	ctx context.Context

	state         state
	statesHistory util.Stack[state]
	busy          bool

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	storiesC  list.Model
	historyC  list.Model
	sleepC    list.Model
	readerC   viewport.Model
	progressC progress.Model
	helpC     help.Model

	catalog  catalog.Catalog
	session  *session.Session
	language string
	prefs    *preferences.Preferences

	selected *story.Story

	// updates is signalled by the controller and the timer; it holds at most one pending wake-up.
	updates chan struct{}
	status  player.Status
	timer   sleeptimer.State

	progressStatus   string
	lastError        error
	width, height    int
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	unsubscribe []func()

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to s, remembering the previous state for back navigation.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !b.state.transient() {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if s, ok := b.statesHistory.Pop(); ok {
		b.setState(s)
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	styledWidth := width - x
	styledHeight := height - y

	listWidth := width - xx
	listHeight := height - yy

	for _, l := range []*list.Model{&b.storiesC, &b.historyC, &b.sleepC} {
		l.SetSize(listWidth, listHeight)
		l.Help.Width = listWidth
	}

	b.readerC.Width = styledWidth
	b.readerC.Height = util.Max(styledHeight-4, 1)
	b.progressC.Width = util.Min(listWidth, 60)

	b.width = styledWidth
	b.height = styledHeight
	b.helpC.Width = listWidth

	if b.selected != nil {
		b.readerC.SetContent(b.renderStory(b.selected))
	}
}

func (b *statefulBubble) startLoading(status string) {
	b.busy = true
	b.progressStatus = status
}

func (b *statefulBubble) stopLoading() {
	b.busy = false
	b.progressStatus = ""
}

// signal wakes the UI up without ever blocking the caller.
// It runs inside controller and timer notifications.
func (b *statefulBubble) signal() {
	select {
	case b.updates <- struct{}{}:
	default:
	}
}

func newBubble(ctx context.Context, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		ctx:      ctx,
		keymap:   keymap,
		catalog:  options.Catalog,
		session:  options.Session,
		language: options.Language,
		prefs:    options.Preferences,
		updates:  make(chan struct{}, 1),
		notifier: &ui.Model{},
		options:  options,
	}

	if bubble.prefs == nil {
		bubble.prefs = preferences.Defaults()
	}

	makeList := func(title string, description bool, titleColor lipgloss.Color) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(color.Moon).
			Foreground(color.Moon).
			Padding(0, 0, 0, 1)
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(color.White)

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = lipgloss.NewStyle().Foreground(color.Midnight).Background(titleColor).Padding(0, 1)
		listC.Styles.NoItems = paddingStyle
		listC.StatusMessageLifetime = 3 * time.Second
		listC.SetFilteringEnabled(false)
		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Moon
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(color.Moon)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Search stories (v%s)", constant.Version)
	bubble.inputC.CharLimit = 60
	bubble.inputC.Prompt = "> "

	bubble.progressC = progress.New(
		progress.WithGradient(string(color.Dusk), string(color.Moon)),
		progress.WithoutPercentage(),
	)

	bubble.readerC = viewport.New(0, 0)

	bubble.storiesC = makeList("Bedtime Stories", true, color.Dusk)
	bubble.storiesC.SetStatusBarItemName("story", "stories")

	bubble.historyC = makeList("History", true, color.Pink)
	bubble.historyC.SetStatusBarItemName("entry", "entries")

	bubble.sleepC = makeList("Sleep Timer", false, color.Moon)
	bubble.sleepC.SetShowStatusBar(false)
	bubble.sleepC.SetItems(append(
		[]list.Item{&listItem{internal: sleepOption(0)}},
		lo.Map(constant.SleepTimerOptions, func(m int, _ int) list.Item {
			return &listItem{internal: sleepOption(m)}
		})...,
	))

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
