// Package mini is the line based player used when a full screen interface is not wanted.
package mini

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/bedtime-cli/bedtime/catalog"
	"github.com/bedtime-cli/bedtime/session"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/bedtime-cli/bedtime/util"
	"github.com/samber/lo"
)

type Options struct {
	Catalog  catalog.Catalog
	Session  *session.Session
	Language string

	// Story skips the story menu.
	Story *story.Story

	// History starts from the listening history.
	History bool

	In  io.Reader
	Out io.Writer
}

type mini struct {
	ctx     context.Context
	options *Options
	stdin   *bufio.Reader

	state         state
	statesHistory util.Stack[state]

	query    string
	stories  []*story.Story
	selected *story.Story
}

func newMini(ctx context.Context, options *Options) *mini {
	if options.In == nil {
		options.In = os.Stdin
	}
	if options.Out == nil {
		options.Out = os.Stdout
	}
	return &mini{ctx: ctx, options: options, stdin: bufio.NewReader(options.In)}
}

func (m *mini) previousState() {
	if s, ok := m.statesHistory.Pop(); ok {
		m.setState(s)
		return
	}
	m.setState(quitState)
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	if !lo.Contains([]state{quitState, searchState}, m.state) {
		m.statesHistory.Push(m.state)
	}

	m.setState(s)
}

// Run drives the menus and the player until the user quits or the sleep timer ends.
// The session stays open and must be closed by the caller.
func Run(ctx context.Context, options *Options) error {
	m := newMini(ctx, options)

	switch {
	case options.Story != nil:
		m.selected = options.Story
		m.state = listenState
	case options.History:
		m.state = historySelectState
	default:
		m.state = storySelectState
	}

	for m.state != quitState {
		if err := ctx.Err(); err != nil {
			return nil
		}

		if err := m.handleState(); err != nil {
			return err
		}
	}

	return nil
}

func (m *mini) handleState() error {
	switch m.state {
	case storySelectState:
		return m.handleStorySelectState()
	case searchState:
		return m.handleSearchState()
	case historySelectState:
		return m.handleHistorySelectState()
	case listenState:
		return m.handleListenState()
	}

	return nil
}
