// Package tui provides the interactive story browser and player screen.
package tui

import (
	"context"
	"errors"

	"github.com/bedtime-cli/bedtime/catalog"
	"github.com/bedtime-cli/bedtime/preferences"
	"github.com/bedtime-cli/bedtime/session"
	"github.com/bedtime-cli/bedtime/story"
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Catalog  catalog.Catalog
	Session  *session.Session
	Language string

	// Preferences shape the story list and the reader. Nil means defaults.
	Preferences *preferences.Preferences

	// Story opens the player straight away instead of the story list.
	Story *story.Story

	// History starts on the listening history.
	History bool
}

// Run executes the Bubble Tea program until the user quits.
// The session stays open and must be closed by the caller.
func Run(ctx context.Context, options *Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bubble := newBubble(ctx, options)

	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
