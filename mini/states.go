package mini

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/bedtime-cli/bedtime/catalog"
	"github.com/bedtime-cli/bedtime/color"
	"github.com/bedtime-cli/bedtime/history"
	"github.com/bedtime-cli/bedtime/icon"
	"github.com/bedtime-cli/bedtime/log"
	"github.com/bedtime-cli/bedtime/query"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/bedtime-cli/bedtime/style"
	"github.com/bedtime-cli/bedtime/util"
	"github.com/samber/lo"
)

type state int

const (
	storySelectState state = iota + 1
	searchState
	historySelectState
	listenState
	quitState
)

const (
	choiceSearch  = "Search..."
	choiceHistory = "History"
	choiceBack    = "Back"
	choiceQuit    = "Quit"
)

const pageSize = 12

// ask runs a survey prompt. An interrupt quits instead of failing.
func (m *mini) ask(prompt survey.Prompt, response any) (ok bool, err error) {
	err = survey.AskOne(prompt, response)
	if errors.Is(err, terminal.InterruptErr) {
		m.setState(quitState)
		return false, nil
	}
	return err == nil, err
}

func (m *mini) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(m.options.Out, format, args...)
}

func (m *mini) title(s string) {
	m.printf("%s\n", style.Title(s))
}

func (m *mini) fail(s string) {
	m.printf("%s %s\n", icon.Get(icon.Fail), style.Fg(color.Red)(s))
}

func (m *mini) handleStorySelectState() error {
	if m.stories == nil {
		erase := util.PrintErasable(icon.Get(icon.Progress) + " Fetching stories...")
		var err error
		if m.query == "" {
			m.stories, err = m.options.Catalog.Stories(m.ctx, m.options.Language)
		} else {
			m.stories, err = m.options.Catalog.Search(m.ctx, m.query, m.options.Language)
		}
		erase()
		if err != nil {
			return err
		}
	}

	heading := "Bedtime Stories"
	if m.query != "" {
		heading = fmt.Sprintf("Results for %q", m.query)
	}

	if len(m.stories) == 0 {
		m.fail("No stories found")
		m.stories = nil
		m.newState(searchState)
		return nil
	}

	options := lo.Map(m.stories, func(s *story.Story, i int) string {
		return fmt.Sprintf("%d. %s (%s, %d min)", i+1, s.Title, s.AgeGroup, s.ReadingTime)
	})
	options = append(options, choiceSearch, choiceHistory, choiceQuit)

	m.title(heading)
	var choice int
	if ok, err := m.ask(&survey.Select{
		Message:  "Pick a story",
		Options:  options,
		PageSize: pageSize,
	}, &choice); !ok {
		return err
	}

	switch options[choice] {
	case choiceSearch:
		m.newState(searchState)
	case choiceHistory:
		m.newState(historySelectState)
	case choiceQuit:
		m.setState(quitState)
	default:
		return m.open(m.stories[choice].Slug)
	}

	return nil
}

func (m *mini) handleSearchState() error {
	var q string
	if ok, err := m.ask(&survey.Input{
		Message: "Search stories",
		Help:    "Leave empty to list every story",
		Suggest: query.SuggestMany,
	}, &q); !ok {
		return err
	}

	q = strings.TrimSpace(q)
	if q != "" {
		if err := query.Remember(q, 1); err != nil {
			log.Warnf("remember query: %v", err)
		}
	}

	m.query = q
	m.stories = nil
	m.setState(storySelectState)
	return nil
}

func (m *mini) handleHistorySelectState() error {
	entries, err := history.Get()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		m.fail("History is empty")
		m.previousState()
		if m.state == quitState {
			m.setState(storySelectState)
		}
		return nil
	}

	options := lo.Map(entries, func(e *history.Entry, _ int) string {
		return e.String()
	})
	options = append(options, choiceBack, choiceQuit)

	m.title("History")
	var choice int
	if ok, err := m.ask(&survey.Select{
		Message:  "Continue listening",
		Options:  options,
		PageSize: pageSize,
	}, &choice); !ok {
		return err
	}

	switch options[choice] {
	case choiceBack:
		m.previousState()
		if m.state == quitState {
			m.setState(storySelectState)
		}
	case choiceQuit:
		m.setState(quitState)
	default:
		return m.open(entries[choice].Slug)
	}

	return nil
}

// open fetches the full story and moves to the player.
func (m *mini) open(ref string) error {
	s, err := catalog.Find(m.ctx, m.options.Catalog, ref, m.options.Language)
	if err != nil {
		return err
	}

	if !s.HasAudio() {
		m.fail(fmt.Sprintf("%q has no narration yet", s.Title))
		return nil
	}

	m.selected = s
	m.newState(listenState)
	return nil
}
