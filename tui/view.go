package tui

import (
	"fmt"
	"strings"

	"github.com/bedtime-cli/bedtime/color"
	"github.com/bedtime-cli/bedtime/icon"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/sleeptimer"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/bedtime-cli/bedtime/style"
	"github.com/bedtime-cli/bedtime/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case storiesState:
		output = b.viewList(&b.storiesC)
	case historyState:
		output = b.viewList(&b.historyC)
	case sleepState:
		output = b.viewList(&b.sleepC)
	case searchState:
		output = b.viewSearch()
	case readState:
		output = b.viewRead()
	case playerState:
		output = b.viewPlayer()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewList(l interface{ View() string }) string {
	if b.busy {
		return b.viewLoading()
	}
	return listExtraPaddingStyle.Render(l.View())
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search Stories"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok && suggestion != b.inputC.Value() {
		lines = append(lines, "", style.Faint(fmt.Sprintf("tab: %s", suggestion)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewRead() string {
	if b.selected == nil {
		return b.viewLoading()
	}

	footer := style.Faint(fmt.Sprintf("%3.f%%", b.readerC.ScrollPercent()*100))
	return b.renderLines(
		false,
		[]string{
			style.Title(b.selected.Title),
			"",
			b.readerC.View(),
			"",
			footer + "  " + b.helpC.View(b.keymap),
		},
	)
}

func (b *statefulBubble) viewPlayer() string {
	title := "Nothing playing"
	if s := b.session.Story(); s != nil {
		title = s.Title
	}

	var state string
	switch {
	case b.busy || b.status.IsLoading:
		state = b.spinnerC.View() + " " + util.Capitalize(lo.Ternary(b.progressStatus == "", "loading", b.progressStatus))
	case b.status.IsPlaying:
		state = icon.Get(icon.Play) + " Playing"
	case b.status.Loaded:
		state = icon.Get(icon.Pause) + " Paused"
	default:
		state = icon.Get(icon.Stop) + " Stopped"
	}

	clock := fmt.Sprintf(
		"%s / %s",
		util.FormatClock(b.status.CurrentTime),
		util.FormatClock(b.status.Duration),
	)

	settings := style.Faint(fmt.Sprintf(
		"volume %.0f%%  speed %.2gx",
		b.status.Volume*100,
		b.status.PlaybackRate,
	))

	panel := strings.Join([]string{
		style.Fg(color.Moon)(style.Truncate(b.progressC.Width)(title)),
		"",
		state,
		"",
		b.progressC.ViewAs(b.status.Progress()),
		clock,
		"",
		settings,
		b.viewTimer(),
	}, "\n")

	lines := []string{
		style.Title("Now Playing"),
		"",
		style.Box(color.Dusk).Render(panel),
	}

	if b.status.Err != nil {
		lines = append(lines, "", style.Fg(color.Red)(wrap.String(b.status.Err.Error(), b.width)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewTimer() string {
	moon := icon.Get(icon.Moon)
	switch b.timer.Phase() {
	case sleeptimer.Running:
		return style.Fg(color.Moon)(fmt.Sprintf("%s sleeping in %s", moon, b.timer.FormatRemaining()))
	case sleeptimer.Paused:
		return style.Faint(fmt.Sprintf("%s timer paused at %s", moon, b.timer.FormatRemaining()))
	default:
		return style.Faint(moon + " no sleep timer")
	}
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(color.Red).Bold(true)
	errorBody := errorStyle.Render(b.lastError.Error())
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " Something went wrong:",
			"",
			errorMsg,
		},
	)
}

// renderStory lays the story out for the reader viewport.
func (b *statefulBubble) renderStory(s *story.Story) string {
	width := viper.GetInt(key.ReaderWidth)
	if width <= 0 || width > b.width {
		width = b.width
	}
	width = util.Max(util.Min(b.prefs.ReaderWidth(width), b.width), 20)

	var sb strings.Builder

	sb.WriteString(style.AgeTag(s.AgeGroup))
	sb.WriteString("  ")
	sb.WriteString(style.Faint(fmt.Sprintf("%s %d min read", icon.Get(icon.Book), s.ReadingTime)))
	if len(s.Tags) > 0 {
		sb.WriteString("  ")
		sb.WriteString(style.Fg(color.Pink)(strings.Join(s.Tags, ", ")))
	}
	sb.WriteString("\n\n")

	if s.Description != "" {
		sb.WriteString(style.Italic(wordwrap.String(s.Description, width)))
		sb.WriteString("\n\n")
	}

	for _, p := range s.Paragraphs() {
		sb.WriteString(wordwrap.String(p, width))
		sb.WriteString("\n\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
