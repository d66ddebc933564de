// Package ui holds the transient notification line shared by the terminal screens.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bedtime-cli/bedtime/color"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Lifetime is how long a notification stays on screen.
const Lifetime = 3 * time.Second

var notificationStyle = lipgloss.NewStyle().Foreground(color.Gray)

// Model shows the latest notification next to the last line of a view.
type Model struct {
	notification string
	notifiedAt   time.Time
}

// ClearNotificationMsg hides a notification once its lifetime is over.
type ClearNotificationMsg struct {
	at time.Time
}

// Notify returns a command that shows a formatted notification.
func Notify(format string, args ...any) tea.Cmd {
	return func() tea.Msg {
		return fmt.Sprintf(format, args...)
	}
}

// ClearNotification returns a delayed command that hides the notification shown at.
func ClearNotification(at time.Time) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{at: at}
	})
}

// Update captures string messages as notifications.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case string:
		m.notification = msg
		m.notifiedAt = time.Now()
		return ClearNotification(m.notifiedAt)
	case ClearNotificationMsg:
		// a newer notification has its own timer
		if msg.at.Equal(m.notifiedAt) {
			m.notification = ""
		}
	}
	return nil
}

// Notification returns the text currently shown, if any.
func (m *Model) Notification() string {
	return m.notification
}

// View appends the notification to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + notificationStyle.Render(m.notification)
	return strings.Join(lines, "\n")
}
