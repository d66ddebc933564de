package mini

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/bedtime-cli/bedtime/color"
	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/icon"
	"github.com/bedtime-cli/bedtime/player"
	"github.com/bedtime-cli/bedtime/session"
	"github.com/bedtime-cli/bedtime/sleeptimer"
	"github.com/bedtime-cli/bedtime/style"
	"github.com/bedtime-cli/bedtime/util"
	"github.com/samber/lo"
)

const volumeStep = 0.1

type line struct {
	text string
	err  error
}

func (m *mini) handleListenState() error {
	s := m.options.Session
	if err := s.Start(m.ctx, m.selected); err != nil {
		return err
	}

	updates := make(chan struct{}, 1)
	signal := func() {
		select {
		case updates <- struct{}{}:
		default:
		}
	}

	unsubscribe := []func(){
		s.Controller().Subscribe(func(player.Status) { signal() }),
		s.Timer().Subscribe(func(sleeptimer.State) { signal() }),
	}
	defer func() {
		for _, fn := range unsubscribe {
			fn()
		}
	}()

	m.title(fmt.Sprintf("%s %s", icon.Get(icon.Book), m.selected.Title))
	m.printf("%s\n", style.Faint("type ? for help"))

	var (
		lines   = make(chan line, 1)
		pending bool
		status  = s.Controller().Status()
		timer   = s.Timer().State()
	)

	request := func() {
		if pending || lines == nil {
			return
		}
		pending = true
		go func() {
			text, err := m.stdin.ReadString('\n')
			lines <- line{text: text, err: err}
		}()
	}

	m.printStatus(status, timer)
	request()

	for {
		select {
		case <-m.ctx.Done():
			m.setState(quitState)
			return nil
		case <-updates:
			previous, previousTimer := status, timer
			status, timer = s.Controller().Status(), s.Timer().State()

			if expired(previousTimer, timer) {
				m.printf("\n%s %s\n", icon.Get(icon.Moon), style.Fg(color.Moon)("Sleep timer ended. Good night!"))
				m.setState(quitState)
				return nil
			}

			if finished(previous, status) {
				m.printf("\n%s\n", style.Fg(color.Moon)("The end."))
				if lines == nil {
					m.setState(quitState)
					return nil
				}
			}

			if changed(previous, status, previousTimer, timer) {
				m.printStatus(status, timer)
			}
		case l := <-lines:
			pending = false

			if l.err != nil {
				if l.err != io.EOF || strings.TrimSpace(l.text) == "" {
					// input is gone, keep playing until the story or the timer ends
					lines = nil
					continue
				}
			}

			leave, err := m.execute(l.text)
			if err != nil {
				m.fail(err.Error())
			}
			if leave {
				return nil
			}

			status, timer = s.Controller().Status(), s.Timer().State()
			m.printStatus(status, timer)
			request()
		}
	}
}

// execute runs one player command. It reports whether the player should be left.
func (m *mini) execute(input string) (leave bool, err error) {
	cmd, err := parseCommand(input)
	if err != nil {
		return false, err
	}

	ctrl := m.options.Session.Controller()
	timer := m.options.Session.Timer()
	status := ctrl.Status()

	switch cmd.action {
	case actionToggle:
		return false, ctrl.TogglePlayPause()
	case actionStop:
		return false, ctrl.Stop()
	case actionForward:
		return false, ctrl.Skip(constant.SkipInterval)
	case actionRewind:
		return false, ctrl.Skip(-constant.SkipInterval)
	case actionVolumeUp:
		return false, ctrl.SetVolume(util.Clamp(status.Volume+volumeStep, constant.MinVolume, constant.MaxVolume))
	case actionVolumeDown:
		return false, ctrl.SetVolume(util.Clamp(status.Volume-volumeStep, constant.MinVolume, constant.MaxVolume))
	case actionFaster, actionSlower:
		return false, ctrl.SetPlaybackRate(session.NextPlaybackRate(status.PlaybackRate, cmd.action == actionFaster))
	case actionSleep:
		minutes := cmd.minutes
		if minutes == askMinutes {
			if minutes, err = m.askSleepMinutes(); err != nil {
				return false, err
			}
		}
		m.options.Session.StartTimer(minutes)
	case actionSleepPause:
		switch timer.State().Phase() {
		case sleeptimer.Running:
			timer.Pause()
		case sleeptimer.Paused:
			timer.Resume()
		}
	case actionStatus:
		m.printf("%s\n", status)
	case actionHelp:
		m.printf("%s\n", style.Faint(helpText))
	case actionBack:
		if err := ctrl.Pause(); err != nil {
			return false, err
		}
		m.previousState()
		return true, nil
	case actionQuit:
		m.setState(quitState)
		return true, nil
	}

	return false, nil
}

func (m *mini) askSleepMinutes() (int, error) {
	options := append([]string{"Off"}, lo.Map(constant.SleepTimerOptions, func(minutes int, _ int) string {
		return util.Quantify(minutes, "minute", "minutes")
	})...)

	var choice int
	if ok, err := m.ask(&survey.Select{Message: "Sleep timer", Options: options}, &choice); !ok {
		return 0, err
	}

	if choice == 0 {
		return 0, nil
	}
	return constant.SleepTimerOptions[choice-1], nil
}

func (m *mini) printStatus(status player.Status, timer sleeptimer.State) {
	state := icon.Get(icon.Pause)
	switch {
	case status.IsLoading:
		state = icon.Get(icon.Progress)
	case status.IsPlaying:
		state = icon.Get(icon.Play)
	}

	parts := []string{
		state,
		fmt.Sprintf("%s / %s", util.FormatClock(status.CurrentTime), util.FormatClock(status.Duration)),
		style.Faint(fmt.Sprintf("vol %.0f%%  %.2gx", status.Volume*100, status.PlaybackRate)),
	}

	switch timer.Phase() {
	case sleeptimer.Running:
		parts = append(parts, style.Fg(color.Moon)(icon.Get(icon.Moon)+" "+timer.FormatRemaining()))
	case sleeptimer.Paused:
		parts = append(parts, style.Faint(icon.Get(icon.Moon)+" "+timer.FormatRemaining()+" paused"))
	}

	m.printf("\r%s  ", strings.Join(parts, "  "))
}

func expired(previous, current sleeptimer.State) bool {
	return previous.Phase() != sleeptimer.Idle && current.Phase() == sleeptimer.Idle && current.SelectedMinutes > 0
}

// finished tells the end of the track apart from a stop near the start.
func finished(previous, current player.Status) bool {
	return previous.IsPlaying &&
		!current.IsPlaying &&
		current.CurrentTime == 0 &&
		previous.Duration > 0 &&
		previous.Duration-previous.CurrentTime <= 2*time.Second
}

// changed skips redraws for sub-second progress.
func changed(previous, current player.Status, previousTimer, timer sleeptimer.State) bool {
	return previous.IsPlaying != current.IsPlaying ||
		previous.CurrentTime/time.Second != current.CurrentTime/time.Second ||
		previous.Volume != current.Volume ||
		previous.PlaybackRate != current.PlaybackRate ||
		previousTimer != timer
}
