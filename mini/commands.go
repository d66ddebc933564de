package mini

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bedtime-cli/bedtime/color"
	"github.com/bedtime-cli/bedtime/style"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
)

type action int

const (
	actionToggle action = iota + 1
	actionStop
	actionForward
	actionRewind
	actionVolumeUp
	actionVolumeDown
	actionFaster
	actionSlower
	actionSleep
	actionSleepPause
	actionStatus
	actionHelp
	actionBack
	actionQuit
)

// askMinutes makes the sleep command open the timer menu.
const askMinutes = -1

type command struct {
	action  action
	minutes int
}

var commandWords = map[string]action{
	"p":      actionToggle,
	"play":   actionToggle,
	"pause":  actionToggle,
	"s":      actionStop,
	"stop":   actionStop,
	"f":      actionForward,
	"l":      actionForward,
	"b":      actionRewind,
	"h":      actionRewind,
	"+":      actionVolumeUp,
	"=":      actionVolumeUp,
	"-":      actionVolumeDown,
	">":      actionFaster,
	".":      actionFaster,
	"<":      actionSlower,
	",":      actionSlower,
	"t":      actionSleep,
	"sleep":  actionSleep,
	"T":      actionSleepPause,
	"i":      actionStatus,
	"status": actionStatus,
	"?":      actionHelp,
	"help":   actionHelp,
	"q":      actionBack,
	"back":   actionBack,
	"Q":      actionQuit,
	"quit":   actionQuit,
	"exit":   actionQuit,
}

// parseCommand reads one line of player input. An empty line toggles playback.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{action: actionToggle}, nil
	}

	word := fields[0]
	a, ok := commandWords[word]
	if !ok {
		a, ok = commandWords[strings.ToLower(word)]
	}
	if !ok {
		closest := lo.MinBy(lo.Keys(commandWords), func(a, b string) bool {
			da, db := levenshtein.Distance(word, a), levenshtein.Distance(word, b)
			return da < db || da == db && a < b
		})
		return command{}, fmt.Errorf(
			"unknown command %s, did you mean %s?",
			style.Fg(color.Red)(word),
			style.Fg(color.Yellow)(closest),
		)
	}

	cmd := command{action: a}
	if a != actionSleep {
		return cmd, nil
	}

	if len(fields) < 2 {
		cmd.minutes = askMinutes
		return cmd, nil
	}

	minutes, err := strconv.Atoi(fields[1])
	if err != nil || minutes < 0 {
		return command{}, fmt.Errorf("invalid sleep timer length %q", fields[1])
	}
	cmd.minutes = minutes
	return cmd, nil
}

const helpText = `enter/p  play or pause     s  stop
f / b    skip 30s            + / -  volume
> / <    speed               t [minutes]  sleep timer (t 0 switches it off)
T        pause/resume timer  i  status
q        back to the list    Q  quit`
