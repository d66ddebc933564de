package tui

// state is the screen the bubble shows.
type state int

const (
	loadingState state = iota
	errorState
	storiesState
	searchState
	historyState
	readState
	playerState
	sleepState
)

// transient screens are never returned to with back.
func (s state) transient() bool {
	return s == loadingState || s == errorState
}
