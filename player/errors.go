package player

import (
	"errors"
	"fmt"
)

var (
	// ErrLoadFailure means a source could not be opened or decoded.
	ErrLoadFailure = errors.New("load failure")

	// ErrPlaybackFailure means the backend rejected a transport command.
	// The resource stays loaded but paused.
	ErrPlaybackFailure = errors.New("playback failure")

	// ErrNoResourceLoaded is returned by Play when nothing is loaded.
	ErrNoResourceLoaded = errors.New("no audio loaded")

	// ErrClosed is returned by Load and Play after Close.
	ErrClosed = errors.New("player closed")
)

func wrap(kind, err error) error {
	return fmt.Errorf("%w: %w", kind, err)
}
