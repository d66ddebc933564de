// Package player plays story narration.
//
// A Controller owns at most one loaded Resource and reports its state to
// subscribers as Status snapshots. Resources come from a Backend, which hides
// whether audio is decoded in-process or handed to an external player.
package player

import (
	"context"
	"time"
)

// Backend opens audio sources.
type Backend interface {
	// Open prepares the source at locator (a URL or a local path) for playback.
	// The returned resource starts paused at position zero.
	Open(ctx context.Context, locator string) (Resource, error)
}

// Resource is one opened audio source.
//
// Methods are only called by the owning Controller, which serializes them.
type Resource interface {
	// Duration is the total length, or zero while it is unknown.
	Duration() time.Duration

	// Position is the current playback position.
	Position() (time.Duration, error)

	// Ended reports whether playback reached the end of the source.
	// A Seek clears it.
	Ended() bool

	Play() error
	Pause() error
	Seek(position time.Duration) error

	// SetVolume sets the output gain in [0, 1].
	SetVolume(volume float64) error

	// SetRate sets the playback speed, 1 being normal.
	SetRate(rate float64) error

	// Close releases everything the resource holds.
	Close() error
}
