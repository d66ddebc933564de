// Package playertest provides an in-memory audio backend for tests.
package playertest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bedtime-cli/bedtime/player"
)

// ErrClosed is returned by a Resource used after Close.
var ErrClosed = errors.New("resource closed")

// Backend opens Resources of a fixed length. Time only moves through Advance.
type Backend struct {
	mu       sync.Mutex
	length   time.Duration
	openErr  error
	resource []*Resource
}

// New creates a backend whose sources last length.
func New(length time.Duration) *Backend {
	return &Backend{length: length}
}

// FailOpen makes subsequent Open calls return err. A nil err restores success.
func (b *Backend) FailOpen(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.openErr = err
}

func (b *Backend) Open(ctx context.Context, locator string) (player.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.openErr != nil {
		return nil, b.openErr
	}

	r := &Resource{Locator: locator, length: b.length, volume: 1, rate: 1}
	b.resource = append(b.resource, r)
	return r, nil
}

// Opened returns every resource opened so far, oldest first.
func (b *Backend) Opened() []*Resource {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Resource(nil), b.resource...)
}

// Last returns the most recently opened resource, or nil.
func (b *Backend) Last() *Resource {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.resource) == 0 {
		return nil
	}
	return b.resource[len(b.resource)-1]
}

// Resource is a silent track.
type Resource struct {
	Locator string

	mu       sync.Mutex
	length   time.Duration
	position time.Duration
	playing  bool
	ended    bool
	closed   bool
	volume   float64
	rate     float64
	gains    []float64
	failNext error
}

// Advance moves the playhead by d if playing. Reaching the end stops playback.
func (r *Resource) Advance(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.playing {
		return
	}

	r.position += d
	if r.position >= r.length {
		r.position = r.length
		r.playing = false
		r.ended = true
	}
}

// FailNext makes the next transport command return err.
func (r *Resource) FailNext(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failNext = err
}

func (r *Resource) Playing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playing
}

func (r *Resource) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *Resource) Volume() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.volume
}

func (r *Resource) Rate() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rate
}

// Gains lists every volume that was applied, in order.
func (r *Resource) Gains() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.gains...)
}

func (r *Resource) Duration() time.Duration {
	return r.length
}

func (r *Resource) Position() (time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, ErrClosed
	}
	return r.position, nil
}

func (r *Resource) Ended() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ended
}

func (r *Resource) Play() error {
	return r.command(func() {
		r.playing = true
	})
}

func (r *Resource) Pause() error {
	return r.command(func() {
		r.playing = false
	})
}

func (r *Resource) Seek(position time.Duration) error {
	return r.command(func() {
		r.position = position
		r.ended = false
	})
}

func (r *Resource) SetVolume(volume float64) error {
	return r.command(func() {
		r.volume = volume
		r.gains = append(r.gains, volume)
	})
}

func (r *Resource) SetRate(rate float64) error {
	return r.command(func() {
		r.rate = rate
	})
}

func (r *Resource) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	r.closed = true
	r.playing = false
	return nil
}

func (r *Resource) command(apply func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	if err := r.failNext; err != nil {
		r.failNext = nil
		return err
	}

	apply()
	return nil
}
