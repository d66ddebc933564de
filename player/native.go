package player

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/internal/cache"
	"github.com/bedtime-cli/bedtime/log"
	"github.com/bedtime-cli/bedtime/network"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

const (
	outputRate      = beep.SampleRate(44100)
	outputBuffer    = 100 * time.Millisecond
	resampleQuality = 4
)

// Native decodes MP3 and WAV in-process and plays them on the default audio device.
type Native struct {
	once    sync.Once
	initErr error
}

// NewNative returns the in-process backend. The audio device is opened on first use.
func NewNative() *Native {
	return &Native{}
}

func (n *Native) init() error {
	n.once.Do(func() {
		n.initErr = speaker.Init(outputRate, outputRate.N(outputBuffer))
	})
	return n.initErr
}

func (n *Native) Open(ctx context.Context, locator string) (Resource, error) {
	src, err := openSource(ctx, locator)
	if err != nil {
		return nil, err
	}

	stream, format, err := decode(src)
	if err != nil {
		_ = src.Close()
		return nil, err
	}

	if err := n.init(); err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("audio device: %w", err)
	}

	return newNativeResource(stream, format), nil
}

// openSource returns a seekable reader for a local path or a remote URL.
// Remote files are kept in the audio cache.
func openSource(ctx context.Context, locator string) (io.ReadSeekCloser, error) {
	if !strings.HasPrefix(locator, "http://") && !strings.HasPrefix(locator, "https://") {
		return filesystem.API().Open(strings.TrimPrefix(locator, "file://"))
	}

	key := cache.Key(locator)
	if f, ok := cache.Open(key); ok {
		return f, nil
	}

	log.Infof("fetching %s", locator)
	body, err := network.Get(ctx, locator, nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return cache.Store(key, body)
}

// decode sniffs the container. Anything that is not RIFF/WAVE is treated as MP3.
func decode(src io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	header := make([]byte, 12)
	n, _ := io.ReadFull(src, header)
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, beep.Format{}, err
	}

	if n == len(header) && bytes.Equal(header[:4], []byte("RIFF")) && bytes.Equal(header[8:], []byte("WAVE")) {
		return wav.Decode(src)
	}
	return mp3.Decode(src)
}

type nativeResource struct {
	stream    beep.StreamSeekCloser
	format    beep.Format
	ctrl      *beep.Ctrl
	volume    *effects.Volume
	resampler *beep.Resampler

	// queued is set while the stream is in the speaker's mixer.
	queued atomic.Bool
	ended  atomic.Bool
}

func newNativeResource(stream beep.StreamSeekCloser, format beep.Format) *nativeResource {
	r := &nativeResource{stream: stream, format: format}

	r.resampler = beep.ResampleRatio(resampleQuality, r.ratio(1), stream)
	r.volume = &effects.Volume{Streamer: r.resampler, Base: 2}
	r.ctrl = &beep.Ctrl{Streamer: r.volume, Paused: true}
	return r
}

func (r *nativeResource) ratio(rate float64) float64 {
	return float64(r.format.SampleRate) / float64(outputRate) * rate
}

func (r *nativeResource) Duration() time.Duration {
	return r.format.SampleRate.D(r.stream.Len())
}

func (r *nativeResource) Position() (time.Duration, error) {
	speaker.Lock()
	defer speaker.Unlock()

	if err := r.stream.Err(); err != nil {
		return 0, err
	}
	return r.format.SampleRate.D(r.stream.Position()), nil
}

func (r *nativeResource) Ended() bool {
	return r.ended.Load()
}

// Play resumes the stream, rewinding it first if it ran out with no seek since.
func (r *nativeResource) Play() error {
	if r.ended.Load() {
		if err := r.Seek(0); err != nil {
			return err
		}
	}

	speaker.Lock()
	r.ctrl.Paused = false
	speaker.Unlock()

	if r.queued.Swap(true) {
		return nil
	}

	speaker.Play(beep.Seq(r.ctrl, beep.Callback(r.finish)))
	return nil
}

// finish runs inside the mixer once the stream is drained, with the speaker locked.
func (r *nativeResource) finish() {
	r.queued.Store(false)
	r.ended.Store(true)
}

func (r *nativeResource) Pause() error {
	speaker.Lock()
	defer speaker.Unlock()
	r.ctrl.Paused = true
	return nil
}

func (r *nativeResource) Seek(position time.Duration) error {
	speaker.Lock()
	defer speaker.Unlock()

	sample := r.format.SampleRate.N(position)
	sample = max(0, min(sample, r.stream.Len()-1))
	if err := r.stream.Seek(sample); err != nil {
		return err
	}
	r.ended.Store(false)
	return nil
}

func (r *nativeResource) SetVolume(volume float64) error {
	speaker.Lock()
	defer speaker.Unlock()

	if volume <= 0 {
		r.volume.Silent = true
		return nil
	}

	r.volume.Silent = false
	r.volume.Volume = math.Log2(volume)
	return nil
}

func (r *nativeResource) SetRate(rate float64) error {
	speaker.Lock()
	defer speaker.Unlock()
	r.resampler.SetRatio(r.ratio(rate))
	return nil
}

func (r *nativeResource) Close() error {
	speaker.Lock()
	r.ctrl.Streamer = nil
	speaker.Unlock()
	return r.stream.Close()
}
