package offline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/internal/cache"
	"github.com/bedtime-cli/bedtime/log"
	"github.com/bedtime-cli/bedtime/network"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/dustin/go-humanize"
)

// Options tune a single download.
type Options struct {
	// SkipAudio saves only the text.
	SkipAudio bool

	// Progress is called with the number of audio bytes written so far.
	Progress func(written int64)
}

// Save downloads s, replacing an earlier download of the same story.
func Save(ctx context.Context, s *story.Story, opts Options) (*Download, error) {
	logger := log.With(log.Fields{"story": s.Slug})

	used, err := Size()
	if err != nil {
		return nil, err
	}

	if previous, err := Get(s.ID); err == nil {
		used -= previous.Size
	}

	target := dir(s.ID)
	if err := filesystem.API().RemoveAll(target); err != nil {
		return nil, err
	}
	if err := filesystem.API().MkdirAll(target, 0o755); err != nil {
		return nil, err
	}

	d := &Download{Story: s, DownloadedAt: time.Now()}

	if s.HasAudio() && !opts.SkipAudio {
		name := "audio" + audioExt(s.Audio.URL)
		budget := min(MaxAudioSize(), MaxStorage()-used)

		written, err := fetchAudio(ctx, s.Audio.URL, filepath.Join(target, name), budget, opts.Progress)
		if err != nil {
			_ = filesystem.API().RemoveAll(target)
			if errors.Is(err, errOverBudget) {
				return nil, overBudget(budget, used)
			}
			return nil, fmt.Errorf("download audio: %w", err)
		}

		d.AudioFile = name
		d.Size += written
		logger.Infof("saved %s of audio", humanize.Bytes(uint64(written)))
	}

	if err := writeMetadata(target, d, used); err != nil {
		_ = filesystem.API().RemoveAll(target)
		return nil, err
	}

	return d, nil
}

// writeMetadata counts the metadata itself into d.Size before saving it.
func writeMetadata(target string, d *Download, used int64) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}

	d.Size += int64(len(data))
	if used+d.Size > MaxStorage() {
		return ErrStorageFull
	}

	if data, err = json.Marshal(d); err != nil {
		return err
	}
	return filesystem.WriteAtomic(filepath.Join(target, metadataFile), data, 0o644)
}

var errOverBudget = errors.New("over budget")

func overBudget(budget, used int64) error {
	if budget < MaxAudioSize() {
		return fmt.Errorf("%w: %s of %s used", ErrStorageFull, humanize.Bytes(uint64(used)), humanize.Bytes(uint64(MaxStorage())))
	}
	return fmt.Errorf("%w (%s)", ErrTooLarge, humanize.Bytes(uint64(MaxAudioSize())))
}

// fetchAudio copies the narration to path, taking it from the audio cache
// when the story was played before. It fails once more than budget bytes arrive.
func fetchAudio(ctx context.Context, url, path string, budget int64, progress func(int64)) (int64, error) {
	var src io.ReadCloser
	if f, ok := cache.Open(cache.Key(url)); ok {
		src = f
	} else {
		body, err := network.Get(ctx, url, nil)
		if err != nil {
			return 0, err
		}
		src = body
	}
	defer src.Close()

	dst, err := filesystem.API().Create(path)
	if err != nil {
		return 0, err
	}
	defer dst.Close()

	w := &countingWriter{w: dst, progress: progress}
	if _, err := io.Copy(w, io.LimitReader(src, max(budget, 0)+1)); err != nil {
		return w.n, err
	}

	if w.n > budget {
		return w.n, errOverBudget
	}
	return w.n, nil
}

type countingWriter struct {
	w        io.Writer
	n        int64
	progress func(int64)
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	if c.progress != nil {
		c.progress(c.n)
	}
	return n, err
}

func audioExt(url string) string {
	ext := strings.ToLower(filepath.Ext(strings.SplitN(url, "?", 2)[0]))
	switch ext {
	case ".mp3", ".wav":
		return ext
	default:
		return ".mp3"
	}
}
