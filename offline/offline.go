// Package offline saves stories and their narration to disk so they can be read and played without a connection.
package offline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/bedtime-cli/bedtime/util"
	"github.com/bedtime-cli/bedtime/where"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

const metadataFile = "story.json"

var (
	ErrNotDownloaded = errors.New("story is not downloaded")
	ErrTooLarge      = errors.New("audio file exceeds the size limit")
	ErrStorageFull   = errors.New("offline storage limit reached")
)

// Download is a story saved on disk.
type Download struct {
	Story *story.Story `json:"story"`

	// AudioFile is the narration file name inside the story directory, empty for text only.
	AudioFile string `json:"audio_file,omitempty"`

	Size         int64     `json:"size"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// IncludesAudio reports whether the narration was saved too.
func (d *Download) IncludesAudio() bool {
	return d.AudioFile != ""
}

// AudioPath is the absolute path of the saved narration.
func (d *Download) AudioPath() string {
	if !d.IncludesAudio() {
		return ""
	}
	return filepath.Join(dir(d.Story.ID), d.AudioFile)
}

func (d *Download) String() string {
	kind := "text"
	if d.IncludesAudio() {
		kind = "text + audio"
	}
	return fmt.Sprintf("%s (%s, %s, %s)", d.Story.Title, kind, humanize.Bytes(uint64(d.Size)), humanize.Time(d.DownloadedAt))
}

// MaxAudioSize is the largest narration file that may be downloaded.
func MaxAudioSize() int64 {
	return int64(viper.GetInt(key.OfflineMaxAudioMB)) * humanize.MiByte
}

// MaxStorage is the disk space all downloads together may use.
func MaxStorage() int64 {
	return int64(viper.GetInt(key.OfflineMaxStorageMB)) * humanize.MiByte
}

func dir(id string) string {
	return filepath.Join(where.Downloads(), util.SanitizeFilename(id))
}

func read(path string) (*Download, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, err
	}

	var d Download
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &d, nil
}

// Get returns the download of the story with the given ID.
func Get(id string) (*Download, error) {
	d, err := read(filepath.Join(dir(id), metadataFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotDownloaded
	}
	return d, err
}

// Has reports whether the story with the given ID is downloaded.
func Has(id string) bool {
	_, err := Get(id)
	return err == nil
}

// AudioPath returns the saved narration of the story, if there is one.
func AudioPath(id string) mo.Option[string] {
	d, err := Get(id)
	if err != nil || !d.IncludesAudio() {
		return mo.None[string]()
	}

	if exists, _ := filesystem.API().Exists(d.AudioPath()); !exists {
		return mo.None[string]()
	}
	return mo.Some(d.AudioPath())
}

// List returns every download, most recent first. Broken entries are skipped.
func List() ([]*Download, error) {
	entries, err := filesystem.API().ReadDir(where.Downloads())
	if err != nil {
		return nil, err
	}

	downloads := lo.FilterMap(entries, func(entry os.FileInfo, _ int) (*Download, bool) {
		if !entry.IsDir() {
			return nil, false
		}
		d, err := read(filepath.Join(where.Downloads(), entry.Name(), metadataFile))
		return d, err == nil
	})

	slices.SortFunc(downloads, func(a, b *Download) int {
		return b.DownloadedAt.Compare(a.DownloadedAt)
	})
	return downloads, nil
}

// Remove deletes the story with the given ID from disk.
func Remove(id string) error {
	if !Has(id) {
		return ErrNotDownloaded
	}
	return util.Delete(dir(id))
}

// Size is the disk space used by all downloads.
func Size() (int64, error) {
	return filesystem.DirSize(where.Downloads())
}
