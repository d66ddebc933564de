// Package cache stores downloaded narration files on disk so replaying a story does not fetch it again.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/log"
	"github.com/bedtime-cli/bedtime/where"
	"github.com/spf13/afero"
)

// TTL is how long a cached file is served before it is fetched again.
const TTL = 7 * 24 * time.Hour

// Key derives a stable file name for a remote URL, keeping its extension.
func Key(url string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(url)))
	ext := filepath.Ext(strings.SplitN(url, "?", 2)[0])
	if len(ext) > 5 {
		ext = ""
	}
	return hex.EncodeToString(hash[:]) + ext
}

// Path resolves the location of a cached entry.
func Path(key string) string {
	return filepath.Join(where.Audio(), key)
}

// Open returns the cached entry if it exists and has not expired.
func Open(key string) (afero.File, bool) {
	path := Path(key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return nil, false
	}

	f, err := filesystem.API().Open(path)
	if err != nil {
		return nil, false
	}
	return f, true
}

// Store copies r into the cache and returns the stored file opened for reading.
// The entry only becomes visible once it is completely written.
func Store(key string, r io.Reader) (afero.File, error) {
	path := Path(key)
	tmp := path + ".tmp"

	f, err := filesystem.API().Create(tmp)
	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = filesystem.API().Remove(tmp)
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	if err := filesystem.API().Rename(tmp, path); err != nil {
		return nil, err
	}

	return filesystem.API().Open(path)
}

// CollectGarbage removes expired and half-written entries.
func CollectGarbage() {
	dir := where.Audio()
	err := filesystem.API().Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".tmp") || time.Since(info.ModTime()) > TTL {
			_ = filesystem.API().Remove(path)
		}
		return nil
	})
	if err != nil {
		log.Warnf("audio cache cleanup: %v", err)
	}
}
