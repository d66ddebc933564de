// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// Every package reads and writes through API() so tests can swap in an in-memory backend.
package filesystem

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs switches to a volatile in-memory backend.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// WriteAtomic writes data to a sibling temporary file and renames it over path.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	if err := API().MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := API().WriteFile(tmp, data, perm); err != nil {
		return err
	}

	return API().Rename(tmp, path)
}

// DirSize sums the sizes of all regular files below root.
func DirSize(root string) (int64, error) {
	var total int64
	err := API().Walk(root, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	return total, err
}
