package filesystem

import (
	"io"
	"os"
	"time"

	"github.com/metafates/gache"
)

// gacheFs lets gache read and write through the active backend.
type gacheFs struct{}

func (gacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (gacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}

// Store is a JSON file cache at path. A zero lifetime never expires.
func Store[T any](path string, lifetime time.Duration) *gache.Cache[T] {
	return gache.New[T](&gache.Options{
		Path:       path,
		Lifetime:   lifetime,
		FileSystem: gacheFs{},
	})
}
