// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "BEDTIME_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the primary configuration directory.
// BEDTIME_CONFIG_PATH takes precedence over the platform default.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Bedtime))
}

// Cache resolves the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Bedtime))
}

// Logs resolves the directory holding diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Downloads resolves the directory holding stories saved for offline listening.
func Downloads() string {
	return ensureDir(filepath.Join(Config(), "downloads"))
}

// Audio resolves the directory used to cache streamed narration files.
func Audio() string {
	return ensureDir(filepath.Join(Cache(), "audio"))
}

// History resolves the reading and listening history file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Favorites resolves the favorite stories file.
func Favorites() string {
	return filepath.Join(Config(), "favorites.json")
}

// Preferences resolves the user preferences file.
func Preferences() string {
	return filepath.Join(Config(), "preferences.json")
}

// Catalog resolves the offline snapshot of catalog responses.
func Catalog() string {
	return filepath.Join(Cache(), "catalog.json")
}

// Queries resolves the search query suggestion registry.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Temp resolves a volatile directory for transient artifacts such as player sockets.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Bedtime))
}
