package cmd

import (
	"github.com/bedtime-cli/bedtime/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// location is a file or directory the app keeps data in.
type location struct {
	title string
	flag  string
	short string
	path  func() string

	// shown by a bare where
	listed bool
	// may be removed by clear
	clearable bool
}

var locations = []location{
	{title: "Config", flag: "config", short: "c", path: where.Config, listed: true},
	{title: "Downloads", flag: "downloads", short: "d", path: where.Downloads, listed: true, clearable: true},
	{title: "Logs", flag: "logs", short: "l", path: where.Logs, listed: true},
	{title: "Cache", flag: "cache", path: where.Cache, clearable: true},
	{title: "Audio cache", flag: "audio", path: where.Audio, clearable: true},
	{title: "Catalog snapshot", flag: "catalog", path: where.Catalog, clearable: true},
	{title: "History", flag: "history", short: "s", path: where.History, clearable: true},
	{title: "Favorites", flag: "favorites", short: "f", path: where.Favorites, clearable: true},
	{title: "Preferences", flag: "preferences", path: where.Preferences},
	{title: "Queries", flag: "queries", short: "q", path: where.Queries, clearable: true},
	{title: "Temp", flag: "temp", path: where.Temp},
}

// addLocationFlags adds a boolean flag per location.
// Locations without a short flag are hidden unless showAll is set.
func addLocationFlags(cmd *cobra.Command, locs []location, usage func(location) string, showAll bool) {
	for _, l := range locs {
		cmd.Flags().BoolP(l.flag, l.short, false, usage(l))
		if l.short == "" && !showAll {
			lo.Must0(cmd.Flags().MarkHidden(l.flag))
		}
	}
}

func selectedLocations(cmd *cobra.Command, locs []location) []location {
	return lo.Filter(locs, func(l location, _ int) bool {
		return lo.Must(cmd.Flags().GetBool(l.flag))
	})
}
