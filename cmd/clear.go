package cmd

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/bedtime-cli/bedtime/icon"
	"github.com/bedtime-cli/bedtime/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var clearable = lo.Filter(locations, func(l location, _ int) bool { return l.clearable })

func init() {
	rootCmd.AddCommand(clearCmd)

	addLocationFlags(clearCmd, clearable, func(l location) string { return "Clear the " + strings.ToLower(l.title) }, true)
	clearCmd.Flags().BoolP("all", "A", false, "Clear everything listed above")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cached and saved data",
	Run: func(cmd *cobra.Command, args []string) {
		targets := selectedLocations(cmd, clearable)
		if lo.Must(cmd.Flags().GetBool("all")) {
			targets = clearable
		}

		if len(targets) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, target := range targets {
			erase := util.PrintErasable(icon.Get(icon.Progress) + " Clearing " + strings.ToLower(target.title) + "...")
			err := util.Delete(target.path())
			erase()

			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
			success("%s cleared", target.title)
		}
	},
}
