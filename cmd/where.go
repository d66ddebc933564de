package cmd

import (
	"os"

	"github.com/bedtime-cli/bedtime/color"
	"github.com/bedtime-cli/bedtime/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(whereCmd)

	addLocationFlags(whereCmd, locations, func(l location) string { return l.title + " path" }, false)
	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string { return l.flag })...)
	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where files are stored",
	Run: func(cmd *cobra.Command, args []string) {
		if selected := selectedLocations(cmd, locations); len(selected) > 0 {
			cmd.Println(selected[0].path())
			return
		}

		heading := style.New().Bold(true).Foreground(color.Purple).Render
		listed := lo.Filter(locations, func(l location, _ int) bool { return l.listed })

		for i, l := range listed {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(heading(l.title+"?"), style.Fg(color.Yellow)("--"+l.flag))
			cmd.Println(l.path())
		}
	},
}
