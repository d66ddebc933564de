package cmd

import (
	"fmt"

	"github.com/bedtime-cli/bedtime/constant"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().BoolP("plain", "p", false, "Use the line based player instead of the full screen one")
	playCmd.Flags().IntP("sleep", "s", 0, "Pause the story after this many minutes, 0 disables the timer")
	playCmd.Flags().Float64P("volume", "V", constant.DefaultVolume, "Volume from 0.0 to 1.0")
	playCmd.Flags().Float64P("rate", "r", constant.DefaultPlaybackRate, "Playback speed from 0.5 to 2.0")
	playCmd.Flags().Bool("fade", true, "Fade the narration in on start and out when the sleep timer ends")
	playCmd.Flags().BoolP("continue", "c", false, "Start from the listening history")

	lo.Must0(playCmd.RegisterFlagCompletionFunc("sleep", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(constant.SleepTimerOptions, func(m int, _ int) string { return fmt.Sprint(m) }), cobra.ShellCompDirectiveNoFileComp
	}))
}

var playCmd = &cobra.Command{
	Use:               "play [slug]",
	Short:             "Listen to a story",
	Long:              "Listen to a story. Without a slug a story can be picked from the catalog.",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionStorySlugs,
	Example: fmt.Sprintf(`  %[1]s play the-little-star --sleep 15
  %[1]s play --plain`, constant.Bedtime),
	Run: func(cmd *cobra.Command, args []string) {
		o := listenOptions{
			plain:   lo.Must(cmd.Flags().GetBool("plain")),
			history: lo.Must(cmd.Flags().GetBool("continue")),
		}

		if len(args) > 0 {
			o.ref = args[0]
		}

		if cmd.Flags().Changed("sleep") {
			o.sleep = mo.Some(lo.Must(cmd.Flags().GetInt("sleep")))
		}
		if cmd.Flags().Changed("volume") {
			o.volume = mo.Some(lo.Must(cmd.Flags().GetFloat64("volume")))
		}
		if cmd.Flags().Changed("rate") {
			o.rate = mo.Some(lo.Must(cmd.Flags().GetFloat64("rate")))
		}
		if cmd.Flags().Changed("fade") {
			o.fade = mo.Some(lo.Must(cmd.Flags().GetBool("fade")))
		}

		handleErr(listen(cmd.Context(), o))
	},
}
