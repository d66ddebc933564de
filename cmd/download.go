package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/bedtime-cli/bedtime/catalog"
	"github.com/bedtime-cli/bedtime/color"
	"github.com/bedtime-cli/bedtime/icon"
	"github.com/bedtime-cli/bedtime/offline"
	"github.com/bedtime-cli/bedtime/open"
	"github.com/bedtime-cli/bedtime/style"
	"github.com/bedtime-cli/bedtime/where"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().BoolP("skip-audio", "t", false, "Only save the text")
}

var downloadCmd = &cobra.Command{
	Use:               "download [slug]",
	Short:             "Save a story for offline reading and listening",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionStorySlugs,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := catalog.New()
		handleErr(err)

		s, err := catalog.Find(cmd.Context(), c, args[0], language())
		handleErr(err)

		var total string
		if s.HasAudio() && s.Audio.FileSize > 0 {
			total = " / " + humanize.Bytes(uint64(s.Audio.FileSize))
		}

		d, err := offline.Save(cmd.Context(), s, offline.Options{
			SkipAudio: lo.Must(cmd.Flags().GetBool("skip-audio")),
			Progress: func(written int64) {
				fmt.Printf("\r\033[K%s %s %s%s", icon.Get(icon.Progress), s.Title, humanize.Bytes(uint64(written)), total)
			},
		})
		fmt.Print("\r\033[K")

		switch {
		case errors.Is(err, offline.ErrTooLarge):
			handleErr(fmt.Errorf("%w, the limit is %s", err, humanize.Bytes(uint64(offline.MaxAudioSize()))))
		case errors.Is(err, offline.ErrStorageFull):
			handleErr(fmt.Errorf("%w, remove downloads with %s", err, style.Fg(color.Yellow)("bedtime downloads remove")))
		}
		handleErr(err)

		success("downloaded %s", d)
	},
}

func init() {
	rootCmd.AddCommand(downloadsCmd)
}

var downloadsCmd = &cobra.Command{
	Use:   "downloads",
	Short: "Manage stories saved for offline use",
}

func completionDownloads(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	downloads, err := offline.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return lo.Map(downloads, func(d *offline.Download, _ int) string {
		return d.Story.Slug + "\t" + d.Story.Title
	}), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	downloadsCmd.AddCommand(downloadsListCmd)
	downloadsListCmd.Flags().BoolP("json", "j", false, "Print JSON")
	downloadsListCmd.SetOut(os.Stdout)
}

var downloadsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List downloaded stories",
	Run: func(cmd *cobra.Command, args []string) {
		downloads, err := offline.List()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(downloads))
			return
		}

		for _, d := range downloads {
			cmd.Println(d.String())
		}

		used, err := offline.Size()
		handleErr(err)
		cmd.Println(style.Faint(fmt.Sprintf(
			"%s of %s used",
			humanize.Bytes(uint64(used)),
			humanize.Bytes(uint64(offline.MaxStorage())),
		)))
	},
}

func init() {
	downloadsCmd.AddCommand(downloadsRemoveCmd)
}

var downloadsRemoveCmd = &cobra.Command{
	Use:               "remove [slug]",
	Aliases:           []string{"rm"},
	Short:             "Delete a downloaded story",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionDownloads,
	Run: func(cmd *cobra.Command, args []string) {
		downloads, err := offline.List()
		handleErr(err)

		d, ok := lo.Find(downloads, func(d *offline.Download) bool {
			return d.Story.Slug == args[0] || d.Story.ID == args[0]
		})
		if !ok {
			handleErr(fmt.Errorf("%s: %w", args[0], offline.ErrNotDownloaded))
		}

		handleErr(offline.Remove(d.Story.ID))
		success("removed %s", style.Bold(d.Story.Title))
	},
}

func init() {
	downloadsCmd.AddCommand(downloadsOpenCmd)
}

var downloadsOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the downloads folder",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(open.Start(where.Downloads(), ""))
	},
}
