package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/bedtime-cli/bedtime/catalog"
	"github.com/bedtime-cli/bedtime/history"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/log"
	"github.com/bedtime-cli/bedtime/open"
	"github.com/bedtime-cli/bedtime/style"
	"github.com/bedtime-cli/bedtime/util"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolP("images", "i", false, "Open the illustrations in the default viewer")
	readCmd.SetOut(os.Stdout)
}

// readerWidth is the configured reader width scaled for the preferred font size,
// limited by the terminal.
func readerWidth() int {
	width := viper.GetInt(key.ReaderWidth)
	if width <= 0 {
		width = 80
	}
	width = userPreferences().ReaderWidth(width)

	if columns, _, err := util.TerminalSize(); err == nil && columns > 0 {
		width = util.Min(width, columns)
	}
	return width
}

var readCmd = &cobra.Command{
	Use:               "read [slug]",
	Short:             "Print a story to read",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionStorySlugs,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := catalog.New()
		handleErr(err)

		s, err := catalog.Find(cmd.Context(), c, args[0], language())
		handleErr(err)

		width := readerWidth()
		paragraphs := lo.Map(s.Paragraphs(), func(p string, _ int) string {
			return wordwrap.String(p, width)
		})

		cmd.Println(style.Title(s.Title))
		cmd.Println(style.Faint(fmt.Sprintf("%s, %d min read", s.AgeGroup, s.ReadingTime)))
		cmd.Println()
		cmd.Println(strings.Join(paragraphs, "\n\n"))

		if lo.Must(cmd.Flags().GetBool("images")) {
			for _, image := range s.Images {
				if err := open.Start(image.Src, ""); err != nil {
					log.Warnf("open illustration %s: %s", image.Src, err)
				}
			}
		}

		if viper.GetBool(key.HistorySaveOnListen) {
			if err := history.Save(s, 0); err != nil {
				log.Warn(err)
			}
		}
	},
}
