// Package cmd implements the command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/bedtime-cli/bedtime/color"
	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/icon"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/log"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/bedtime-cli/bedtime/style"
	"github.com/bedtime-cli/bedtime/util"
	"github.com/bedtime-cli/bedtime/version"
	"github.com/bedtime-cli/bedtime/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., plain, emoji, nerd)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("language", "L", "", "Language of the stories (en, pl, ru)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("language", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return story.Languages, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.CatalogLanguage, rootCmd.PersistentFlags().Lookup("language")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Remember read and played stories in the history")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnListen, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.Flags().BoolP("continue", "c", false, "Start from the listening history")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd opens the story browser.
var rootCmd = &cobra.Command{
	Use:   constant.Bedtime,
	Short: "Bedtime stories to read and listen to in the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.Moon).Render("    - Bedtime stories to read and listen to in the terminal"),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		style.SetNightMode(userPreferences().NightMode)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(listen(cmd.Context(), listenOptions{
			history: lo.Must(cmd.Flags().GetBool("continue")),
		}))
	},
}

// Execute runs the command named on the command line.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiMagenta + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

func success(format string, args ...any) {
	fmt.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}
