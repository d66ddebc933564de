package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/bedtime-cli/bedtime/history"
	"github.com/bedtime-cli/bedtime/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the reading and listening history",
}

func completionHistory(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	entries, err := history.Get()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return lo.Map(entries, func(e *history.Entry, _ int) string {
		return e.Slug + "\t" + e.Title
	}), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().BoolP("json", "j", false, "Print JSON")
	historyListCmd.SetOut(os.Stdout)
}

var historyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stories read or listened to, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := history.Get()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
			return
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("History is empty"))
			return
		}

		for _, e := range entries {
			cmd.Println(e.String())
		}
	},
}

func init() {
	historyCmd.AddCommand(historyRemoveCmd)
}

var historyRemoveCmd = &cobra.Command{
	Use:               "remove [slug]",
	Aliases:           []string{"rm"},
	Short:             "Remove a story from the history",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionHistory,
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := history.Get()
		handleErr(err)

		entry, ok := lo.Find(entries, func(e *history.Entry) bool {
			return e.Slug == args[0] || e.ID == args[0]
		})
		if !ok {
			handleErr(fmt.Errorf("%s is not in the history", args[0]))
		}

		handleErr(history.Remove(entry.ID))
		success("removed %s from history", style.Bold(entry.Title))
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
	historyClearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every story in the history",
	Run: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("yes")) {
			var confirmed bool
			handleErr(survey.AskOne(&survey.Confirm{
				Message: "Clear the whole history?",
			}, &confirmed))

			if !confirmed {
				return
			}
		}

		handleErr(history.Clear())
		success("history cleared")
	},
}
