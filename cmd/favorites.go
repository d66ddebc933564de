package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bedtime-cli/bedtime/catalog"
	"github.com/bedtime-cli/bedtime/color"
	"github.com/bedtime-cli/bedtime/favorites"
	"github.com/bedtime-cli/bedtime/style"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(favoritesCmd)
}

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage favorite stories",
}

func completionFavorites(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	entries, err := favorites.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return lo.Map(entries, func(e *favorites.Entry, _ int) string {
		return e.Slug + "\t" + e.Title
	}), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesListCmd.Flags().BoolP("json", "j", false, "Print JSON")
	favoritesListCmd.SetOut(os.Stdout)
}

var favoritesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List favorite stories",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := favorites.List()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
			return
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("No favorites yet"))
			return
		}

		for _, e := range entries {
			cmd.Printf("%s %s %s\n", style.Bold(e.Title), style.Fg(color.Purple)(e.Slug), style.Faint(humanize.Time(e.AddedAt)))
		}
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesAddCmd)
}

var favoritesAddCmd = &cobra.Command{
	Use:               "add [slug]",
	Short:             "Add a story to the favorites",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionStorySlugs,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := catalog.New()
		handleErr(err)

		s, err := catalog.Find(cmd.Context(), c, args[0], language())
		handleErr(err)

		handleErr(favorites.Add(s))
		success("added %s to favorites", style.Bold(s.Title))
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesRemoveCmd)
}

var favoritesRemoveCmd = &cobra.Command{
	Use:               "remove [slug]",
	Aliases:           []string{"rm"},
	Short:             "Remove a story from the favorites",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionFavorites,
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := favorites.List()
		handleErr(err)

		entry, ok := lo.Find(entries, func(e *favorites.Entry) bool {
			return e.Slug == args[0] || e.ID == args[0]
		})
		if !ok {
			handleErr(fmt.Errorf("%s is not a favorite", args[0]))
		}

		handleErr(favorites.Remove(entry.ID))
		success("removed %s from favorites", style.Bold(entry.Title))
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesToggleCmd)
}

var favoritesToggleCmd = &cobra.Command{
	Use:               "toggle [slug]",
	Short:             "Add or remove a story from the favorites",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionStorySlugs,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := catalog.New()
		handleErr(err)

		s, err := catalog.Find(cmd.Context(), c, args[0], language())
		handleErr(err)

		added, err := favorites.Toggle(s)
		handleErr(err)

		if added {
			success("added %s to favorites", style.Bold(s.Title))
		} else {
			success("removed %s from favorites", style.Bold(s.Title))
		}
	},
}
