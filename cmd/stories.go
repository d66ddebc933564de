package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/bedtime-cli/bedtime/catalog"
	"github.com/bedtime-cli/bedtime/color"
	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/favorites"
	"github.com/bedtime-cli/bedtime/icon"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/offline"
	"github.com/bedtime-cli/bedtime/query"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/bedtime-cli/bedtime/style"
	"github.com/bedtime-cli/bedtime/util"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func completionStorySlugs(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	c, err := catalog.New()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	stories, err := c.Stories(cmd.Context(), language())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return lo.Map(stories, func(s *story.Story, _ int) string {
		return s.Slug + "\t" + s.Title
	}), cobra.ShellCompDirectiveNoFileComp
}

func errUnknownTag(slug string, tags []*story.Tag) error {
	if len(tags) == 0 {
		return fmt.Errorf("unknown tag %s", style.Fg(color.Red)(slug))
	}

	closest := lo.MinBy(tags, func(a, b *story.Tag) bool {
		return levenshtein.Distance(slug, a.Slug) < levenshtein.Distance(slug, b.Slug)
	})
	return fmt.Errorf(
		"unknown tag %s, did you mean %s?",
		style.Fg(color.Red)(slug),
		style.Fg(color.Yellow)(closest.Slug),
	)
}

// checkTags makes sure every tag slug exists in the catalog.
func checkTags(ctx context.Context, c catalog.Catalog, slugs []string) error {
	if len(slugs) == 0 {
		return nil
	}

	tags, err := c.Tags(ctx, language())
	if err != nil {
		return err
	}

	for _, slug := range slugs {
		if !lo.ContainsBy(tags, func(t *story.Tag) bool { return t.Slug == slug }) {
			return errUnknownTag(slug, tags)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(storiesCmd)
}

var storiesCmd = &cobra.Command{
	Use:     "stories",
	Aliases: []string{"story"},
	Short:   "Browse the story catalog",
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("tag", "t", []string{}, "Only stories with one of these tags")
	cmd.Flags().StringSliceP("age", "a", []string{}, "Only stories for these age groups (3-5, 6-8, 9-12)")
	cmd.Flags().BoolP("audio", "A", false, "Only stories with narration")
	cmd.Flags().StringP("sort", "s", string(story.SortNewest), "Sort order: newest, oldest, title, reading_time")
	cmd.Flags().IntP("page", "p", 1, "Page to show")
	cmd.Flags().IntP("limit", "l", 0, "Stories per page, catalog.page_size by default")
	cmd.Flags().BoolP("json", "j", false, "Print JSON")

	lo.Must0(cmd.RegisterFlagCompletionFunc("age", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return story.AgeGroups, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(cmd.RegisterFlagCompletionFunc("sort", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(story.SortOptions, func(s story.SortBy, _ int) string { return string(s) }), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(cmd.RegisterFlagCompletionFunc("tag", func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		c, err := catalog.New()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		tags, err := c.Tags(cmd.Context(), language())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return lo.Map(tags, func(t *story.Tag, _ int) string { return t.Slug }), cobra.ShellCompDirectiveNoFileComp
	}))
}

func filtersFromFlags(cmd *cobra.Command) (story.Filters, error) {
	sortBy, err := story.ParseSortBy(lo.Must(cmd.Flags().GetString("sort")))
	if err != nil {
		return story.Filters{}, err
	}

	ages := lo.Must(cmd.Flags().GetStringSlice("age"))
	if !cmd.Flags().Changed("age") {
		if preferred := userPreferences().AgeGroups; len(preferred) < len(story.AgeGroups) {
			ages = preferred
		}
	}
	for _, age := range ages {
		if !story.ValidAgeGroup(age) {
			return story.Filters{}, fmt.Errorf("unknown age group %q, expected one of %v", age, story.AgeGroups)
		}
	}

	return story.Filters{
		Tags:      lo.Must(cmd.Flags().GetStringSlice("tag")),
		AgeGroups: ages,
		HasAudio:  lo.Must(cmd.Flags().GetBool("audio")),
		SortBy:    sortBy,
	}, nil
}

func limit(cmd *cobra.Command) int {
	if n := lo.Must(cmd.Flags().GetInt("limit")); n > 0 {
		return n
	}
	return viper.GetInt(key.CatalogPageSize)
}

func pageFromFlags(cmd *cobra.Command, stories []*story.Story) story.Page[*story.Story] {
	return story.Paginate(stories, lo.Must(cmd.Flags().GetInt("page")), limit(cmd))
}

func printStories(cmd *cobra.Command, page story.Page[*story.Story]) {
	if lo.Must(cmd.Flags().GetBool("json")) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(page))
		return
	}

	if page.Total == 0 {
		cmd.Println(style.Faint("No stories found"))
		return
	}

	for _, s := range page.Items {
		marks := ""
		if ok, _ := favorites.Contains(s.ID); ok {
			marks += " " + style.Fg(color.Pink)(icon.Get(icon.Heart))
		}
		if offline.Has(s.ID) {
			marks += " " + style.Fg(color.Green)(icon.Get(icon.Download))
		}

		audio := style.Faint("text only")
		if s.HasAudio() {
			audio = icon.Get(icon.Play) + " " + util.FormatClock(s.Audio.Length())
		}

		cmd.Printf(
			"%s%s\n  %s  %s  %s  %s\n",
			style.Bold(s.Title),
			marks,
			style.Fg(color.Purple)(s.Slug),
			style.AgeTag(s.AgeGroup),
			style.Faint(fmt.Sprintf("%d min read", s.ReadingTime)),
			audio,
		)
	}

	if page.TotalPages > 1 {
		cmd.Println(style.Faint(fmt.Sprintf("\npage %d of %d, %s", page.Page, page.TotalPages, util.Quantify(page.Total, "story", "stories"))))
	}
}

func init() {
	storiesCmd.AddCommand(storiesListCmd)
	addFilterFlags(storiesListCmd)
	storiesListCmd.SetOut(os.Stdout)
}

var storiesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stories",
	Run: func(cmd *cobra.Command, args []string) {
		filters, err := filtersFromFlags(cmd)
		handleErr(err)

		c, err := catalog.New()
		handleErr(err)
		handleErr(checkTags(cmd.Context(), c, filters.Tags))

		stories, err := c.Stories(cmd.Context(), language())
		handleErr(err)

		printStories(cmd, pageFromFlags(cmd, filters.Apply(stories)))
	},
}

func init() {
	storiesCmd.AddCommand(storiesSearchCmd)
	addFilterFlags(storiesSearchCmd)
	storiesSearchCmd.SetOut(os.Stdout)
}

var storiesSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stories by title, description and text",
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		q := strings.Join(args, " ")

		filters, err := filtersFromFlags(cmd)
		handleErr(err)

		c, err := catalog.New()
		handleErr(err)
		handleErr(checkTags(cmd.Context(), c, filters.Tags))

		stories, err := c.Search(cmd.Context(), q, language())
		handleErr(err)
		_ = query.Remember(q, 1)

		printStories(cmd, pageFromFlags(cmd, filters.Apply(stories)))
	},
}

func init() {
	storiesCmd.AddCommand(storiesShowCmd)
	storiesShowCmd.Flags().BoolP("json", "j", false, "Print JSON")
	storiesShowCmd.SetOut(os.Stdout)
}

var storiesShowCmd = &cobra.Command{
	Use:               "show [slug]",
	Short:             "Show the details of a story",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionStorySlugs,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := catalog.New()
		handleErr(err)

		s, err := catalog.Find(cmd.Context(), c, args[0], language())
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(s))
			return
		}

		handleErr(renderStory(cmd, s))
	},
}

// storyView is what the story template sees.
type storyView struct {
	*story.Story
	Favorite   bool
	Downloaded bool
}

var storyTemplate = template.Must(template.New("story").Funcs(template.FuncMap{
	"title": style.Title,
	"faint": style.Faint,
	"blue":  style.Fg(color.Blue),
	"pink":  style.Fg(color.Pink),
	"green": style.Fg(color.Green),
	"join":  strings.Join,
	"tagNames": func(tags []string) []string {
		return lo.Map(tags, func(t string, _ int) string { return util.Capitalize(t) })
	},
	"clock": func(seconds int) string {
		return util.FormatClock((&story.Audio{Duration: seconds}).Length())
	},
	"concat": func(a, b string) string { return a + b },
	"wrap": func(s string) string {
		return wordwrap.String(s, readerWidth())
	},
}).Parse(constant.StoryTemplate))

func renderStory(cmd *cobra.Command, s *story.Story) error {
	favorite, err := favorites.Contains(s.ID)
	if err != nil {
		return err
	}

	return storyTemplate.Execute(cmd.OutOrStdout(), storyView{
		Story:      s,
		Favorite:   favorite,
		Downloaded: offline.Has(s.ID),
	})
}

func init() {
	storiesCmd.AddCommand(storiesTagsCmd)
	storiesTagsCmd.Flags().BoolP("json", "j", false, "Print JSON")
	storiesTagsCmd.SetOut(os.Stdout)
}

var storiesTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List story tags",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := catalog.New()
		handleErr(err)

		tags, err := c.Tags(cmd.Context(), language())
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(tags))
			return
		}

		for _, t := range tags {
			name := t.Name
			if t.Color != "" {
				name = style.Fg(color.New(t.Color))(name)
			}
			cmd.Printf("%s %s\n", style.Bold(name), style.Faint(t.Slug))
			if t.Description != "" {
				cmd.Println("  " + t.Description)
			}
		}
	},
}

func init() {
	storiesCmd.AddCommand(storiesLocalesCmd)
	storiesLocalesCmd.SetOut(os.Stdout)
}

var storiesLocalesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List the languages stories are published in",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := catalog.New()
		handleErr(err)

		locales, err := c.Locales(cmd.Context())
		if errors.Is(err, catalog.ErrOffline) {
			handleErr(fmt.Errorf("the catalog is offline and no languages were saved yet"))
		}
		handleErr(err)

		current := language()
		for _, l := range locales {
			mark := "  "
			if l.Code == current {
				mark = style.Fg(color.Green)("* ")
			}
			cmd.Printf("%s%s %s\n", mark, style.Bold(l.Code), l.Name)
		}
	},
}
