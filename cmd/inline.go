package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/bedtime-cli/bedtime/catalog"
	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/inline"
	"github.com/bedtime-cli/bedtime/query"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	addFilterFlags(inlineCmd)
	inlineCmd.Flags().StringP("query", "q", "", "Fuzzy search query")
	inlineCmd.Flags().StringP("pick", "P", "", "Pick a single story from the results and print how to play it")
	inlineCmd.Flags().BoolP("content", "C", false, "Include the story text in JSON output")
	inlineCmd.Flags().StringP("output", "o", "", "Write the output to this file")

	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("pick", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"first", "last"}, cobra.ShellCompDirectiveNoFileComp
	}))
}

var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Query the catalog without the interactive interface",
	Long: `Query the catalog for scripts and other programs.

Story pickers:
  first - first story in the results
  last - last story in the results
  [number] - story at this index (starting from 0)
  [slug] - story with this slug or id

Without a picker every matching story on the page is printed.`,
	Example: "  bedtime inline --query dragon --age 6-8 --json\n  bedtime inline --tag animals --pick first",
	Run: func(cmd *cobra.Command, args []string) {
		filters, err := filtersFromFlags(cmd)
		handleErr(err)
		filters.Query = lo.Must(cmd.Flags().GetString("query"))

		c, err := catalog.New()
		handleErr(err)
		handleErr(checkTags(cmd.Context(), c, filters.Tags))

		var out io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			out = file
		}

		picker := mo.None[inline.StoryPicker]()
		if desc := lo.Must(cmd.Flags().GetString("pick")); desc != "" {
			fn, err := inline.ParseStoryPicker(desc)
			handleErr(err)
			picker = mo.Some(fn)
		}

		if filters.Query != "" {
			_ = query.Remember(filters.Query, 1)
		}

		handleErr(inline.Run(cmd.Context(), &inline.Options{
			Out:            out,
			Catalog:        c,
			Language:       language(),
			Filters:        filters,
			Page:           lo.Must(cmd.Flags().GetInt("page")),
			Limit:          limit(cmd),
			Json:           lo.Must(cmd.Flags().GetBool("json")),
			Picker:         picker,
			IncludeContent: lo.Must(cmd.Flags().GetBool("content")),
		}))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)

	inlineSchemaCmd.Flags().BoolP("story", "s", false, "Schema of a single story instead of the inline output")
}

var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the inline output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "story", "audio", "image", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("story")):
			schema = reflector.Reflect(&story.Story{})
		default:
			schema = reflector.Reflect(&inline.Output{})
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
