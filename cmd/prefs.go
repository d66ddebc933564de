package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bedtime-cli/bedtime/color"
	"github.com/bedtime-cli/bedtime/log"
	"github.com/bedtime-cli/bedtime/preferences"
	"github.com/bedtime-cli/bedtime/style"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(prefsCmd)
}

// userPreferences never fails, a broken preferences file falls back to the defaults.
func userPreferences() *preferences.Preferences {
	prefs, err := preferences.Load()
	if err != nil {
		log.Warnf("preferences: %v", err)
		return preferences.Defaults()
	}
	return prefs
}

var prefsCmd = &cobra.Command{
	Use:     "prefs",
	Aliases: []string{"preferences"},
	Short:   "Manage personal preferences",
}

func init() {
	prefsCmd.AddCommand(prefsShowCmd)
	prefsShowCmd.Flags().BoolP("json", "j", false, "Print JSON")
	prefsShowCmd.SetOut(os.Stdout)
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current preferences",
	Run: func(cmd *cobra.Command, args []string) {
		prefs, err := preferences.Load()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(prefs))
			return
		}

		data, err := json.Marshal(prefs)
		handleErr(err)

		var values map[string]any
		handleErr(json.Unmarshal(data, &values))

		for _, name := range preferences.Names() {
			value := values[name]
			if list, ok := value.([]any); ok {
				value = strings.Join(lo.Map(list, func(v any, _ int) string { return fmt.Sprint(v) }), ",")
			}
			cmd.Printf("%s = %s\n", style.Fg(color.Purple)(name), style.Fg(color.Yellow)(fmt.Sprint(value)))
		}
	},
}

func init() {
	prefsCmd.AddCommand(prefsSetCmd)
}

var prefsSetCmd = &cobra.Command{
	Use:     "set [name] [value]",
	Short:   "Change a preference",
	Example: "  bedtime prefs set sleep_timer 20\n  bedtime prefs set age_groups 3-5,6-8",
	Args:    cobra.ExactArgs(2),
	ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return preferences.Names(), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		name, value := args[0], args[1]

		if !lo.Contains(preferences.Names(), name) {
			closest := lo.MinBy(preferences.Names(), func(a, b string) bool {
				return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
			})
			handleErr(fmt.Errorf(
				"unknown preference %s, did you mean %s?",
				style.Fg(color.Red)(name),
				style.Fg(color.Yellow)(closest),
			))
		}

		_, err := preferences.Set(name, value)
		handleErr(err)

		success("set %s to %s", style.Fg(color.Purple)(name), style.Fg(color.Yellow)(value))
	},
}

func init() {
	prefsCmd.AddCommand(prefsResetCmd)
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget every changed preference",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(preferences.Reset())
		success("preferences reset")
	},
}
