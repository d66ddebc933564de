package cmd

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/bedtime-cli/bedtime/auth"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the API key of the remote catalog",
	Long:  "Manage the API key of the remote catalog.\nThe key is kept in the system keyring, " + auth.EnvAPIKey + " overrides it.",
}

func init() {
	authCmd.AddCommand(authSetCmd)
}

var authSetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the API key",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var key string
		if len(args) > 0 {
			key = args[0]
		} else {
			handleErr(survey.AskOne(&survey.Password{
				Message: "API key",
			}, &key, survey.WithValidator(survey.Required)))
		}

		handleErr(auth.SetAPIKey(key))
		success("api key saved")
	},
}

func init() {
	authCmd.AddCommand(authDeleteCmd)
}

var authDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove", "logout"},
	Short:   "Remove the stored API key",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteAPIKey())
		success("api key removed")
	},
}
