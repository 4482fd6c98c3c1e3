package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/lectio-cli/lectio/auth"
	"github.com/lectio-cli/lectio/color"
	"github.com/lectio-cli/lectio/icon"
	"github.com/lectio-cli/lectio/key"
	"github.com/lectio-cli/lectio/style"
	"github.com/lectio-cli/lectio/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().Bool("no-verify", false, "Store the credentials without signing in first")
	loginCmd.SetOut(os.Stdout)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify and remember the credentials of the platform account",
	Long: `Sign in to the identity provider and, on success, keep the password in the system keyring
and the login in the configuration file. Later runs do not ask for them again.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		username, err := resolveUsername()
		handleErr(err)

		var password string
		handleErr(survey.AskOne(&survey.Password{
			Message: fmt.Sprintf("Password for %s:", username),
		}, &password, survey.WithValidator(survey.Required)))

		if !lo.Must(cmd.Flags().GetBool("no-verify")) {
			erase := util.PrintErasable(fmt.Sprintf("%s Signing in as %s...", icon.Get(icon.Lock), username))
			_, err = auth.Login(context.Background(), auth.LoginOptions{
				Username: username,
				Password: password,
				LoginURL: viper.GetString(key.AuthLoginURL),
				NextPage: viper.GetString(key.AuthNextPage),
				Network:  networkOptions(),
			})
			erase()
			handleErr(err)
		}

		handleErr(auth.SetPassword(username, password))

		viper.Set(key.AuthUsername, username)
		handleErr(writeConfig())

		cmd.Printf("%s signed in as %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(username),
		)
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
	logoutCmd.SetOut(os.Stdout)
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored password",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		username := viper.GetString(key.AuthUsername)
		if username == "" {
			cmd.Println("not signed in")
			return
		}

		handleErr(auth.DeletePassword(username))
		cmd.Printf("%s forgot the password of %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(username),
		)
	},
}
