// Package cmd implements the command-line interface of lectio.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lectio-cli/lectio/auth"
	"github.com/lectio-cli/lectio/color"
	"github.com/lectio-cli/lectio/constant"
	"github.com/lectio-cli/lectio/icon"
	"github.com/lectio-cli/lectio/key"
	"github.com/lectio-cli/lectio/log"
	"github.com/lectio-cli/lectio/pipeline"
	"github.com/lectio-cli/lectio/style"
	"github.com/lectio-cli/lectio/version"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes.
const (
	exitFailure = 1
	exitAuth    = 2
	exitCourse  = 3
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("user", "u", "", "Login or email of the platform account")
	lo.Must0(viper.BindPFlag(key.AuthUsername, rootCmd.PersistentFlags().Lookup("user")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

var rootCmd = &cobra.Command{
	Use:   constant.Lectio,
	Short: "Download lectures and notes from online courses",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiCyan).Render("    - Download lectures and notes from online courses"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute runs the command tree.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(exitFailure)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var (
		authErr   *auth.AuthenticationError
		courseErr *pipeline.CourseError
	)

	switch {
	case errors.As(err, &authErr):
		return exitAuth
	case errors.As(err, &courseErr):
		return exitCourse
	default:
		return exitFailure
	}
}
