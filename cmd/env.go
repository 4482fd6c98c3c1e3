package cmd

import (
	"os"
	"strings"

	"github.com/lectio-cli/lectio/color"
	"github.com/lectio-cli/lectio/config"
	"github.com/lectio-cli/lectio/constant"
	"github.com/lectio-cli/lectio/style"
	"github.com/lectio-cli/lectio/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Only show variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only show variables that are not set")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}

// envVariables lists every supported variable name, sorted.
func envVariables() []string {
	names := lo.Map(config.EnvExposed, func(env string, _ int) string {
		return strings.ToUpper(constant.Lectio + "_" + config.EnvKeyReplacer.Replace(env))
	})
	names = append(names, where.EnvConfigPath, EnvPassword)
	slices.Sort(names)
	return names
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the supported environment variables",
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		for _, env := range envVariables() {
			value := os.Getenv(env)
			present := value != ""

			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(env))
			cmd.Print("=")

			switch {
			case !present:
				cmd.Println(style.Fg(color.Red)("unset"))
			case env == EnvPassword:
				cmd.Println(style.Fg(color.Green)("********"))
			default:
				cmd.Println(style.Fg(color.Green)(value))
			}
		}
	},
}
