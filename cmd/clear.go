package cmd

import (
	"fmt"
	"os"

	"github.com/lectio-cli/lectio/downloader"
	"github.com/lectio-cli/lectio/filesystem"
	"github.com/lectio-cli/lectio/icon"
	"github.com/lectio-cli/lectio/key"
	"github.com/lectio-cli/lectio/util"
	"github.com/lectio-cli/lectio/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), where.Cache},
	{"logs directory", "logs", mo.Some("l"), where.Logs},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}

	clearCmd.Flags().BoolP("partial", "p", false, "remove unfinished downloads under the download directory")
	clearCmd.SetOut(os.Stdout)
}

var clearCmd = &cobra.Command{
	Use:   "clear [download dir]",
	Short: "Clear cached files, logs and unfinished downloads",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		doClear := func(what string) bool {
			return lo.Must(cmd.Flags().GetBool(what))
		}

		for _, target := range clearTargets {
			if doClear(target.argLong) {
				anyCleared = true
				e := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), util.Capitalize(target.name)))
				err := util.Delete(target.location())
				e()
				handleErr(err)
				cmd.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
			}
		}

		if doClear("partial") {
			anyCleared = true
			root := viper.GetString(key.DownloadPath)
			if len(args) > 0 {
				root = args[0]
			}

			removed, err := downloader.RemovePartial(filesystem.API().Fs, root, viper.GetString(key.DownloadTempSuffix))
			handleErr(err)
			for _, path := range removed {
				cmd.Printf("%s removed %s\n", icon.Get(icon.Skip), path)
			}
			cmd.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Quantify(len(removed), "unfinished download", "unfinished downloads"))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
