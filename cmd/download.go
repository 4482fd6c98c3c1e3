package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/lectio-cli/lectio/color"
	"github.com/lectio-cli/lectio/icon"
	"github.com/lectio-cli/lectio/key"
	"github.com/lectio-cli/lectio/log"
	"github.com/lectio-cli/lectio/open"
	"github.com/lectio-cli/lectio/pipeline"
	"github.com/lectio-cli/lectio/style"
	"github.com/lectio-cli/lectio/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringP("output", "o", "", "Root directory for downloaded courses")
	lo.Must0(viper.BindPFlag(key.DownloadPath, downloadCmd.Flags().Lookup("output")))

	downloadCmd.Flags().Bool("spoof-tls", false, "Mimic the Chrome TLS fingerprint")
	lo.Must0(viper.BindPFlag(key.NetworkSpoofTLS, downloadCmd.Flags().Lookup("spoof-tls")))

	downloadCmd.Flags().StringSliceP("module", "m", []string{}, "Only download modules matching these names")
	downloadCmd.Flags().BoolP("quiet", "q", false, "Do not render progress")
	downloadCmd.Flags().Bool("open", false, "Open the course directory when done")

	downloadCmd.SetOut(os.Stdout)
}

var downloadCmd = &cobra.Command{
	Use:     "download [course url]",
	Short:   "Download every lecture video and note of a course",
	Aliases: []string{"dl"},
	Args:    cobra.ExactArgs(1),
	Example: "  lectio download https://courses.openedu.ru/courses/course-v1:spbu+MATAN+fall_2024/course/",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := pipelineConfig(args[0])
		handleErr(err)
		cfg.ModuleFilter = lo.Must(cmd.Flags().GetStringSlice("module"))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		erase := util.PrintErasable(fmt.Sprintf("%s Signing in as %s...", icon.Get(icon.Lock), cfg.Username))

		var opts []pipeline.Option
		if !lo.Must(cmd.Flags().GetBool("quiet")) {
			printer := newProgressPrinter(cmd.OutOrStdout())
			printer.before = erase
			opts = append(opts, pipeline.WithObserver(printer))
		}

		report, err := pipeline.New(cfg, opts...).Run(ctx)
		erase()

		if report != nil {
			printReport(cmd, report, err)
		}
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("open")) {
			if err := open.Start(report.Root); err != nil {
				log.WithFields(log.Fields{"path": report.Root}).WithError(err).Warn("open course directory")
			}
		}

		if len(report.Failures) > 0 {
			os.Exit(exitFailure)
		}
	},
}

func printReport(cmd *cobra.Command, report *pipeline.Report, err error) {
	headline := style.Fg(color.Green)(icon.Get(icon.Success)) + " Downloading complete!"
	if errors.Is(err, context.Canceled) {
		headline = style.Fg(color.Yellow)(icon.Get(icon.Warn)) + " Downloading interrupted."
	}

	cmd.Println()
	cmd.Printf("%s %s downloaded (%s), %s skipped\n",
		headline,
		util.Quantify(report.Downloaded, "file", "files"),
		humanize.Bytes(uint64(report.Bytes)),
		util.Quantify(report.Skipped, "file", "files"),
	)

	for _, issue := range report.Issues {
		cmd.Printf("%s %s\n", style.Fg(color.Yellow)(icon.Get(icon.Warn)), issue)
	}

	if len(report.Failures) == 0 {
		return
	}

	cmd.Printf("\n%s %s\n",
		style.Fg(color.Red)(icon.Get(icon.Fail)),
		style.Bold(util.Quantify(len(report.Failures), "failure", "failures")),
	)
	for _, failure := range report.Failures {
		cmd.Printf("  %s\n", style.Faint(failure.Err.Error()))
	}
}
