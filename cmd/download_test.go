package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lectio-cli/lectio/key"
	"github.com/lectio-cli/lectio/pipeline"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestPrintReport(t *testing.T) {
	Convey("Given a command writing to a buffer", t, func() {
		viper.Set(key.IconsVariant, "plain")
		defer viper.Set(key.IconsVariant, "")

		var out bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetOut(&out)

		report := &pipeline.Report{Downloaded: 2, Skipped: 1, Bytes: 2048}

		Convey("A finished run is reported as complete", func() {
			printReport(cmd, report, nil)
			So(out.String(), ShouldContainSubstring, "Downloading complete!")
			So(out.String(), ShouldContainSubstring, "2 files downloaded")
		})

		Convey("A cancelled run is reported as interrupted", func() {
			printReport(cmd, report, fmt.Errorf("lesson: %w", context.Canceled))
			So(out.String(), ShouldContainSubstring, "Downloading interrupted.")
			So(out.String(), ShouldNotContainSubstring, "complete")
		})

		Convey("Failures are listed", func() {
			report.Failures = []pipeline.Failure{{URL: "https://example.com/a.mp4", Err: errors.New("boom")}}
			printReport(cmd, report, nil)
			So(out.String(), ShouldContainSubstring, "1 failure")
			So(out.String(), ShouldContainSubstring, "boom")
		})
	})
}
