package cmd

import (
	"testing"

	"github.com/lectio-cli/lectio/where"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/exp/slices"
)

func TestEnvVariables(t *testing.T) {
	Convey("Given the supported environment variables", t, func() {
		names := envVariables()

		Convey("Config keys are prefixed and upper-cased", func() {
			So(names, ShouldContain, "LECTIO_DOWNLOAD_PATH")
			So(names, ShouldContain, "LECTIO_NETWORK_SPOOF_TLS")
		})

		Convey("Path override and password are included", func() {
			So(names, ShouldContain, where.EnvConfigPath)
			So(names, ShouldContain, EnvPassword)
		})

		Convey("The list is sorted", func() {
			So(slices.IsSorted(names), ShouldBeTrue)
		})
	})
}
