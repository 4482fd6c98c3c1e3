package log

import (
	"bytes"
	"testing"

	"github.com/lectio-cli/lectio/filesystem"
	"github.com/lectio-cli/lectio/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestLogging(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Emissions are no-ops", func() {
			So(func() {
				Info("hidden")
				WithFields(Fields{"url": "https://x"}).Warn("hidden")
			}, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled on a buffer", t, func() {
		viper.Set(key.LogsLevel, "info")
		viper.Set(key.LogsJson, false)
		var buf bytes.Buffer
		Enable(&buf)
		defer Disable()

		Convey("Fields are written with the message", func() {
			WithFields(Fields{"path": "/tmp/a.mp4"}).Info("downloaded")
			So(buf.String(), ShouldContainSubstring, "downloaded")
			So(buf.String(), ShouldContainSubstring, "path=/tmp/a.mp4")
		})

		Convey("Messages below the level are dropped", func() {
			Debug("too verbose")
			So(buf.String(), ShouldNotContainSubstring, "too verbose")
		})
	})

	Convey("Given logging is enabled through config", t, func() {
		viper.Set(key.LogsWrite, true)
		defer viper.Set(key.LogsWrite, false)
		defer Disable()

		Convey("Setup opens a file on the active backend", func() {
			So(Setup(), ShouldBeNil)
		})
	})
}
