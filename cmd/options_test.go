package cmd

import (
	"testing"
	"time"

	"github.com/lectio-cli/lectio/auth"
	"github.com/lectio-cli/lectio/config"
	"github.com/lectio-cli/lectio/constant"
	"github.com/lectio-cli/lectio/filesystem"
	"github.com/lectio-cli/lectio/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

func TestPipelineConfig(t *testing.T) {
	Convey("Given default configuration and a stored password", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()
		So(config.Setup(), ShouldBeNil)

		keyring.MockInit()
		viper.Set(key.AuthUsername, "student")
		defer viper.Set(key.AuthUsername, "")
		So(auth.SetPassword("student", "secret"), ShouldBeNil)

		cfg, err := pipelineConfig("https://courses.example/course/")
		So(err, ShouldBeNil)

		Convey("Credentials come from configuration and keyring without prompting", func() {
			So(cfg.Username, ShouldEqual, "student")
			So(cfg.Password, ShouldEqual, "secret")
		})

		Convey("Platform constants are the defaults", func() {
			So(cfg.LoginURL, ShouldEqual, constant.DefaultLoginURL)
			So(cfg.LecturePrefix, ShouldEqual, constant.LecturePrefix)
			So(cfg.ChunkSize, ShouldEqual, constant.ChunkSize)
			So(cfg.MaxPathLength, ShouldEqual, constant.MaxPathLength)
			So(cfg.AttachmentExtensions, ShouldResemble, []string{".pdf"})
		})

		Convey("Network settings are converted to durations", func() {
			So(cfg.Network.Retry.MaxAttempts, ShouldEqual, 5)
			So(cfg.Network.Retry.BaseDelay, ShouldEqual, 500*time.Millisecond)
			So(cfg.Network.Retry.MaxDelay, ShouldEqual, 15*time.Second)
			So(cfg.Network.HeaderTimeout, ShouldEqual, time.Minute)
		})
	})
}

func TestResolvePassword(t *testing.T) {
	Convey("Given a password in the environment and another in the keyring", t, func() {
		keyring.MockInit()
		So(auth.SetPassword("student", "from-keyring"), ShouldBeNil)
		t.Setenv(EnvPassword, "from-env")

		Convey("The environment wins", func() {
			password, err := resolvePassword("student")
			So(err, ShouldBeNil)
			So(password, ShouldEqual, "from-env")
		})
	})
}
