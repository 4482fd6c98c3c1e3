package open

import (
	"testing"

	"github.com/lectio-cli/lectio/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given a downloaded course directory", t, func() {
		dir := "/home/student/courses/Calculus"

		Convey("Linux uses xdg-open", func() {
			cmd, ok := command(constant.Linux, dir)
			So(ok, ShouldBeTrue)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", dir})
		})

		Convey("macOS uses open", func() {
			cmd, ok := command(constant.Darwin, dir)
			So(ok, ShouldBeTrue)
			So(cmd.Args, ShouldResemble, []string{"open", dir})
		})

		Convey("Windows goes through the URL protocol handler", func() {
			cmd, ok := command(constant.Windows, dir)
			So(ok, ShouldBeTrue)
			So(cmd.Args[1:], ShouldResemble, []string{"url.dll,FileProtocolHandler", dir})
		})

		Convey("Unknown systems are unsupported", func() {
			_, ok := command("plan9", dir)
			So(ok, ShouldBeFalse)
		})
	})
}
