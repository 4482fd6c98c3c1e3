package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func TestKeyring(t *testing.T) {
	keyring.MockInit()

	Convey("Given a mocked keyring", t, func() {
		Convey("A stored password can be read back and deleted", func() {
			So(SetPassword("student", "hunter2"), ShouldBeNil)

			password, err := GetPassword("student")
			So(err, ShouldBeNil)
			So(password, ShouldEqual, "hunter2")

			So(DeletePassword("student"), ShouldBeNil)
			_, err = GetPassword("student")
			So(err, ShouldEqual, keyring.ErrNotFound)
		})
	})
}
