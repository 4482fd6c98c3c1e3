package source

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCourse(t *testing.T) {
	Convey("Given a course with two modules", t, func() {
		course := &Course{
			Name: "Physics",
			Modules: []*Module{
				{Name: "Mechanics", Index: 1, Lessons: []*Lesson{{Name: "Kinematics"}, {Name: "Dynamics"}}},
				{Name: "Optics", Index: 2, Lessons: []*Lesson{{Name: "Lenses"}}},
			},
		}

		Convey("String", func() {
			So(course.String(), ShouldEqual, "Physics")
			So(course.Modules[0].String(), ShouldEqual, "Mechanics")
			So(course.Modules[1].Lessons[0].String(), ShouldEqual, "Lenses")
		})

		Convey("Lessons counts every module", func() {
			So(course.Lessons(), ShouldEqual, 3)
		})
	})
}

func TestContentUnit(t *testing.T) {
	Convey("ContentUnit", t, func() {
		u := ContentUnit{Title: "Intro", Index: 2}
		So(u.String(), ShouldEqual, "2. Intro")
	})
}

func TestDownloadTarget(t *testing.T) {
	Convey("DownloadTarget", t, func() {
		target := DownloadTarget{URL: "https://video.example/b.mp4", Destination: "/root/c/m/Лекция 1 Intro", Extension: ".mp4"}
		So(target.Path(), ShouldEqual, "/root/c/m/Лекция 1 Intro.mp4")
		So(target.String(), ShouldEqual, target.Path())
	})
}
