package util

import (
	"regexp"
	"strings"
	"testing"

	"github.com/lectio-cli/lectio/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "file", "files"), ShouldEqual, "1 file")
		So(Quantify(2, "file", "files"), ShouldEqual, "2 files")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize("лекция"), ShouldEqual, "Лекция")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestReGroups(t *testing.T) {
	Convey("ReGroups", t, func() {
		re := regexp.MustCompile(`(?P<first>\w+)\s(?P<last>\w+)`)
		groups := ReGroups(re, "John Doe")
		So(groups["first"], ShouldEqual, "John")
		So(groups["last"], ShouldEqual, "Doe")
		So(ReGroups(re, "nomatch"), ShouldBeEmpty)
	})
}

func TestMax(t *testing.T) {
	Convey("Max", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestDelete(t *testing.T) {
	Convey("Given files on the in-memory backend", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(fs.WriteFile("/d/sub/a.mp4.download", []byte("x"), 0644), ShouldBeNil)

		Convey("Delete removes a single file", func() {
			So(Delete("/d/sub/a.mp4.download"), ShouldBeNil)
			exists, _ := fs.Exists("/d/sub/a.mp4.download")
			So(exists, ShouldBeFalse)
		})

		Convey("Delete removes a directory tree", func() {
			So(Delete("/d"), ShouldBeNil)
			exists, _ := fs.DirExists("/d")
			So(exists, ShouldBeFalse)
		})

		Convey("Delete fails on a missing path", func() {
			So(Delete("/missing"), ShouldNotBeNil)
		})
	})
}

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should remove disallowed characters", func() {
			So(SanitizeFilename(`Тема 1: "Введение"?`), ShouldEqual, "Тема 1 Введение")
			So(SanitizeFilename("a/b\\c|d*e<f>"), ShouldEqual, "abcdef")
			So(SanitizeFilename("(draft) v1.2"), ShouldEqual, "draft v1.2")
		})

		Convey("Should keep word characters, spaces, hyphens, underscores and periods", func() {
			So(SanitizeFilename("snake_case - v2.0"), ShouldEqual, "snake_case - v2.0")
		})

		Convey("Should be idempotent", func() {
			inputs := []string{
				"", "  ", "...", "Lecture #3 (part 2/3)", "Неделя 1. Основы: ввод/вывод",
				"tab\there", "emoji 🎬 title", "  padded  ", "a b",
			}
			for _, in := range inputs {
				once := SanitizeFilename(in)
				So(SanitizeFilename(once), ShouldEqual, once)
			}
		})

		Convey("Should only ever emit the allowed set", func() {
			allowed := regexp.MustCompile(`^[\p{L}\p{M}\p{N}_ .\-]*$`)
			for _, in := range []string{"<>:\"/\\|?*", "Mixed: ёжик & co", "\x00\x01ctrl"} {
				So(allowed.MatchString(SanitizeFilename(in)), ShouldBeTrue)
			}
		})
	})
}

func TestSegment(t *testing.T) {
	Convey("Segment", t, func() {
		So(Segment("Module: 1", "Module 1"), ShouldEqual, "Module 1")
		So(Segment("..", "fallback"), ShouldEqual, "fallback")
		So(Segment("???", "fallback"), ShouldEqual, "fallback")
	})
}

func TestShortenPath(t *testing.T) {
	Convey("ShortenPath", t, func() {
		dir := "/root/course/module/"

		Convey("Leaves short paths untouched", func() {
			path, changed := ShortenPath(dir+"Лекция 1 Intro", ".mp4", "Лекция", 260)
			So(changed, ShouldBeFalse)
			So(path, ShouldEqual, dir+"Лекция 1 Intro")
		})

		Convey("Reduces an overlong name to the lecture token", func() {
			long := dir + "Лекция 12 " + strings.Repeat("x", 300)
			path, changed := ShortenPath(long, ".mp4", "Лекция", 260)
			So(changed, ShouldBeTrue)
			So(path, ShouldEqual, dir+"Лекция 12")
		})

		Convey("Keeps the leading ordinal when the title names another lecture", func() {
			tail := strings.Repeat("y", 300)
			first, _ := ShortenPath(dir+"Лекция 1 Лекция 3. "+tail, ".mp4", "Лекция", 260)
			third, _ := ShortenPath(dir+"Лекция 3 Другая тема "+tail, ".mp4", "Лекция", 260)
			So(first, ShouldEqual, dir+"Лекция 1")
			So(third, ShouldEqual, dir+"Лекция 3")
		})

		Convey("Ignores a lecture token that does not lead the name", func() {
			long := dir + "Intro Лекция 7 " + strings.Repeat("y", 300)
			path, changed := ShortenPath(long, ".mp4", "Лекция", 260)
			So(changed, ShouldBeTrue)
			So(len([]rune(path+".mp4")), ShouldEqual, 260)
		})

		Convey("Compiles the token pattern once per prefix", func() {
			So(lecturePattern("Лекция"), ShouldPointTo, lecturePattern("Лекция"))
			So(lecturePattern("Lecture"), ShouldNotPointTo, lecturePattern("Лекция"))
		})

		Convey("Counts characters, not bytes", func() {
			name := dir + "Лекция 1 " + strings.Repeat("ж", 200)
			So(len(name) > 260, ShouldBeTrue)
			_, changed := ShortenPath(name, ".mp4", "Лекция", 260)
			So(changed, ShouldBeFalse)
		})

		Convey("Truncates names without a lecture token", func() {
			long := dir + strings.Repeat("z", 400)
			path, changed := ShortenPath(long, ".mp4", "Лекция", 260)
			So(changed, ShouldBeTrue)
			So(len([]rune(path+".mp4")), ShouldEqual, 260)
		})
	})
}
