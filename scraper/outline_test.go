package scraper

import (
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const coursePage = `<html><head><title>Fallback title</title></head><body>
<div class="coursename-title col-12">Математический анализ</div>
<ol>
  <li class="outline-item section">
    <h3 class="section-title">Неделя 1</h3>
    <ol>
      <li class="vertical outline-item focusable">
        <a class="outline-item focusable" href="#wrapper">
          <div class="vertical-details"><span class="vertical-title"> Введение </span></div>
        </a>
        <a class="outline-item" href="/courses/x/jump_to/block1">open</a>
      </li>
      <li class="vertical outline-item focusable">
        <div class="outline-item"><span class="vertical-title">Пределы</span></div>
        <a class="outline-item" href="https://courses.example/block2">open</a>
      </li>
    </ol>
  </li>
  <li class="outline-item section">
    <h3 class="section-title">Неделя 2</h3>
    <ol>
      <li class="vertical outline-item focusable">
        <div class="outline-item"><span class="vertical-title">Broken</span></div>
      </li>
      <li class="vertical outline-item focusable">
        <div class="outline-item">no title here</div>
        <a class="outline-item" href="/block4">open</a>
      </li>
      <li class="vertical outline-item focusable">
        <div class="outline-item"><span class="vertical-title">Производные</span></div>
        <a class="outline-item" href="/block5">open</a>
      </li>
    </ol>
  </li>
  <li class="outline-item section">
    <div class="no-title">untitled</div>
    <li class="vertical outline-item focusable">
      <div class="outline-item"><span class="vertical-title">Orphan</span></div>
      <a class="outline-item" href="/orphan">open</a>
    </li>
  </li>
</ol>
</body></html>`

func TestParseOutline(t *testing.T) {
	Convey("Given a course landing page", t, func() {
		outline, err := ParseOutline(strings.NewReader(coursePage))
		So(err, ShouldBeNil)

		Convey("The course title is read from the coursename-title element", func() {
			So(outline.Title, ShouldEqual, "Математический анализ")
		})

		Convey("Titled sections become modules in page order", func() {
			So(outline.Modules, ShouldHaveLength, 2)
			So(outline.Modules[0].Name, ShouldEqual, "Неделя 1")
			So(outline.Modules[0].Index, ShouldEqual, 1)
			So(outline.Modules[1].Name, ShouldEqual, "Неделя 2")
			So(outline.Modules[1].Index, ShouldEqual, 2)
		})

		Convey("Lessons take the stripped title and the second outline item's href", func() {
			lessons := outline.Modules[0].Lessons
			So(lessons, ShouldHaveLength, 2)
			So(lessons[0].Name, ShouldEqual, "Введение")
			So(lessons[0].URL, ShouldEqual, "/courses/x/jump_to/block1")
			So(lessons[0].Index, ShouldEqual, 1)
			So(lessons[1].Name, ShouldEqual, "Пределы")
			So(lessons[1].URL, ShouldEqual, "https://courses.example/block2")
		})

		Convey("Malformed lessons are reported and skipped", func() {
			lessons := outline.Modules[1].Lessons
			So(lessons, ShouldHaveLength, 1)
			So(lessons[0].Name, ShouldEqual, "Производные")
			So(lessons[0].Index, ShouldEqual, 1)

			So(outline.Issues, ShouldHaveLength, 2)
			var parseErr *StructureParseError
			So(errors.As(outline.Issues[0], &parseErr), ShouldBeTrue)
			So(parseErr.Module, ShouldEqual, "Неделя 2")
			So(parseErr.Lesson, ShouldEqual, "Broken")
			So(outline.Issues[1].Error(), ShouldContainSubstring, "no title")
		})
	})

	Convey("Given pages without any well-formed module", t, func() {
		pages := []string{
			"",
			"<html><body><p>maintenance</p></body></html>",
			`<div class="outline-item section"><span>no title</span></div>`,
			"<<<not really html",
		}

		Convey("The outline is empty and no error is returned", func() {
			for _, page := range pages {
				outline, err := ParseOutline(strings.NewReader(page))
				So(err, ShouldBeNil)
				So(outline.Modules, ShouldBeEmpty)
			}
		})
	})

	Convey("Given a page without a coursename-title element", t, func() {
		outline, err := ParseOutline(strings.NewReader("<html><head><title> Physics </title></head></html>"))
		So(err, ShouldBeNil)

		Convey("The document title is used instead", func() {
			So(outline.Title, ShouldEqual, "Physics")
		})
	})
}
