package scraper

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lectio-cli/lectio/log"
	"github.com/lectio-cli/lectio/source"
)

// Outline markup of the course landing page.
const (
	selectorCourseTitle  = `[class*="coursename-title"]`
	selectorSection      = ".outline-item.section"
	selectorSectionTitle = ".section-title"
	selectorLesson       = ".vertical.outline-item.focusable"
	selectorLessonTitle  = ".vertical-title"
	selectorOutlineItem  = ".outline-item"
)

// Outline is the parsed structure of a course landing page.
type Outline struct {
	// Course display name, empty when the page has none.
	Title   string
	Modules []*source.Module
	// Malformed lesson entries that were skipped.
	Issues []error
}

// ParseOutline parses a course landing page into its ordered modules and lessons.
// Sections without a title are dropped. A page without any well-formed section yields an empty outline.
func ParseOutline(page io.Reader) (*Outline, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("parse course page: %w", err)
	}

	outline := &Outline{Title: courseTitle(doc)}

	doc.Find(selectorSection).Each(func(_ int, section *goquery.Selection) {
		title := section.Find(selectorSectionTitle).First()
		if title.Length() == 0 {
			log.Debug("skipping untitled course section")
			return
		}

		module := &source.Module{
			Name:  strings.TrimSpace(title.Text()),
			Index: len(outline.Modules) + 1,
		}

		section.Find(selectorLesson).Each(func(_ int, item *goquery.Selection) {
			lesson, err := parseLesson(module.Name, item)
			if err != nil {
				outline.Issues = append(outline.Issues, err)
				return
			}

			lesson.Index = len(module.Lessons) + 1
			module.Lessons = append(module.Lessons, lesson)
		})

		outline.Modules = append(outline.Modules, module)
	})

	return outline, nil
}

// parseLesson reads one outline entry. The lesson link is the second nested
// outline item; the first is a decorative wrapper carrying the same markup.
func parseLesson(module string, item *goquery.Selection) (*source.Lesson, error) {
	title := item.Find(selectorLessonTitle).First()
	if title.Length() == 0 {
		return nil, &StructureParseError{Module: module, Reason: "lesson has no title"}
	}
	name := strings.TrimSpace(title.Text())

	links := item.Find(selectorOutlineItem)
	if links.Length() < 2 {
		return nil, &StructureParseError{Module: module, Lesson: name, Reason: "lesson has no link"}
	}

	href, ok := links.Eq(1).Attr("href")
	if href = strings.TrimSpace(href); !ok || href == "" {
		return nil, &StructureParseError{Module: module, Lesson: name, Reason: "lesson link has no href"}
	}

	return &source.Lesson{Name: name, URL: href}, nil
}

func courseTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find(selectorCourseTitle).First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
