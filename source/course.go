// Package source defines the domain models for a course and its downloadable assets.
package source

import "fmt"

// Course is the root of a scraped course tree.
type Course struct {
	// Landing page ("Course" tab) URL.
	URL string `json:"url" jsonschema:"description=Landing page of the course."`
	// Display name from the landing page.
	Name string `json:"name" jsonschema:"description=Display name of the course."`

	Modules []*Module `json:"modules" jsonschema:"description=Modules in page order."`
}

func (c *Course) String() string {
	return c.Name
}

// Lessons returns the total number of lessons across all modules.
func (c *Course) Lessons() int {
	var n int
	for _, m := range c.Modules {
		n += len(m.Lessons)
	}
	return n
}

// Module is a chapter of a course.
type Module struct {
	// Raw, unsanitized title.
	Name string `json:"name"`
	// Position within the course, starting at 1.
	Index int `json:"index"`

	Lessons []*Lesson `json:"lessons" jsonschema:"description=Lessons in page order."`
}

func (m *Module) String() string {
	return m.Name
}

// Lesson is a single page of a module.
type Lesson struct {
	Name string `json:"name"`
	// Relative or absolute reference to the lesson page.
	URL string `json:"url" jsonschema:"description=Lesson page, relative to the course page or absolute."`
	// Position within the module, starting at 1.
	Index int `json:"index"`

	// Units are populated only on deep inspection.
	Units []ContentUnit `json:"units,omitempty" jsonschema:"description=Content units. Only present on deep inspection."`
}

func (l *Lesson) String() string {
	return l.Name
}

// ContentUnit is one playable video with its attachments, as found on a lesson page.
type ContentUnit struct {
	Title       string       `json:"title"`
	VideoURL    string       `json:"video_url" jsonschema:"description=Playable video selected for the unit."`
	Attachments []Attachment `json:"attachments,omitempty" jsonschema:"description=Downloadable lecture notes."`
	// Ordinal within the lesson, starting at 1.
	Index int `json:"index"`
}

func (u ContentUnit) String() string {
	return fmt.Sprintf("%d. %s", u.Index, u.Title)
}

// Attachment is a downloadable lecture-note resource.
type Attachment struct {
	Title string `json:"title"`
	// Raw href as found in the markup.
	Path string `json:"path" jsonschema:"description=Link as found on the lesson page. May be relative."`
}
