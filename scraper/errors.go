// Package scraper extracts the course outline and the downloadable content of lesson pages.
package scraper

import "fmt"

// StructureParseError describes a malformed lesson entry of the course outline.
// The entry is skipped; the rest of the outline is still returned.
type StructureParseError struct {
	Module string
	Lesson string
	Reason string
}

func (e *StructureParseError) Error() string {
	if e.Lesson == "" {
		return fmt.Sprintf("module %q: %s", e.Module, e.Reason)
	}
	return fmt.Sprintf("module %q: lesson %q: %s", e.Module, e.Lesson, e.Reason)
}

// ContentDiscoveryError reports a lesson page that could not be fetched or parsed.
type ContentDiscoveryError struct {
	Lesson string
	URL    string
	Err    error
}

func (e *ContentDiscoveryError) Error() string {
	return fmt.Sprintf("lesson %q (%s): %v", e.Lesson, e.URL, e.Err)
}

func (e *ContentDiscoveryError) Unwrap() error {
	return e.Err
}
