// Package pipeline drives a complete course download: login, outline, lesson discovery and asset transfer.
package pipeline

import (
	"fmt"

	"github.com/lectio-cli/lectio/network"
)

// Config is everything a run needs. It is assembled by the caller; the pipeline never prompts.
type Config struct {
	Username string
	Password string
	LoginURL string
	NextPage string

	// CourseURL points at the course's outline ("Course" tab).
	CourseURL    string
	DownloadRoot string

	LecturePrefix        string
	VideoPattern         string
	AttachmentExtensions []string
	// ModuleFilter restricts the run to modules fuzzy-matching any entry. Empty means all.
	ModuleFilter []string

	ChunkSize     int
	MaxPathLength int
	TempSuffix    string

	Network network.Options
}

// CourseError reports a course that cannot be processed at all.
type CourseError struct {
	URL string
	Err error
}

func (e *CourseError) Error() string {
	return fmt.Sprintf("course %s: %v", e.URL, e.Err)
}

func (e *CourseError) Unwrap() error {
	return e.Err
}
