package pipeline

import (
	"github.com/lectio-cli/lectio/downloader"
	"github.com/lectio-cli/lectio/source"
)

// Failure is a single asset or lesson that was given up on.
type Failure struct {
	URL  string
	Path string
	Err  error
}

// Report summarizes a run.
type Report struct {
	Course *source.Course
	// Root is the course directory on disk.
	Root string

	Downloaded int
	Skipped    int
	Bytes      int64

	Failures []Failure
	// Issues are malformed outline entries that were skipped.
	Issues []error
}

func (r *Report) record(target source.DownloadTarget, result downloader.Result, err error) {
	switch {
	case err != nil:
		r.Failures = append(r.Failures, Failure{URL: target.URL, Path: result.Path, Err: err})
	case result.Skipped:
		r.Skipped++
	default:
		r.Downloaded++
		r.Bytes += result.Bytes
	}
}

// Observer receives progress events. Implementations must not block for long.
type Observer interface {
	Module(index, total int, module *source.Module)
	Started(index, total int, target source.DownloadTarget)
	Progress(target source.DownloadTarget, done, total int64)
	Finished(target source.DownloadTarget, result downloader.Result, err error)
}

type nopObserver struct{}

func (nopObserver) Module(int, int, *source.Module) {}
func (nopObserver) Started(int, int, source.DownloadTarget) {}
func (nopObserver) Progress(source.DownloadTarget, int64, int64) {}
func (nopObserver) Finished(source.DownloadTarget, downloader.Result, error) {}
