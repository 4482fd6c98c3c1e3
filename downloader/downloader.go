// Package downloader streams remote assets to disk, publishing each file only once it is complete.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/lectio-cli/lectio/constant"
	"github.com/lectio-cli/lectio/log"
	"github.com/lectio-cli/lectio/network"
	"github.com/lectio-cli/lectio/source"
	"github.com/lectio-cli/lectio/util"
	"github.com/spf13/afero"
)

// ErrUnknownLength is returned when the response does not declare a usable Content-Length.
var ErrUnknownLength = errors.New("response has no content length")

// DownloadError reports an asset that could not be downloaded. The final path is never left half-written.
type DownloadError struct {
	URL  string
	Path string
	Err  error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s to %s: %v", e.URL, e.Path, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// ProgressFunc observes a transfer after every chunk.
type ProgressFunc func(done, total int64)

// Options tunes the downloader. Zero values fall back to the defaults in package constant.
type Options struct {
	ChunkSize     int
	TempSuffix    string
	MaxPathLength int
	// LecturePrefix is the token overlong names are reduced to.
	LecturePrefix string
}

// Result describes the outcome of a successful call.
type Result struct {
	// Final path of the file, after any shortening.
	Path string
	// Bytes written; zero when skipped.
	Bytes     int64
	Skipped   bool
	Shortened bool
}

// Downloader writes remote resources to a filesystem.
type Downloader struct {
	client *http.Client
	fs     afero.Fs
	opts   Options
}

// New creates a downloader that fetches with client and writes to fs.
func New(client *http.Client, fs afero.Fs, opts Options) *Downloader {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = constant.ChunkSize
	}
	if opts.TempSuffix == "" {
		opts.TempSuffix = constant.TempSuffix
	}
	if opts.MaxPathLength <= 0 {
		opts.MaxPathLength = constant.MaxPathLength
	}
	if opts.LecturePrefix == "" {
		opts.LecturePrefix = constant.LecturePrefix
	}

	return &Downloader{client: client, fs: fs, opts: opts}
}

// Resolve returns the final path target will be saved to, shortened when it exceeds the path length limit.
func (d *Downloader) Resolve(target source.DownloadTarget) (string, bool) {
	dest, shortened := util.ShortenPath(target.Destination, target.Extension, d.opts.LecturePrefix, d.opts.MaxPathLength)
	return dest + target.Extension, shortened
}

// Download saves target. When the final file already exists the call returns immediately
// without contacting the server. Otherwise the body is streamed into a temporary file that is
// renamed to the final path only after the declared length has been written.
func (d *Downloader) Download(ctx context.Context, target source.DownloadTarget, progress ProgressFunc) (Result, error) {
	final, shortened := d.Resolve(target)
	result := Result{Path: final, Shortened: shortened}
	logger := log.WithFields(log.Fields{"url": target.URL, "path": final})

	if shortened {
		logger.WithField("requested", target.Path()).Warn("file name too long, shortened")
	}

	fail := func(err error) (Result, error) {
		logger.WithError(err).Error("download failed")
		return result, &DownloadError{URL: target.URL, Path: final, Err: err}
	}

	exists, err := afero.Exists(d.fs, final)
	if err != nil {
		return fail(err)
	}
	if exists {
		logger.Info("file already exists, skipping")
		result.Skipped = true
		return result, nil
	}

	if err := d.fs.MkdirAll(filepath.Dir(final), os.ModePerm); err != nil {
		return fail(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		return fail(err)
	}
	// A compressed response loses its Content-Length in transport.
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := d.client.Do(req)
	if err != nil {
		return fail(err)
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(&network.StatusError{Method: req.Method, URL: target.URL, StatusCode: resp.StatusCode})
	}
	if resp.ContentLength < 0 {
		return fail(ErrUnknownLength)
	}

	temp := final + d.opts.TempSuffix
	written, err := d.stream(resp.Body, temp, resp.ContentLength, progress)
	if err != nil {
		_ = d.fs.Remove(temp)
		return fail(err)
	}

	if err := d.fs.Rename(temp, final); err != nil {
		_ = d.fs.Remove(temp)
		return fail(fmt.Errorf("publish: %w", err))
	}

	result.Bytes = written
	logger.WithField("bytes", written).Info("downloaded")
	return result, nil
}

// stream copies body into path chunk by chunk. A stale file at path from an interrupted run is truncated.
func (d *Downloader) stream(body io.Reader, path string, total int64, progress ProgressFunc) (int64, error) {
	f, err := d.fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return 0, err
	}

	var (
		done int64
		buf  = make([]byte, d.opts.ChunkSize)
	)

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, err := f.Write(buf[:n]); err != nil {
				_ = f.Close()
				return done, err
			}
			done += int64(n)
			if progress != nil {
				progress(done, total)
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = f.Close()
			return done, readErr
		}
	}

	if err := f.Close(); err != nil {
		return done, err
	}

	if done != total {
		return done, fmt.Errorf("received %d of %d bytes: %w", done, total, io.ErrUnexpectedEOF)
	}
	return done, nil
}
