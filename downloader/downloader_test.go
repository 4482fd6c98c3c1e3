package downloader

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/lectio-cli/lectio/network"
	"github.com/lectio-cli/lectio/source"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

var payload = bytes.Repeat([]byte("lecture-bytes-"), 1000)

type failingRename struct {
	afero.Fs
}

func (failingRename) Rename(string, string) error {
	return errors.New("interrupted before publish")
}

func newServer(hits *atomic.Int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/video.mp4":
			w.Header().Set("Content-Length", fmt.Sprint(len(payload)))
			_, _ = w.Write(payload)
		case "/notes.pdf":
			if r.Header.Get("Accept-Encoding") != "identity" {
				w.Header().Set("Content-Encoding", "gzip")
				zw := gzip.NewWriter(w)
				_, _ = zw.Write(payload)
				_ = zw.Close()
				return
			}
			w.Header().Set("Content-Length", fmt.Sprint(len(payload)))
			_, _ = w.Write(payload)
		case "/chunked.mp4":
			w.(http.Flusher).Flush()
			_, _ = w.Write(payload)
		case "/truncated.mp4":
			conn, buf, err := w.(http.Hijacker).Hijack()
			if err != nil {
				return
			}
			_, _ = buf.WriteString("HTTP/1.1 200 OK\r\nContent-Length: 100000\r\n\r\n")
			_, _ = buf.Write(payload[:64])
			_ = buf.Flush()
			_ = conn.Close()
		default:
			http.NotFound(w, r)
		}
	}))
}

func target(base, path string) source.DownloadTarget {
	return source.DownloadTarget{URL: base + path, Destination: "/dl/course/module/Лекция 1 Intro", Extension: ".mp4"}
}

func checksum(fs afero.Fs, path string) [32]byte {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		panic(err)
	}
	return sha256.Sum256(data)
}

func TestDownload(t *testing.T) {
	Convey("Given a media server and an empty filesystem", t, func() {
		var hits atomic.Int32
		srv := newServer(&hits)
		defer srv.Close()

		fs := afero.NewMemMapFs()
		d := New(srv.Client(), fs, Options{ChunkSize: 4096})
		ctx := context.Background()

		Convey("The file is streamed and published under its final name", func() {
			var calls int
			var last [2]int64
			result, err := d.Download(ctx, target(srv.URL, "/video.mp4"), func(done, total int64) {
				calls++
				last = [2]int64{done, total}
			})
			So(err, ShouldBeNil)
			So(result.Path, ShouldEqual, "/dl/course/module/Лекция 1 Intro.mp4")
			So(result.Bytes, ShouldEqual, int64(len(payload)))
			So(result.Skipped, ShouldBeFalse)

			data, err := afero.ReadFile(fs, result.Path)
			So(err, ShouldBeNil)
			So(data, ShouldResemble, payload)

			temp, _ := afero.Exists(fs, result.Path+".download")
			So(temp, ShouldBeFalse)

			So(calls, ShouldBeGreaterThan, 1)
			So(last, ShouldResemble, [2]int64{int64(len(payload)), int64(len(payload))})
		})

		Convey("A second call is a no-op", func() {
			first, err := d.Download(ctx, target(srv.URL, "/video.mp4"), nil)
			So(err, ShouldBeNil)
			before := checksum(fs, first.Path)

			second, err := d.Download(ctx, target(srv.URL, "/video.mp4"), nil)
			So(err, ShouldBeNil)
			So(second.Skipped, ShouldBeTrue)
			So(hits.Load(), ShouldEqual, 1)
			So(checksum(fs, second.Path), ShouldResemble, before)
		})

		Convey("A stale temporary file is overwritten", func() {
			stale := "/dl/course/module/Лекция 1 Intro.mp4.download"
			So(afero.WriteFile(fs, stale, bytes.Repeat([]byte("x"), len(payload)*2), 0644), ShouldBeNil)

			result, err := d.Download(ctx, target(srv.URL, "/video.mp4"), nil)
			So(err, ShouldBeNil)
			data, _ := afero.ReadFile(fs, result.Path)
			So(data, ShouldResemble, payload)
		})

		Convey("A transfer cut short never reaches the final path", func() {
			_, err := d.Download(ctx, target(srv.URL, "/truncated.mp4"), nil)

			var dlErr *DownloadError
			So(errors.As(err, &dlErr), ShouldBeTrue)
			So(dlErr.URL, ShouldEndWith, "/truncated.mp4")

			final, _ := afero.Exists(fs, "/dl/course/module/Лекция 1 Intro.mp4")
			So(final, ShouldBeFalse)
			temp, _ := afero.Exists(fs, "/dl/course/module/Лекция 1 Intro.mp4.download")
			So(temp, ShouldBeFalse)
		})

		Convey("An interruption before the rename leaves the final path absent", func() {
			broken := New(srv.Client(), failingRename{fs}, Options{})
			_, err := broken.Download(ctx, target(srv.URL, "/video.mp4"), nil)
			So(err, ShouldNotBeNil)

			final, _ := afero.Exists(fs, "/dl/course/module/Лекция 1 Intro.mp4")
			So(final, ShouldBeFalse)
		})

		Convey("A missing resource is a DownloadError carrying the status", func() {
			_, err := d.Download(ctx, target(srv.URL, "/missing.mp4"), nil)

			var statusErr *network.StatusError
			So(errors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("A response without Content-Length is rejected", func() {
			_, err := d.Download(ctx, target(srv.URL, "/chunked.mp4"), nil)
			So(errors.Is(err, ErrUnknownLength), ShouldBeTrue)

			final, _ := afero.Exists(fs, "/dl/course/module/Лекция 1 Intro.mp4")
			So(final, ShouldBeFalse)
		})

		Convey("A server that compresses when allowed still yields a checkable length", func() {
			notes := source.DownloadTarget{URL: srv.URL + "/notes.pdf", Destination: "/dl/course/module/Лекция 1 Notes", Extension: ".pdf"}
			result, err := d.Download(ctx, notes, nil)
			So(err, ShouldBeNil)
			So(result.Bytes, ShouldEqual, int64(len(payload)))
			So(checksum(fs, result.Path), ShouldEqual, sha256.Sum256(payload))
		})

		Convey("An overlong destination is reduced to the lecture token", func() {
			long := source.DownloadTarget{
				URL:         srv.URL + "/video.mp4",
				Destination: "/dl/course/module/Лекция 4 " + strings.Repeat("очень длинное название ", 15),
				Extension:   ".mp4",
			}
			So(len([]rune(long.Path())), ShouldBeGreaterThan, 260)

			result, err := d.Download(ctx, long, nil)
			So(err, ShouldBeNil)
			So(result.Shortened, ShouldBeTrue)
			So(result.Path, ShouldEqual, "/dl/course/module/Лекция 4.mp4")

			exists, _ := afero.Exists(fs, "/dl/course/module/Лекция 4.mp4")
			So(exists, ShouldBeTrue)
		})
	})
}
