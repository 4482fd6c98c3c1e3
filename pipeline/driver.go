package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/lectio-cli/lectio/auth"
	"github.com/lectio-cli/lectio/constant"
	"github.com/lectio-cli/lectio/downloader"
	"github.com/lectio-cli/lectio/filesystem"
	"github.com/lectio-cli/lectio/log"
	"github.com/lectio-cli/lectio/network"
	"github.com/lectio-cli/lectio/scraper"
	"github.com/lectio-cli/lectio/source"
	"github.com/lectio-cli/lectio/util"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/afero"
)

// Option customizes a Driver.
type Option func(*Driver)

// WithFilesystem writes downloads to fs instead of the active filesystem backend.
func WithFilesystem(fs afero.Fs) Option {
	return func(d *Driver) {
		d.fs = fs
	}
}

// WithObserver registers o for progress events.
func WithObserver(o Observer) Option {
	return func(d *Driver) {
		d.observer = o
	}
}

// Driver runs the pipeline for one course with one authenticated session.
type Driver struct {
	cfg      Config
	fs       afero.Fs
	observer Observer
}

// New creates a driver for cfg.
func New(cfg Config, opts ...Option) *Driver {
	if cfg.LecturePrefix == "" {
		cfg.LecturePrefix = constant.LecturePrefix
	}
	if cfg.VideoPattern == "" {
		cfg.VideoPattern = constant.VideoPattern
	}
	if cfg.DownloadRoot == "" {
		cfg.DownloadRoot = "."
	}

	d := &Driver{
		cfg:      cfg,
		fs:       filesystem.API().Fs,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run downloads the whole course. Only a failed login or an unusable course page
// aborts the run; every other failure is recorded in the report and the run goes on.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	discoverer, err := scraper.NewDiscoverer(d.cfg.VideoPattern, d.cfg.AttachmentExtensions)
	if err != nil {
		return nil, err
	}

	session, course, outline, err := d.open(ctx)
	if err != nil {
		return nil, err
	}

	root := filepath.Join(d.cfg.DownloadRoot, util.Segment(course.Name, constant.Lectio))
	report := &Report{Course: course, Root: root, Issues: outline.Issues}
	for _, issue := range outline.Issues {
		log.WithFields(log.Fields{"course": course.Name}).Warn(issue)
	}

	dl := downloader.New(session.Client, d.fs, downloader.Options{
		ChunkSize:     d.cfg.ChunkSize,
		TempSuffix:    d.cfg.TempSuffix,
		MaxPathLength: d.cfg.MaxPathLength,
		LecturePrefix: d.cfg.LecturePrefix,
	})

	courseURL, _ := url.Parse(course.URL)

	for i, module := range course.Modules {
		log.Infof("Page %d out of %d: %s", i+1, len(course.Modules), module.Name)
		d.observer.Module(i+1, len(course.Modules), module)

		dir := filepath.Join(root, util.Segment(module.Name, fmt.Sprintf("Module %d", module.Index)))
		if err := d.fs.MkdirAll(dir, os.ModePerm); err != nil {
			log.WithFields(log.Fields{"path": dir}).WithError(err).Error("create module directory")
			report.Failures = append(report.Failures, Failure{Path: dir, Err: err})
			continue
		}

		for _, lesson := range module.Lessons {
			if err := ctx.Err(); err != nil {
				return report, err
			}

			lessonURL, units, err := d.discover(ctx, session, discoverer, courseURL, lesson)
			if err != nil {
				log.WithFields(log.Fields{"lesson": lesson.Name, "url": lesson.URL}).WithError(err).Error("lesson skipped")
				report.Failures = append(report.Failures, Failure{URL: lesson.URL, Err: err})
				continue
			}
			if len(units) == 0 {
				log.WithFields(log.Fields{"lesson": lesson.Name}).Debug("nothing to download")
				continue
			}

			for _, unit := range units {
				log.Infof("[%d/%d] Downloading... %s", unit.Index, len(units), unit.VideoURL)

				for _, target := range d.targets(dir, lessonURL, unit) {
					d.observer.Started(unit.Index, len(units), target)
					result, err := dl.Download(ctx, target, func(done, total int64) {
						d.observer.Progress(target, done, total)
					})
					d.observer.Finished(target, result, err)
					report.record(target, result, err)

					if errors.Is(err, context.Canceled) {
						return report, err
					}
				}
			}
		}
	}

	log.WithFields(log.Fields{
		"course":     course.Name,
		"downloaded": report.Downloaded,
		"skipped":    report.Skipped,
		"failed":     len(report.Failures),
	}).Info("run finished")
	return report, nil
}

// Inspect logs in and returns the course outline without downloading anything.
// With deep set, every lesson page is fetched and its content units attached.
func (d *Driver) Inspect(ctx context.Context, deep bool) (*source.Course, error) {
	session, course, _, err := d.open(ctx)
	if err != nil || !deep {
		return course, err
	}

	discoverer, err := scraper.NewDiscoverer(d.cfg.VideoPattern, d.cfg.AttachmentExtensions)
	if err != nil {
		return nil, err
	}

	courseURL, _ := url.Parse(course.URL)
	for _, module := range course.Modules {
		for _, lesson := range module.Lessons {
			_, units, err := d.discover(ctx, session, discoverer, courseURL, lesson)
			if err != nil {
				log.WithFields(log.Fields{"lesson": lesson.Name}).WithError(err).Warn("lesson skipped")
				continue
			}
			lesson.Units = units
		}
	}
	return course, nil
}

// open validates the course URL, logs in and parses the outline. No file is touched before it succeeds.
func (d *Driver) open(ctx context.Context) (*network.Session, *source.Course, *scraper.Outline, error) {
	courseURL, err := parseCourseURL(d.cfg.CourseURL)
	if err != nil {
		return nil, nil, nil, &CourseError{URL: d.cfg.CourseURL, Err: err}
	}

	session, err := auth.Login(ctx, auth.LoginOptions{
		Username: d.cfg.Username,
		Password: d.cfg.Password,
		LoginURL: d.cfg.LoginURL,
		NextPage: d.cfg.NextPage,
		Network:  d.cfg.Network,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	page, err := session.Page(ctx, courseURL.String())
	if err != nil {
		return nil, nil, nil, &CourseError{URL: courseURL.String(), Err: err}
	}

	outline, err := scraper.ParseOutline(strings.NewReader(page))
	if err != nil {
		return nil, nil, nil, &CourseError{URL: courseURL.String(), Err: err}
	}

	course := &source.Course{
		URL:     courseURL.String(),
		Name:    outline.Title,
		Modules: d.filter(outline.Modules),
	}
	if course.Name == "" {
		course.Name = lastSegment(courseURL)
	}

	log.WithFields(log.Fields{
		"course":  course.Name,
		"modules": len(course.Modules),
		"lessons": course.Lessons(),
	}).Info("course outline parsed")

	return session, course, outline, nil
}

func (d *Driver) discover(
	ctx context.Context,
	session *network.Session,
	discoverer *scraper.Discoverer,
	courseURL *url.URL,
	lesson *source.Lesson,
) (*url.URL, []source.ContentUnit, error) {
	fail := func(u string, err error) (*url.URL, []source.ContentUnit, error) {
		return nil, nil, &scraper.ContentDiscoveryError{Lesson: lesson.Name, URL: u, Err: err}
	}

	ref, err := url.Parse(lesson.URL)
	if err != nil {
		return fail(lesson.URL, err)
	}
	lessonURL := courseURL.ResolveReference(ref)

	page, err := session.Page(ctx, lessonURL.String())
	if err != nil {
		return fail(lessonURL.String(), err)
	}

	units, err := discoverer.Discover(strings.NewReader(page))
	if err != nil {
		return fail(lessonURL.String(), err)
	}
	return lessonURL, units, nil
}

// targets lays out the files of one unit: the video first, then its attachments.
// Every name starts with "<prefix> <ordinal>", which keeps units with equal titles apart.
func (d *Driver) targets(dir string, lessonURL *url.URL, unit source.ContentUnit) []source.DownloadTarget {
	title := util.SanitizeFilename(unit.Title)
	name := func(title string) string {
		return strings.TrimSpace(fmt.Sprintf("%s %d %s", d.cfg.LecturePrefix, unit.Index, title))
	}

	video := source.DownloadTarget{
		URL:         unit.VideoURL,
		Destination: filepath.Join(dir, name(title)),
		Extension:   extension(unit.VideoURL, ".mp4"),
	}

	targets := []source.DownloadTarget{video}
	used := map[string]bool{video.Path(): true}

	for _, attachment := range unit.Attachments {
		ref, err := url.Parse(attachment.Path)
		if err != nil {
			log.WithFields(log.Fields{"href": attachment.Path}).Warn("unparseable attachment link")
			continue
		}
		resolved := lessonURL.ResolveReference(ref)

		base := name(lo.Ternary(util.SanitizeFilename(attachment.Title) != "", util.SanitizeFilename(attachment.Title), title))
		target := source.DownloadTarget{
			URL:         resolved.String(),
			Destination: filepath.Join(dir, base),
			Extension:   extension(resolved.String(), ""),
		}
		for k := 2; used[target.Path()]; k++ {
			target.Destination = filepath.Join(dir, fmt.Sprintf("%s (%d)", base, k))
		}

		used[target.Path()] = true
		targets = append(targets, target)
	}

	return targets
}

func (d *Driver) filter(modules []*source.Module) []*source.Module {
	if len(d.cfg.ModuleFilter) == 0 {
		return modules
	}

	return lo.Filter(modules, func(m *source.Module, _ int) bool {
		return lo.SomeBy(d.cfg.ModuleFilter, func(query string) bool {
			return fuzzy.MatchNormalizedFold(query, m.Name)
		})
	})
}

func parseCourseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("missing host")
	}
	return u, nil
}

func extension(rawURL, fallback string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallback
	}
	if ext := strings.ToLower(path.Ext(u.Path)); ext != "" {
		return ext
	}
	return fallback
}

func lastSegment(u *url.URL) string {
	segments := lo.Filter(strings.Split(u.Path, "/"), func(s string, _ int) bool {
		return s != "" && s != "course"
	})
	if len(segments) == 0 {
		return u.Host
	}
	return segments[len(segments)-1]
}
