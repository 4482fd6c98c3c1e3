package scraper

import (
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lectio-cli/lectio/source"
	"github.com/samber/lo"
)

// Lesson page markup.
const (
	selectorSequence  = ".seq_contents"
	selectorUnitTitle = ".unit-title"
	attrPageTitle     = "data-page-title"
)

// Discoverer extracts content units from lesson pages.
type Discoverer struct {
	// VideoPattern matches playable video URLs in a unit's markup.
	VideoPattern *regexp.Regexp
	// Extensions is the attachment allow-list, lower case with a leading dot.
	Extensions []string
}

// NewDiscoverer compiles pattern and normalizes the extension allow-list.
func NewDiscoverer(pattern string, extensions []string) (*Discoverer, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("video pattern: %w", err)
	}

	normalized := lo.Uniq(lo.FilterMap(extensions, func(ext string, _ int) (string, bool) {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			return "", false
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		return ext, true
	}))

	return &Discoverer{VideoPattern: re, Extensions: normalized}, nil
}

// Discover returns the content units embedded in a lesson page, in page order.
// Units without a title or without a video are skipped; an empty result is not an error.
func (d *Discoverer) Discover(page io.Reader) ([]source.ContentUnit, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("parse lesson page: %w", err)
	}

	var units []source.ContentUnit
	doc.Find(selectorSequence).Each(func(_ int, seq *goquery.Selection) {
		unit, ok := d.unit(seq.Text())
		if !ok {
			return
		}

		unit.Index = len(units) + 1
		units = append(units, unit)
	})

	return units, nil
}

// unit parses the escaped markup of one sequence as an independent fragment.
func (d *Discoverer) unit(raw string) (source.ContentUnit, bool) {
	fragment, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return source.ContentUnit{}, false
	}

	title := strings.TrimSpace(fragment.Find(selectorUnitTitle).First().Text())
	if title == "" {
		attr, _ := fragment.Find("[" + attrPageTitle + "]").First().Attr(attrPageTitle)
		title = strings.TrimSpace(attr)
	}
	if title == "" {
		return source.ContentUnit{}, false
	}

	video, ok := SelectVideo(d.VideoPattern.FindAllString(raw, -1))
	if !ok {
		return source.ContentUnit{}, false
	}

	return source.ContentUnit{
		Title:       title,
		VideoURL:    video,
		Attachments: d.attachments(fragment),
	}, true
}

// SelectVideo picks the playable URL among the matches of a unit. The platform
// embeds a low-resolution preview first, so the second match wins when there is one.
func SelectVideo(matches []string) (string, bool) {
	switch len(matches) {
	case 0:
		return "", false
	case 1:
		return matches[0], true
	default:
		return matches[1], true
	}
}

func (d *Discoverer) attachments(fragment *goquery.Document) []source.Attachment {
	var (
		found []source.Attachment
		seen  = make(map[string]bool)
	)

	fragment.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || seen[href] || !d.allowed(href) {
			return
		}
		seen[href] = true

		found = append(found, source.Attachment{
			Title: strings.TrimSpace(a.Text()),
			Path:  href,
		})
	})

	return found
}

func (d *Discoverer) allowed(href string) bool {
	p := href
	if u, err := url.Parse(href); err == nil {
		p = u.Path
	}
	return lo.Contains(d.Extensions, strings.ToLower(path.Ext(p)))
}
