package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"
	"github.com/lectio-cli/lectio/color"
	"github.com/lectio-cli/lectio/downloader"
	"github.com/lectio-cli/lectio/icon"
	"github.com/lectio-cli/lectio/source"
	"github.com/lectio-cli/lectio/style"
	"github.com/lectio-cli/lectio/util"
	"github.com/muesli/reflow/truncate"
)

const (
	barWidth      = 30
	redrawEvery   = 100 * time.Millisecond
	fallbackWidth = 80
)

// progressPrinter renders pipeline events as one line per asset, redrawing the line while it transfers.
type progressPrinter struct {
	out   io.Writer
	bar   progress.Model
	width int

	// before runs once ahead of the first line, e.g. to erase a pending status message.
	before func()

	mu    sync.Mutex
	label string
	drawn time.Time
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	width, _, err := util.TerminalSize()
	if err != nil || width <= 0 {
		width = fallbackWidth
	}

	return &progressPrinter{
		out:   out,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth), progress.WithoutPercentage()),
		width: width,
	}
}

func (p *progressPrinter) Module(index, total int, module *source.Module) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.before != nil {
		p.before()
		p.before = nil
	}

	_, _ = fmt.Fprintf(p.out, "\n%s %s\n",
		style.Fg(color.HiPurple)(fmt.Sprintf("Page %d out of %d", index, total)),
		style.Bold(module.Name),
	)
}

func (p *progressPrinter) Started(index, total int, target source.DownloadTarget) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.label = fmt.Sprintf("[%d/%d] %s", index, total, filepath.Base(target.Path()))
	p.drawn = time.Time{}
}

func (p *progressPrinter) Progress(_ source.DownloadTarget, done, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if done < total && time.Since(p.drawn) < redrawEvery {
		return
	}
	p.drawn = time.Now()

	var ratio float64
	if total > 0 {
		ratio = float64(done) / float64(total)
	}

	counter := fmt.Sprintf("%s / %s", humanize.Bytes(uint64(done)), humanize.Bytes(uint64(total)))
	room := util.Max(p.width-barWidth-len(counter)-4, 10)

	_, _ = fmt.Fprintf(p.out, "\r%s %s %s",
		truncate.StringWithTail(p.label, uint(room), "…"),
		p.bar.ViewAs(ratio),
		style.Faint(counter),
	)
}

func (p *progressPrinter) Finished(target source.DownloadTarget, result downloader.Result, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := p.label
	if line == "" {
		line = filepath.Base(target.Path())
	}
	room := uint(util.Max(p.width-4, 10))

	var status string
	switch {
	case err != nil:
		status = style.Fg(color.Red)(icon.Get(icon.Fail)) + " " + truncate.StringWithTail(line, room, "…")
	case result.Skipped:
		status = style.Faint(icon.Get(icon.Skip) + " " + truncate.StringWithTail(line+" (exists)", room, "…"))
	default:
		status = fmt.Sprintf("%s %s %s",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			truncate.StringWithTail(line, room, "…"),
			style.Faint(humanize.Bytes(uint64(result.Bytes))),
		)
	}

	// Clear whatever the progress line left behind.
	_, _ = fmt.Fprintf(p.out, "\r\033[K%s\n", status)
	p.label = ""
}
