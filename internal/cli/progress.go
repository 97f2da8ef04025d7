package cli

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mvp-joe/project-scrub/internal/transform"
	"github.com/schollz/progressbar/v3"
)

// styles holds color formatters for the run summary
type styles struct {
	success *color.Color
	changed *color.Color
	muted   *color.Color
}

func newStyles() *styles {
	return &styles{
		success: color.New(color.FgHiGreen, color.Bold),
		changed: color.New(color.FgYellow),
		muted:   color.New(color.Faint),
	}
}

// CLIProgressReporter implements transform.ProgressReporter with a progress
// bar and a colored summary.
type CLIProgressReporter struct {
	quiet     bool
	out       io.Writer
	styles    *styles
	mu        sync.Mutex
	fileBar   *progressbar.ProgressBar
	processed int
}

// NewCLIProgressReporter creates a new CLI progress reporter writing to out.
func NewCLIProgressReporter(quiet bool, out io.Writer) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:  quiet,
		out:    out,
		styles: newStyles(),
	}
}

func (c *CLIProgressReporter) OnDiscoveryComplete(files int) {
	if c.quiet {
		return
	}
	log.Printf("Discovered %d Java files", files)
}

func (c *CLIProgressReporter) OnFileProcessingStart(totalFiles int) {
	if c.quiet || totalFiles == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.processed = 0
	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Scrubbing files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(result *transform.FileResult) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.processed++
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
	if result.Changed() {
		log.Printf("%s: removed %d bytes", result.Path, result.BytesBefore-result.BytesAfter)
	}
}

func (c *CLIProgressReporter) OnComplete(stats *transform.Stats) {
	if c.quiet {
		return
	}

	fmt.Fprintln(c.out)
	c.styles.success.Fprintf(c.out, "✓ Scrub complete: %s files in %.1fs\n",
		formatNumber(stats.Files), stats.Duration.Seconds())
	c.styles.changed.Fprintf(c.out, "  Changed:       %s\n", formatNumber(stats.Changed))
	c.styles.muted.Fprintf(c.out, "  Bytes removed: %s\n", formatNumber(stats.BytesRemoved))
}

// formatNumber renders n with thousands separators.
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result string
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
