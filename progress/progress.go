// Package progress renders batch progress either as a terminal bar or as
// sampled log lines for non-interactive output.
package progress

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Description labels the bar.
const Description = "Making background transparent"

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Bar draws a progress bar. Report calls must be serialized.
type Bar struct {
	bar *progressbar.ProgressBar
}

// NewBar creates a bar for total units writing to w.
func NewBar(w io.Writer, total int) *Bar {
	return &Bar{bar: progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(Description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(w, "\n") }),
	)}
}

func (b *Bar) Report(done, total int) {
	_ = b.bar.Set(done)
	if done >= total {
		_ = b.bar.Finish()
	}
}

// Log emits an info line each time progress crosses a bucket boundary
// (every bucketSize percent) and always once on completion.
type Log struct {
	logger     *slog.Logger
	bucketSize float64
	lastBucket int
	finished   bool
}

// NewLog constructs a sampler; bucketSize <= 0 defaults to 10 percent.
func NewLog(logger *slog.Logger, bucketSize float64) *Log {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger, bucketSize: bucketSize, lastBucket: -1}
}

func (l *Log) Report(done, total int) {
	if total <= 0 || l.finished {
		return
	}
	percent := float64(done) * 100 / float64(total)
	bucket := int(percent / l.bucketSize)
	complete := done >= total
	if bucket <= l.lastBucket && !complete {
		return
	}
	l.lastBucket = bucket
	l.finished = complete
	l.logger.Info(Description, "done", done, "total", total, "percent", int(percent))
}
