package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/segmentio/ksuid"
	"golang.org/x/sync/errgroup"

	"github.com/chaos-io/bgclear/transparent"
)

// Transformer runs a single unit of work.
type Transformer interface {
	OutputPath(src string) string
	Transform(ctx context.Context, src string) (string, error)
}

// Reporter receives progress after every finished unit. Calls are
// serialized and done never decreases.
type Reporter interface {
	Report(done, total int)
}

// Options configures a Runner.
type Options struct {
	OutputDir string
	// Workers bounds concurrent units; <= 0 means runtime.NumCPU().
	Workers  int
	Progress Reporter
	Logger   *slog.Logger
}

// Runner fans a batch out over a bounded pool of workers.
type Runner struct {
	t    Transformer
	opts Options
}

func NewRunner(t Transformer, opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Runner{t: t, opts: opts}
}

// Workers returns the effective pool size.
func (r *Runner) Workers() int { return r.opts.Workers }

// Run processes every path and returns one outcome per path. The output
// directory is created before any work starts; failing that is the only
// error Run returns. Cancelling ctx stops units that have not started yet,
// they are recorded as failed with ctx.Err().
func (r *Runner) Run(ctx context.Context, paths []ImagePath) (*Report, error) {
	start := time.Now()
	report := &Report{
		RunID:    ksuid.New(),
		Total:    len(paths),
		Outcomes: make([]Outcome, len(paths)),
	}
	log := r.opts.Logger.With("run", report.RunID.String())

	if err := os.MkdirAll(r.opts.OutputDir, 0o755); err != nil {
		return nil, &transparent.IOError{Op: "mkdir", Path: r.opts.OutputDir, Err: err}
	}

	collisions := findCollisions(paths, r.t.OutputPath, caseInsensitiveFS)
	for _, c := range collisions {
		log.Warn("duplicate output name", "path", c.Path, "output", c.Output, "owner", c.Owner)
	}

	log.Info("processing batch", "images", len(paths), "workers", r.opts.Workers, "output_dir", r.opts.OutputDir)

	var (
		mu   sync.Mutex
		done int
	)
	advance := func() {
		mu.Lock()
		defer mu.Unlock()
		done++
		if r.opts.Progress != nil {
			r.opts.Progress.Report(done, len(paths))
		}
	}

	var g errgroup.Group
	g.SetLimit(r.opts.Workers)
	for i, p := range paths {
		g.Go(func() error {
			report.Outcomes[i] = r.runOne(ctx, log, p, collisions[i])
			advance()
			return nil
		})
	}
	_ = g.Wait()

	report.Elapsed = time.Since(start)
	log.Info("batch finished",
		"succeeded", report.Succeeded(),
		"failed", report.FailedCount(),
		"elapsed", report.Elapsed.Round(time.Millisecond),
	)
	return report, nil
}

// runOne never panics the pool: a panicking transform is recorded as a failure.
func (r *Runner) runOne(ctx context.Context, log *slog.Logger, p ImagePath, collision *CollisionError) (out Outcome) {
	start := time.Now()
	out.Path = p.Path
	defer func() {
		if v := recover(); v != nil {
			out.Output = ""
			out.Err = fmt.Errorf("transform %s: panic: %v", p.Path, v)
		}
		out.Elapsed = time.Since(start)
		if out.Err != nil {
			log.Warn("image failed", "path", p.Path, "error", out.Err)
		}
	}()

	if collision != nil {
		out.Err = collision
		return out
	}
	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}

	dst, err := r.t.Transform(ctx, p.Path)
	if err != nil {
		out.Err = err
		return out
	}
	out.Output = dst
	log.Debug("image done", "path", p.Path, "output", dst)
	return out
}
