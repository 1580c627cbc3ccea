package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/mediastandard/internal/config"
	"github.com/backmassage/mediastandard/internal/display"
	"github.com/backmassage/mediastandard/internal/standard"
	"github.com/backmassage/mediastandard/internal/term"
)

// Logger is the minimal logging interface needed by the runner.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Runner checks batches of files and writes the report to out.
type Runner struct {
	cfg     *config.Config
	checker *Checker
	out     io.Writer
	log     Logger
}

// NewRunner prepares a runner for def.
func NewRunner(cfg *config.Config, def *standard.Definition, out io.Writer, log Logger) (*Runner, error) {
	checker, err := NewChecker(def, cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, checker: checker, out: out, log: log}, nil
}

// Run is the top-level batch entry point. It discovers the configured
// paths, checks every file and returns aggregate stats. When nothing was
// found it says so and returns zero stats.
func (r *Runner) Run(ctx context.Context) (RunStats, error) {
	files, err := Discover(r.cfg.Paths, r.cfg.Excludes)
	if err != nil {
		return RunStats{}, fmt.Errorf("file discovery: %w", err)
	}

	fmt.Fprintln(r.out, term.Highlight.Render("Checking "+display.Plural(len(files), "filename")+"."))
	if len(files) == 0 {
		fmt.Fprintln(r.out, "Nothing to do ...")
		return RunStats{}, nil
	}

	start := time.Now()
	stats, err := r.CheckFiles(ctx, files)
	r.logSummary(stats, time.Since(start))
	return stats, err
}

// CheckFiles checks files with up to cfg.Workers goroutines and reports
// the results in the order of files. On cancellation the files checked so
// far are reported and the context error is returned.
func (r *Runner) CheckFiles(ctx context.Context, files []string) (RunStats, error) {
	results := make([]*Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.cfg.Workers, 1))
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := r.checker.Check(path)
			results[i] = &res
			return nil
		})
	}
	err := g.Wait()

	var stats RunStats
	for _, res := range results {
		if res == nil {
			continue
		}
		r.report(*res, &stats)
	}
	if err == nil {
		err = ctx.Err()
	}
	return stats, err
}

// report prints the line (or information tree) for one result.
func (r *Runner) report(res Result, stats *RunStats) {
	stats.Total++
	name := display.FileName(res.Path, res.Outcome)

	switch {
	case !res.Outcome.Passed:
		stats.Failed++
		display.PrintFail(r.out, name, res.Outcome.Message, r.cfg.Verbose)
	case res.Err != nil:
		stats.Failed++
		stats.ExtractFailed++
		r.log.Debug("%s: %v", res.Path, res.Err)
		display.PrintFail(r.out, name, res.Err.Error(), r.cfg.Verbose)
	default:
		stats.Passed++
		if r.cfg.FailOnly {
			return
		}
		if r.cfg.Verbose {
			display.PrintInformation(r.out, name, res.Info)
			return
		}
		display.PrintOK(r.out, name)
	}
}

func (r *Runner) logSummary(stats RunStats, elapsed time.Duration) {
	r.log.Info("Done: %d passed, %d failed (%s checked in %s)",
		stats.Passed, stats.Failed, display.Plural(stats.Total, "filename"), display.FormatDuration(elapsed))
	if stats.ExtractFailed > 0 {
		r.log.Warn("%s conform but could not be decoded; the content tables of the standard look incomplete",
			display.Plural(stats.ExtractFailed, "filename"))
	}
}
