// Command mediastandard checks whether filenames accord with a media
// standard and shows the information encoded in conforming names.
//
// It parses flags, loads the standard, and either prints the pattern
// (--pattern), lints the standard (--check), or checks the given files and
// directories, optionally watching the directories for new files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/mediastandard/internal/check"
	"github.com/backmassage/mediastandard/internal/config"
	"github.com/backmassage/mediastandard/internal/display"
	"github.com/backmassage/mediastandard/internal/logging"
	"github.com/backmassage/mediastandard/internal/pipeline"
	"github.com/backmassage/mediastandard/internal/standard"
	"github.com/backmassage/mediastandard/internal/term"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

// usageError marks a malformed invocation.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// exitCode ends the command with a status and nothing more to print.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Bootstrap: the logger doesn't exist yet, so errors go directly to
	// stderr.
	cfg := config.DefaultConfig()
	if err := config.LoadEnv(&cfg, ".env"); err != nil {
		fmt.Fprintf(stderr, "mediastandard: %v\n", err)
		return exitUsage
	}

	cmd := newRootCmd(&cfg, stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()

	var code exitCode
	var usage *usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &code):
		return int(code)
	case errors.As(err, &usage):
		fmt.Fprintf(stderr, "mediastandard: %v\n", err)
		fmt.Fprintln(stderr, "Run 'mediastandard --help' for usage.")
		return exitUsage
	default:
		fmt.Fprintf(stderr, "mediastandard: %v\n", err)
		return exitFail
	}
}

func newRootCmd(cfg *config.Config, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mediastandard [OPTIONS] file1 file2 ... | directory",
		Short: "Check whether filenames accord with a media standard",
		Long: "mediastandard checks whether filenames accord with a media standard.\n\n" +
			"Directories are searched recursively. Conforming names are decoded into\n" +
			"the information they carry (area, category, object references, date, ...).\n" +
			"Options can also be set via MEDIASTANDARD_* environment variables or a .env file.",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("mediastandard v{{.Version}}\n")

	flags := config.BindFlags(cmd.Flags(), cfg)
	cmd.Flags().BoolP("version", "V", false, "Print version and exit")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		flags.Apply(args)
		if err := cfg.Validate(); err != nil {
			return &usageError{err}
		}
		return execute(cmd, cfg, stdout, stderr)
	}
	return cmd
}

// execute runs one invocation with a valid configuration.
func execute(cmd *cobra.Command, cfg *config.Config, stdout, stderr io.Writer) error {
	term.Configure(cfg.ColorMode)
	log, err := logging.NewLogger(cfg, stderr)
	if err != nil {
		return err
	}
	defer log.Close()
	log.Debug("Run %s", log.Run())

	def, source, err := standard.Resolve(cfg.StandardFile)
	if err != nil {
		log.Error("Cannot load standard: %v", err)
		return exitCode(exitFail)
	}
	display.PrintBanner(stdout, def, source, cfg.Verbose)

	if cfg.PatternOnly {
		fmt.Fprintln(stdout, def.Source)
		return nil
	}
	if cfg.CheckOnly {
		if !check.RunCheck(def, source, log) {
			return exitCode(exitFail)
		}
		return nil
	}

	// Cancel on SIGINT/SIGTERM so the batch and watch loops stop cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := pipeline.NewRunner(cfg, def, stdout, log)
	if err != nil {
		return err
	}
	stats, err := runner.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("%v", err)
		return exitCode(exitFail)
	}
	if stats.Total == 0 && !cfg.Watch {
		fmt.Fprintln(stdout)
		fmt.Fprint(stdout, cmd.UsageString())
	}

	if cfg.Watch && ctx.Err() == nil {
		if err := runner.Watch(ctx, &stats); err != nil {
			log.Error("%v", err)
			return exitCode(exitFail)
		}
	}

	if cfg.Strict && !stats.OK() {
		return exitCode(exitFail)
	}
	return nil
}
