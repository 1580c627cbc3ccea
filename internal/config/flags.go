package config

// This file binds the command line flags to a Config. Flags override values
// taken from the environment, so every default shown in help is the value
// the Config held when the flags were bound.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds flag values that are applied to the Config after parsing.
type Flags struct {
	cfg     *Config
	noColor bool
}

// BindFlags registers all options on fs. Call [Flags.Apply] once fs has
// been parsed.
func BindFlags(fs *pflag.FlagSet, cfg *Config) *Flags {
	f := &Flags{cfg: cfg}

	fs.SortFlags = false
	defineReportFlags(fs, cfg)
	defineStandardFlags(fs, cfg)
	defineBatchFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, f)
	return f
}

// defineReportFlags registers -f/--fail-only, -v/--verbose, --strict.
func defineReportFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.FailOnly, "fail-only", "f", cfg.FailOnly, "Show only failing filenames")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Show comments, error messages and file information")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "Exit with status 1 when any filename fails")
}

// defineStandardFlags registers -j/--json, -p/--pattern, -c/--check.
func defineStandardFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.StandardFile, "json", "j", cfg.StandardFile, "Standard definition file (JSON or YAML)")
	fs.BoolVarP(&cfg.PatternOnly, "pattern", "p", cfg.PatternOnly, "Print the pattern of the standard and exit")
	fs.BoolVarP(&cfg.CheckOnly, "check", "c", cfg.CheckOnly, "Check the standard definition for inconsistencies and exit")
}

// defineBatchFlags registers --exclude, --workers, --cache-size, -w/--watch.
func defineBatchFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringSliceVar(&cfg.Excludes, "exclude", cfg.Excludes, "Skip paths matching a glob (repeatable, ** allowed)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of filenames checked in parallel")
	fs.IntVar(&cfg.CacheSize, "cache-size", cfg.CacheSize, "Number of results cached per basename (0 disables)")
	fs.BoolVarP(&cfg.Watch, "watch", "w", cfg.Watch, "Keep running and check files added to the given directories")
}

// defineDisplayFlags registers --color, --no-color, -l/--log.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config, f *Flags) {
	fs.Var(&colorModeValue{&cfg.ColorMode}, "color", "Color output: auto | always | never")
	fs.Lookup("color").NoOptDefVal = string(ColorAlways)
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
	fs.StringVarP(&cfg.LogFile, "log", "l", cfg.LogFile, "Append logs to file")
}

// Apply copies negated flags into the Config and normalizes positional
// paths. args are the positional arguments left after parsing.
func (f *Flags) Apply(args []string) {
	if f.noColor {
		f.cfg.ColorMode = ColorNever
	}
	f.cfg.Paths = f.cfg.Paths[:0]
	for _, a := range args {
		f.cfg.Paths = append(f.cfg.Paths, NormalizeDirArg(a))
	}
}

// pflag.Value adapter so ColorMode can be used with fs.Var.

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Type() string   { return "mode" }
func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
