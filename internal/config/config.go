// Package config holds runtime configuration: defaults, the MEDIASTANDARD_*
// environment layer, CLI flag binding, and validation.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable read by [LoadEnv].
const EnvPrefix = "MEDIASTANDARD_"

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then [LoadEnv], then the command line flags bound by [BindFlags].
type Config struct {
	// Paths are the positional arguments: files and directories to check.
	Paths []string

	// Standard selection.
	StandardFile string `env:"JSON"` // Empty: working directory, then built-in.
	PatternOnly  bool   // Print the master pattern and exit.
	CheckOnly    bool   // Lint the standard and exit.

	// Report.
	FailOnly bool
	Verbose  bool
	Strict   bool // Exit 1 when any file failed.

	// Discovery and batch processing.
	Excludes  []string `env:"EXCLUDE" envSeparator:","` // doublestar globs.
	Workers   int      `env:"WORKERS"`                  // Default: number of CPUs.
	CacheSize int      `env:"CACHE_SIZE"`               // Outcomes cached per basename. Default: 1024.
	Watch     bool

	// Display and logging.
	ColorMode ColorMode `env:"COLOR"` // Default: "auto".
	LogFile   string    `env:"LOG"`   // Optional log file path.
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		Workers:   runtime.NumCPU(),
		CacheSize: 1024,
		ColorMode: ColorAuto,
	}
}

// LoadEnv overlays MEDIASTANDARD_* environment variables onto cfg. When
// dotenv names an existing file it is loaded first; variables already set
// in the environment win over the file.
func LoadEnv(cfg *Config, dotenv string) error {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenv, err)
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields, numeric limits and exclude patterns. Watch
// mode needs at least one path to watch.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1 (got %d)", c.Workers)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache size must not be negative (got %d)", c.CacheSize)
	}

	for _, p := range c.Excludes {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}

	if c.PatternOnly || c.CheckOnly {
		return nil
	}
	if c.Watch && len(c.Paths) == 0 {
		return errors.New("--watch needs at least one directory")
	}
	return nil
}
