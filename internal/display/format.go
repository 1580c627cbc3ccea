package display

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/mediastandard/internal/match"
	"github.com/backmassage/mediastandard/internal/term"
)

// Plural returns "1 filename" or "n filenames".
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatDuration rounds d for the batch summary (e.g. "12ms", "1.4s").
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(100 * time.Millisecond).String()
	}
}

// FileName renders path for a report line. Existing files are shown with
// their absolute path, anything else by its base name. For a failed
// outcome that locates the problem, the offending part is marked.
func FileName(path string, out match.Outcome) string {
	base := filepath.Base(path)
	dir := ""
	if _, err := os.Stat(path); err == nil {
		if abs, err := filepath.Abs(path); err == nil {
			dir = filepath.Dir(abs)
			base = filepath.Base(abs)
		}
	}

	before, bad, after, ok := out.Highlight()
	if !ok {
		if dir == "" {
			return term.Default.Render(base)
		}
		return term.Default.Render(filepath.Join(dir, base))
	}
	if dir != "" {
		before = dir + string(filepath.Separator) + before
	}
	return term.Default.Render(before) + term.Fail.Render(bad) + term.Default.Render(after)
}
