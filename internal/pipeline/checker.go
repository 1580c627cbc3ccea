package pipeline

import (
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/backmassage/mediastandard/internal/extract"
	"github.com/backmassage/mediastandard/internal/match"
	"github.com/backmassage/mediastandard/internal/standard"
)

// Result is the check of one path. Err is set when the name conforms but
// its information could not be extracted.
type Result struct {
	Path    string
	Outcome match.Outcome
	Info    *extract.Information
	Err     error
}

// Passed reports whether the name conforms and was decoded.
func (r Result) Passed() bool { return r.Outcome.Passed && r.Err == nil }

type cached struct {
	out  match.Outcome
	info *extract.Information
	err  error
}

// Checker checks paths against one standard. Only the base name of a path
// is checked, so results are cached per base name; cached outcomes and
// information trees are shared and must not be modified. A Checker is
// safe for concurrent use.
type Checker struct {
	def   *standard.Definition
	cache *lru.Cache[string, cached]
}

// NewChecker returns a Checker caching up to size results. A size of zero
// disables the cache.
func NewChecker(def *standard.Definition, size int) (*Checker, error) {
	c := &Checker{def: def}
	if size > 0 {
		cache, err := lru.New[string, cached](size)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	return c, nil
}

// Check checks the base name of path.
func (c *Checker) Check(path string) Result {
	name := filepath.Base(path)
	if c.cache != nil {
		if hit, ok := c.cache.Get(name); ok {
			return Result{Path: path, Outcome: hit.out, Info: hit.info, Err: hit.err}
		}
	}

	var entry cached
	entry.out = c.def.CheckFilename(name)
	if entry.out.Passed {
		entry.info, entry.err = extract.Content(c.def, entry.out)
	}
	if c.cache != nil {
		c.cache.Add(name, entry)
	}
	return Result{Path: path, Outcome: entry.out, Info: entry.info, Err: entry.err}
}
