// Package rule implements diagnostic rules: a pattern, the message to
// report when it does not match, and an ordered list of child rules that
// narrow the failure down.
package rule

import (
	"regexp"

	"github.com/backmassage/mediastandard/internal/match"
)

// MaxDepth bounds the nesting of child rules. Deeper trees are rejected
// when a standard is loaded.
const MaxDepth = 16

// Rule is one node of a diagnostic rule tree. Rules are built once when a
// standard is loaded and never modified afterwards.
type Rule struct {
	Pattern  *regexp.Regexp
	Message  string
	Children []*Rule

	names []string
}

// New builds a rule from a pattern text. The pattern is anchored at the
// start of the filename but need not consume all of it.
func New(pattern, message string, children ...*Rule) (*Rule, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, err
	}
	return &Rule{
		Pattern:  re,
		Message:  message,
		Children: children,
		names:    groupNames(re),
	}, nil
}

// MustNew is like New but panics on an invalid pattern. Intended for tests
// and package-level tables.
func MustNew(pattern, message string, children ...*Rule) *Rule {
	r, err := New(pattern, message, children...)
	if err != nil {
		panic(err)
	}
	return r
}

// Applies checks filename against the rule. On failure every child whose
// pattern matches contributes its message, and the last matching child with
// named groups supplies the outcome's groups.
func (r *Rule) Applies(filename string) match.Outcome {
	if r.Pattern.MatchString(filename) {
		return match.Pass(nil, nil)
	}
	out := match.Fail(r.Message)
	for _, child := range r.Children {
		groups, ok := child.FindError(filename)
		if !ok {
			continue
		}
		out.AddDetail(child.Message, child.names, groups)
	}
	return out
}

// FindError matches the rule's pattern against filename and returns its
// named groups. ok reports whether the pattern matched at all.
func (r *Rule) FindError(filename string) (groups map[string]string, ok bool) {
	m := r.Pattern.FindStringSubmatch(filename)
	if m == nil {
		return nil, false
	}
	if len(r.names) == 0 {
		return nil, true
	}
	groups = make(map[string]string, len(r.names))
	for i, name := range r.Pattern.SubexpNames() {
		if name != "" {
			groups[name] = m[i]
		}
	}
	return groups, true
}

// GroupNames returns the named groups of the rule's pattern in order.
func (r *Rule) GroupNames() []string {
	return r.names
}

// Walk calls fn for r and every descendant, depth first, with the nesting
// depth of each node (r itself is depth 1). Walking stops at the first
// error fn returns.
func (r *Rule) Walk(fn func(r *Rule, depth int) error) error {
	return r.walk(1, fn)
}

func (r *Rule) walk(depth int, fn func(*Rule, int) error) error {
	if err := fn(r, depth); err != nil {
		return err
	}
	for _, c := range r.Children {
		if err := c.walk(depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

func groupNames(re *regexp.Regexp) []string {
	var names []string
	for _, n := range re.SubexpNames() {
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}
