package match

import "strings"

// Names of the groups a diagnostic pattern uses to locate the offending
// region of a filename.
const (
	GroupBefore = "before"
	GroupError  = "error"
	GroupAfter  = "after"
)

// Outcome is the result of evaluating a filename. It is created fresh per
// filename and owned by the caller.
type Outcome struct {
	Passed  bool
	Message string

	// Groups maps group names to captured text. Nil when no pattern with
	// named groups was involved.
	Groups map[string]string

	// Names lists the keys of Groups in pattern order.
	Names []string
}

// Pass returns a passing outcome carrying the given groups (may be nil).
func Pass(names []string, groups map[string]string) Outcome {
	return Outcome{Passed: true, Groups: groups, Names: names}
}

// Fail returns a failing outcome seeded with msg.
func Fail(msg string) Outcome {
	return Outcome{Message: msg}
}

// AddDetail appends a more specific diagnosis to the message. The first
// detail is joined with ": ", later ones with a single space. When names is
// non-empty the groups replace whatever the outcome carried before.
func (o *Outcome) AddDetail(msg string, names []string, groups map[string]string) {
	if len(names) > 0 {
		o.Groups = groups
		o.Names = names
	}
	if strings.Contains(o.Message, ":") {
		o.Message += " " + msg
	} else {
		o.Message += ": " + msg
	}
}

// Highlight returns the before/error/after split of a failed filename.
// ok is false for passing outcomes and for failures without location.
func (o Outcome) Highlight() (before, bad, after string, ok bool) {
	if o.Passed || o.Groups == nil {
		return "", "", "", false
	}
	bad, hasErr := o.Groups[GroupError]
	if !hasErr {
		return "", "", "", false
	}
	return o.Groups[GroupBefore], bad, o.Groups[GroupAfter], true
}

// Field returns the captured value of a named group.
func (o Outcome) Field(name string) (string, bool) {
	v, ok := o.Groups[name]
	return v, ok
}
