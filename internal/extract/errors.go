package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrNotPassed is returned when content is requested for an outcome
	// that did not pass or carries no fields.
	ErrNotPassed = errors.New("extract: outcome has not passed")

	// ErrLookup matches every error caused by a captured value the
	// standard cannot label.
	ErrLookup = errors.New("extract: lookup failed")
)

// LookupError reports a captured value that has no content table entry.
// It points to a mismatch between the master pattern and the tables.
type LookupError struct {
	Value string
	Label string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s not in %q", e.Value, e.Label)
}

func (e *LookupError) Is(target error) bool { return target == ErrLookup }

// PrefixError reports an object reference whose prefix is neither a
// vocabulary key nor a digit.
type PrefixError struct {
	Prefix string
	ID     string
}

func (e *PrefixError) Error() string {
	return fmt.Sprintf("invalid prefix %q in %q", e.Prefix, e.ID)
}

func (e *PrefixError) Is(target error) bool { return target == ErrLookup }
