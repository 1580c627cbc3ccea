// Package match holds the outcome of checking one filename against a
// standard: pass/fail, the accumulated diagnostic message and the named
// groups captured by the last pattern that reported them.
//
// A passing outcome produced by the master pattern carries every named
// field of the filename. A failing outcome may carry the three groups
// "before", "error" and "after", which locate the offending part of the
// name for highlighting (see [Outcome.Highlight]).
package match
