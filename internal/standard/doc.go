// Package standard loads a versioned filename standard and checks
// filenames against it.
//
// A standard consists of a master pattern whose named groups are the
// fields of a conforming filename, an ordered list of diagnostic rules
// evaluated before the master pattern, content tables mapping field codes
// to labels, and a vocabulary of field and id-prefix labels.
//
// Standards are read from JSON (or YAML with the same keys). Patterns are
// stored percent-encoded. The loaded [Definition] is immutable and safe for
// concurrent use.
package standard
