package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ObjectLabel labels object references with a numeric prefix.
const ObjectLabel = "Objekt"

// reMarkerRun finds the run of marker characters in front of the numeric
// part of an object reference, e.g. "v00" in "v007004".
var reMarkerRun = regexp.MustCompile(`^([arlpsvz0]+)\d`)

// DecodeTitle renders a dash-separated free-text field: underscores are
// dropped, each word gets an upper-case first letter and words are joined
// with spaces.
func DecodeTitle(value, label string) Entry {
	// Casers keep state and must not be shared between goroutines.
	title := cases.Title(language.German, cases.NoLower)
	words := strings.Split(value, "-")
	for i, w := range words {
		words[i] = title.String(strings.ReplaceAll(w, "_", ""))
	}
	return Entry{Label: label, Text: strings.Join(words, " ")}
}

// DecodeIDs splits a dash-separated list of object references and labels
// each one by its prefix. The entry text lists the distinct labels in
// order of first appearance.
func DecodeIDs(value, label string, vocabulary map[string]string) (Entry, error) {
	var (
		items  []Item
		labels []string
		seen   = map[string]bool{}
	)
	for _, raw := range strings.Split(value, "-") {
		id := strings.ReplaceAll(raw, "_", "")
		prefix, suffix := splitID(id)

		var itemLabel string
		if l, ok := vocabulary[prefix]; ok && prefix != "" {
			itemLabel = l
		} else if isDigit(prefix) {
			itemLabel = ObjectLabel
		} else {
			return Entry{}, &PrefixError{Prefix: prefix, ID: id}
		}

		items = append(items, Item{Label: itemLabel, Text: suffix})
		if !seen[itemLabel] {
			seen[itemLabel] = true
			labels = append(labels, itemLabel)
		}
	}
	return Entry{Label: label, Text: strings.Join(labels, ", "), Contents: items}, nil
}

// splitID separates the prefix character from the number of an object
// reference. A leading run of marker characters is skipped entirely.
func splitID(id string) (prefix, suffix string) {
	r, size := utf8.DecodeRuneInString(id)
	if size == 0 {
		return "", ""
	}
	prefix = string(r)
	if m := reMarkerRun.FindStringSubmatch(id); m != nil {
		return prefix, id[len(m[1]):]
	}
	return prefix, id[size:]
}

func isDigit(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && size == len(s) && unicode.IsDigit(r)
}
