package standard

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/backmassage/mediastandard/internal/match"
	"github.com/backmassage/mediastandard/internal/rule"
)

// NoMatchMessage is reported when every diagnostic rule passes but the
// master pattern still rejects the filename.
const NoMatchMessage = "pattern does not match"

// Well-known content keys.
const (
	// CategoryLabelsKey names the content table that labels combined
	// categories.
	CategoryLabelsKey = "mappingCategoryLabel"
	// AreaKey names the content table of areas.
	AreaKey = "area"
	// AreaCategoryField is the field whose combined value may start with
	// an area code.
	AreaCategoryField = "areaCategory"
)

// Table maps codes to human-readable labels.
type Table map[string]string

// Category is a combined category: a content table addressed by the first
// character of a three-part value, together with the label of its second
// sub-code.
type Category struct {
	Code  string
	Label string
	Codes Table
}

// DecoderKind selects how a vocabulary-only field is turned into text.
type DecoderKind int

const (
	DecoderVerbatim DecoderKind = iota
	DecoderTitle
	DecoderIDs
)

func (k DecoderKind) String() string {
	switch k {
	case DecoderTitle:
		return "title"
	case DecoderIDs:
		return "ids"
	default:
		return "verbatim"
	}
}

// Definition is one loaded version of the standard.
type Definition struct {
	Version  string
	Year     string
	Comments []string

	// Pattern is the master pattern, anchored at both ends.
	Pattern *regexp.Regexp
	// Source is the decoded master pattern text as written in the file.
	Source string

	Rules      []*rule.Rule
	Content    map[string]Table
	Categories map[string]Category
	Vocabulary map[string]string
	Decoders   map[string]DecoderKind

	fields []string
}

// Fields returns the named groups of the master pattern in order.
func (d *Definition) Fields() []string {
	return d.fields
}

// Decoder returns the decoder registered for field.
func (d *Definition) Decoder(field string) DecoderKind {
	return d.Decoders[field]
}

// CheckFilename evaluates name against the preliminary rules and then the
// master pattern. The first failing rule ends the check. The master pattern
// is the only source of field captures.
func (d *Definition) CheckFilename(name string) match.Outcome {
	for _, r := range d.Rules {
		if out := r.Applies(name); !out.Passed {
			return out
		}
	}
	m := d.Pattern.FindStringSubmatch(name)
	if m == nil {
		return match.Fail(NoMatchMessage)
	}
	groups := make(map[string]string, len(d.fields))
	for i, n := range d.Pattern.SubexpNames() {
		if n != "" {
			groups[n] = m[i]
		}
	}
	return match.Pass(slices.Clone(d.fields), groups)
}

// newDefinition compiles the decoded master pattern and prepares the empty
// tables of a definition.
func newDefinition(src string, vocabulary map[string]string) (*Definition, error) {
	re, err := regexp.Compile(`^(?:` + src + `)$`)
	if err != nil {
		return nil, fmt.Errorf("%w: master pattern: %v", ErrInvalidPattern, err)
	}
	d := &Definition{
		Pattern:    re,
		Source:     src,
		Content:    make(map[string]Table),
		Categories: make(map[string]Category),
		Vocabulary: make(map[string]string, len(vocabulary)),
	}
	for k, v := range vocabulary {
		d.Vocabulary[k] = v
	}
	for _, n := range re.SubexpNames() {
		if n != "" {
			d.fields = append(d.fields, n)
		}
	}
	return d, nil
}
