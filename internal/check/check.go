// Package check provides standard diagnostics (--check mode): it looks for
// inconsistencies between the master pattern, the content tables, the
// vocabulary, the decoders and the diagnostic rules of a loaded standard.
package check

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/backmassage/mediastandard/internal/extract"
	"github.com/backmassage/mediastandard/internal/match"
	"github.com/backmassage/mediastandard/internal/rule"
	"github.com/backmassage/mediastandard/internal/standard"
)

// Severity ranks a finding.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// Finding is one diagnostic about a standard.
type Finding struct {
	Severity Severity
	Message  string
}

// examplePrefix marks a comment that ends with a sample filename.
const examplePrefix = "Beispiel:"

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck lints def and logs every finding. It returns false when at
// least one finding is an error.
func RunCheck(def *standard.Definition, source string, log Logger) bool {
	log.Info("=== Standard Check ===")
	log.Info("Source: %s", source)
	log.Info("Version %s (%s): %d fields, %d rules, %d content tables",
		def.Version, def.Year, len(def.Fields()), len(def.Rules), len(def.Content))

	findings := Lint(def)
	ok := true
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			ok = false
			log.Error("%s", f.Message)
		case SeverityWarning:
			log.Warn("%s", f.Message)
		default:
			log.Info("%s", f.Message)
		}
	}
	if len(findings) == 0 {
		log.Success("No inconsistencies found")
	}
	return ok
}

// Lint returns the findings for def, ordered by the part of the standard
// they concern.
func Lint(def *standard.Definition) []Finding {
	var out []Finding
	out = append(out, checkFields(def)...)
	out = append(out, checkDecoders(def)...)
	out = append(out, checkContent(def)...)
	out = append(out, checkRules(def)...)
	out = append(out, checkExamples(def)...)
	return out
}

// checkFields reports captured fields that would never be shown.
func checkFields(def *standard.Definition) []Finding {
	var out []Finding
	for _, f := range def.Fields() {
		_, hasTable := def.Content[f]
		_, hasLabel := def.Vocabulary[f]
		if !hasTable && !hasLabel {
			out = append(out, Finding{SeverityWarning,
				fmt.Sprintf("field %q has neither a content table nor a vocabulary label and is never shown", f)})
		}
	}
	return out
}

// checkDecoders reports decoders that can never run.
func checkDecoders(def *standard.Definition) []Finding {
	var out []Finding
	for _, field := range sortedKeys(def.Decoders) {
		kind := def.Decoders[field]
		switch {
		case !slices.Contains(def.Fields(), field):
			out = append(out, Finding{SeverityInfo,
				fmt.Sprintf("%s decoder is bound to %q, which the pattern does not capture", kind, field)})
		case hasKey(def.Content, field):
			out = append(out, Finding{SeverityWarning,
				fmt.Sprintf("%s decoder for %q is ignored because the field has a content table", kind, field)})
		}
	}
	return out
}

// checkContent reports category labels without a table and tables nothing
// refers to.
func checkContent(def *standard.Definition) []Finding {
	var out []Finding
	for _, code := range sortedKeys(def.Content[standard.CategoryLabelsKey]) {
		if _, ok := def.Categories[code]; !ok {
			out = append(out, Finding{SeverityError,
				fmt.Sprintf("category %q has a label but no content table", code)})
		}
	}
	for _, name := range sortedKeys(def.Content) {
		switch {
		case name == standard.CategoryLabelsKey, name == standard.AreaKey:
		case slices.Contains(def.Fields(), name):
		case hasKey(def.Categories, name):
		default:
			out = append(out, Finding{SeverityWarning,
				fmt.Sprintf("content table %q is not used by any field or category", name)})
		}
	}
	return out
}

// checkRules reports rules without a message and details that cannot mark
// the offending part of a filename.
func checkRules(def *standard.Definition) []Finding {
	var out []Finding
	for i, r := range def.Rules {
		_ = r.Walk(func(n *rule.Rule, depth int) error {
			if strings.TrimSpace(n.Message) == "" {
				out = append(out, Finding{SeverityError,
					fmt.Sprintf("rule %d: pattern %q has no message", i+1, n.Pattern)})
			}
			if depth > 1 && len(n.GroupNames()) > 0 && !slices.Contains(n.GroupNames(), match.GroupError) {
				out = append(out, Finding{SeverityWarning,
					fmt.Sprintf("rule %d: detail %q captures groups but no %q group", i+1, n.Message, match.GroupError)})
			}
			return nil
		})
	}
	return out
}

// checkExamples verifies that sample filenames given in the comments
// conform and decode.
func checkExamples(def *standard.Definition) []Finding {
	var out []Finding
	for _, c := range def.Comments {
		i := strings.Index(c, examplePrefix)
		if i < 0 {
			continue
		}
		fields := strings.Fields(c[i+len(examplePrefix):])
		if len(fields) == 0 {
			continue
		}
		name := fields[len(fields)-1]
		res := def.CheckFilename(name)
		if !res.Passed {
			out = append(out, Finding{SeverityError,
				fmt.Sprintf("example %q does not conform: %s", name, res.Message)})
			continue
		}
		if _, err := extract.Content(def, res); err != nil {
			out = append(out, Finding{SeverityError,
				fmt.Sprintf("example %q cannot be decoded: %v", name, err)})
		}
	}
	return out
}

func hasKey[V any](m map[string]V, k string) bool {
	_, ok := m[k]
	return ok
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
