package standard

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/mediastandard/internal/rule"
)

// DefaultFile is the file name looked up in the working directory when no
// standard is given explicitly.
const DefaultFile = "medienstandard_v3_regex.json"

//go:embed standards/medienstandard_v3_regex.json
var defaultStandard []byte

// Format is the serialization of a standard file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor infers the format from a file extension; anything that is not
// .yaml or .yml is read as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

type fileInfo struct {
	Version  string   `json:"version" yaml:"version"`
	Year     string   `json:"year" yaml:"year"`
	Comments []string `json:"comments" yaml:"comments"`
}

type fileRule struct {
	Regex   string     `json:"regex" yaml:"regex"`
	Error   string     `json:"error" yaml:"error"`
	OnError []fileRule `json:"onError,omitempty" yaml:"onError,omitempty"`
}

type file struct {
	Info       fileInfo                     `json:"info" yaml:"info"`
	Pattern    string                       `json:"pattern" yaml:"pattern"`
	Content    map[string]map[string]string `json:"content" yaml:"content"`
	Vocabulary map[string]string            `json:"vocabulary" yaml:"vocabulary"`
	Rules      []fileRule                   `json:"rules" yaml:"rules"`
	Decoders   map[string]string            `json:"decoders,omitempty" yaml:"decoders,omitempty"`
}

// Load reads and compiles the standard stored at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// LoadDefault returns the standard compiled into the binary.
func LoadDefault() (*Definition, error) {
	return Parse(defaultStandard, FormatJSON)
}

// Resolve loads path when it is set. Otherwise it loads DefaultFile from
// the working directory if present, falling back to the built-in standard.
// The returned string names where the standard came from.
func Resolve(path string) (*Definition, string, error) {
	if path != "" {
		def, err := Load(path)
		return def, path, err
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		def, err := Load(DefaultFile)
		return def, DefaultFile, err
	}
	def, err := LoadDefault()
	return def, "builtin:" + DefaultFile, err
}

// Parse decodes and compiles a standard.
func Parse(data []byte, format Format) (*Definition, error) {
	var f file
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return compile(&f)
}

func compile(f *file) (*Definition, error) {
	if f.Pattern == "" {
		return nil, fmt.Errorf("%w: pattern", ErrMissingField)
	}
	src, err := url.PathUnescape(f.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: master pattern: %v", ErrInvalidPattern, err)
	}
	def, err := newDefinition(src, f.Vocabulary)
	if err != nil {
		return nil, err
	}
	def.Version = f.Info.Version
	def.Year = f.Info.Year
	def.Comments = f.Info.Comments

	for i := range f.Rules {
		r, err := compileRule(&f.Rules[i], 1)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		def.Rules = append(def.Rules, r)
	}

	for name, codes := range f.Content {
		def.Content[name] = Table(codes)
	}
	def.Categories = buildCategories(def.Content)

	def.Decoders, err = buildDecoders(f.Decoders)
	if err != nil {
		return nil, err
	}

	if err := Validate(def); err != nil {
		return nil, err
	}
	return def, nil
}

func compileRule(fr *fileRule, depth int) (*rule.Rule, error) {
	if depth > rule.MaxDepth {
		return nil, fmt.Errorf("%w (limit %d)", ErrRuleDepth, rule.MaxDepth)
	}
	if fr.Regex == "" {
		return nil, fmt.Errorf("%w: regex", ErrMissingField)
	}
	src, err := url.PathUnescape(fr.Regex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	children := make([]*rule.Rule, 0, len(fr.OnError))
	for i := range fr.OnError {
		c, err := compileRule(&fr.OnError[i], depth+1)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	r, err := rule.New(src, fr.Error, children...)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, src, err)
	}
	return r, nil
}

// buildCategories resolves the combined categories: every entry of the
// category label table that also names a content table.
func buildCategories(content map[string]Table) map[string]Category {
	labels := content[CategoryLabelsKey]
	cats := make(map[string]Category, len(labels))
	for code, label := range labels {
		codes, ok := content[code]
		if !ok {
			continue
		}
		cats[code] = Category{Code: code, Label: label, Codes: codes}
	}
	return cats
}

var defaultDecoders = map[string]DecoderKind{
	"title": DecoderTitle,
	"ids":   DecoderIDs,
}

func buildDecoders(raw map[string]string) (map[string]DecoderKind, error) {
	if raw == nil {
		out := make(map[string]DecoderKind, len(defaultDecoders))
		for k, v := range defaultDecoders {
			out[k] = v
		}
		return out, nil
	}
	out := make(map[string]DecoderKind, len(raw))
	for field, name := range raw {
		switch strings.ToLower(name) {
		case "title":
			out[field] = DecoderTitle
		case "ids":
			out[field] = DecoderIDs
		case "verbatim", "":
			out[field] = DecoderVerbatim
		default:
			return nil, fmt.Errorf("%w %q for field %q", ErrUnknownDecoder, name, field)
		}
	}
	return out, nil
}
