package extract

import (
	"github.com/backmassage/mediastandard/internal/match"
	"github.com/backmassage/mediastandard/internal/standard"
)

// Labels used for the area split of the area-category field.
const (
	AreaLabel     = "Bereich"
	CategoryLabel = "Kategorie"
)

// Content builds the information tree for a passing outcome. Every field
// known to the content tables or the vocabulary is included; other fields
// are dropped. A value missing from its content table is an error, since
// it means the master pattern accepts codes the tables cannot label.
func Content(def *standard.Definition, out match.Outcome) (*Information, error) {
	if !out.Passed || out.Groups == nil {
		return nil, ErrNotPassed
	}
	names := out.Names
	if len(names) == 0 {
		names = def.Fields()
	}

	info := newInformation()
	for _, field := range names {
		value, ok := out.Groups[field]
		if !ok {
			continue
		}
		label := field
		if l, ok := def.Vocabulary[field]; ok {
			label = l
		}

		if table, ok := def.Content[field]; ok {
			if err := lookup(def, info, field, label, value, table); err != nil {
				return nil, err
			}
			continue
		}
		if _, ok := def.Vocabulary[field]; !ok || value == "" {
			continue
		}
		e, err := decode(def, field, label, value)
		if err != nil {
			return nil, err
		}
		info.set(field, e)
	}
	return info, nil
}

func decode(def *standard.Definition, field, label, value string) (Entry, error) {
	switch def.Decoder(field) {
	case standard.DecoderTitle:
		return DecodeTitle(value, label), nil
	case standard.DecoderIDs:
		return DecodeIDs(value, label, def.Vocabulary)
	default:
		return Entry{Label: label, Text: value}, nil
	}
}

// lookup resolves a content-table field, either as a flat code or as a
// combined category of three codes.
func lookup(def *standard.Definition, info *Information, field, label, value string, table standard.Table) error {
	text, flat := table[value]

	var (
		cat        standard.Category
		sub1, sub2 string
	)
	if !flat {
		var ok bool
		cat, sub1, sub2, ok = combined(def, value)
		if !ok {
			return &LookupError{Value: value, Label: label}
		}
	}

	parent := field
	if field == standard.AreaCategoryField {
		if area, ok := def.Content[standard.AreaKey]; ok {
			if areaText, ok := area[firstChar(value)]; ok {
				info.set(standard.AreaKey, Entry{Label: AreaLabel, Text: areaText})
				parent = standard.AreaKey
				label = CategoryLabel
			}
		}
	}

	if flat {
		info.set(field, Entry{Label: label, Text: text})
		return nil
	}

	items := []Item{
		{Label: label, Text: cat.Codes[sub1]},
		{Label: cat.Label, Text: cat.Codes[sub2]},
	}
	if parent == field {
		info.set(field, Entry{Label: label, Text: value, Contents: items})
		return nil
	}
	info.setContents(parent, items)
	return nil
}

// combined splits value into a category code and two sub-codes, one
// character each, and checks all three against the category tables.
func combined(def *standard.Definition, value string) (cat standard.Category, sub1, sub2 string, ok bool) {
	r := []rune(value)
	if len(r) < 3 {
		return cat, "", "", false
	}
	cat, ok = def.Categories[string(r[0])]
	if !ok {
		return cat, "", "", false
	}
	sub1, sub2 = string(r[1]), string(r[2])
	if _, ok := cat.Codes[sub1]; !ok {
		return cat, "", "", false
	}
	if _, ok := cat.Codes[sub2]; !ok {
		return cat, "", "", false
	}
	return cat, sub1, sub2, true
}

func firstChar(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
