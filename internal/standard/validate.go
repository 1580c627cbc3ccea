package standard

import (
	"fmt"

	"github.com/backmassage/mediastandard/internal/rule"
)

// Validate checks the structural invariants of a definition: a master
// pattern is present and every rule tree is acyclic and at most
// rule.MaxDepth levels deep. Definitions built by Parse are validated
// already; call Validate for definitions assembled in code.
func Validate(d *Definition) error {
	if d.Pattern == nil {
		return fmt.Errorf("%w: pattern", ErrMissingField)
	}
	for i, r := range d.Rules {
		if r == nil {
			return fmt.Errorf("rule %d: %w: rule", i+1, ErrMissingField)
		}
		if err := checkTree(r, 1, map[*rule.Rule]bool{}); err != nil {
			return fmt.Errorf("rule %d: %w", i+1, err)
		}
	}
	return nil
}

// checkTree walks r keeping the set of rules on the current path, so a rule
// shared by two siblings is fine while a rule reachable from itself is not.
func checkTree(r *rule.Rule, depth int, onPath map[*rule.Rule]bool) error {
	if onPath[r] {
		return fmt.Errorf("%w at %q", ErrRuleCycle, r.Message)
	}
	if depth > rule.MaxDepth {
		return fmt.Errorf("%w (limit %d)", ErrRuleDepth, rule.MaxDepth)
	}
	onPath[r] = true
	defer delete(onPath, r)
	for _, c := range r.Children {
		if c == nil {
			return fmt.Errorf("%w: child of %q", ErrMissingField, r.Message)
		}
		if err := checkTree(c, depth+1, onPath); err != nil {
			return err
		}
	}
	return nil
}

// New assembles a definition in code from an unencoded master pattern.
// The default decoders are registered; callers may adjust Decoders before
// sharing the definition.
func New(pattern string, rules []*rule.Rule, content map[string]Table, vocabulary map[string]string) (*Definition, error) {
	def, err := newDefinition(pattern, vocabulary)
	if err != nil {
		return nil, err
	}
	def.Rules = rules
	for k, v := range content {
		def.Content[k] = v
	}
	def.Categories = buildCategories(def.Content)
	def.Decoders, _ = buildDecoders(nil)
	if err := Validate(def); err != nil {
		return nil, err
	}
	return def, nil
}
