// Package catalog holds the ordered table of column-name rules that maps a
// column to a category, a baseline risk level and template guidance.
//
// Rules are evaluated in declaration order and the first rule with a keyword
// contained in the lowercased column name wins. Overlapping keywords are
// therefore resolved by position alone: "profile" is listed under both
// Personal Info and Social Media, and Personal Info is declared first.
package catalog

import (
	"strings"

	"github.com/K0NGR3SS/colrisk/internal/models"
)

// Shape names a value-level detector run against a column sample.
type Shape string

const (
	ShapeCoordinates Shape = "gps_coordinates"
	ShapeFreeText    Shape = "free_text"
)

// Escalation raises a rule's risk when the sample exhibits Shape.
type Escalation struct {
	Shape           Shape
	Level           models.RiskLevel
	Concerns        []string
	Recommendations []string
}

type PatternRule struct {
	Category        models.Category
	Keywords        []string
	BaseRisk        models.RiskLevel
	InformationType string
	Concerns        []string
	Recommendations []string
	Escalations     []Escalation
}

// Matches reports whether any keyword is a substring of the lowercased name.
func (r PatternRule) Matches(columnName string) bool {
	name := strings.ToLower(columnName)
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(name, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Catalog is an immutable, priority-ordered rule list. The zero value
// matches nothing.
type Catalog struct {
	rules []PatternRule
}

func New(rules ...PatternRule) Catalog {
	return Catalog{rules: cloneRules(rules)}
}

// WithCustomRules returns a new catalog with rules appended after the
// existing ones, so built-in rules keep priority.
func (c Catalog) WithCustomRules(rules ...PatternRule) Catalog {
	merged := make([]PatternRule, 0, len(c.rules)+len(rules))
	merged = append(merged, c.rules...)
	merged = append(merged, rules...)
	return New(merged...)
}

// Lookup returns the first rule, in declaration order, matching columnName.
func (c Catalog) Lookup(columnName string) (PatternRule, bool) {
	for _, r := range c.rules {
		if r.Matches(columnName) {
			return cloneRule(r), true
		}
	}
	return PatternRule{}, false
}

// Rules returns a copy of the rules in priority order.
func (c Catalog) Rules() []PatternRule {
	return cloneRules(c.rules)
}

func (c Catalog) Len() int {
	return len(c.rules)
}

func cloneRules(rules []PatternRule) []PatternRule {
	out := make([]PatternRule, len(rules))
	for i, r := range rules {
		out[i] = cloneRule(r)
	}
	return out
}

func cloneRule(r PatternRule) PatternRule {
	r.Keywords = append([]string(nil), r.Keywords...)
	r.Concerns = append([]string(nil), r.Concerns...)
	r.Recommendations = append([]string(nil), r.Recommendations...)
	esc := make([]Escalation, len(r.Escalations))
	for i, e := range r.Escalations {
		e.Concerns = append([]string(nil), e.Concerns...)
		e.Recommendations = append([]string(nil), e.Recommendations...)
		esc[i] = e
	}
	r.Escalations = esc
	return r
}
