// Package validation checks worksheet data against the pillar schemas.
// Validation is pure: the same sections value always produces the same
// Result, and invalid input is a normal outcome reported as data, never
// as a Go error. The only errors returned are schema wiring mistakes
// (unknown pillar or section).
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Sleyter2616/SiteHustle-sub000/internal/schema"
)

// Result is the outcome of validating a document or a single section.
// Keys of Errors are section-qualified dotted paths, e.g.
// "reflection.whoIAm". Success holds exactly when Errors is empty.
type Result struct {
	Success bool                `json:"success"`
	Errors  map[string][]string `json:"errors"`
}

func newResult() Result {
	return Result{Success: true, Errors: map[string][]string{}}
}

func (r *Result) add(path, message string) {
	r.Errors[path] = append(r.Errors[path], message)
	r.Success = false
}

// merge folds other's errors into r.
func (r *Result) merge(other Result) {
	for path, msgs := range other.Errors {
		r.Errors[path] = append(r.Errors[path], msgs...)
	}
	if !other.Success {
		r.Success = false
	}
}

// Validate checks a whole document's sections against a pillar schema.
// Sections absent from the input validate as empty values.
func Validate(pillarID int, sections map[string]map[string]any) (Result, error) {
	p, err := schema.Get(pillarID)
	if err != nil {
		return Result{}, err
	}

	result := newResult()
	for _, sec := range p.Sections {
		result.merge(validateSection(sec, sections[sec.Name]))
	}
	return result, nil
}

// ValidateSection checks one named section. The UI gates advancement per
// section, so this is the call made on every edit and before unlocking.
func ValidateSection(pillarID int, sectionName string, value map[string]any) (Result, error) {
	p, err := schema.Get(pillarID)
	if err != nil {
		return Result{}, err
	}
	sec, err := p.Section(sectionName)
	if err != nil {
		return Result{}, err
	}
	return validateSection(sec, value), nil
}

func validateSection(sec schema.Section, value map[string]any) Result {
	result := newResult()
	for _, f := range sec.Fields {
		validateField(&result, sec.Name, f, value)
	}
	return result
}

// validateField resolves the field from its section value (a missing path
// is an empty value, not a crash) and applies the kind-specific rule.
func validateField(result *Result, prefix string, f schema.Field, section map[string]any) {
	path := prefix + "." + f.Path
	var value any
	if section != nil {
		value, _ = resolve(section, f.Path)
	}

	switch f.Kind {
	case schema.KindText:
		text, _ := value.(string)
		if f.Required && strings.TrimSpace(text) == "" {
			result.add(path, fmt.Sprintf("%s is required", f.Label))
		}

	case schema.KindTextArray:
		entries := countNonBlank(value)
		min := f.MinItems
		if f.Required && min < 1 {
			min = 1
		}
		if entries < min {
			if f.MinItems > 0 {
				result.add(path, fmt.Sprintf("%s needs at least %d entries", f.Label, f.MinItems))
			} else if f.Required {
				result.add(path, fmt.Sprintf("%s needs at least one entry", f.Label))
			}
		}

	case schema.KindNumber:
		num, ok := toNumber(value)
		if f.Required && (!ok || num <= 0) {
			result.add(path, fmt.Sprintf("%s must be greater than zero", f.Label))
		}

	case schema.KindObject:
		child, _ := value.(map[string]any)
		for _, c := range f.Children {
			validateField(result, path, c, child)
		}
	}
}

func resolve(m map[string]any, dotted string) (any, bool) {
	cur := any(m)
	for _, seg := range strings.Split(dotted, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// countNonBlank counts array entries that are non-empty after trimming.
// Whitespace-only strings never count toward a minimum.
func countNonBlank(value any) int {
	count := 0
	switch arr := value.(type) {
	case []any:
		for _, item := range arr {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				count++
			}
		}
	case []string:
		for _, s := range arr {
			if strings.TrimSpace(s) != "" {
				count++
			}
		}
	}
	return count
}

func toNumber(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
