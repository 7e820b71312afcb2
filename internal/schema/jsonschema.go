package schema

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema derives a draft-07 JSON Schema for a pillar's sections value.
// The schema types fields structurally (string / array of strings / number /
// object) but does not enforce required-ness or minimum counts; emptiness is
// the validator's concern, since half-filled worksheets are a normal state.
func JSONSchema(pillarID int) (map[string]any, error) {
	p, err := Get(pillarID)
	if err != nil {
		return nil, err
	}

	sections := make(map[string]any, len(p.Sections))
	names := make([]string, 0, len(p.Sections))
	for _, s := range p.Sections {
		sections[s.Name] = fieldsSchema(s.Fields)
		names = append(names, s.Name)
	}

	return map[string]any{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"title":                p.Title,
		"type":                 "object",
		"properties":           sections,
		"additionalProperties": false,
		"required":             names,
	}, nil
}

func fieldsSchema(fields []Field) map[string]any {
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		props[f.Path] = fieldSchema(f)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}

func fieldSchema(f Field) map[string]any {
	switch f.Kind {
	case KindText:
		return map[string]any{"type": "string"}
	case KindTextArray:
		return map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		}
	case KindNumber:
		return map[string]any{"type": "number"}
	case KindObject:
		return fieldsSchema(f.Children)
	default:
		return map[string]any{}
	}
}

// CheckShape validates a sections value against the pillar's structural
// JSON Schema. It returns one message per structural violation (wrong type,
// unknown key); an empty slice means the shape is acceptable.
func CheckShape(pillarID int, sections map[string]map[string]any) ([]string, error) {
	js, err := JSONSchema(pillarID)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(sections)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sections: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(js),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("schema check failed to run: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return problems, nil
}
