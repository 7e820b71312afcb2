// Package schema defines the worksheet shape for each of the six SiteHustle
// pillars: section names, field specs and default values. Schemas are static
// tables known at compile time; documents never grow or lose sections.
package schema

import "fmt"

// Kind identifies how a field value is typed and validated.
type Kind string

// Field kinds.
const (
	KindText      Kind = "text"
	KindTextArray Kind = "textArray"
	KindNumber    Kind = "number"
	KindObject    Kind = "object"
)

// Field describes one worksheet field within a section.
type Field struct {
	// Path is dotted and relative to the section (e.g.
	// "idealCustomerProfile.problem" for a nested field's child).
	Path     string
	Label    string
	Kind     Kind
	Required bool
	// MinItems applies to textArray fields. A required array with
	// MinItems 0 still needs at least one non-blank entry.
	MinItems int
	// Children applies to object fields; child paths are relative
	// to the object.
	Children []Field
}

// Section is a named group of fields within a pillar worksheet.
type Section struct {
	Name   string
	Title  string
	Fields []Field
}

// Pillar is the full worksheet schema for one course pillar.
type Pillar struct {
	ID       int
	Slug     string
	Title    string
	Sections []Section
}

// Count of pillars in the curriculum.
const PillarCount = 6

// Get returns the schema for a pillar. Unknown ids indicate a wiring bug
// in the caller and are returned as an error.
func Get(pillarID int) (Pillar, error) {
	if pillarID < 1 || pillarID > PillarCount {
		return Pillar{}, fmt.Errorf("unknown pillar id: %d", pillarID)
	}
	return pillars[pillarID-1], nil
}

// MustGet is Get for call sites that already validated the pillar id.
func MustGet(pillarID int) Pillar {
	p, err := Get(pillarID)
	if err != nil {
		panic(err)
	}
	return p
}

// Section returns the named section schema, or an error when the pillar
// has no such section.
func (p Pillar) Section(name string) (Section, error) {
	for _, s := range p.Sections {
		if s.Name == name {
			return s, nil
		}
	}
	return Section{}, fmt.Errorf("pillar %d has no section %q", p.ID, name)
}

// SectionIndex returns the position of the named section, or -1.
func (p Pillar) SectionIndex(name string) int {
	for i, s := range p.Sections {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// DefaultSections builds the empty value for every section of a pillar.
// Every section key is present; text fields default to "", arrays to
// empty slices, numbers to 0 and objects to maps of their children's
// defaults.
func DefaultSections(pillarID int) (map[string]map[string]any, error) {
	p, err := Get(pillarID)
	if err != nil {
		return nil, err
	}
	sections := make(map[string]map[string]any, len(p.Sections))
	for _, s := range p.Sections {
		sec := make(map[string]any, len(s.Fields))
		for _, f := range s.Fields {
			setDefault(sec, f)
		}
		sections[s.Name] = sec
	}
	return sections, nil
}

func setDefault(dst map[string]any, f Field) {
	switch f.Kind {
	case KindText:
		dst[f.Path] = ""
	case KindTextArray:
		dst[f.Path] = []any{}
	case KindNumber:
		dst[f.Path] = float64(0)
	case KindObject:
		child := make(map[string]any, len(f.Children))
		for _, c := range f.Children {
			setDefault(child, c)
		}
		dst[f.Path] = child
	}
}
