// Package worksheet holds the worksheet document model and its persistence
// contract: one document per (user, pillar), edited in memory as a value and
// saved whole with last-write-wins upsert semantics.
package worksheet

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Sleyter2616/SiteHustle-sub000/internal/schema"
)

// Section is one named sub-part of a worksheet, JSON-shaped: string,
// []any of strings, float64 or nested map values.
type Section = map[string]any

// Sections maps section name to section value. For a given pillar the key
// set is fixed by the schema; an untouched section holds its default value.
type Sections = map[string]Section

// Document is the worksheet for one pillar and one user.
type Document struct {
	UserID    uuid.UUID `json:"user_id"`
	Pillar    int       `json:"pillar"`
	Sections  Sections  `json:"sections"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDocument creates a fresh document with every section at its schema
// default. This is what a user sees the first time they open a pillar.
func NewDocument(userID uuid.UUID, pillarID int) (*Document, error) {
	sections, err := schema.DefaultSections(pillarID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Document{
		UserID:    userID,
		Pillar:    pillarID,
		Sections:  sections,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Normalize overlays the document's sections onto schema defaults so every
// section key exists even if the stored record predates a schema addition.
func (d *Document) Normalize() error {
	defaults, err := schema.DefaultSections(d.Pillar)
	if err != nil {
		return err
	}
	for name, sec := range defaults {
		if existing, ok := d.Sections[name]; ok && existing != nil {
			continue
		}
		if d.Sections == nil {
			d.Sections = Sections{}
		}
		d.Sections[name] = sec
	}
	return nil
}

// Clone deep-copies the document. Section values are JSON-shaped so the
// copy only has to handle maps, slices and scalars.
func (d *Document) Clone() *Document {
	out := *d
	out.Sections = make(Sections, len(d.Sections))
	for name, sec := range d.Sections {
		out.Sections[name] = copyMap(sec)
	}
	return &out
}

// ApplyEdit returns a copy of the document with one field changed. The
// path is section-qualified ("reflection.whoIAm"); the original document
// is never mutated, so callers can treat documents as values.
func ApplyEdit(d *Document, fieldPath string, value any) (*Document, error) {
	path, err := ParsePath(fieldPath)
	if err != nil {
		return nil, err
	}
	if len(path) < 2 {
		return nil, fmt.Errorf("field path %q must name a section and a field", fieldPath)
	}

	p := schema.MustGet(d.Pillar)
	sectionName := path[0]
	if p.SectionIndex(sectionName) < 0 {
		return nil, fmt.Errorf("pillar %d has no section %q", d.Pillar, sectionName)
	}

	out := d.Clone()
	sec := out.Sections[sectionName]
	if sec == nil {
		sec = Section{}
		out.Sections[sectionName] = sec
	}
	if err := Path(path[1:]).Set(sec, value); err != nil {
		return nil, err
	}
	out.UpdatedAt = time.Now().UTC()
	return out, nil
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	default:
		return v
	}
}
