// Package progress tracks a user's movement through a pillar's worksheet
// sections. Sections unlock one at a time: section i+1 opens only after
// section i validates successfully AND its PDF artifact has been produced.
// The download gate is a deliberate product rule, not a convenience.
package progress

import (
	"fmt"

	"github.com/Sleyter2616/SiteHustle-sub000/internal/schema"
	"github.com/Sleyter2616/SiteHustle-sub000/internal/validation"
)

// Cause explains why access to a section was blocked.
type Cause string

// Blocked causes, surfaced distinctly so the UI can show the right message.
const (
	CauseValidation      Cause = "validation"
	CauseArtifactMissing Cause = "artifact_missing"
)

// BlockedError reports a rejected navigation attempt: the gating section
// and which gate failed.
type BlockedError struct {
	Section int
	Cause   Cause
}

func (e *BlockedError) Error() string {
	switch e.Cause {
	case CauseValidation:
		return fmt.Sprintf("section %d is incomplete", e.Section)
	case CauseArtifactMissing:
		return fmt.Sprintf("section %d has not been exported yet", e.Section)
	default:
		return fmt.Sprintf("section %d is locked", e.Section)
	}
}

// State is the per-pillar, per-user progression record.
type State struct {
	CurrentSection   int          `json:"current_section"`
	UnlockedUpTo     int          `json:"unlocked_up_to"`
	ArtifactProduced map[int]bool `json:"artifact_produced"`
}

// NewState starts at the first section with nothing unlocked or exported.
func NewState() *State {
	return &State{ArtifactProduced: map[int]bool{}}
}

// Clone deep-copies the state.
func (s *State) Clone() *State {
	out := &State{
		CurrentSection:   s.CurrentSection,
		UnlockedUpTo:     s.UnlockedUpTo,
		ArtifactProduced: make(map[int]bool, len(s.ArtifactProduced)),
	}
	for k, v := range s.ArtifactProduced {
		out.ArtifactProduced[k] = v
	}
	return out
}

// Tracker applies one pillar's unlock rules to a State.
type Tracker struct {
	pillar schema.Pillar
}

// NewTracker creates a tracker for a pillar.
func NewTracker(pillarID int) (*Tracker, error) {
	p, err := schema.Get(pillarID)
	if err != nil {
		return nil, err
	}
	return &Tracker{pillar: p}, nil
}

// SectionCount returns how many sections the pillar has.
func (t *Tracker) SectionCount() int {
	return len(t.pillar.Sections)
}

// CanAccess reports whether the section at index is navigable given the
// current worksheet data. Section 0 is always open; section i needs
// section i-1 valid and exported. A nil return means access is allowed;
// otherwise the error is a *BlockedError naming the gate that failed.
func (t *Tracker) CanAccess(st *State, sections map[string]map[string]any, index int) error {
	if index < 0 || index >= len(t.pillar.Sections) {
		return fmt.Errorf("pillar %d has no section index %d", t.pillar.ID, index)
	}
	if index == 0 {
		return nil
	}

	prev := t.pillar.Sections[index-1]
	result, err := validation.ValidateSection(t.pillar.ID, prev.Name, sections[prev.Name])
	if err != nil {
		return err
	}
	if !result.Success {
		return &BlockedError{Section: index - 1, Cause: CauseValidation}
	}
	if !st.ArtifactProduced[index-1] {
		return &BlockedError{Section: index - 1, Cause: CauseArtifactMissing}
	}
	return nil
}

// Advance moves to the next section if its gate is open, raising
// UnlockedUpTo as needed. On a closed gate the state is untouched and
// the BlockedError is returned.
func (t *Tracker) Advance(st *State, sections map[string]map[string]any) error {
	next := st.CurrentSection + 1
	if next >= len(t.pillar.Sections) {
		return fmt.Errorf("already at the last section of pillar %d", t.pillar.ID)
	}
	if err := t.CanAccess(st, sections, next); err != nil {
		return err
	}
	st.CurrentSection = next
	if next > st.UnlockedUpTo {
		st.UnlockedUpTo = next
	}
	return nil
}

// Retreat steps back one section. Going backwards is always allowed and
// never lowers UnlockedUpTo. Returns false when already at the start.
func (t *Tracker) Retreat(st *State) bool {
	if st.CurrentSection == 0 {
		return false
	}
	st.CurrentSection--
	return true
}

// Jump moves directly to a section if its gate is open.
func (t *Tracker) Jump(st *State, sections map[string]map[string]any, index int) error {
	if err := t.CanAccess(st, sections, index); err != nil {
		return err
	}
	st.CurrentSection = index
	if index > st.UnlockedUpTo {
		st.UnlockedUpTo = index
	}
	return nil
}

// MarkArtifactProduced records that the section's PDF was exported.
// This is the hook the export handler calls after a successful render;
// it is the unlock event, not bookkeeping.
func (t *Tracker) MarkArtifactProduced(st *State, index int) {
	if st.ArtifactProduced == nil {
		st.ArtifactProduced = map[int]bool{}
	}
	st.ArtifactProduced[index] = true
}

// Complete reports whether the pillar is finished: every section valid
// and every artifact produced.
func (t *Tracker) Complete(st *State, sections map[string]map[string]any) bool {
	for i, sec := range t.pillar.Sections {
		result, err := validation.ValidateSection(t.pillar.ID, sec.Name, sections[sec.Name])
		if err != nil || !result.Success {
			return false
		}
		if !st.ArtifactProduced[i] {
			return false
		}
	}
	return true
}
