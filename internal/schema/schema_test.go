package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPillars(t *testing.T) {
	for id := 1; id <= PillarCount; id++ {
		p, err := Get(id)
		require.NoError(t, err)
		assert.Equal(t, id, p.ID)
		assert.NotEmpty(t, p.Slug)
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Sections)
	}
}

func TestGet_UnknownPillar(t *testing.T) {
	for _, id := range []int{0, -1, 7, 100} {
		_, err := Get(id)
		assert.Error(t, err, "pillar %d should be unknown", id)
	}
}

func TestMustGet_PanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { MustGet(0) })
	assert.NotPanics(t, func() { MustGet(3) })
}

func TestPillar1_SectionNames(t *testing.T) {
	p := MustGet(1)
	var names []string
	for _, s := range p.Sections {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"reflection", "personality", "story", "differentiation", "executionRoadmap"}, names)
}

func TestSection_Lookup(t *testing.T) {
	p := MustGet(1)

	sec, err := p.Section("reflection")
	require.NoError(t, err)
	assert.Equal(t, "reflection", sec.Name)

	_, err = p.Section("nope")
	assert.Error(t, err)

	assert.Equal(t, 0, p.SectionIndex("reflection"))
	assert.Equal(t, 4, p.SectionIndex("executionRoadmap"))
	assert.Equal(t, -1, p.SectionIndex("nope"))
}

func TestEveryPillar_HasRequiredFields(t *testing.T) {
	// The progression gate is meaningless for a pillar with nothing
	// required, so the curriculum must never ship one.
	for id := 1; id <= PillarCount; id++ {
		p := MustGet(id)
		required := 0
		for _, sec := range p.Sections {
			for _, f := range sec.Fields {
				if f.Required {
					required++
				}
			}
		}
		assert.Greater(t, required, 0, "pillar %d has no required fields", id)
	}
}

func TestDefaultSections_AllSectionsPresent(t *testing.T) {
	for id := 1; id <= PillarCount; id++ {
		p := MustGet(id)
		defaults, err := DefaultSections(id)
		require.NoError(t, err)
		require.Len(t, defaults, len(p.Sections))
		for _, sec := range p.Sections {
			value, ok := defaults[sec.Name]
			require.True(t, ok, "pillar %d missing default for %q", id, sec.Name)
			assert.Len(t, value, len(sec.Fields))
		}
	}
}

func TestDefaultSections_KindZeroValues(t *testing.T) {
	defaults, err := DefaultSections(2)
	require.NoError(t, err)

	offer := defaults["offer"]
	assert.Equal(t, "", offer["offerName"])
	assert.Equal(t, []any{}, offer["deliverables"])
	assert.Equal(t, float64(0), offer["pricePoint"])

	audience := defaults["targetAudience"]
	icp, ok := audience["idealCustomerProfile"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "", icp["problem"])
	assert.Equal(t, []any{}, icp["objections"])
}

func TestDefaultSections_UnknownPillar(t *testing.T) {
	_, err := DefaultSections(9)
	assert.Error(t, err)
}

func TestWeeklyMilestones_RequiresFour(t *testing.T) {
	p := MustGet(1)
	sec, err := p.Section("executionRoadmap")
	require.NoError(t, err)

	for _, f := range sec.Fields {
		if f.Path == "weeklyMilestones" {
			assert.Equal(t, 4, f.MinItems)
			assert.True(t, f.Required)
			return
		}
	}
	t.Fatal("weeklyMilestones field not found")
}
