package worksheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		input   string
		want    Path
		wantErr bool
	}{
		{"whoIAm", Path{"whoIAm"}, false},
		{"idealCustomerProfile.problem", Path{"idealCustomerProfile", "problem"}, false},
		{"a.b.c", Path{"a", "b", "c"}, false},
		{"", nil, true},
		{"   ", nil, true},
		{"a..b", nil, true},
		{".a", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePath(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPath_Get(t *testing.T) {
	m := map[string]any{
		"icp": map[string]any{
			"problem": "no traffic",
		},
		"name": "offer",
	}

	v, ok := Path{"icp", "problem"}.Get(m)
	assert.True(t, ok)
	assert.Equal(t, "no traffic", v)

	v, ok = Path{"name"}.Get(m)
	assert.True(t, ok)
	assert.Equal(t, "offer", v)

	// A missing field is a normal condition, not a crash.
	_, ok = Path{"icp", "missing"}.Get(m)
	assert.False(t, ok)

	_, ok = Path{"name", "deeper"}.Get(m)
	assert.False(t, ok)
}

func TestPath_Set(t *testing.T) {
	m := map[string]any{}

	require.NoError(t, Path{"icp", "problem"}.Set(m, "churn"))
	v, ok := Path{"icp", "problem"}.Get(m)
	assert.True(t, ok)
	assert.Equal(t, "churn", v)

	// Overwrite in place.
	require.NoError(t, Path{"icp", "problem"}.Set(m, "retention"))
	v, _ = Path{"icp", "problem"}.Get(m)
	assert.Equal(t, "retention", v)

	// Refuses to tunnel through a scalar.
	require.NoError(t, Path{"leaf"}.Set(m, "text"))
	err := Path{"leaf", "child"}.Set(m, "x")
	assert.Error(t, err)
}
