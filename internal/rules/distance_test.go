package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicDistance(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		want   float64
		within float64
	}{
		{"identical topics", "metal roof installation", "metal roof installation", 0, 0},
		{"disjoint topics", "metal roof installation", "garden pond liners", 1, 0},
		// Both empty: J(emptyset, emptyset) = 0, so distance is maximal.
		{"both empty", "", "", 1, 0},
		{"one empty", "metal roof", "", 1, 0},
		// {metal, roof, installation} vs {metal, roof, repair}: 2/4.
		{"partial overlap", "metal roof installation", "metal roof repair", 0.5, 0.0001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TopicDistance(tt.a, tt.b), tt.within)
		})
	}
}

func TestAuditDistancesBands(t *testing.T) {
	a := NewSemanticDistanceAuditor()

	violations := a.AuditDistances("metal roofing", map[string]float64{
		"https://example.com/a": 0.05, // cannibalization
		"https://example.com/b": 0.2,  // boundary: overlap, not cannibalization
		"https://example.com/c": 0.25, // overlap
		"https://example.com/d": 0.3,  // boundary: safe
		"https://example.com/e": 0.9,  // safe
	})

	require.Len(t, violations, 3)
	assert.Equal(t, RuleCannibalization, violations[0].RuleID)
	assert.Equal(t, "https://example.com/a", violations[0].AffectedElement)
	assert.Equal(t, RuleTopicOverlap, violations[1].RuleID)
	assert.Equal(t, "https://example.com/b", violations[1].AffectedElement)
	assert.Equal(t, RuleTopicOverlap, violations[2].RuleID)
	assert.Equal(t, "https://example.com/c", violations[2].AffectedElement)
}

func TestAuditDistancesSortedByURL(t *testing.T) {
	a := NewSemanticDistanceAuditor()
	violations := a.AuditDistances("t", map[string]float64{
		"https://example.com/z": 0.1,
		"https://example.com/a": 0.1,
		"https://example.com/m": 0.1,
	})
	require.Len(t, violations, 3)
	assert.Equal(t, "https://example.com/a", violations[0].AffectedElement)
	assert.Equal(t, "https://example.com/m", violations[1].AffectedElement)
	assert.Equal(t, "https://example.com/z", violations[2].AffectedElement)
}

func TestAuditTopics(t *testing.T) {
	a := NewSemanticDistanceAuditor()

	violations := a.AuditTopics("metal roof installation", map[string]string{
		"https://example.com/repair": "metal roof repair",     // distance 0.5: safe
		"https://example.com/same":   "metal roof installation", // distance 0: cannibalization
	})

	require.Len(t, violations, 1)
	assert.Equal(t, RuleCannibalization, violations[0].RuleID)
	assert.Equal(t, "https://example.com/same", violations[0].AffectedElement)
}

func TestAuditDistancesEmpty(t *testing.T) {
	a := NewSemanticDistanceAuditor()
	assert.Empty(t, a.AuditDistances("topic", nil))
}
