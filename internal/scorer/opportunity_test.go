package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreQuickWin(t *testing.T) {
	s := NewOpportunityScorer()

	// High-traffic core page with a middling audit score and plenty of
	// content: big upside, little work.
	score := s.Score(PageSignals{
		Impressions:         5000,
		Clicks:              200,
		AuditScore:          60,
		CEAlignment:         50,
		MatchConfidence:     0.7,
		TopicType:           TopicCore,
		WordCount:           800,
		HasStrikingDistance: true,
	})

	assert.InDelta(t, 93.98, score.ImpactComponents["traffic_potential"], 0.01)
	assert.InDelta(t, 67.19, score.Impact, 0.01)
	assert.Equal(t, 34.0, score.Effort)
	assert.Equal(t, QuadrantQuickWin, score.Quadrant)
}

func TestScoreDeprioritize(t *testing.T) {
	s := NewOpportunityScorer()

	// No traffic and a thin, low-quality supporting page: lots of work
	// for little upside.
	score := s.Score(PageSignals{
		Impressions: 0,
		AuditScore:  20,
		CEAlignment: 40,
		TopicType:   TopicSupporting,
		WordCount:   150,
	})

	assert.Less(t, score.Impact, 50.0)
	assert.GreaterOrEqual(t, score.Effort, 50.0)
	assert.Equal(t, QuadrantDeprioritize, score.Quadrant)
}

func TestClassifyQuadrantBoundaries(t *testing.T) {
	tests := []struct {
		name           string
		impact, effort float64
		want           Quadrant
	}{
		{"both exactly at boundary", 50, 50, QuadrantStrategicInvestment},
		{"impact at boundary, effort below", 50, 49.99, QuadrantQuickWin},
		{"impact below, effort at boundary", 49.99, 50, QuadrantDeprioritize},
		{"both below", 49.99, 49.99, QuadrantFillIn},
		{"both high", 90, 90, QuadrantStrategicInvestment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyQuadrant(tt.impact, tt.effort))
		})
	}
}

func TestTrafficPotential(t *testing.T) {
	// Zero impressions and no striking-distance keywords score zero.
	assert.Zero(t, trafficPotential(0, false))
	// The striking-distance bonus is a flat 20.
	assert.Equal(t, 20.0, trafficPotential(0, true))
	// Capped at 100 regardless of volume.
	assert.Equal(t, 100.0, trafficPotential(10_000_000, true))

	assert.InDelta(t, 40.0, trafficPotential(99, false), 0.1)
}

func TestContentVolumePenalty(t *testing.T) {
	assert.Equal(t, 80.0, contentVolumePenalty(0))
	assert.Equal(t, 80.0, contentVolumePenalty(299))
	assert.Equal(t, 40.0, contentVolumePenalty(300))
	assert.Equal(t, 40.0, contentVolumePenalty(799))
	assert.Equal(t, 10.0, contentVolumePenalty(800))
}

func TestStrategicImportance(t *testing.T) {
	assert.Equal(t, 80.0, strategicImportance(TopicCore))
	assert.Equal(t, 40.0, strategicImportance(TopicSupporting))
	assert.Equal(t, 40.0, strategicImportance(""))
}
