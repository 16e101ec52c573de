// Package scorer converts page-level audit and search signals into an
// impact/effort prioritization quadrant.
package scorer

import (
	"math"
)

// Quadrant is the prioritization bucket for remediation work.
type Quadrant string

const (
	QuadrantQuickWin            Quadrant = "quick_win"
	QuadrantStrategicInvestment Quadrant = "strategic_investment"
	QuadrantFillIn              Quadrant = "fill_in"
	QuadrantDeprioritize        Quadrant = "deprioritize"
)

// quadrantBoundary splits impact and effort into high and low halves.
// The boundary is inclusive on the high side.
const quadrantBoundary = 50

// TopicType classifies a page's strategic role.
type TopicType string

const (
	TopicCore       TopicType = "core"
	TopicSupporting TopicType = "supporting"
)

// PageSignals are the inputs to opportunity scoring for one page.
type PageSignals struct {
	Impressions        int64     `json:"impressions"`
	Clicks             int64     `json:"clicks"`
	AuditScore         float64   `json:"audit_score"`
	CEAlignment        float64   `json:"ce_alignment"`
	MatchConfidence    float64   `json:"match_confidence"`
	TopicType          TopicType `json:"topic_type"`
	WordCount          int       `json:"word_count"`
	HasStrikingDistance bool     `json:"has_striking_distance"`
}

// OpportunityScore is the scored outcome: impact and effort on 0-100
// scales, their components, and the resulting quadrant.
type OpportunityScore struct {
	Impact           float64            `json:"impact"`
	Effort           float64            `json:"effort"`
	Quadrant         Quadrant           `json:"quadrant"`
	ImpactComponents map[string]float64 `json:"impact_components"`
	EffortComponents map[string]float64 `json:"effort_components"`
}

// OpportunityScorer computes impact/effort quadrants from page signals.
type OpportunityScorer struct{}

// NewOpportunityScorer returns an OpportunityScorer.
func NewOpportunityScorer() *OpportunityScorer {
	return &OpportunityScorer{}
}

// Score computes the opportunity classification for one page.
func (s *OpportunityScorer) Score(sig PageSignals) OpportunityScore {
	impactComponents := map[string]float64{
		"traffic_potential":    trafficPotential(sig.Impressions, sig.HasStrikingDistance),
		"alignment_gap":        100 - sig.CEAlignment,
		"strategic_importance": strategicImportance(sig.TopicType),
		"quality_gap":          100 - sig.AuditScore,
	}
	impact := 0.3*impactComponents["traffic_potential"] +
		0.3*impactComponents["alignment_gap"] +
		0.2*impactComponents["strategic_importance"] +
		0.2*impactComponents["quality_gap"]

	effortComponents := map[string]float64{
		"quality_deficit":        100 - sig.AuditScore,
		"alignment_deficit":      100 - sig.CEAlignment,
		"content_volume_penalty": contentVolumePenalty(sig.WordCount),
	}
	effort := 0.4*effortComponents["quality_deficit"] +
		0.3*effortComponents["alignment_deficit"] +
		0.3*effortComponents["content_volume_penalty"]

	return OpportunityScore{
		Impact:           round2(impact),
		Effort:           round2(effort),
		Quadrant:         classifyQuadrant(impact, effort),
		ImpactComponents: impactComponents,
		EffortComponents: effortComponents,
	}
}

// trafficPotential scales logarithmically with impressions, with a flat
// bonus for striking-distance rankings, capped at 100.
func trafficPotential(impressions int64, hasStrikingDistance bool) float64 {
	p := 20 * math.Log10(float64(impressions)+1)
	if hasStrikingDistance {
		p += 20
	}
	return math.Min(p, 100)
}

// strategicImportance is a two-level step: core topics matter twice as
// much as supporting ones.
func strategicImportance(t TopicType) float64 {
	if t == TopicCore {
		return 80
	}
	return 40
}

// contentVolumePenalty is a three-tier step function: thin pages are
// expensive to fix, substantial ones cheap.
func contentVolumePenalty(wordCount int) float64 {
	switch {
	case wordCount < 300:
		return 80
	case wordCount < 800:
		return 40
	default:
		return 10
	}
}

// classifyQuadrant buckets a page. Boundaries are inclusive on the ≥50
// side for both axes.
func classifyQuadrant(impact, effort float64) Quadrant {
	highImpact := impact >= quadrantBoundary
	highEffort := effort >= quadrantBoundary
	switch {
	case highImpact && !highEffort:
		return QuadrantQuickWin
	case highImpact && highEffort:
		return QuadrantStrategicInvestment
	case !highImpact && !highEffort:
		return QuadrantFillIn
	default:
		return QuadrantDeprioritize
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
