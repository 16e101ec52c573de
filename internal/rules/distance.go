package rules

import (
	"fmt"
	"sort"

	"github.com/pmcconville-hub/seofactory-audit/internal/extract"
	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

// Rule identifiers for the semantic distance family.
const (
	RuleCannibalization = "SEMANTIC_DISTANCE_CANNIBALIZATION"
	RuleTopicOverlap    = "SEMANTIC_DISTANCE_OVERLAP"
)

// Distance classification boundaries. Both are half-open: a distance of
// exactly 0.2 is overlap (not cannibalization) and exactly 0.3 is safe.
const (
	cannibalizationDistance = 0.2
	overlapDistance         = 0.3
)

// SemanticDistanceAuditor detects keyword cannibalization between the
// current page's topic and other pages on the site.
type SemanticDistanceAuditor struct{}

// NewSemanticDistanceAuditor returns a SemanticDistanceAuditor.
func NewSemanticDistanceAuditor() *SemanticDistanceAuditor {
	return &SemanticDistanceAuditor{}
}

// TopicDistance computes the fallback lexical distance between two
// topics: 1 minus the Jaccard similarity of their significant word
// sets. Two empty topics are maximally distant (J(∅,∅)=0), never
// spuriously identical.
func TopicDistance(topicA, topicB string) float64 {
	return 1 - extract.Jaccard(extract.SignificantWords(topicA), extract.SignificantWords(topicB))
}

// AuditDistances classifies pre-computed distances from the current
// page to other pages, keyed by URL.
func (a *SemanticDistanceAuditor) AuditDistances(topic string, distances map[string]float64) []model.Violation {
	urls := make([]string, 0, len(distances))
	for u := range distances {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	var violations []model.Violation
	for _, u := range urls {
		if v := classifyDistance(topic, u, distances[u]); v != nil {
			violations = append(violations, *v)
		}
	}
	return violations
}

// AuditTopics derives distances from raw topic strings and classifies
// them.
func (a *SemanticDistanceAuditor) AuditTopics(topic string, others map[string]string) []model.Violation {
	distances := make(map[string]float64, len(others))
	for u, other := range others {
		distances[u] = TopicDistance(topic, other)
	}
	return a.AuditDistances(topic, distances)
}

// classifyDistance applies the half-open threshold bands.
func classifyDistance(topic, url string, distance float64) *model.Violation {
	switch {
	case distance < cannibalizationDistance:
		return &model.Violation{
			RuleID:          RuleCannibalization,
			Severity:        model.SeverityHigh,
			Title:           "Keyword cannibalization risk",
			Description:     fmt.Sprintf("%q is nearly identical in topic to %s (distance %.2f); the pages compete directly.", topic, url, distance),
			AffectedElement: url,
			Suggestion:      "Consolidate the pages or differentiate their search intent.",
		}
	case distance < overlapDistance:
		return &model.Violation{
			RuleID:          RuleTopicOverlap,
			Severity:        model.SeverityMedium,
			Title:           "Potential topic overlap",
			Description:     fmt.Sprintf("%q overlaps with %s (distance %.2f).", topic, url, distance),
			AffectedElement: url,
			Suggestion:      "Sharpen each page's angle so they target distinct queries.",
		}
	}
	return nil
}
