package extract

import (
	"math"
	"regexp"

	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

var (
	introHeading      = regexp.MustCompile(`(?i)\b(introduction|overview|getting started)\b`)
	faqHeading        = regexp.MustCompile(`(?i)\b(faq|frequently asked|questions)\b`)
	comparisonHeading = regexp.MustCompile(`(?i)\b(vs\.?|versus|comparison|compared)\b`)
	summaryHeading    = regexp.MustCompile(`(?i)\b(summary|conclusion|final thoughts|takeaways)\b`)
	definitionHeading = regexp.MustCompile(`(?i)^what (is|are)\b`)

	numberedList = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+`)
	orderedHTML  = regexp.MustCompile(`(?i)<ol[\s>]`)
	bulletList   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	htmlTableTag = regexp.MustCompile(`(?i)<table[\s>]`)
	mdTableLine  = regexp.MustCompile(`(?m)^\|.+\|\s*$`)
)

// DetectContentType classifies a section. An explicit brief format code
// takes priority over heuristics; then heading patterns; then body shape;
// default is explanation.
func DetectContentType(heading, content string, formatCode model.FormatCode) model.ContentType {
	switch formatCode {
	case model.FormatListing:
		return model.ContentSteps
	case model.FormatTable:
		return model.ContentComparison
	case model.FormatDefinitive:
		return model.ContentDefinition
	}

	switch {
	case introHeading.MatchString(heading):
		return model.ContentIntroduction
	case faqHeading.MatchString(heading):
		return model.ContentFAQ
	case comparisonHeading.MatchString(heading):
		return model.ContentComparison
	case summaryHeading.MatchString(heading):
		return model.ContentSummary
	case definitionHeading.MatchString(heading):
		return model.ContentDefinition
	}

	switch {
	case numberedList.MatchString(content) || orderedHTML.MatchString(content):
		return model.ContentSteps
	case htmlTableTag.MatchString(content) || mdTableLine.MatchString(content):
		return model.ContentComparison
	case bulletList.MatchString(content):
		return model.ContentList
	}
	return model.ContentExplanation
}

// SectionSignals carries the brief-level attributes that feed semantic
// weighting.
type SectionSignals struct {
	Category                 model.AttributeCategory
	IsCoreTopic              bool
	HasFeaturedSnippetTarget bool
	AnswersMainIntent        bool
}

// SemanticWeight scores a section's importance on a 1-5 scale: base 3,
// additive category and intent bonuses, clamped to [1, 5] after all
// additions. Stacked bonuses can push the raw sum past 5; the reported
// weight never exceeds it.
func SemanticWeight(sig SectionSignals) float64 {
	weight := 3.0
	switch sig.Category {
	case model.CategoryUnique:
		weight += 2
	case model.CategoryRare:
		weight += 1
	case model.CategoryRoot:
		weight += 0.5
	}
	if sig.IsCoreTopic {
		weight += 0.5
	}
	if sig.HasFeaturedSnippetTarget {
		weight += 0.5
	}
	if sig.AnswersMainIntent {
		weight += 0.5
	}
	return math.Min(5, math.Max(1, weight))
}
