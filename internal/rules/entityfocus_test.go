package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

// driftingContent builds a 100+ word body that never mentions the test
// entity terms.
func driftingContent() string {
	return strings.TrimSpace(strings.Repeat("general advice about upkeep and seasonal care for any home ", 12))
}

func focusedContent(entity string) string {
	return entity + " " + driftingContent()
}

func TestEntityFocusEmptyInputs(t *testing.T) {
	v := NewCentralEntityFocusValidator()

	result := v.ValidateSections([]model.Section{{Key: "a", Content: "text"}}, "", nil)
	assert.Equal(t, 100.0, result.Score)
	assert.Empty(t, result.Findings)

	result = v.ValidateSections(nil, "metal roofing", nil)
	assert.Equal(t, 100.0, result.Score)
	assert.Empty(t, result.Findings)
}

func TestValidateSectionBelowFloor(t *testing.T) {
	v := NewCentralEntityFocusValidator()
	sec := model.Section{Key: "s", Heading: "S", Content: "Short body with no entity at all."}
	assert.Empty(t, v.ValidateSection(sec, "metal roofing", nil))
}

func TestValidateSectionNoEntity(t *testing.T) {
	v := NewCentralEntityFocusValidator()
	sec := model.Section{Key: "s", Heading: "Upkeep", Content: driftingContent()}

	violations := v.ValidateSection(sec, "metal roofing", nil)
	require.Len(t, violations, 1)
	assert.Equal(t, RuleNoEntity, violations[0].RuleID)
	assert.Equal(t, model.SeverityHigh, violations[0].Severity)
	assert.Equal(t, "s", violations[0].AffectedElement)
}

func TestValidateSectionLowMention(t *testing.T) {
	v := NewCentralEntityFocusValidator()

	// One mention in roughly 250 words is under 0.5 per 100 words.
	body := "metal " + strings.TrimSpace(strings.Repeat("general advice about upkeep and seasonal care for any home ", 25))
	sec := model.Section{Key: "s", Heading: "Upkeep", Content: body}

	violations := v.ValidateSection(sec, "metal roofing", nil)
	require.Len(t, violations, 1)
	assert.Equal(t, RuleLowMention, violations[0].RuleID)
}

func TestValidateSectionTwoMentionsPass(t *testing.T) {
	v := NewCentralEntityFocusValidator()

	// Density is still under threshold, but two mentions clear the rule.
	body := "metal metal " + strings.TrimSpace(strings.Repeat("general advice about upkeep and seasonal care for any home ", 45))
	sec := model.Section{Key: "s", Heading: "Upkeep", Content: body}
	assert.Empty(t, v.ValidateSection(sec, "metal roofing", nil))
}

func TestValidateSectionsBelowFloorCountsFocused(t *testing.T) {
	v := NewCentralEntityFocusValidator()
	sections := []model.Section{
		{Key: "tiny1", Content: "Short."},
		{Key: "tiny2", Content: "Also short."},
		{Key: "big", Heading: "Big", Content: driftingContent()},
	}

	result := v.ValidateSections(sections, "metal roofing", nil)
	assert.InDelta(t, 66.67, result.Score, 0.01)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, RuleNoEntity, result.Findings[0].RuleID)
}

func TestValidateSectionsCriticalEscalation(t *testing.T) {
	v := NewCentralEntityFocusValidator()
	sections := []model.Section{
		{Key: "a", Heading: "A", Content: driftingContent()},
		{Key: "b", Heading: "B", Content: driftingContent()},
		{Key: "c", Heading: "C", Content: driftingContent()},
	}

	result := v.ValidateSections(sections, "metal roofing", nil)
	assert.Zero(t, result.Score)
	require.Len(t, result.Findings, 4)

	overall := result.Findings[3]
	assert.Equal(t, RuleOverallDrift, overall.RuleID)
	assert.Equal(t, model.SeverityCritical, overall.Severity)
}

func TestValidateSectionsHighEscalation(t *testing.T) {
	v := NewCentralEntityFocusValidator()
	sections := []model.Section{
		{Key: "a", Heading: "A", Content: focusedContent("metal roofing")},
		{Key: "b", Heading: "B", Content: driftingContent()},
		{Key: "c", Heading: "C", Content: driftingContent()},
	}

	result := v.ValidateSections(sections, "metal roofing", nil)
	assert.InDelta(t, 33.33, result.Score, 0.01)

	overall := result.Findings[len(result.Findings)-1]
	assert.Equal(t, RuleOverallDrift, overall.RuleID)
	assert.Equal(t, model.SeverityHigh, overall.Severity)
}

func TestValidateSectionsTwoSectionsNoEscalation(t *testing.T) {
	v := NewCentralEntityFocusValidator()
	sections := []model.Section{
		{Key: "a", Heading: "A", Content: driftingContent()},
		{Key: "b", Heading: "B", Content: driftingContent()},
	}

	result := v.ValidateSections(sections, "metal roofing", nil)
	assert.Zero(t, result.Score)
	for _, f := range result.Findings {
		assert.NotEqual(t, RuleOverallDrift, f.RuleID)
	}
}

func TestEntityTermsIncludeTripleSubjects(t *testing.T) {
	v := NewCentralEntityFocusValidator()
	triples := []model.SemanticTriple{
		{Subject: model.TripleSubject{Label: "underlayment"}},
	}
	body := "underlayment " + driftingContent()
	sections := []model.Section{{Key: "a", Heading: "A", Content: body}}

	result := v.ValidateSections(sections, "slate tiles", triples)
	assert.Equal(t, 100.0, result.Score)
	assert.Empty(t, result.Findings)
}
