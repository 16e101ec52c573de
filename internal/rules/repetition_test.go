package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

func section(key, content string) model.Section {
	return model.Section{Key: key, Heading: key, Content: content}
}

func TestCrossSectionOpeningsTemplated(t *testing.T) {
	v := NewRepetitionValidator()

	// Three different noun phrases, one shared template.
	sections := []model.Section{
		section("shingles", "The inspection of asphalt shingles reveals cracks. More prose."),
		section("gutters", "The cleaning of gutters prevents overflow. More prose."),
		section("flashing", "The maintenance of flashing extends lifespan. More prose."),
	}

	violations := v.ValidateCrossSectionOpenings(sections)
	require.Len(t, violations, 1)
	assert.Equal(t, RuleCrossSectionOpenings, violations[0].RuleID)
	assert.Equal(t, model.SeverityHigh, violations[0].Severity)
	for _, key := range []string{"shingles", "gutters", "flashing"} {
		assert.Contains(t, violations[0].Description, key)
		assert.Contains(t, violations[0].AffectedElement, key)
	}
}

func TestCrossSectionOpeningsGroupOfTwoPasses(t *testing.T) {
	v := NewRepetitionValidator()
	sections := []model.Section{
		section("a", "The inspection of decking takes an hour."),
		section("b", "The inspection of valleys takes longer."),
		section("c", "Slate holds up for a century."),
	}
	assert.Empty(t, v.ValidateCrossSectionOpenings(sections))
}

func TestCrossSectionOpeningsNearMatch(t *testing.T) {
	v := NewRepetitionValidator()
	sections := []model.Section{
		section("a", "Regular roof maintenance prevents costly damage."),
		section("b", "Regular roof maintenance prevents water damage."),
		section("c", "Regular roof maintenance prevents leaks quickly."),
	}

	violations := v.ValidateCrossSectionOpenings(sections)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Description, "3 sections")
}

func TestCrossSectionOpeningsExemptKeys(t *testing.T) {
	v := NewRepetitionValidator()
	sections := []model.Section{
		section("intro", "The inspection of roofs matters."),
		section("conclusion", "The inspection of roofs matters."),
		section("body", "The inspection of roofs matters."),
	}
	assert.Empty(t, v.ValidateCrossSectionOpenings(sections))
}

func TestNearDuplicateSentences(t *testing.T) {
	v := NewRepetitionValidator()

	content := "The copper flashing resists corrosion around chimneys. " +
		"Gutters need cleaning twice a year. " +
		"The copper flashing resists corrosion around skylights."

	violations := v.Validate(content)
	require.Len(t, violations, 1)
	assert.Equal(t, RuleNearDuplicate, violations[0].RuleID)
	assert.Contains(t, violations[0].Description, "Sentence 3 closely repeats sentence 1")
	assert.Equal(t, "sentence 3", violations[0].AffectedElement)
}

func TestNearDuplicateDistinctSentencesPass(t *testing.T) {
	v := NewRepetitionValidator()
	content := "Slate lasts a century. Metal panels shed snow. Asphalt stays affordable."
	assert.Empty(t, v.Validate(content))
	assert.Empty(t, v.Validate(""))
}

func TestNgramRepetitionSubsumption(t *testing.T) {
	v := NewRepetitionValidator()

	sections := []model.Section{
		section("prep", "Schedule an annual roof inspection before winter."),
		section("care", "An annual roof inspection catches loose shingles."),
	}

	// The shared 4-gram subsumes its 3-gram fragments: one violation.
	violations := v.ValidateNgrams(sections)
	require.Len(t, violations, 1)
	assert.Equal(t, RuleNgramRepetition, violations[0].RuleID)
	assert.Contains(t, violations[0].Description, `"an annual roof inspection"`)
	assert.Contains(t, violations[0].Description, "care, prep")
	assert.Contains(t, violations[0].Suggestion, "Rephrase")
}

func TestNgramRepetitionWhitelist(t *testing.T) {
	v := NewRepetitionValidator()
	sections := []model.Section{
		section("a", "As a result, leaks spread quickly."),
		section("b", "As a result, decking rots underneath."),
	}
	assert.Empty(t, v.ValidateNgrams(sections))
}

func TestNgramRepetitionStopWordsOnly(t *testing.T) {
	v := NewRepetitionValidator()
	sections := []model.Section{
		section("a", "Moss grows in all of humid regions."),
		section("b", "Cracks appear in all of older tiles."),
	}
	assert.Empty(t, v.ValidateNgrams(sections))
}

func TestNgramRepetitionWithinOneSectionPasses(t *testing.T) {
	v := NewRepetitionValidator()
	sections := []model.Section{
		section("a", "Annual roof inspection matters. An annual roof inspection catches damage."),
	}
	assert.Empty(t, v.ValidateNgrams(sections))
}
