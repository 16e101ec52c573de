package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

func TestAlignmentEmptyContextSkipsEverything(t *testing.T) {
	a := NewSourceContextAligner()
	assert.Empty(t, a.Validate("any content at all", "", model.BusinessInfo{}))
}

func TestAlignmentCentralEntityMissing(t *testing.T) {
	a := NewSourceContextAligner()

	violations := a.Validate("Content about gutters and downspouts.", "metal roofing", model.BusinessInfo{})
	require.Len(t, violations, 1)
	assert.Equal(t, RuleAlignCentralEntity, violations[0].RuleID)
	assert.Equal(t, model.SeverityCritical, violations[0].Severity)

	assert.Empty(t, a.Validate("All about Metal Roofing here.", "metal roofing", model.BusinessInfo{}))
}

func TestAlignmentBusinessContext(t *testing.T) {
	a := NewSourceContextAligner()
	info := model.BusinessInfo{
		Industry:     "roofing",
		CoreServices: []string{"gutter cleaning", "roof repair"},
	}

	violations := a.Validate("Generic home advice with no trade mentioned.", "", info)
	require.Len(t, violations, 1)
	assert.Equal(t, RuleAlignBusiness, violations[0].RuleID)
	assert.Equal(t, model.SeverityHigh, violations[0].Severity)

	// Industry match satisfies the check.
	assert.Empty(t, a.Validate("The roofing trade is seasonal.", "", info))
	// Any single core service does too.
	assert.Empty(t, a.Validate("We offer gutter cleaning in spring.", "", info))
}

func TestAlignmentKeywordCoverage(t *testing.T) {
	a := NewSourceContextAligner()
	info := model.BusinessInfo{
		TargetKeywords: []string{"metal roof", "roof cost", "roof lifespan", "roof warranty"},
	}

	// 1 of 4 covered: 25% is under the 50% threshold.
	violations := a.Validate("A metal roof sheds snow well.", "", info)
	require.Len(t, violations, 1)
	assert.Equal(t, RuleAlignKeywords, violations[0].RuleID)
	assert.Equal(t, model.SeverityMedium, violations[0].Severity)
	assert.Contains(t, violations[0].Description, "roof cost")
	assert.Contains(t, violations[0].Description, "Missing")

	// 2 of 4 is exactly 50% and passes.
	assert.Empty(t, a.Validate("A metal roof sheds snow; the roof cost varies.", "", info))
}

func TestAlignmentAttributeCoverage(t *testing.T) {
	a := NewSourceContextAligner()
	info := model.BusinessInfo{
		RequiredAttributes: []string{"durability", "price", "installation"},
	}

	// 0 of 3 covered: under the 30% threshold.
	violations := a.Validate("Nothing relevant here.", "", info)
	require.Len(t, violations, 1)
	assert.Equal(t, RuleAlignAttributes, violations[0].RuleID)
	assert.Equal(t, model.SeverityHigh, violations[0].Severity)

	// 1 of 3 is about 33% and passes.
	assert.Empty(t, a.Validate("Focus on durability above all.", "", info))
}

func TestAlignmentAllChecksTogether(t *testing.T) {
	a := NewSourceContextAligner()
	info := model.BusinessInfo{
		Industry:           "roofing",
		TargetKeywords:     []string{"metal roof", "roof cost"},
		RequiredAttributes: []string{"durability"},
	}

	violations := a.Validate("Entirely unrelated gardening prose.", "metal roofing", info)
	require.Len(t, violations, 4)
	ids := []string{violations[0].RuleID, violations[1].RuleID, violations[2].RuleID, violations[3].RuleID}
	assert.Equal(t, []string{RuleAlignCentralEntity, RuleAlignBusiness, RuleAlignKeywords, RuleAlignAttributes}, ids)
}
