package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		name       string
		heading    string
		content    string
		formatCode model.FormatCode
		want       model.ContentType
	}{
		{"format code listing wins", "Benefits", "some prose", model.FormatListing, model.ContentSteps},
		{"format code table wins", "Benefits", "some prose", model.FormatTable, model.ContentComparison},
		{"format code definitive wins", "Benefits", "some prose", model.FormatDefinitive, model.ContentDefinition},
		{"format code beats heading heuristic", "FAQ", "prose", model.FormatListing, model.ContentSteps},
		{"introduction heading", "Introduction", "prose", "", model.ContentIntroduction},
		{"overview heading", "Overview of Roofing", "prose", "", model.ContentIntroduction},
		{"faq heading", "Frequently Asked Questions", "prose", "", model.ContentFAQ},
		{"comparison vs heading", "Metal vs Asphalt", "prose", "", model.ContentComparison},
		{"summary heading", "Conclusion", "prose", "", model.ContentSummary},
		{"what is definition", "What is EPDM?", "prose", "", model.ContentDefinition},
		{"numbered list body", "Repairs", "1. Remove shingles\n2. Patch the deck", "", model.ContentSteps},
		{"ordered html body", "Repairs", "<ol><li>First</li></ol>", "", model.ContentSteps},
		{"markdown table body", "Materials", "| A | B |\n|---|---|\n| 1 | 2 |", "", model.ContentComparison},
		{"bullet list body", "Tools", "- hammer\n- ladder", "", model.ContentList},
		{"default explanation", "Maintenance", "Plain prose about upkeep.", "", model.ContentExplanation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectContentType(tt.heading, tt.content, tt.formatCode))
		})
	}
}

func TestSemanticWeight(t *testing.T) {
	tests := []struct {
		name string
		sig  SectionSignals
		want float64
	}{
		{"base", SectionSignals{}, 3},
		{"common adds nothing", SectionSignals{Category: model.CategoryCommon}, 3},
		{"root", SectionSignals{Category: model.CategoryRoot}, 3.5},
		{"rare", SectionSignals{Category: model.CategoryRare}, 4},
		{"unique", SectionSignals{Category: model.CategoryUnique}, 5},
		{"core topic", SectionSignals{IsCoreTopic: true}, 3.5},
		{
			// 3 + 2 + 0.5 + 0.5 + 0.5 = 6.5 clamps to exactly 5.
			"all bonuses clamp to five",
			SectionSignals{
				Category:                 model.CategoryUnique,
				IsCoreTopic:              true,
				HasFeaturedSnippetTarget: true,
				AnswersMainIntent:        true,
			},
			5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SemanticWeight(tt.sig)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 1.0)
			assert.LessOrEqual(t, got, 5.0)
		})
	}
}
