package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

func TestFillerValidateRatioGate(t *testing.T) {
	advisor := NewFillerAdvisor(DefaultCatalog())

	// One "just" in 50 words is exactly 2% and stays under the gate;
	// the same match in 49 words crosses it.
	atGate := "just " + strings.Repeat("roof ", 49)
	overGate := "just " + strings.Repeat("roof ", 48)

	assert.Empty(t, advisor.Validate(atGate))

	issues := advisor.Validate(overGate)
	require.Len(t, issues, 1)
	assert.Equal(t, "rule-101", issues[0].RuleID)
	assert.Equal(t, model.SeverityLow, issues[0].Severity)
	assert.Contains(t, issues[0].Description, "1 occurrences")
}

func TestFillerValidateEmptyText(t *testing.T) {
	advisor := NewFillerAdvisor(DefaultCatalog())
	assert.Empty(t, advisor.Validate(""))
	assert.Empty(t, advisor.Validate("   \n"))
}

func TestFillerSuggestionsUngated(t *testing.T) {
	advisor := NewFillerAdvisor(DefaultCatalog())

	// Two matches in six words is far past 2%, but Suggestions would
	// report them even at a fraction of that ratio.
	suggestions := advisor.Suggestions("In order to win, just try.")
	require.Len(t, suggestions, 2)

	assert.Equal(t, "rule-101", suggestions[0].RuleID)
	assert.Equal(t, "just", suggestions[0].Match)
	assert.Equal(t, "(remove)", suggestions[0].Replacement)
	assert.Equal(t, strings.Index("In order to win, just try.", "just"), suggestions[0].Position)

	assert.Equal(t, "rule-104", suggestions[1].RuleID)
	assert.Equal(t, "In order to", suggestions[1].Match)
	assert.Equal(t, "to", suggestions[1].Replacement)
	assert.Zero(t, suggestions[1].Position)
}

func TestFillerIntensifierUpgrade(t *testing.T) {
	advisor := NewFillerAdvisor(DefaultCatalog())

	tests := []struct {
		name string
		text string
		want string
	}{
		{"known adjective upgrades", "This is very important for roofs.", "crucial"},
		{"unknown adjective drops intensifier", "A very shiny panel.", "shiny"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestions := advisor.Suggestions(tt.text)
			require.NotEmpty(t, suggestions)
			assert.Equal(t, "rule-100", suggestions[0].RuleID)
			assert.Equal(t, tt.want, suggestions[0].Replacement)
		})
	}
}

func TestFillerCatalogPhrases(t *testing.T) {
	advisor := NewFillerAdvisor(DefaultCatalog())

	suggestions := advisor.Suggestions("Due to the fact that shingles crack.")
	require.Len(t, suggestions, 1)
	assert.Equal(t, "rule-105", suggestions[0].RuleID)
	assert.Equal(t, "because", suggestions[0].Replacement)
}
