package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pmcconville-hub/seofactory-audit/internal/extract"
	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

// FillerRatioThreshold is the document-wide gate for filler violations:
// a category is only reported when its matches exceed this share of the
// total word count. Suggestions are never gated.
const FillerRatioThreshold = 0.02

// fillerRule is one compiled filler category.
type fillerRule struct {
	id      string
	title   string
	pattern *regexp.Regexp
	// replace renders the suggested replacement for one match.
	replace func(match []string) string
}

// strongerAdjectives maps weak adjectives to the stronger form suggested
// when an intensifier precedes them.
var strongerAdjectives = map[string]string{
	"important":   "crucial",
	"good":        "excellent",
	"bad":         "terrible",
	"big":         "enormous",
	"small":       "tiny",
	"interesting": "fascinating",
	"difficult":   "arduous",
	"easy":        "effortless",
	"happy":       "delighted",
	"tired":       "exhausted",
	"fast":        "rapid",
	"slow":        "sluggish",
}

// FillerAdvisor detects filler language and verbose constructions.
// Validate applies the document-wide ratio gate; Suggestions reports
// every literal match.
type FillerAdvisor struct {
	rules []fillerRule
}

// NewFillerAdvisor builds an advisor from the catalog's verbose phrase
// rules plus the built-in intensifier/minimizer/hedge families.
func NewFillerAdvisor(cat Catalog) *FillerAdvisor {
	rules := []fillerRule{
		{
			id:      "rule-100",
			title:   "Intensifier weakens the adjective",
			pattern: regexp.MustCompile(`(?i)\b(very|really)\s+([a-z]+)\b`),
			replace: func(m []string) string {
				if strong, ok := strongerAdjectives[strings.ToLower(m[2])]; ok {
					return strong
				}
				return m[2]
			},
		},
		{
			id:      "rule-101",
			title:   "Minimizer adds no meaning",
			pattern: regexp.MustCompile(`(?i)\b(just|simply)\b`),
			replace: func([]string) string { return "(remove)" },
		},
		{
			id:      "rule-102",
			title:   "Hedge word dilutes the claim",
			pattern: regexp.MustCompile(`(?i)\b(basically|essentially)\b`),
			replace: func([]string) string { return "(remove)" },
		},
		{
			id:      "rule-103",
			title:   "Emphasis filler",
			pattern: regexp.MustCompile(`(?i)\b(actually|literally)\b`),
			replace: func([]string) string { return "(remove)" },
		},
	}

	for _, pr := range cat.VerbosePhrases {
		replacement := pr.Replacement
		rules = append(rules, fillerRule{
			id:      pr.ID,
			title:   fmt.Sprintf("Verbose construction %q", pr.Phrase),
			pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(pr.Phrase) + `\b`),
			replace: func([]string) string { return replacement },
		})
	}

	return &FillerAdvisor{rules: rules}
}

// Validate returns one low-severity issue per filler category whose
// match count exceeds FillerRatioThreshold of the document word count.
// Empty or whitespace-only text yields nothing.
func (f *FillerAdvisor) Validate(text string) []model.Violation {
	totalWords := len(extract.Words(text))
	if totalWords == 0 {
		return nil
	}

	var issues []model.Violation
	for _, rule := range f.rules {
		matches := rule.pattern.FindAllString(text, -1)
		if len(matches) == 0 {
			continue
		}
		ratio := float64(len(matches)) / float64(totalWords)
		if ratio <= FillerRatioThreshold {
			continue
		}
		issues = append(issues, model.Violation{
			RuleID:      rule.id,
			Severity:    model.SeverityLow,
			Title:       rule.title,
			Description: fmt.Sprintf("%d occurrences (%.1f%% of %d words)", len(matches), ratio*100, totalWords),
			Suggestion:  "Rework the flagged phrasing; see suggestions for per-match replacements.",
		})
	}
	return issues
}

// Suggestions returns a replacement suggestion for every rule match,
// regardless of the ratio gate.
func (f *FillerAdvisor) Suggestions(text string) []model.Suggestion {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []model.Suggestion
	for _, rule := range f.rules {
		locs := rule.pattern.FindAllStringSubmatchIndex(text, -1)
		for _, loc := range locs {
			groups := make([]string, 0, len(loc)/2)
			for g := 0; g < len(loc); g += 2 {
				if loc[g] < 0 {
					groups = append(groups, "")
					continue
				}
				groups = append(groups, text[loc[g]:loc[g+1]])
			}
			out = append(out, model.Suggestion{
				RuleID:      rule.id,
				Match:       groups[0],
				Replacement: rule.replace(groups),
				Position:    loc[0],
			})
		}
	}
	return out
}
