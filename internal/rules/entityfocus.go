package rules

import (
	"fmt"
	"strings"

	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

// Rule identifiers for the entity-focus family.
const (
	RuleNoEntity     = "ENTITY_FOCUS_NO_ENTITY"
	RuleLowMention   = "ENTITY_FOCUS_LOW_MENTION"
	RuleOverallDrift = "ENTITY_FOCUS_OVERALL"
)

// substantialWordCount is the floor above which a section is expected
// to mention the central entity.
const substantialWordCount = 100

// mentionDensityThreshold is the minimum expected mentions per 100
// words for a substantial section.
const mentionDensityThreshold = 0.5

// FocusResult is the document-level entity focus outcome: a 0-100 score
// (the share of sections relating to the central entity) plus any
// per-section and overall findings.
type FocusResult struct {
	Score    float64           `json:"score"`
	Findings []model.Violation `json:"findings"`
}

// CentralEntityFocusValidator checks that sections relate back to the
// page's declared central entity.
type CentralEntityFocusValidator struct{}

// NewCentralEntityFocusValidator returns a CentralEntityFocusValidator.
func NewCentralEntityFocusValidator() *CentralEntityFocusValidator {
	return &CentralEntityFocusValidator{}
}

// entityTerms derives the lowercase search terms: the entity string
// itself, its components of four or more characters, and any EAV
// subject labels.
func entityTerms(centralEntity string, triples []model.SemanticTriple) []string {
	var terms []string
	seen := map[string]bool{}
	add := func(t string) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}

	add(centralEntity)
	for _, part := range strings.Fields(centralEntity) {
		if len(part) >= 4 {
			add(part)
		}
	}
	for _, tr := range triples {
		add(tr.Subject.Label)
	}
	return terms
}

// countMentions counts occurrences of any entity term in the content.
func countMentions(content string, terms []string) int {
	lower := strings.ToLower(content)
	n := 0
	for _, term := range terms {
		n += strings.Count(lower, term)
	}
	return n
}

// ValidateSection checks a single section against the central entity,
// for use during incremental generation. A nil result means the section
// is fine or too small to judge.
func (v *CentralEntityFocusValidator) ValidateSection(sec model.Section, centralEntity string, triples []model.SemanticTriple) []model.Violation {
	terms := entityTerms(centralEntity, triples)
	if len(terms) == 0 {
		return nil
	}

	wordCount := sec.WordCount()
	if wordCount < substantialWordCount {
		return nil
	}

	mentions := countMentions(sec.Content, terms)
	if mentions == 0 {
		return []model.Violation{{
			RuleID:          RuleNoEntity,
			Severity:        model.ParseSeverity("warning"),
			Title:           "Section never mentions the central entity",
			Description:     fmt.Sprintf("%q has %d words and no reference to %q.", sec.Heading, wordCount, centralEntity),
			AffectedElement: sec.Key,
			Suggestion:      fmt.Sprintf("Relate this section back to %q.", centralEntity),
		}}
	}

	density := float64(mentions) / float64(wordCount) * 100
	if density < mentionDensityThreshold && mentions < 2 {
		return []model.Violation{{
			RuleID:          RuleLowMention,
			Severity:        model.ParseSeverity("warning"),
			Title:           "Central entity barely mentioned",
			Description:     fmt.Sprintf("%q mentions %q %d time(s) in %d words (%.2f per 100 words).", sec.Heading, centralEntity, mentions, wordCount, density),
			AffectedElement: sec.Key,
			Suggestion:      fmt.Sprintf("Increase references to %q in this section.", centralEntity),
		}}
	}
	return nil
}

// ValidateSections scores the whole document: the percentage of
// sections relating to the central entity, with per-section findings
// for substantial drifting sections. Sections below the word-count
// floor count in the section total but never against the score. An
// empty entity or empty section list yields a perfect score with no
// findings, since focus cannot be judged without a subject.
func (v *CentralEntityFocusValidator) ValidateSections(sections []model.Section, centralEntity string, triples []model.SemanticTriple) FocusResult {
	terms := entityTerms(centralEntity, triples)
	if len(terms) == 0 || len(sections) == 0 {
		return FocusResult{Score: 100}
	}

	var findings []model.Violation
	focused := 0
	for _, sec := range sections {
		if sec.WordCount() < substantialWordCount {
			focused++
			continue
		}
		if countMentions(sec.Content, terms) > 0 {
			focused++
		}
		findings = append(findings, v.ValidateSection(sec, centralEntity, triples)...)
	}

	score := float64(focused) / float64(len(sections)) * 100

	if len(sections) >= 3 {
		switch {
		case score < 30:
			findings = append(findings, model.Violation{
				RuleID:      RuleOverallDrift,
				Severity:    model.ParseSeverity("error"),
				Title:       "Document has lost its central entity focus",
				Description: fmt.Sprintf("Only %.0f%% of sections relate to %q.", score, centralEntity),
				Suggestion:  "Rework the drifting sections around the central entity before publishing.",
			})
		case score < 50:
			findings = append(findings, model.Violation{
				RuleID:      RuleOverallDrift,
				Severity:    model.ParseSeverity("warning"),
				Title:       "Weak central entity focus",
				Description: fmt.Sprintf("%.0f%% of sections relate to %q.", score, centralEntity),
				Suggestion:  "Strengthen entity references in the flagged sections.",
			})
		}
	}

	return FocusResult{Score: score, Findings: findings}
}
