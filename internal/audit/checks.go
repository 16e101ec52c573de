// Package audit runs the per-document check battery and composes rule
// validator output into a unified audit report.
package audit

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pmcconville-hub/seofactory-audit/internal/extract"
	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

// Check names reported by the algorithmic battery.
const (
	CheckLLMPhrases           = "llm_phrase_detection"
	CheckPredicateConsistency = "predicate_consistency"
	CheckCoverageWeight       = "content_coverage_weight"
	CheckVocabularyRichness   = "vocabulary_richness"
)

// ttrThreshold is the type-token ratio below which vocabulary richness
// fails.
const ttrThreshold = 0.30

// dominanceShare is the maximum share of the document a single
// non-core section may occupy.
const dominanceShare = 0.5

// checkLLMPhrases fails when any configured signature phrase appears in
// the content, naming the phrases found.
func checkLLMPhrases(content string, phrases []string) model.CheckResult {
	lower := strings.ToLower(content)
	var found []string
	for _, p := range phrases {
		if strings.Contains(lower, strings.ToLower(p)) {
			found = append(found, p)
		}
	}
	if len(found) == 0 {
		return model.CheckResult{RuleName: CheckLLMPhrases, Passing: true, Details: "no signature phrases found"}
	}
	return model.CheckResult{
		RuleName: CheckLLMPhrases,
		Passing:  false,
		Details:  fmt.Sprintf("signature phrase(s) found: %s", strings.Join(found, "; ")),
	}
}

type headingPolarity int

const (
	polarityNeutral headingPolarity = iota
	polarityNegative
	polarityPositive
)

var (
	negativeHeading = regexp.MustCompile(`(?i)\b(risks?|problems?|concerns?|dangers?|drawbacks?|mistakes?|pitfalls?)\b`)
	positiveHeading = regexp.MustCompile(`(?i)\b(benefits?|advantages?|improvements?|pros|gains?|strengths?)\b`)
	neutralHeading  = regexp.MustCompile(`(?i)\b(how to|steps?|guide|tutorial|checklist)\b`)
)

// classifyHeading determines a heading's polarity. Instructional
// patterns win over sentiment words.
func classifyHeading(heading string) headingPolarity {
	switch {
	case neutralHeading.MatchString(heading):
		return polarityNeutral
	case negativeHeading.MatchString(heading):
		return polarityNegative
	case positiveHeading.MatchString(heading):
		return polarityPositive
	}
	return polarityNeutral
}

// checkPredicateConsistency fails only when the title's polarity
// contradicts the majority polarity of the H2 headings. Instructional
// content passes regardless of mix.
func checkPredicateConsistency(title string, sections []model.Section) model.CheckResult {
	titlePolarity := classifyHeading(title)
	if titlePolarity == polarityNeutral {
		return model.CheckResult{RuleName: CheckPredicateConsistency, Passing: true, Details: "instructional or neutral title"}
	}

	var h2 []model.Section
	for _, s := range sections {
		if s.HeadingLevel == 2 || (s.HeadingLevel == 0 && s.Heading != "") {
			h2 = append(h2, s)
		}
	}
	if len(h2) == 0 {
		return model.CheckResult{RuleName: CheckPredicateConsistency, Passing: true, Details: "no section headings to compare"}
	}

	positive, negative := 0, 0
	for _, s := range h2 {
		switch classifyHeading(s.Heading) {
		case polarityPositive:
			positive++
		case polarityNegative:
			negative++
		}
	}

	majority := len(h2)/2 + 1
	if titlePolarity == polarityNegative && positive >= majority {
		return model.CheckResult{
			RuleName: CheckPredicateConsistency,
			Passing:  false,
			Details:  fmt.Sprintf("negative title but %d of %d headings are positive", positive, len(h2)),
		}
	}
	if titlePolarity == polarityPositive && negative >= majority {
		return model.CheckResult{
			RuleName: CheckPredicateConsistency,
			Passing:  false,
			Details:  fmt.Sprintf("positive title but %d of %d headings are negative", negative, len(h2)),
		}
	}
	return model.CheckResult{RuleName: CheckPredicateConsistency, Passing: true, Details: "title and heading polarity agree"}
}

// checkCoverageWeight fails when any single non-core section exceeds
// half the document's word count.
func checkCoverageWeight(sections []model.Section) model.CheckResult {
	total := 0
	for i := range sections {
		total += sections[i].WordCount()
	}
	if total == 0 {
		return model.CheckResult{RuleName: CheckCoverageWeight, Passing: true, Details: "empty document"}
	}

	for i := range sections {
		sec := &sections[i]
		if isCoreSection(sec) {
			continue
		}
		share := float64(sec.WordCount()) / float64(total)
		if share > dominanceShare {
			return model.CheckResult{
				RuleName: CheckCoverageWeight,
				Passing:  false,
				Details:  fmt.Sprintf("non-core section %q holds %.0f%% of the document", sec.Heading, share*100),
			}
		}
	}
	return model.CheckResult{RuleName: CheckCoverageWeight, Passing: true, Details: "no single minor section dominates"}
}

// isCoreSection reports whether a section belongs to the document's
// main line of argument.
func isCoreSection(s *model.Section) bool {
	if s.ContentZone == model.ZoneMain {
		return true
	}
	switch s.AttributeCategory {
	case model.CategoryRoot, model.CategoryUnique:
		return true
	}
	return false
}

// checkVocabularyRichness computes the type-token ratio and fails below
// the fixed threshold.
func checkVocabularyRichness(content string) model.CheckResult {
	words := extract.Words(content)
	if len(words) == 0 {
		return model.CheckResult{RuleName: CheckVocabularyRichness, Passing: true, Details: "empty document"}
	}
	unique := map[string]bool{}
	for _, w := range words {
		unique[w] = true
	}
	ttr := float64(len(unique)) / float64(len(words))
	return model.CheckResult{
		RuleName: CheckVocabularyRichness,
		Passing:  ttr >= ttrThreshold,
		Details:  fmt.Sprintf("TTR %.3f (threshold %.2f)", ttr, ttrThreshold),
	}
}

// sortChecks orders results by rule name for deterministic reports.
func sortChecks(checks []model.CheckResult) {
	sort.Slice(checks, func(i, j int) bool { return checks[i].RuleName < checks[j].RuleName })
}
