package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pmcconville-hub/seofactory-audit/internal/extract"
	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

// Rule identifiers for the repetition family.
const (
	RuleCrossSectionOpenings = "CROSS_SECTION_REPETITION"
	RuleNgramRepetition      = "H9_CROSS_SECTION_REPETITION"
	RuleNearDuplicate        = "SENTENCE_NEAR_DUPLICATE"
)

// openingSimilarityThreshold groups section openings whose significant
// word sets overlap at least this much with an already-seen pattern key.
const openingSimilarityThreshold = 0.6

// nearDuplicateThreshold flags sentence pairs above this overlap/min
// similarity.
const nearDuplicateThreshold = 0.7

// templatedOpenings are fixed patterns for structurally templated
// section openings, a known failure mode of generated content. English
// and Dutch variants are covered.
var templatedOpenings = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(the|a|an) (checking|inspection|review|maintenance|cleaning|installation|replacement|repair) (of|for|on)\b`),
	regexp.MustCompile(`(?i)^(de|het|een) (controle|inspectie|reiniging|installatie|vervanging|reparatie) (van|voor|op)\b`),
	regexp.MustCompile(`(?i)^(it is|it's) (important|essential|crucial) to\b`),
	regexp.MustCompile(`(?i)^het is (belangrijk|essentieel|cruciaal) om\b`),
}

// transitionalWhitelist lists common transitional n-grams that are never
// flagged as cross-section repetition, however often they recur.
var transitionalWhitelist = map[string]bool{
	"in addition":           true,
	"furthermore":           true,
	"on the other hand":     true,
	"as a result":           true,
	"for example":           true,
	"in other words":        true,
	"at the same time":      true,
	"in this case":          true,
	"keep in mind":          true,
	"as mentioned above":    true,
	"first of all":          true,
	"more often than not":   true,
	"when it comes to":      true,
	"as well as":            true,
	"one of the most":       true,
	"it is worth":           true,
	"there are several":     true,
	"this means that":       true,
	"make sure that":        true,
	"in many cases":         true,
	"a wide range of":       true,
	"on top of that":        true,
	"last but not least":    true,
	"with that in mind":     true,
	"at the end of the day": true,
}

var leadingMarkup = regexp.MustCompile(`^(?:#{1,6}\s+|<[^>]+>\s*)+`)

// RepetitionValidator detects structural and lexical repetition across
// and within a document.
type RepetitionValidator struct{}

// NewRepetitionValidator returns a RepetitionValidator.
func NewRepetitionValidator() *RepetitionValidator {
	return &RepetitionValidator{}
}

// ValidateCrossSectionOpenings groups sections by structurally similar
// opening sentences and flags any group of three or more. Sections keyed
// intro or conclusion are exempt.
func (v *RepetitionValidator) ValidateCrossSectionOpenings(sections []model.Section) []model.Violation {
	type group struct {
		key     string
		wordSet map[string]bool
		members []string
	}
	var groups []*group
	byKey := map[string]*group{}

	for _, sec := range sections {
		if sec.Key == "intro" || sec.Key == "conclusion" {
			continue
		}
		sentences := extract.SplitSentences(sec.Content)
		if len(sentences) == 0 {
			continue
		}
		opening := strings.ToLower(strings.TrimSpace(leadingMarkup.ReplaceAllString(sentences[0], "")))
		if opening == "" {
			continue
		}

		// Templated openings group per matching pattern.
		groupKey := ""
		for i, re := range templatedOpenings {
			if re.MatchString(opening) {
				groupKey = fmt.Sprintf("template-%d", i)
				break
			}
		}
		if groupKey == "" {
			words := extract.Words(opening)
			if len(words) > 8 {
				words = words[:8]
			}
			groupKey = strings.Join(words, " ")
		}

		if g, ok := byKey[groupKey]; ok {
			g.members = append(g.members, sec.Key)
			continue
		}

		// Near-match against already-seen pattern keys.
		wset := extract.WordSet(groupKey, 3)
		var joined *group
		for _, g := range groups {
			if extract.OverlapMin(wset, g.wordSet) >= openingSimilarityThreshold {
				joined = g
				break
			}
		}
		if joined != nil {
			joined.members = append(joined.members, sec.Key)
			byKey[groupKey] = joined
			continue
		}

		g := &group{key: groupKey, wordSet: wset, members: []string{sec.Key}}
		groups = append(groups, g)
		byKey[groupKey] = g
	}

	var violations []model.Violation
	for _, g := range groups {
		if len(g.members) < 3 {
			continue
		}
		violations = append(violations, model.Violation{
			RuleID:          RuleCrossSectionOpenings,
			Severity:        model.ParseSeverity("warning"),
			Title:           "Repetitive section openings",
			Description:     fmt.Sprintf("%d sections open with structurally similar sentences: %s", len(g.members), strings.Join(g.members, ", ")),
			AffectedElement: strings.Join(g.members, ", "),
			Suggestion:      "Vary the opening sentence structure of these sections.",
		})
	}
	return violations
}

// Validate flags sentences that near-duplicate an earlier sentence in
// the document. Similarity is word-set overlap over min set size, using
// tokens longer than three characters. Quadratic over the sentence
// count, which stays small per document.
func (v *RepetitionValidator) Validate(content string) []model.Violation {
	sentences := extract.SplitSentences(content)
	sets := make([]map[string]bool, len(sentences))
	for i, s := range sentences {
		sets[i] = extract.WordSet(s, 3)
	}

	var violations []model.Violation
	flagged := make(map[int]bool)
	for i := 0; i < len(sentences); i++ {
		for j := i + 1; j < len(sentences); j++ {
			if flagged[j] {
				continue
			}
			if extract.OverlapMin(sets[i], sets[j]) > nearDuplicateThreshold {
				flagged[j] = true
				violations = append(violations, model.Violation{
					RuleID:          RuleNearDuplicate,
					Severity:        model.ParseSeverity("warning"),
					Title:           "Near-duplicate sentence",
					Description:     fmt.Sprintf("Sentence %d closely repeats sentence %d: %q", j+1, i+1, truncate(sentences[j], 80)),
					AffectedElement: fmt.Sprintf("sentence %d", j+1),
					Suggestion:      "Remove or rephrase the repeated sentence.",
				})
			}
		}
	}
	return violations
}

// ValidateNgrams flags significant 3-5 word n-grams occurring in two or
// more distinct sections, excluding whitelisted transitional phrases and
// n-grams composed entirely of stop words.
func (v *RepetitionValidator) ValidateNgrams(sections []model.Section) []model.Violation {
	occurrences := map[string]map[string]bool{} // ngram -> section keys

	for _, sec := range sections {
		words := extract.Words(sec.Content)
		seen := map[string]bool{}
		for n := 3; n <= 5; n++ {
			for i := 0; i+n <= len(words); i++ {
				gram := strings.Join(words[i:i+n], " ")
				if seen[gram] {
					continue
				}
				seen[gram] = true
				if transitionalWhitelist[gram] || allStopWords(words[i:i+n]) {
					continue
				}
				if occurrences[gram] == nil {
					occurrences[gram] = map[string]bool{}
				}
				occurrences[gram][sec.Key] = true
			}
		}
	}

	var repeated []string
	for gram, secs := range occurrences {
		if len(secs) >= 2 {
			repeated = append(repeated, gram)
		}
	}
	// Longest first, so shorter n-grams subsumed by an already-reported
	// longer one are dropped.
	sort.Slice(repeated, func(i, j int) bool {
		if len(repeated[i]) != len(repeated[j]) {
			return len(repeated[i]) > len(repeated[j])
		}
		return repeated[i] < repeated[j]
	})

	var violations []model.Violation
	var reported []string
	for _, gram := range repeated {
		subsumed := false
		for _, longer := range reported {
			if strings.Contains(longer, gram) {
				subsumed = true
				break
			}
		}
		if subsumed {
			continue
		}
		reported = append(reported, gram)

		var keys []string
		for k := range occurrences[gram] {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		violations = append(violations, model.Violation{
			RuleID:          RuleNgramRepetition,
			Severity:        model.ParseSeverity("warning"),
			Title:           "Phrase repeated across sections",
			Description:     fmt.Sprintf("%q appears in %d sections: %s", gram, len(keys), strings.Join(keys, ", ")),
			AffectedElement: strings.Join(keys, ", "),
			Suggestion:      fmt.Sprintf("Rephrase %q in all but one section.", gram),
		})
	}
	return violations
}

func allStopWords(words []string) bool {
	for _, w := range words {
		if !extract.IsStopWord(w) {
			return false
		}
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
