// Package extract turns raw document content into the typed structures
// the rule validators consume: sentences, sections, and tables.
package extract

import (
	"regexp"
	"strings"
)

var sentenceEnd = regexp.MustCompile(`[.!?]+\s+`)

// SplitSentences splits text on sentence-final punctuation followed by
// whitespace and drops empty results. Every validator that reasons about
// sentence boundaries goes through this one function so boundaries stay
// consistent across rules.
func SplitSentences(text string) []string {
	parts := sentenceEnd.Split(text, -1)
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var wordPattern = regexp.MustCompile(`[a-zA-Z0-9']+`)

// Words lowercases text and returns its word tokens.
func Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// stopWords are excluded when deriving "significant" word sets for
// similarity and distance measures.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true, "from": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"can": true, "could": true, "this": true, "that": true, "these": true,
	"those": true, "it": true, "its": true, "as": true, "your": true,
	"you": true, "how": true, "what": true, "when": true, "where": true,
	"which": true, "who": true, "why": true, "not": true, "all": true,
	"more": true, "most": true, "other": true, "some": true, "such": true,
	"than": true, "then": true, "into": true, "about": true, "their": true,
}

// IsStopWord reports whether the (lowercase) token is a stop word.
func IsStopWord(w string) bool {
	return stopWords[w]
}

// SignificantWords returns the set of tokens in text that are longer
// than two characters and not stop words.
func SignificantWords(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range Words(text) {
		if len(w) > 2 && !stopWords[w] {
			set[w] = true
		}
	}
	return set
}

// WordSet returns the set of tokens in text longer than minLen characters.
func WordSet(text string, minLen int) map[string]bool {
	set := make(map[string]bool)
	for _, w := range Words(text) {
		if len(w) > minLen {
			set[w] = true
		}
	}
	return set
}

// Jaccard computes |A∩B| / |A∪B|. The similarity of two empty sets is
// defined as 0, not 1, so missing data never reads as identical.
func Jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// OverlapMin computes |A∩B| / min(|A|,|B|), the containment-style
// similarity used by the sentence near-duplicate detector. Empty input
// on either side yields 0.
func OverlapMin(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	return float64(inter) / float64(minLen)
}
