// Package rules implements the per-rule content validators. Each
// validator is a pure function over extracted structures plus minimal
// context, emitting typed violations; none of them touch I/O.
package rules

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// PhraseRule is one replaceable verbose construction: a phrase to find
// and its canonical replacement.
type PhraseRule struct {
	ID          string `yaml:"id"`
	Phrase      string `yaml:"phrase"`
	Replacement string `yaml:"replacement"`
}

// Catalog is the static rule configuration shared by the lexical
// validators: filler phrase rules, LLM signature phrases, and
// per-language bridge patterns. A catalog is loaded once at startup and
// never mutated afterwards, so it is safe to share across goroutines.
type Catalog struct {
	VerbosePhrases []PhraseRule        `yaml:"verbose_phrases"`
	LLMPhrases     []string            `yaml:"llm_phrases"`
	BridgePatterns map[string][]string `yaml:"bridge_patterns"`
}

// DefaultCatalog returns the built-in rule configuration.
func DefaultCatalog() Catalog {
	return Catalog{
		VerbosePhrases: defaultVerbosePhrases(),
		LLMPhrases:     defaultLLMPhrases(),
		BridgePatterns: defaultBridgePatterns(),
	}
}

// LoadCatalog reads a YAML catalog file and overlays it on the defaults.
// Empty fields in the file keep their built-in values.
func LoadCatalog(path string) (Catalog, error) {
	cat := DefaultCatalog()

	data, err := os.ReadFile(path)
	if err != nil {
		return cat, eris.Wrapf(err, "rules: read catalog %s", path)
	}

	var overlay Catalog
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return cat, eris.Wrapf(err, "rules: parse catalog %s", path)
	}

	if len(overlay.VerbosePhrases) > 0 {
		cat.VerbosePhrases = overlay.VerbosePhrases
	}
	if len(overlay.LLMPhrases) > 0 {
		cat.LLMPhrases = overlay.LLMPhrases
	}
	if len(overlay.BridgePatterns) > 0 {
		cat.BridgePatterns = overlay.BridgePatterns
	}
	return cat, nil
}

// defaultVerbosePhrases returns the fixed multi-word constructions each
// mapped to a single canonical replacement.
func defaultVerbosePhrases() []PhraseRule {
	return []PhraseRule{
		{ID: "rule-104", Phrase: "in order to", Replacement: "to"},
		{ID: "rule-105", Phrase: "due to the fact that", Replacement: "because"},
		{ID: "rule-106", Phrase: "at this point in time", Replacement: "now"},
		{ID: "rule-107", Phrase: "at the present time", Replacement: "currently"},
		{ID: "rule-108", Phrase: "it is important to note that", Replacement: "(remove)"},
		{ID: "rule-109", Phrase: "in the event that", Replacement: "if"},
		{ID: "rule-110", Phrase: "a large number of", Replacement: "many"},
		{ID: "rule-111", Phrase: "has the ability to", Replacement: "can"},
		{ID: "rule-112", Phrase: "in spite of the fact that", Replacement: "although"},
		{ID: "rule-113", Phrase: "for the purpose of", Replacement: "to"},
		{ID: "rule-114", Phrase: "with regard to", Replacement: "about"},
		{ID: "rule-115", Phrase: "in the near future", Replacement: "soon"},
	}
}

// defaultLLMPhrases returns the stock AI-generated transition phrases
// the algorithmic audit scans for.
func defaultLLMPhrases() []string {
	return []string{
		"overall",
		"it's important to note",
		"it is important to note",
		"in conclusion",
		"delves into",
		"delve into",
		"in today's fast-paced world",
		"in the ever-evolving landscape",
		"a testament to",
		"unlock the potential",
		"navigating the complexities",
		"at the end of the day",
	}
}

// defaultBridgePatterns returns the per-language transition/bridge
// regexes tested against the first sentence of supplementary sections.
func defaultBridgePatterns() map[string][]string {
	return map[string][]string{
		"en": {
			`(?i)^(to|for|when|while|after|before|beyond)\b`,
			`(?i)\bbuilding on\b`,
			`(?i)\b(furthermore|additionally|moreover|similarly|likewise)\b`,
			`(?i)\b(ensure|ensures|ensuring|enjoy|benefit|protect|maintain|improve)\b`,
			`(?i)\b(this|these|that|those) (also|further|additionally)\b`,
		},
		"nl": {
			`(?i)^(om|voor|naast|verder|bovendien|daarnaast)\b`,
			`(?i)\bvoortbouwend op\b`,
			`(?i)\b(zorgt|zorgen|garandeert|geniet|profiteer|beschermt)\b`,
			`(?i)\b(daarom|hierdoor|hiermee|vervolgens)\b`,
		},
		"de": {
			`(?i)^(um|für|neben|darüber hinaus|außerdem|zudem)\b`,
			`(?i)\baufbauend auf\b`,
			`(?i)\b(gewährleisten|sichern|genießen|profitieren|schützen)\b`,
		},
		"fr": {
			`(?i)^(pour|afin|en outre|de plus|par ailleurs)\b`,
			`(?i)\bs'appuyant sur\b`,
			`(?i)\b(assurer|garantir|profiter|protéger|bénéficier)\b`,
		},
		"es": {
			`(?i)^(para|además|asimismo|por otra parte)\b`,
			`(?i)\bpartiendo de\b`,
			`(?i)\b(asegurar|garantizar|disfrutar|proteger|beneficiar)\b`,
		},
	}
}
