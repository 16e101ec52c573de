package rules

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"

	"github.com/pmcconville-hub/seofactory-audit/internal/extract"
	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

// RuleContextualBridgeMissing flags a supplementary section whose first
// sentence carries no transition language back to the main content.
const RuleContextualBridgeMissing = "CONTEXTUAL_BRIDGE_MISSING"

// bridgeLanguages are the languages with dedicated pattern tables, in
// matcher priority order. English doubles as the fallback.
var bridgeLanguages = []language.Tag{
	language.English,
	language.Dutch,
	language.German,
	language.French,
	language.Spanish,
}

var bridgeTagKey = map[language.Tag]string{
	language.English: "en",
	language.Dutch:   "nl",
	language.German:  "de",
	language.French:  "fr",
	language.Spanish: "es",
}

// languageAliases resolves spelled-out language names the content brief
// may carry instead of BCP 47 tags.
var languageAliases = map[string]string{
	"english": "en",
	"dutch":   "nl",
	"german":  "de",
	"french":  "fr",
	"spanish": "es",
}

// ContextualBridgeValidator checks that supplementary sections open with
// bridge language tying them back to the main topic.
type ContextualBridgeValidator struct {
	patterns map[string][]*regexp.Regexp
	matcher  language.Matcher
}

// NewContextualBridgeValidator compiles the catalog's per-language
// bridge patterns. Invalid patterns are dropped rather than failing
// construction.
func NewContextualBridgeValidator(cat Catalog) *ContextualBridgeValidator {
	compiled := make(map[string][]*regexp.Regexp, len(cat.BridgePatterns))
	for lang, exprs := range cat.BridgePatterns {
		for _, expr := range exprs {
			re, err := regexp.Compile(expr)
			if err != nil {
				continue
			}
			compiled[lang] = append(compiled[lang], re)
		}
	}
	return &ContextualBridgeValidator{
		patterns: compiled,
		matcher:  language.NewMatcher(bridgeLanguages),
	}
}

// patternsFor resolves the pattern set for a language name or tag,
// falling back to English when unrecognized.
func (v *ContextualBridgeValidator) patternsFor(lang string) []*regexp.Regexp {
	key := strings.ToLower(strings.TrimSpace(lang))
	if alias, ok := languageAliases[key]; ok {
		key = alias
	}
	if ps, ok := v.patterns[key]; ok {
		return ps
	}
	if tag, err := language.Parse(key); err == nil {
		matched, _, conf := v.matcher.Match(tag)
		if conf >= language.High {
			if ps, ok := v.patterns[bridgeTagKey[matched]]; ok {
				return ps
			}
		}
	}
	return v.patterns["en"]
}

// Validate tests the first sentence of each SUPPLEMENTARY section
// against the language's bridge patterns. Sections in other zones are
// ignored, as are empty sections.
func (v *ContextualBridgeValidator) Validate(sections []model.Section, lang string) []model.Violation {
	patterns := v.patternsFor(lang)

	var violations []model.Violation
	for _, sec := range sections {
		if sec.ContentZone != model.ZoneSupplementary {
			continue
		}
		sentences := extract.SplitSentences(sec.Content)
		if len(sentences) == 0 {
			continue
		}
		first := sentences[0]

		bridged := false
		for _, re := range patterns {
			if re.MatchString(first) {
				bridged = true
				break
			}
		}
		if bridged {
			continue
		}

		violations = append(violations, model.Violation{
			RuleID:          RuleContextualBridgeMissing,
			Severity:        model.ParseSeverity("warning"),
			Title:           "Supplementary section lacks a contextual bridge",
			Description:     fmt.Sprintf("The opening sentence of %q does not connect back to the main content.", sec.Heading),
			AffectedElement: sec.Key,
			Suggestion:      "Start the section with transition language that links it to the primary topic.",
		})
	}
	return violations
}
