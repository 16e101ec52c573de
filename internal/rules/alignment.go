package rules

import (
	"fmt"
	"strings"

	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

// Rule identifiers for the source-context alignment family.
const (
	RuleAlignCentralEntity = "rule-6-ce"
	RuleAlignBusiness      = "rule-6-business"
	RuleAlignKeywords      = "rule-6-keywords"
	RuleAlignAttributes    = "rule-6-attributes"
)

// Coverage thresholds below which the keyword/attribute checks fire.
const (
	keywordCoverageThreshold   = 0.5
	attributeCoverageThreshold = 0.3
)

// SourceContextAligner verifies generated content against the business
// context it was produced from. Each check is skipped outright, not
// merely passed, when its input is empty: absence of a requirement is
// not a violation.
type SourceContextAligner struct{}

// NewSourceContextAligner returns a SourceContextAligner.
func NewSourceContextAligner() *SourceContextAligner {
	return &SourceContextAligner{}
}

// Validate runs the four alignment checks against lowercase content.
func (a *SourceContextAligner) Validate(content, centralEntity string, info model.BusinessInfo) []model.Violation {
	lower := strings.ToLower(content)
	var violations []model.Violation

	if ce := strings.TrimSpace(centralEntity); ce != "" {
		if !strings.Contains(lower, strings.ToLower(ce)) {
			violations = append(violations, model.Violation{
				RuleID:      RuleAlignCentralEntity,
				Severity:    model.SeverityCritical,
				Title:       "Central entity missing from content",
				Description: fmt.Sprintf("%q never appears in the content.", ce),
				Suggestion:  fmt.Sprintf("Mention %q explicitly; it is the page's subject.", ce),
			})
		}
	}

	if info.Industry != "" || len(info.CoreServices) > 0 {
		found := info.Industry != "" && strings.Contains(lower, strings.ToLower(info.Industry))
		if !found {
			for _, svc := range info.CoreServices {
				if svc != "" && strings.Contains(lower, strings.ToLower(svc)) {
					found = true
					break
				}
			}
		}
		if !found {
			violations = append(violations, model.Violation{
				RuleID:      RuleAlignBusiness,
				Severity:    model.SeverityHigh,
				Title:       "Content lacks business context",
				Description: "Neither the industry nor any core service appears in the content.",
				Suggestion:  "Reference the business's industry or one of its core services.",
			})
		}
	}

	if v := coverageCheck(lower, info.TargetKeywords, keywordCoverageThreshold,
		RuleAlignKeywords, model.SeverityMedium, "target keyword"); v != nil {
		violations = append(violations, *v)
	}
	if v := coverageCheck(lower, info.RequiredAttributes, attributeCoverageThreshold,
		RuleAlignAttributes, model.SeverityHigh, "required attribute"); v != nil {
		violations = append(violations, *v)
	}

	return violations
}

// coverageCheck computes matched/total coverage of terms in content and
// returns a violation listing the missing terms when coverage falls
// below the threshold. Empty term lists skip the check entirely.
func coverageCheck(lowerContent string, terms []string, threshold float64, ruleID string, severity model.Severity, noun string) *model.Violation {
	if len(terms) == 0 {
		return nil
	}

	var missing []string
	matched := 0
	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(lowerContent, strings.ToLower(term)) {
			matched++
		} else {
			missing = append(missing, term)
		}
	}

	coverage := float64(matched) / float64(len(terms))
	if coverage >= threshold {
		return nil
	}
	return &model.Violation{
		RuleID:      ruleID,
		Severity:    severity,
		Title:       fmt.Sprintf("Low %s coverage", noun),
		Description: fmt.Sprintf("Only %d of %d %ss are covered (%.0f%%). Missing: %s", matched, len(terms), noun, coverage*100, strings.Join(missing, ", ")),
		Suggestion:  fmt.Sprintf("Work the missing %ss into the content where natural.", noun),
	}
}
