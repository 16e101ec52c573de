package model

// Violation is the atomic unit of audit output. Violations are created
// fresh on every validation run and never mutated; persistence is the
// caller's concern.
type Violation struct {
	RuleID          string   `json:"rule_id"`
	Severity        Severity `json:"severity"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	AffectedElement string   `json:"affected_element,omitempty"`
	Suggestion      string   `json:"suggestion,omitempty"`
}

// Suggestion is an informational rewrite hint. Unlike violations,
// suggestions are emitted for every rule match regardless of any
// document-wide threshold gate.
type Suggestion struct {
	RuleID      string `json:"rule_id"`
	Match       string `json:"match"`
	Replacement string `json:"replacement"`
	Position    int    `json:"position"`
}

// CheckResult is a named pass/fail outcome from the algorithmic audit
// battery, with a diagnostic detail string.
type CheckResult struct {
	RuleName string `json:"rule_name"`
	Passing  bool   `json:"is_passing"`
	Details  string `json:"details"`
}
