package model

// Severity is the unified, ordered severity scale for audit findings.
// Individual validators historically used their own label sets
// ({warning,info}, {critical,high,medium,low}, {error,warning}); every
// finding emitted by this module carries a value from this one scale.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// severityRank orders severities for comparison. Unknown labels rank lowest.
var severityRank = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the ordinal position of s on the unified scale (0 for unknown).
func (s Severity) Rank() int {
	return severityRank[s]
}

// AtLeast reports whether s is at least as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// MaxSeverity returns the more severe of a and b.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// nativeSeverity maps validator-local labels onto the unified scale.
// "info" and "medium" are synonyms, as are "warning"/"high" and
// "error"/"critical".
var nativeSeverity = map[string]Severity{
	"low":      SeverityLow,
	"info":     SeverityMedium,
	"medium":   SeverityMedium,
	"warning":  SeverityHigh,
	"high":     SeverityHigh,
	"error":    SeverityCritical,
	"critical": SeverityCritical,
}

// ParseSeverity maps a validator-local severity label onto the unified
// scale. Unrecognized labels map to low rather than erroring, so a
// malformed finding degrades instead of aborting an audit.
func ParseSeverity(label string) Severity {
	if s, ok := nativeSeverity[label]; ok {
		return s
	}
	return SeverityLow
}
