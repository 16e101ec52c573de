package model

import "time"

// AuditPhaseResult is the outcome of one audit dimension for one document.
type AuditPhaseResult struct {
	Phase    string      `json:"phase"`
	Score    float64     `json:"score"`
	Findings []Violation `json:"findings"`
}

// UnifiedAuditReport is the complete audit outcome for one document.
// Each audit run recomputes the report from scratch; reports are never
// incrementally updated.
type UnifiedAuditReport struct {
	ID           string             `json:"id,omitempty"`
	URL          string             `json:"url,omitempty"`
	OverallScore float64            `json:"overall_score"`
	PhaseResults []AuditPhaseResult `json:"phase_results"`
	Checks       []CheckResult      `json:"checks,omitempty"`
	GeneratedAt  time.Time          `json:"generated_at,omitempty"`
}

// FindingCount returns the total number of findings across all phases.
func (r *UnifiedAuditReport) FindingCount() int {
	n := 0
	for i := range r.PhaseResults {
		n += len(r.PhaseResults[i].Findings)
	}
	return n
}

// PhaseAggregate summarizes one phase across every audited page.
type PhaseAggregate struct {
	Phase        string  `json:"phase"`
	MeanScore    float64 `json:"mean_score"`
	MinScore     float64 `json:"min_score"`
	MaxScore     float64 `json:"max_score"`
	FailingPages int     `json:"failing_pages"`
}

// SiteIssue is one rule's prevalence across a site snapshot.
type SiteIssue struct {
	RuleID        string   `json:"rule_id"`
	Title         string   `json:"title"`
	Severity      Severity `json:"severity"`
	AffectedPages []string `json:"affected_pages"`
	Prevalence    float64  `json:"prevalence"`
}

// ConsistencyMetrics holds cross-page uniformity scores (0-100 each).
type ConsistencyMetrics struct {
	SchemaConsistency  float64 `json:"schema_consistency"`
	HeadingConsistency float64 `json:"heading_consistency"`
	Overall            float64 `json:"overall"`
}

// SiteAuditResult aggregates per-page audit reports into one site snapshot.
type SiteAuditResult struct {
	OverallScore     float64            `json:"overall_score"`
	PagesAudited     int                `json:"pages_audited"`
	AveragePageScore float64            `json:"average_page_score"`
	WeakestPage      string             `json:"weakest_page,omitempty"`
	StrongestPage    string             `json:"strongest_page,omitempty"`
	WeakestPhase     string             `json:"weakest_phase,omitempty"`
	PhaseAggregates  []PhaseAggregate   `json:"phase_aggregates,omitempty"`
	Issues           []SiteIssue        `json:"issues,omitempty"`
	Consistency      ConsistencyMetrics `json:"consistency"`
	Suggestions      []string           `json:"suggestions"`
}
