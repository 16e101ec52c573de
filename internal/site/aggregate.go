// Package site reduces many per-page audit reports into one site-level
// snapshot: phase aggregation, issue prevalence, consistency metrics and
// an overall site score.
package site

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pmcconville-hub/seofactory-audit/internal/extract"
	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

// failingPhaseScore is the per-page phase score below which a page
// counts as failing that phase.
const failingPhaseScore = 50

// Site score weighting.
const (
	weightAveragePage  = 0.6
	weightConsistency  = 0.2
	weightPhaseBalance = 0.2
)

// Aggregator folds per-page audit reports into a SiteAuditResult. It is
// a pure single-pass reduction over already-materialized reports.
type Aggregator struct {
	pageWeight        float64
	consistencyWeight float64
	balanceWeight     float64
}

// NewAggregator returns an Aggregator with the default score weighting.
func NewAggregator() *Aggregator {
	return &Aggregator{
		pageWeight:        weightAveragePage,
		consistencyWeight: weightConsistency,
		balanceWeight:     weightPhaseBalance,
	}
}

// NewAggregatorWithWeights returns an Aggregator with custom site score
// weights. Callers are expected to pass weights summing to 1.
func NewAggregatorWithWeights(page, consistency, balance float64) *Aggregator {
	return &Aggregator{
		pageWeight:        page,
		consistencyWeight: consistency,
		balanceWeight:     balance,
	}
}

// Aggregate reduces the given reports, keyed by page URL, into one site
// snapshot. Empty input yields an all-zero result with an actionable
// suggestion, never an error.
func (a *Aggregator) Aggregate(reports map[string]*model.UnifiedAuditReport) *model.SiteAuditResult {
	if len(reports) == 0 {
		return &model.SiteAuditResult{
			Suggestions: []string{"No audited pages yet: run a content audit on at least one page to build a site snapshot."},
		}
	}

	urls := make([]string, 0, len(reports))
	for u := range reports {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	result := &model.SiteAuditResult{PagesAudited: len(urls)}

	// Page-level mean and extremes.
	var sum float64
	weakest, strongest := urls[0], urls[0]
	for _, u := range urls {
		score := reports[u].OverallScore
		sum += score
		if score < reports[weakest].OverallScore {
			weakest = u
		}
		if score > reports[strongest].OverallScore {
			strongest = u
		}
	}
	result.AveragePageScore = round2(sum / float64(len(urls)))
	result.WeakestPage = weakest
	result.StrongestPage = strongest

	result.PhaseAggregates, result.WeakestPhase = aggregatePhases(urls, reports)
	result.Issues = aggregateIssues(urls, reports)
	result.Consistency = consistencyMetrics(urls, reports)

	phaseBalance := phaseBalanceScore(result.PhaseAggregates)
	result.OverallScore = round2(a.pageWeight*result.AveragePageScore +
		a.consistencyWeight*result.Consistency.Overall +
		a.balanceWeight*phaseBalance)

	result.Suggestions = buildSuggestions(result)

	zap.L().Info("site: aggregation complete",
		zap.Int("pages", result.PagesAudited),
		zap.Float64("overall_score", result.OverallScore),
		zap.String("weakest_page", result.WeakestPage),
	)
	return result
}

// aggregatePhases groups phase results site-wide by phase name.
func aggregatePhases(urls []string, reports map[string]*model.UnifiedAuditReport) ([]model.PhaseAggregate, string) {
	type acc struct {
		sum, min, max float64
		count         int
		failing       int
	}
	accs := map[string]*acc{}
	var order []string

	for _, u := range urls {
		for _, p := range reports[u].PhaseResults {
			a, ok := accs[p.Phase]
			if !ok {
				a = &acc{min: p.Score, max: p.Score}
				accs[p.Phase] = a
				order = append(order, p.Phase)
			}
			a.sum += p.Score
			a.count++
			if p.Score < a.min {
				a.min = p.Score
			}
			if p.Score > a.max {
				a.max = p.Score
			}
			if p.Score < failingPhaseScore {
				a.failing++
			}
		}
	}

	var aggregates []model.PhaseAggregate
	weakest := ""
	weakestMean := math.MaxFloat64
	for _, phase := range order {
		a := accs[phase]
		mean := a.sum / float64(a.count)
		aggregates = append(aggregates, model.PhaseAggregate{
			Phase:        phase,
			MeanScore:    round2(mean),
			MinScore:     a.min,
			MaxScore:     a.max,
			FailingPages: a.failing,
		})
		if mean < weakestMean {
			weakestMean = mean
			weakest = phase
		}
	}
	return aggregates, weakest
}

// aggregateIssues groups findings by rule ID (falling back to title)
// across all pages, escalating each group to the highest severity seen
// and ranking by affected-page count descending.
func aggregateIssues(urls []string, reports map[string]*model.UnifiedAuditReport) []model.SiteIssue {
	type acc struct {
		issue model.SiteIssue
		pages map[string]bool
	}
	accs := map[string]*acc{}
	var order []string

	for _, u := range urls {
		for _, p := range reports[u].PhaseResults {
			for _, f := range p.Findings {
				key := f.RuleID
				if key == "" {
					key = f.Title
				}
				a, ok := accs[key]
				if !ok {
					a = &acc{
						issue: model.SiteIssue{RuleID: f.RuleID, Title: f.Title, Severity: f.Severity},
						pages: map[string]bool{},
					}
					accs[key] = a
					order = append(order, key)
				}
				a.pages[u] = true
				a.issue.Severity = model.MaxSeverity(a.issue.Severity, f.Severity)
			}
		}
	}

	total := float64(len(urls))
	issues := make([]model.SiteIssue, 0, len(order))
	for _, key := range order {
		a := accs[key]
		for _, u := range urls {
			if a.pages[u] {
				a.issue.AffectedPages = append(a.issue.AffectedPages, u)
			}
		}
		a.issue.Prevalence = round2(float64(len(a.issue.AffectedPages)) / total * 100)
		issues = append(issues, a.issue)
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return len(issues[i].AffectedPages) > len(issues[j].AffectedPages)
	})
	return issues
}

// consistencyMetrics computes cross-page uniformity: schema consistency
// from pairwise Jaccard similarity of structural finding rule-ID sets,
// heading consistency from the coefficient of variation of per-page
// phase scores.
func consistencyMetrics(urls []string, reports map[string]*model.UnifiedAuditReport) model.ConsistencyMetrics {
	var m model.ConsistencyMetrics

	// Schema rule-ID sets per page.
	sets := make([]map[string]bool, len(urls))
	for i, u := range urls {
		set := map[string]bool{}
		for _, p := range reports[u].PhaseResults {
			for _, f := range p.Findings {
				if isSchemaRule(f.RuleID) {
					set[f.RuleID] = true
				}
			}
		}
		sets[i] = set
	}

	if len(urls) < 2 {
		m.SchemaConsistency = 100
	} else {
		var simSum float64
		pairs := 0
		for i := 0; i < len(sets); i++ {
			for j := i + 1; j < len(sets); j++ {
				simSum += extract.Jaccard(sets[i], sets[j])
				pairs++
			}
		}
		m.SchemaConsistency = round2(simSum / float64(pairs) * 100)
	}

	var scores []float64
	for _, u := range urls {
		for _, p := range reports[u].PhaseResults {
			scores = append(scores, p.Score)
		}
	}
	m.HeadingConsistency = round2(variationScore(scores))
	m.Overall = round2((m.SchemaConsistency + m.HeadingConsistency) / 2)
	return m
}

// isSchemaRule selects the findings that describe structural markup:
// the table-structure rule families plus anything explicitly
// schema-tagged.
func isSchemaRule(ruleID string) bool {
	lower := strings.ToLower(ruleID)
	return strings.Contains(lower, "schema") || strings.HasPrefix(ruleID, "L2_") ||
		strings.HasPrefix(ruleID, "L3_") || strings.HasPrefix(ruleID, "L4_") ||
		strings.HasPrefix(ruleID, "L5_")
}

// variationScore converts score dispersion into a 0-100 consistency
// value: (1 - stddev/mean) clamped at zero, times 100. Degenerate input
// (fewer than two points, or zero mean) is trivially consistent.
func variationScore(scores []float64) float64 {
	if len(scores) < 2 {
		return 100
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))
	if mean == 0 {
		return 100
	}
	var variance float64
	for _, s := range scores {
		variance += (s - mean) * (s - mean)
	}
	stddev := math.Sqrt(variance / float64(len(scores)))
	return math.Max(0, 1-stddev/mean) * 100
}

// phaseBalanceScore applies the variation measure across phase means.
func phaseBalanceScore(aggregates []model.PhaseAggregate) float64 {
	means := make([]float64, 0, len(aggregates))
	for _, a := range aggregates {
		means = append(means, a.MeanScore)
	}
	return variationScore(means)
}

// buildSuggestions derives actionable next steps from the snapshot.
func buildSuggestions(r *model.SiteAuditResult) []string {
	var out []string
	if r.WeakestPhase != "" {
		out = append(out, fmt.Sprintf("Focus remediation on the %s phase; it has the lowest mean score across the site.", r.WeakestPhase))
	}
	if r.WeakestPage != "" && r.WeakestPage != r.StrongestPage {
		out = append(out, fmt.Sprintf("Start with %s, the weakest page in this snapshot.", r.WeakestPage))
	}
	for _, issue := range r.Issues {
		if issue.Prevalence >= 50 {
			out = append(out, fmt.Sprintf("%q affects %.0f%% of pages; fix it with a shared template change.", issue.Title, issue.Prevalence))
			break
		}
	}
	if len(out) == 0 {
		out = append(out, "No systemic issues detected; re-audit after the next content update.")
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
