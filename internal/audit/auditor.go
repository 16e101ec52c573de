package audit

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pmcconville-hub/seofactory-audit/internal/extract"
	"github.com/pmcconville-hub/seofactory-audit/internal/model"
	"github.com/pmcconville-hub/seofactory-audit/internal/rules"
)

// Phase names in a unified report.
const (
	PhaseLexical     = "lexical_quality"
	PhaseStructure   = "table_structure"
	PhaseRepetition  = "repetition"
	PhaseEntityFocus = "entity_focus"
	PhaseAlignment   = "source_alignment"
	PhaseBridge      = "contextual_bridge"
	PhaseAlgorithmic = "algorithmic"
)

// severityPenalty converts a finding's severity into a phase score
// deduction.
var severityPenalty = map[model.Severity]float64{
	model.SeverityLow:      5,
	model.SeverityMedium:   10,
	model.SeverityHigh:     15,
	model.SeverityCritical: 25,
}

// Auditor runs the full validator battery over one document. An Auditor
// is stateless apart from its immutable rule configuration, so one
// instance may audit many documents concurrently.
type Auditor struct {
	catalog    rules.Catalog
	filler     *rules.FillerAdvisor
	bridge     *rules.ContextualBridgeValidator
	repetition *rules.RepetitionValidator
	focus      *rules.CentralEntityFocusValidator
	tables     *rules.TableStructureValidator
	aligner    *rules.SourceContextAligner
	distance   *rules.SemanticDistanceAuditor
}

// New builds an Auditor from a rule catalog.
func New(cat rules.Catalog) *Auditor {
	return &Auditor{
		catalog:    cat,
		filler:     rules.NewFillerAdvisor(cat),
		bridge:     rules.NewContextualBridgeValidator(cat),
		repetition: rules.NewRepetitionValidator(),
		focus:      rules.NewCentralEntityFocusValidator(),
		tables:     rules.NewTableStructureValidator(),
		aligner:    rules.NewSourceContextAligner(),
		distance:   rules.NewSemanticDistanceAuditor(),
	}
}

// RunChecks executes the algorithmic battery. The checks share only
// read-only inputs, so they run concurrently and join before returning.
// Results are ordered by rule name.
func (a *Auditor) RunChecks(ctx context.Context, doc model.Document) ([]model.CheckResult, error) {
	sections := a.sectionsOf(doc)
	title := ""
	if len(sections) > 0 && sections[0].Heading != "" {
		title = sections[0].Heading
	}

	var mu sync.Mutex
	var results []model.CheckResult
	collect := func(r model.CheckResult) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { collect(checkLLMPhrases(doc.Content, a.catalog.LLMPhrases)); return nil })
	g.Go(func() error { collect(checkPredicateConsistency(title, sections)); return nil })
	g.Go(func() error { collect(checkCoverageWeight(sections)); return nil })
	g.Go(func() error { collect(checkVocabularyRichness(doc.Content)); return nil })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortChecks(results)
	return results, nil
}

// Audit recomputes the full unified report for one document. Malformed
// or partial input degrades to neutral scores, never an error.
func (a *Auditor) Audit(ctx context.Context, doc model.Document) (*model.UnifiedAuditReport, error) {
	sections := a.sectionsOf(doc)

	var phases []model.AuditPhaseResult

	phases = append(phases, penaltyPhase(PhaseLexical, a.filler.Validate(doc.Content)))

	var tableFindings []model.Violation
	for _, t := range extract.Tables(doc.Content) {
		tableFindings = append(tableFindings, a.tables.Validate(t)...)
	}
	phases = append(phases, penaltyPhase(PhaseStructure, tableFindings))

	var repFindings []model.Violation
	repFindings = append(repFindings, a.repetition.ValidateCrossSectionOpenings(sections)...)
	repFindings = append(repFindings, a.repetition.ValidateNgrams(sections)...)
	repFindings = append(repFindings, a.repetition.Validate(doc.Content)...)
	phases = append(phases, penaltyPhase(PhaseRepetition, repFindings))

	focus := a.focus.ValidateSections(sections, doc.CentralEntity, doc.Triples)
	phases = append(phases, model.AuditPhaseResult{
		Phase:    PhaseEntityFocus,
		Score:    focus.Score,
		Findings: focus.Findings,
	})

	phases = append(phases, penaltyPhase(PhaseAlignment, a.aligner.Validate(doc.Content, doc.CentralEntity, doc.Business)))
	phases = append(phases, penaltyPhase(PhaseBridge, a.bridge.Validate(sections, doc.Language)))

	checks, err := a.RunChecks(ctx, doc)
	if err != nil {
		return nil, err
	}
	passing := 0
	for _, c := range checks {
		if c.Passing {
			passing++
		}
	}
	algScore := 100.0
	if len(checks) > 0 {
		algScore = float64(passing) / float64(len(checks)) * 100
	}
	phases = append(phases, model.AuditPhaseResult{Phase: PhaseAlgorithmic, Score: round2(algScore)})

	var overall float64
	for _, p := range phases {
		overall += p.Score
	}
	overall /= float64(len(phases))

	report := &model.UnifiedAuditReport{
		URL:          doc.URL,
		OverallScore: round2(overall),
		PhaseResults: phases,
		Checks:       checks,
		GeneratedAt:  time.Now().UTC(),
	}

	zap.L().Info("audit: document audited",
		zap.String("url", doc.URL),
		zap.Float64("overall_score", report.OverallScore),
		zap.Int("findings", report.FindingCount()),
	)
	return report, nil
}

// sectionsOf returns the document's brief-supplied sections, deriving
// them from the raw content when the brief carries none.
func (a *Auditor) sectionsOf(doc model.Document) []model.Section {
	if len(doc.Sections) > 0 {
		return doc.Sections
	}
	return extract.Sections(doc.Content)
}

// penaltyPhase scores a finding-based phase: 100 minus per-severity
// deductions, floored at zero.
func penaltyPhase(name string, findings []model.Violation) model.AuditPhaseResult {
	score := 100.0
	for _, f := range findings {
		score -= severityPenalty[f.Severity]
	}
	return model.AuditPhaseResult{
		Phase:    name,
		Score:    math.Max(0, score),
		Findings: findings,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
