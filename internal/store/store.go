// Package store persists unified audit reports. The audit core itself
// never touches persistence; the CLI and server layers call into a
// Store after an audit run completes.
package store

import (
	"context"
	"time"

	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

// ReportFilter specifies criteria for listing stored reports.
type ReportFilter struct {
	URL    string `json:"url,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for audit reports. GetReport
// returns (nil, nil) for an unknown ID: absence is a normal outcome,
// not an error.
type Store interface {
	SaveReport(ctx context.Context, report *model.UnifiedAuditReport) (string, error)
	GetReport(ctx context.Context, id string) (*model.UnifiedAuditReport, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]model.UnifiedAuditReport, error)
	DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int, error)

	Migrate(ctx context.Context) error
	Close() error
}
