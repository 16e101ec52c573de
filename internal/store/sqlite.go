package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS audit_reports (
	id            TEXT PRIMARY KEY,
	url           TEXT NOT NULL DEFAULT '',
	overall_score REAL NOT NULL,
	report        TEXT NOT NULL,
	generated_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_reports_url ON audit_reports(url);
CREATE INDEX IF NOT EXISTS idx_audit_reports_generated_at ON audit_reports(generated_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveReport(ctx context.Context, report *model.UnifiedAuditReport) (string, error) {
	id := report.ID
	if id == "" {
		id = uuid.New().String()
	}
	generatedAt := report.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	stored := *report
	stored.ID = id
	stored.GeneratedAt = generatedAt

	payload, err := json.Marshal(&stored)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal report")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO audit_reports (id, url, overall_score, report, generated_at) VALUES (?, ?, ?, ?, ?)`,
		id, stored.URL, stored.OverallScore, string(payload), generatedAt,
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert report")
	}
	return id, nil
}

func (s *SQLiteStore) GetReport(ctx context.Context, id string) (*model.UnifiedAuditReport, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM audit_reports WHERE id = ?`, id,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get report")
	}

	var report model.UnifiedAuditReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal report")
	}
	return &report, nil
}

func (s *SQLiteStore) ListReports(ctx context.Context, filter ReportFilter) ([]model.UnifiedAuditReport, error) {
	query := `SELECT report FROM audit_reports`
	var args []any
	if filter.URL != "" {
		query += ` WHERE url = ?`
		args = append(args, filter.URL)
	}
	query += ` ORDER BY generated_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list reports")
	}
	defer rows.Close()

	var reports []model.UnifiedAuditReport
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan report")
		}
		var report model.UnifiedAuditReport
		if err := json.Unmarshal([]byte(payload), &report); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal report")
		}
		reports = append(reports, report)
	}
	return reports, eris.Wrap(rows.Err(), "sqlite: iterate reports")
}

func (s *SQLiteStore) DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM audit_reports WHERE generated_at < ?`, cutoff,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete reports")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: rows affected")
	}
	return int(n), nil
}
