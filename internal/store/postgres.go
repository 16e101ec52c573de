package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies
// it for unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS audit_reports (
	id            TEXT PRIMARY KEY,
	url           TEXT NOT NULL DEFAULT '',
	overall_score DOUBLE PRECISION NOT NULL,
	report        JSONB NOT NULL,
	generated_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_reports_url ON audit_reports(url);
CREATE INDEX IF NOT EXISTS idx_audit_reports_generated_at ON audit_reports(generated_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveReport(ctx context.Context, report *model.UnifiedAuditReport) (string, error) {
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
		return "", eris.Wrap(err, "postgres: marshal report")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO audit_reports (id, url, overall_score, report, generated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET url = $2, overall_score = $3, report = $4, generated_at = $5`,
		id, stored.URL, stored.OverallScore, payload, generatedAt,
	)
	if err != nil {
		return "", eris.Wrap(err, "postgres: insert report")
	}
	return id, nil
}

func (s *PostgresStore) GetReport(ctx context.Context, id string) (*model.UnifiedAuditReport, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT report FROM audit_reports WHERE id = $1`, id,
	).Scan(&payload)
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get report")
	}

	var report model.UnifiedAuditReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal report")
	}
	return &report, nil
}

func (s *PostgresStore) ListReports(ctx context.Context, filter ReportFilter) ([]model.UnifiedAuditReport, error) {
	query := `SELECT report FROM audit_reports`
	var args []any
	argNum := 1
	if filter.URL != "" {
		query += ` WHERE url = $1`
		args = append(args, filter.URL)
		argNum++
	}
	query += ` ORDER BY generated_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, argNum)
		args = append(args, filter.Limit)
		argNum++
		if filter.Offset > 0 {
			query += fmt.Sprintf(` OFFSET $%d`, argNum)
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list reports")
	}
	defer rows.Close()

	var reports []model.UnifiedAuditReport
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "postgres: scan report")
		}
		var report model.UnifiedAuditReport
		if err := json.Unmarshal(payload, &report); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal report")
		}
		reports = append(reports, report)
	}
	return reports, eris.Wrap(rows.Err(), "postgres: iterate reports")
}

func (s *PostgresStore) DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM audit_reports WHERE generated_at < $1`, cutoff,
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete reports")
	}
	return int(tag.RowsAffected()), nil
}
