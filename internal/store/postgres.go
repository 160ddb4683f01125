package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/finqa-cli/internal/report"
)

// pgxPool is the subset of pgxpool.Pool the store uses; pgxmock implements
// it for tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool pgxPool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 4
	pgxCfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool}, nil
}

// newPostgresWithPool wires an explicit pool; used by tests with pgxmock.
func newPostgresWithPool(pool pgxPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS report_runs (
	id              UUID PRIMARY KEY,
	generated_at    TIMESTAMPTZ NOT NULL,
	total_questions INTEGER NOT NULL,
	successful      INTEGER NOT NULL,
	model           TEXT NOT NULL,
	report          JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_report_runs_generated_at ON report_runs(generated_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveReport(ctx context.Context, rep *report.Report) (string, error) {
	id := uuid.New().String()

	payload, err := json.Marshal(rep)
	if err != nil {
		return "", eris.Wrap(err, "postgres: marshal report")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO report_runs (id, generated_at, total_questions, successful, model, report) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, rep.Metadata.GeneratedAt, rep.Metadata.TotalQuestions, rep.Metadata.Successful, rep.Metadata.Model, payload,
	)
	if err != nil {
		return "", eris.Wrap(err, "postgres: insert report run")
	}
	return id, nil
}

func (s *PostgresStore) GetReport(ctx context.Context, id string) (*report.Report, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT report FROM report_runs WHERE id = $1`, id,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("postgres: report run %s not found", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get report run %s", id)
	}

	var rep report.Report
	if err := json.Unmarshal(payload, &rep); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal report")
	}
	return &rep, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, generated_at, total_questions, successful, model FROM report_runs ORDER BY generated_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.GeneratedAt, &r.TotalQuestions, &r.Successful, &r.Model); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate runs")
}
