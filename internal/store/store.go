// Package store persists report runs so past analyses can be listed and
// re-read. The per-run answer cache is deliberately not persisted.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/finqa-cli/internal/config"
	"github.com/sells-group/finqa-cli/internal/report"
)

// RunSummary is one row of the run history listing.
type RunSummary struct {
	ID             string    `json:"id"`
	GeneratedAt    time.Time `json:"generated_at"`
	TotalQuestions int       `json:"total_questions"`
	Successful     int       `json:"successful"`
	Model          string    `json:"model"`
}

// Store defines the persistence interface for report runs.
type Store interface {
	SaveReport(ctx context.Context, rep *report.Report) (string, error)
	GetReport(ctx context.Context, id string) (*report.Report, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a store for the configured driver. Driver "off" returns
// (nil, nil); callers treat a nil store as history disabled.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "off":
		return nil, nil
	case "sqlite":
		return NewSQLite(cfg.Path)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
