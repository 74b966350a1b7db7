package postgres

import (
	"context"
	"fmt"

	"gobenford/models"
	"gobenford/ports"

	"github.com/jmoiron/sqlx"
)

const runsSchema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id UUID PRIMARY KEY,
	source_path TEXT NOT NULL,
	total INTEGER NOT NULL,
	mad DOUBLE PRECISION NOT NULL,
	chi_square DOUBLE PRECISION NOT NULL,
	counts JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_analysis_runs_created_at ON analysis_runs (created_at DESC);`

// runRepository implements the RunLedger interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run ledger backed by Postgres
func NewRunRepository(db *sqlx.DB) ports.RunLedger {
	return &runRepository{db: db}
}

// EnsureSchema creates the analysis_runs table when it does not exist yet
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, runsSchema); err != nil {
		return fmt.Errorf("failed to ensure analysis_runs schema: %w", err)
	}
	return nil
}

// RecordRun inserts a completed run into the ledger
func (r *runRepository) RecordRun(ctx context.Context, run *models.AnalysisRun) error {
	query := `INSERT INTO analysis_runs (
		id, source_path, total, mad, chi_square, counts, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.SourcePath, run.Total, run.MAD, run.ChiSquare, run.Counts, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record analysis run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first
func (r *runRepository) RecentRuns(ctx context.Context, limit int) ([]*models.AnalysisRun, error) {
	query := `SELECT id, source_path, total, mad, chi_square, counts, created_at
	FROM analysis_runs ORDER BY created_at DESC LIMIT $1`

	var runs []*models.AnalysisRun
	if err := r.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	return runs, nil
}
