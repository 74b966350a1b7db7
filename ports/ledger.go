package ports

import (
	"context"

	"gobenford/models"
)

// RunLedger persists completed analysis runs for later review. The pipeline
// treats the ledger as advisory: artifact writing never depends on it.
type RunLedger interface {
	// RecordRun stores one completed run
	RecordRun(ctx context.Context, run *models.AnalysisRun) error

	// RecentRuns returns up to limit runs, newest first
	RecentRuns(ctx context.Context, limit int) ([]*models.AnalysisRun, error)
}
