package app

import (
	"context"
	"os"
	"path/filepath"

	"gobenford/adapters/chart"
	"gobenford/adapters/report"
	"gobenford/adapters/xlsx"
	"gobenford/domain/benford"
	"gobenford/internal"
	"gobenford/internal/config"
	"gobenford/internal/errors"
	"gobenford/models"
	"gobenford/ports"
)

// AnalysisService orchestrates the full pipeline: extract amounts, analyze
// their leading digits, render the report and chart artifacts, and optionally
// record the run in the ledger.
type AnalysisService struct {
	cfg    *config.Config
	ledger ports.RunLedger // nil when the ledger is disabled
	logger *internal.Logger
}

// NewAnalysisService creates an analysis service; ledger may be nil
func NewAnalysisService(cfg *config.Config, ledger ports.RunLedger) *AnalysisService {
	return &AnalysisService{
		cfg:    cfg,
		ledger: ledger,
		logger: internal.DefaultLogger,
	}
}

// Run executes one analysis. All artifacts are rendered in memory before
// anything is written, so an extraction or analysis failure leaves the output
// directory untouched.
func (s *AnalysisService) Run(ctx context.Context) (*benford.Result, error) {
	extractor := xlsx.NewExtractor(s.cfg.Input.WorkbookPath, s.cfg.Input.WorksheetPart)
	amounts, err := extractor.ExtractAmounts()
	if err != nil {
		return nil, err
	}

	result := benford.Analyze(amounts)
	s.logger.Info("analyzed %d amounts (MAD=%.4f, chi-square=%.2f)", result.Total, result.MAD, result.ChiSquare)

	renderer := report.NewRenderer(s.cfg.Output.ObservedChart, s.cfg.Output.DeviationChart)
	md := renderer.Markdown(result)
	htmlDoc := renderer.HTML(md)
	observedChart := chart.ObservedVsExpected(result)
	deviationChart := chart.Deviation(result)

	if err := os.MkdirAll(s.cfg.Output.Dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", s.cfg.Output.Dir)
	}

	artifacts := map[string][]byte{
		s.cfg.Output.ReportFile:     md,
		s.cfg.Output.ReportHTMLFile: htmlDoc,
		s.cfg.Output.ObservedChart:  observedChart,
		s.cfg.Output.DeviationChart: deviationChart,
	}
	for name, data := range artifacts {
		path := filepath.Join(s.cfg.Output.Dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, errors.Wrapf(err, "failed to write artifact %s", path)
		}
		s.logger.Debug("wrote artifact %s (%d bytes)", path, len(data))
	}

	if s.ledger != nil {
		run := models.NewAnalysisRun(s.cfg.Input.WorkbookPath, result)
		if err := s.ledger.RecordRun(ctx, run); err != nil {
			// Artifacts are already on disk; the ledger is advisory
			s.logger.Warn("failed to record analysis run %s: %v", run.ID, err)
		}
	}

	return &result, nil
}
