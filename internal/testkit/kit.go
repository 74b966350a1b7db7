package testkit

import (
	"context"
	"sync"

	"gobenford/models"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook builds a small single-sheet xlsx fixture at path. Rows are
// written below a header row; nil cells are left unset so the worksheet part
// omits them entirely.
func WriteWorkbook(path string, headers []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	sheet := "Sheet1"

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

// MemoryLedger is an in-memory RunLedger for tests
type MemoryLedger struct {
	mu   sync.Mutex
	runs []*models.AnalysisRun
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

func (m *MemoryLedger) RecordRun(ctx context.Context, run *models.AnalysisRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

func (m *MemoryLedger) RecentRuns(ctx context.Context, limit int) ([]*models.AnalysisRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*models.AnalysisRun, 0, limit)
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}

// Runs returns everything recorded so far, oldest first
func (m *MemoryLedger) Runs() []*models.AnalysisRun {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.AnalysisRun(nil), m.runs...)
}
