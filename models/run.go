package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gobenford/domain/benford"

	"github.com/google/uuid"
)

// DigitCounts is a custom type for the per-digit counts JSONB column
type DigitCounts map[int]int

// Value implements driver.Valuer interface
func (d DigitCounts) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner interface
func (d *DigitCounts) Scan(value interface{}) error {
	if value == nil {
		*d = make(DigitCounts)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*d = make(DigitCounts)
		return nil
	}

	if len(bytes) == 0 {
		*d = make(DigitCounts)
		return nil
	}

	result := make(DigitCounts)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*d = result
	return nil
}

// AnalysisRun records one completed conformity analysis in the run ledger
type AnalysisRun struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	SourcePath string      `json:"source_path" db:"source_path"`
	Total      int         `json:"total" db:"total"`
	MAD        float64     `json:"mad" db:"mad"`
	ChiSquare  float64     `json:"chi_square" db:"chi_square"`
	Counts     DigitCounts `json:"counts" db:"counts"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}

// NewAnalysisRun builds a ledger record from a finished analysis
func NewAnalysisRun(sourcePath string, result benford.Result) *AnalysisRun {
	counts := make(DigitCounts, len(result.Counts))
	for digit, count := range result.Counts {
		counts[digit] = count
	}
	return &AnalysisRun{
		ID:         uuid.New(),
		SourcePath: sourcePath,
		Total:      result.Total,
		MAD:        result.MAD,
		ChiSquare:  result.ChiSquare,
		Counts:     counts,
		CreatedAt:  time.Now().UTC(),
	}
}
