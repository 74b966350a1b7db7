package journalgen

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// Dataset is the in-memory representation of a synthetic journal-entry
// sample set. Amounts are drawn log-uniformly so their leading digits
// roughly follow the Benford prior, which makes generated workbooks useful
// as conforming baselines.
//
// Columns:
// - JournalID
// - PostedOn
// - Account
// - Description
// - Amount
// - AbsoluteAmount
type Dataset struct {
	Headers []string
	Rows    [][]string // already formatted strings

	// Numeric series for validation/tests
	Amounts []float64
}

type Config struct {
	Rows      int
	Seed      int64
	StartDate time.Time

	// ZeroRows is the number of zero-amount rows injected to exercise the
	// extractor's zero filtering
	ZeroRows int
}

func DefaultConfig() Config {
	return Config{
		Rows:      500,
		Seed:      42,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ZeroRows:  0,
	}
}

var accounts = []string{
	"1000-Cash",
	"1200-Accounts Receivable",
	"2000-Accounts Payable",
	"4000-Revenue",
	"5000-Cost of Goods Sold",
	"6100-Travel Expense",
	"6200-Office Supplies",
}

func Generate(cfg Config) (*Dataset, error) {
	if cfg.Rows <= 0 {
		return nil, fmt.Errorf("rows must be > 0")
	}
	if cfg.ZeroRows < 0 || cfg.ZeroRows > cfg.Rows {
		return nil, fmt.Errorf("zero rows must be between 0 and rows")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	amounts := make([]float64, cfg.Rows)
	for i := 0; i < cfg.Rows; i++ {
		// Log-uniform magnitude across 1..100000
		magnitude := math.Pow(10, rng.Float64()*5)
		magnitude = math.Round(magnitude*100) / 100
		if rng.Float64() < 0.4 {
			magnitude = -magnitude
		}
		amounts[i] = magnitude
	}
	// Zero rows go at deterministic evenly spaced positions
	if cfg.ZeroRows > 0 {
		step := cfg.Rows / cfg.ZeroRows
		if step == 0 {
			step = 1
		}
		for i := 0; i < cfg.ZeroRows; i++ {
			amounts[(i*step)%cfg.Rows] = 0
		}
	}

	ds := &Dataset{
		Headers: []string{"JournalID", "PostedOn", "Account", "Description", "Amount", "AbsoluteAmount"},
		Rows:    make([][]string, cfg.Rows),
		Amounts: amounts,
	}

	for i := 0; i < cfg.Rows; i++ {
		posted := cfg.StartDate.AddDate(0, 0, i/10)
		account := accounts[rng.Intn(len(accounts))]
		ds.Rows[i] = []string{
			fmt.Sprintf("JE-%05d", i+1),
			posted.Format("2006-01-02"),
			account,
			fmt.Sprintf("Posting %d to %s", i+1, account),
			fToStr(amounts[i], 2),
			fToStr(math.Abs(amounts[i]), 2),
		}
	}

	return ds, nil
}

func WriteCSV(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(ds.Headers); err != nil {
		return err
	}
	for _, row := range ds.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func WriteXLSX(path string, ds *Dataset) error {
	f := excelize.NewFile()

	// Ensure Sheet1 exists and is active.
	sheet := "Sheet1"
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return err
		}
		f.SetActiveSheet(idx)
	}

	// Header row
	for i, h := range ds.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	// Data rows; amount columns are written as numbers so the worksheet part
	// carries literal values rather than shared-string references
	for r := 0; r < len(ds.Rows); r++ {
		rowIdx := r + 2
		for c, v := range ds.Rows[r] {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			if ds.Headers[c] == "Amount" || ds.Headers[c] == "AbsoluteAmount" {
				num, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sheet, cell, num); err != nil {
					return err
				}
				continue
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

func fToStr(x float64, decimals int) string {
	p := math.Pow10(decimals)
	x = math.Round(x*p) / p
	return strconv.FormatFloat(x, 'f', decimals, 64)
}
