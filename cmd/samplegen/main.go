package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gobenford/internal/journalgen"
)

func main() {
	out := flag.String("out", "je_samples.xlsx", "output file path")
	rows := flag.Int("rows", 500, "number of journal entries")
	format := flag.String("format", "", "output format: xlsx or csv (default inferred from -out)")
	seed := flag.Int64("seed", 42, "RNG seed (deterministic)")
	start := flag.String("start", "2025-01-01", "first posting date (YYYY-MM-DD)")
	zeroRows := flag.Int("zero-rows", 0, "number of zero-amount rows to inject")
	flag.Parse()

	if *rows <= 0 {
		fmt.Fprintln(os.Stderr, "rows must be > 0")
		os.Exit(2)
	}

	startDate, err := time.ParseInLocation("2006-01-02", *start, time.UTC)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid -start (expected YYYY-MM-DD):", err)
		os.Exit(2)
	}

	fmtName := strings.ToLower(strings.TrimSpace(*format))
	if fmtName == "" {
		if strings.ToLower(filepath.Ext(*out)) == ".csv" {
			fmtName = "csv"
		} else {
			fmtName = "xlsx"
		}
	}

	cfg := journalgen.DefaultConfig()
	cfg.Rows = *rows
	cfg.Seed = *seed
	cfg.StartDate = startDate
	cfg.ZeroRows = *zeroRows

	ds, err := journalgen.Generate(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error generating dataset:", err)
		os.Exit(1)
	}

	switch fmtName {
	case "csv":
		err = journalgen.WriteCSV(*out, ds)
	case "xlsx":
		err = journalgen.WriteXLSX(*out, ds)
	default:
		fmt.Fprintln(os.Stderr, "unsupported format:", fmtName)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", fmtName, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d rows to %s\n", *rows, *out)
}
