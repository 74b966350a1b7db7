package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"gobenford/adapters/postgres"
	"gobenford/app"
	"gobenford/internal/config"
	"gobenford/internal/errors"
	"gobenford/ports"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load .env file if present (ignore errors - file may not exist)
	_ = godotenv.Load()

	input := flag.String("input", "", "workbook path (overrides BENFORD_INPUT)")
	outDir := flag.String("out", "", "output directory (overrides BENFORD_OUTPUT_DIR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(2)
	}
	if *input != "" {
		cfg.Input.WorkbookPath = *input
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	ctx := context.Background()

	var ledger ports.RunLedger
	if cfg.LedgerEnabled() {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to connect to run ledger:", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			fmt.Fprintln(os.Stderr, "failed to prepare run ledger:", err)
			os.Exit(1)
		}
		ledger = postgres.NewRunRepository(db)
	}

	service := app.NewAnalysisService(cfg, ledger)
	result, err := service.Run(ctx)
	if err != nil {
		switch errors.GetCode(err) {
		case errors.CodeSchemaError:
			fmt.Fprintln(os.Stderr, "workbook layout problem:", err)
		case errors.CodeValueError:
			fmt.Fprintln(os.Stderr, "bad cell value:", err)
		default:
			fmt.Fprintln(os.Stderr, "analysis failed:", err)
		}
		os.Exit(1)
	}

	log.Printf("analysis complete: %d amounts, MAD %.4f, chi-square %.2f; artifacts in %s",
		result.Total, result.MAD, result.ChiSquare, cfg.Output.Dir)
}
