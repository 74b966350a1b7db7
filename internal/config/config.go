package config

import (
	"os"

	"gobenford/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Input    InputConfig
	Output   OutputConfig
	Database DatabaseConfig
	Server   ServerConfig
}

// InputConfig identifies the workbook to analyze
type InputConfig struct {
	WorkbookPath  string
	WorksheetPart string
}

// OutputConfig holds the artifact directory and filenames
type OutputConfig struct {
	Dir            string
	ReportFile     string
	ReportHTMLFile string
	ObservedChart  string
	DeviationChart string
}

// DatabaseConfig holds the optional run-ledger connection settings
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds review server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Input: InputConfig{
			WorkbookPath:  getEnvOrDefault("BENFORD_INPUT", "je_samples.xlsx"),
			WorksheetPart: getEnvOrDefault("BENFORD_WORKSHEET_PART", "xl/worksheets/sheet1.xml"),
		},
		Output: OutputConfig{
			Dir:            getEnvOrDefault("BENFORD_OUTPUT_DIR", "output"),
			ReportFile:     getEnvOrDefault("BENFORD_REPORT_FILE", "benford_report.md"),
			ReportHTMLFile: getEnvOrDefault("BENFORD_REPORT_HTML_FILE", "benford_report.html"),
			ObservedChart:  getEnvOrDefault("BENFORD_OBSERVED_CHART", "first_digit_observed_vs_expected.svg"),
			DeviationChart: getEnvOrDefault("BENFORD_DEVIATION_CHART", "first_digit_deviation.svg"),
		},
		Database: DatabaseConfig{
			// Empty means the run ledger is disabled
			URL: getEnvOrDefault("BENFORD_DATABASE_URL", ""),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// LedgerEnabled reports whether a run-ledger database has been configured
func (c *Config) LedgerEnabled() bool {
	return c.Database.URL != ""
}

func validateConfig(config *Config) error {
	if config.Input.WorkbookPath == "" {
		return errors.ConfigInvalid("input workbook path is required")
	}
	if config.Input.WorksheetPart == "" {
		return errors.ConfigInvalid("worksheet part is required")
	}
	if config.Output.Dir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	if config.Output.ReportFile == "" {
		return errors.ConfigInvalid("report filename is required")
	}
	if config.Output.ObservedChart == "" || config.Output.DeviationChart == "" {
		return errors.ConfigInvalid("chart filenames are required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
