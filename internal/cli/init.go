// Package cli wires configuration into the components shared by
// cmd/pdfexpenses and cmd/pdfexpenses-worker.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"pdfexpenses/internal/config"
	"pdfexpenses/internal/log"
	"pdfexpenses/internal/pdftext"
	"pdfexpenses/internal/recognition"
	"pdfexpenses/internal/report"
	"pdfexpenses/internal/storage"
)

// LoadEnvFile loads .env for local runs. A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger installs the default logger at the configured level.
func SetupLogger(cfg *config.Config, component string) *log.Logger {
	logCfg := log.DefaultConfig()
	logCfg.Level = cfg.SlogLevel()
	logCfg.Component = component
	logger := log.New(logCfg)
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and exits on validation failure.
func LoadAndValidateConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg
}

// Registry returns the built-in recognizers followed by those from
// RECOGNIZERS_FILE, if set.
func Registry(cfg *config.Config) (*recognition.Registry, error) {
	reg := recognition.DefaultRegistry()
	if cfg.RecognizersFile == "" {
		return reg, nil
	}
	extra, err := recognition.LoadRecognizers(cfg.RecognizersFile)
	if err != nil {
		return nil, err
	}
	return reg.With(extra...)
}

// RecordWriter returns the YAML store, teed into the SQLite ledger when
// LEDGER_PATH is set. The returned close function is never nil.
func RecordWriter(cfg *config.Config) (storage.Writer, func() error, error) {
	yamlStore := storage.NewYAMLStore()
	if cfg.LedgerPath == "" {
		return yamlStore, func() error { return nil }, nil
	}
	ledger, err := storage.NewLedger(cfg.LedgerPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open ledger: %w", err)
	}
	return storage.Tee(yamlStore, ledger), ledger.Close, nil
}

// Converter returns the configured PDF text backend.
func Converter(cfg *config.Config) (pdftext.Converter, error) {
	return pdftext.New(cfg.TextBackend, cfg.PdftotextPath)
}

// ReportWriter returns the configured report destination.
func ReportWriter(ctx context.Context, cfg *config.Config) (report.Writer, error) {
	return report.NewWriter(ctx, report.Options{
		Format: cfg.ReportFormat,
		Path:   cfg.ReportPath,
		Sheets: report.SheetsOptions{
			SpreadsheetID:      cfg.GoogleSpreadsheetID,
			SheetName:          cfg.GoogleSheetName,
			ServiceAccountFile: cfg.GoogleServiceAccountFile,
		},
	})
}

// SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}
