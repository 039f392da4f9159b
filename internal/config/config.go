package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Directories
	InputDir  string
	OutputDir string

	// Report
	ReportPath   string
	ReportFormat string

	// Text extraction
	TextBackend   string
	PdftotextPath string
	Concurrency   int

	// Optional ledger and recognizer supplement
	LedgerPath      string
	RecognizersFile string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
	DedupeWindow time.Duration

	// Google Sheets report destination
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string

	LogLevel string
}

var (
	validReportFormats = []string{"xlsx", "csv", "sheets"}
	validTextBackends  = []string{"pdftotext", "native"}
	validLogLevels     = []string{"debug", "info", "warn", "error"}
)

func Load() *Config {
	return &Config{
		InputDir:  getEnv("INPUT_DIR", "./input"),
		OutputDir: getEnv("OUTPUT_DIR", "./output"),

		ReportPath:   getEnv("REPORT_PATH", "./output/expenses.xlsx"),
		ReportFormat: getEnv("REPORT_FORMAT", "xlsx"),

		TextBackend:   getEnv("TEXT_BACKEND", "pdftotext"),
		PdftotextPath: getEnv("PDFTOTEXT_PATH", "pdftotext"),
		Concurrency:   getEnvInt("CONCURRENCY", 4),

		LedgerPath:      getEnv("LEDGER_PATH", ""),
		RecognizersFile: getEnv("RECOGNIZERS_FILE", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "pdfexpenses"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "document_jobs"),
		DedupeWindow: getEnvDuration("DEDUPE_WINDOW", 10*time.Minute),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Expenses"),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errors []string

	if c.InputDir == "" {
		errors = append(errors, "input directory cannot be empty")
	}
	if c.OutputDir == "" {
		errors = append(errors, "output directory cannot be empty")
	}

	if !slices.Contains(validReportFormats, c.ReportFormat) {
		errors = append(errors, fmt.Sprintf("invalid report format '%s': must be one of %v", c.ReportFormat, validReportFormats))
	}
	if c.ReportFormat != "sheets" && c.ReportPath == "" {
		errors = append(errors, "report path cannot be empty for file reports")
	}
	if c.ReportFormat == "sheets" {
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required for sheets reports")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	if !slices.Contains(validTextBackends, c.TextBackend) {
		errors = append(errors, fmt.Sprintf("invalid text backend '%s': must be one of %v", c.TextBackend, validTextBackends))
	}
	if c.TextBackend == "pdftotext" && c.PdftotextPath == "" {
		errors = append(errors, "pdftotext path cannot be empty when using the pdftotext backend")
	}

	if c.Concurrency < 1 {
		errors = append(errors, fmt.Sprintf("invalid concurrency %d: must be at least 1", c.Concurrency))
	} else if c.Concurrency > 64 {
		errors = append(errors, fmt.Sprintf("invalid concurrency %d: must be at most 64", c.Concurrency))
	}

	if c.RecognizersFile != "" {
		if _, err := os.Stat(c.RecognizersFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("recognizers file does not exist: %s", c.RecognizersFile))
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}
	if c.DedupeWindow < 0 {
		errors = append(errors, fmt.Sprintf("invalid dedupe window %v: must not be negative", c.DedupeWindow))
	}

	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// RequireAMQP reports an error when no broker is configured.
func (c *Config) RequireAMQP() error {
	if c.AMQPURL == "" {
		return fmt.Errorf("AMQP_URL is required")
	}
	return nil
}

// ReportTarget describes where the report goes, for operator output.
func (c *Config) ReportTarget() string {
	if c.ReportFormat == "sheets" {
		return fmt.Sprintf("spreadsheet %s (%s)", c.GoogleSpreadsheetID, c.GoogleSheetName)
	}
	return c.ReportPath
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
