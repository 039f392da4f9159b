package report

import (
	"context"
	"fmt"
	"strings"
)

// Formats accepted by NewWriter.
const (
	FormatXLSX   = "xlsx"
	FormatCSV    = "csv"
	FormatSheets = "sheets"
)

// Options selects and configures a report destination.
type Options struct {
	Format string
	Path   string
	Sheets SheetsOptions
}

// NewWriter returns the writer for opts.Format. An empty format is inferred
// from the path extension and defaults to xlsx.
func NewWriter(ctx context.Context, opts Options) (Writer, error) {
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = FormatXLSX
		if strings.HasSuffix(strings.ToLower(opts.Path), ".csv") {
			format = FormatCSV
		}
	}

	switch format {
	case FormatXLSX:
		return NewXLSXWriter(opts.Path), nil
	case FormatCSV:
		return NewCSVWriter(opts.Path), nil
	case FormatSheets:
		w, err := NewSheetsWriter(ctx, opts.Sheets)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", opts.Format)
	}
}
