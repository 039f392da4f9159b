package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// csvRow is the flat CSV shape of a report line. Amounts use a decimal point
// so the file sorts and imports without locale settings.
type csvRow struct {
	Category       string `csv:"Category"`
	DocumentType   string `csv:"Document Type"`
	Date           string `csv:"Date"`
	Amount         string `csv:"Amount"`
	SourceDocument string `csv:"Source Document"`
}

// CSVWriter writes the report as a CSV file with a trailing total line.
type CSVWriter struct {
	Path string
}

func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{Path: path}
}

func (w *CSVWriter) Write(ctx context.Context, r Report) error {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, r); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(w.Path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(w.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write csv report: %w", err)
	}
	slog.InfoContext(ctx, "Report written", "path", w.Path, "rows", len(r.Rows), "total", r.Total.String())
	return nil
}

// EncodeCSV writes the header, one line per row and the total line.
func EncodeCSV(out io.Writer, r Report) error {
	rows := make([]*csvRow, 0, len(r.Rows)+1)
	for _, row := range r.Rows {
		rows = append(rows, &csvRow{
			Category:       row.Category.String(),
			DocumentType:   row.RecognizerName,
			Date:           row.Date.String(),
			Amount:         row.Amount.String(),
			SourceDocument: row.SourceDocument,
		})
	}
	rows = append(rows, &csvRow{Category: TotalLabel, Amount: r.Total.String()})

	if err := gocsv.Marshal(&rows, out); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return nil
}
