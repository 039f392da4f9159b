package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName = "Expenses"
	tableName = "ExpenseTable"
)

// XLSXWriter writes the report as an Excel workbook.
type XLSXWriter struct {
	Path string
}

func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{Path: path}
}

func (w *XLSXWriter) Write(ctx context.Context, r Report) error {
	f, err := Workbook(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := os.MkdirAll(filepath.Dir(w.Path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := f.SaveAs(w.Path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	slog.InfoContext(ctx, "Report written", "path", w.Path, "rows", len(r.Rows), "total", r.Total.String())
	return nil
}

// Workbook lays out the report on a single sheet: header, one row per
// expense, a styled table over both and a total row summing the amounts.
func Workbook(r Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := layout(f, r); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func layout(f *excelize.File, r Report) error {
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	currency := "#,##0.00 [$€-407];[Red]-#,##0.00 [$€-407]"
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currency})
	if err != nil {
		return fmt.Errorf("amount style: %w", err)
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return fmt.Errorf("date style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &currency})
	if err != nil {
		return fmt.Errorf("total style: %w", err)
	}

	widths := []struct {
		col   string
		width float64
	}{{"A", 25}, {"B", 20}, {"C", 12}, {"D", 12}, {"E", 100}}
	for _, w := range widths {
		if err := f.SetColWidth(sheetName, w.col, w.col, w.width); err != nil {
			return fmt.Errorf("column width: %w", err)
		}
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range r.Rows {
		n := i + 2
		values := []interface{}{row.Category.String(), row.RecognizerName, row.Date.Time, row.Amount.Euros(), row.SourceDocument}
		if err := f.SetSheetRow(sheetName, cell("A", n), &values); err != nil {
			return fmt.Errorf("write row %d: %w", n, err)
		}
		if err := f.SetCellStyle(sheetName, cell("C", n), cell("C", n), dateStyle); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell("D", n), cell("D", n), amountStyle); err != nil {
			return err
		}
	}

	last := len(r.Rows) + 1
	if len(r.Rows) > 0 {
		if err := f.AddTable(sheetName, &excelize.Table{
			Range:     "A1:" + cell("E", last),
			Name:      tableName,
			StyleName: "TableStyleLight18",
		}); err != nil {
			return fmt.Errorf("add table: %w", err)
		}
	}

	totalRow := last + 1
	if err := f.SetCellValue(sheetName, cell("A", totalRow), TotalLabel); err != nil {
		return err
	}
	if err := f.SetCellFloat(sheetName, cell("D", totalRow), r.Total.Euros(), 2, 64); err != nil {
		return err
	}
	if len(r.Rows) > 0 {
		if err := f.SetCellFormula(sheetName, cell("D", totalRow), fmt.Sprintf("SUM(D2:D%d)", last)); err != nil {
			return err
		}
	}
	return f.SetCellStyle(sheetName, cell("A", totalRow), cell("D", totalRow), totalStyle)
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
