package report

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pdfexpenses/internal/core"
)

func mustExpense(t *testing.T, source, recognizer string, category core.Category, date, amount string) core.Expense {
	t.Helper()
	e, err := core.NewExpense(source, recognizer, category, date, amount)
	require.NoError(t, err)
	return e
}

func sampleExpenses(t *testing.T) []core.Expense {
	return []core.Expense{
		mustExpense(t, "/in/saal.pdf", "Saal", core.ExternalService, "10.07.2017", "11,10"),
		mustExpense(t, "/in/post.pdf", "Post", core.PostageCosts, "02.01.17", "3,00"),
		mustExpense(t, "/in/pixum.pdf", "Pixum", core.ExternalService, "03.01.2017", "1.234,56"),
	}
}

func TestBuildOrdersByDateAndSums(t *testing.T) {
	r := Build(sampleExpenses(t))

	require.Len(t, r.Rows, 3)
	assert.Equal(t, "/in/post.pdf", r.Rows[0].SourceDocument)
	assert.Equal(t, "/in/pixum.pdf", r.Rows[1].SourceDocument)
	assert.Equal(t, "/in/saal.pdf", r.Rows[2].SourceDocument)
	assert.Equal(t, "1248.66", r.Total.String())
	assert.Zero(t, r.Manual)

	require.Len(t, r.ByCategory, 2)
	assert.Equal(t, core.ExternalService, r.ByCategory[0].Category)
	assert.Equal(t, int64(124566), r.ByCategory[0].Amount.Cents)
	assert.Equal(t, 2, r.ByCategory[0].Count)
	assert.Equal(t, core.PostageCosts, r.ByCategory[1].Category)
	assert.Equal(t, 1, r.ByCategory[1].Count)
}

func TestBuildBreaksDateTiesBySource(t *testing.T) {
	r := Build([]core.Expense{
		mustExpense(t, "/in/b.pdf", "Saal", core.ExternalService, "10.07.2017", "1,00"),
		mustExpense(t, "/in/a.pdf", "Saal", core.ExternalService, "10.07.2017", "2,00"),
	})
	assert.Equal(t, "/in/a.pdf", r.Rows[0].SourceDocument)
	assert.Equal(t, "/in/b.pdf", r.Rows[1].SourceDocument)
}

func TestBuildCountsManualRows(t *testing.T) {
	r := Build([]core.Expense{
		{SourceDocument: "/in/x.pdf", RecognizerName: core.ManualRecognizer, Date: core.ManualEntryDate},
		mustExpense(t, "/in/saal.pdf", "Saal", core.ExternalService, "10.07.2017", "11,10"),
		{
			SourceDocument: "/in/saal-scan.pdf",
			RecognizerName: "Saal",
			Category:       core.ExternalService,
			Date:           core.NewDate(2017, 8, 1),
			Template:       true,
		},
	})
	assert.Equal(t, 2, r.Manual)
	assert.Equal(t, "/in/x.pdf", r.Rows[0].SourceDocument)
	assert.Equal(t, "11.10", r.Total.String())
}

func TestBuildEmpty(t *testing.T) {
	r := Build(nil)
	assert.Empty(t, r.Rows)
	assert.Equal(t, "0.00", r.Total.String())

	values := r.Values()
	require.Len(t, values, 2)
	assert.Equal(t, Header, values[0])
	assert.Equal(t, []string{TotalLabel, "", "", "0.00", ""}, values[1])
}

func TestValues(t *testing.T) {
	values := Build(sampleExpenses(t)).Values()
	require.Len(t, values, 5)
	assert.Equal(t, []string{"POSTAGE_COSTS", "Post", "2017-01-02", "3.00", "/in/post.pdf"}, values[1])
	assert.Equal(t, []string{TotalLabel, "", "", "1248.66", ""}, values[4])
}

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, Build(sampleExpenses(t))))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Category,Document Type,Date,Amount,Source Document", lines[0])
	assert.Equal(t, "POSTAGE_COSTS,Post,2017-01-02,3.00,/in/post.pdf", lines[1])
	assert.Equal(t, "Total,,,1248.66,", lines[4])
}

func TestXLSXWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.xlsx")
	require.NoError(t, NewXLSXWriter(path).Write(context.Background(), Build(sampleExpenses(t))))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Category", header)

	source, err := f.GetCellValue(sheetName, "E2")
	require.NoError(t, err)
	assert.Equal(t, "/in/post.pdf", source)

	label, err := f.GetCellValue(sheetName, "A5")
	require.NoError(t, err)
	assert.Equal(t, TotalLabel, label)

	formula, err := f.GetCellFormula(sheetName, "D5")
	require.NoError(t, err)
	assert.Equal(t, "SUM(D2:D4)", formula)

	tables, err := f.GetTables(sheetName)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, tableName, tables[0].Name)
}

func TestXLSXWriterEmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, NewXLSXWriter(path).Write(context.Background(), Build(nil)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	label, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, TotalLabel, label)
}

func TestSheetValues(t *testing.T) {
	values := sheetValues(Build(sampleExpenses(t)))
	require.Len(t, values, 5)
	assert.Equal(t, "Category", values[0][0])
	assert.Equal(t, 3.0, values[1][3])
	assert.Equal(t, "=SUM(D2:D4)", values[4][3])

	empty := sheetValues(Build(nil))
	require.Len(t, empty, 2)
	assert.Equal(t, 0.0, empty[1][3])
}

func TestNewWriter(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		opts    Options
		want    interface{}
		wantErr bool
	}{
		{name: "default xlsx", opts: Options{Path: "r.xlsx"}, want: &XLSXWriter{}},
		{name: "csv by extension", opts: Options{Path: "r.CSV"}, want: &CSVWriter{}},
		{name: "explicit csv", opts: Options{Format: "csv", Path: "r.txt"}, want: &CSVWriter{}},
		{name: "unknown", opts: Options{Format: "pdf"}, wantErr: true},
		{name: "sheets without id", opts: Options{Format: "sheets"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWriter(ctx, tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, w)
		})
	}
}
