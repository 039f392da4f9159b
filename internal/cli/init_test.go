package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfexpenses/internal/config"
	"pdfexpenses/internal/pdftext"
	"pdfexpenses/internal/report"
	"pdfexpenses/internal/storage"
)

func TestRegistryWithSupplement(t *testing.T) {
	cfg := &config.Config{}
	reg, err := Registry(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Saal", "Post", "Tintenalarm", "Pixum"}, reg.Names())

	path := filepath.Join(t.TempDir(), "recognizers.yml")
	body := `recognizers:
  - name: Druckerei
    category: OFFICE_SUPPLIES
    selector: 'druckerei\.example'
    extractor: '(?P<date>\d{2}\.\d{2}\.\d{4}).*Summe:\s+(?P<amount>\d+,\d{2})'
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	cfg.RecognizersFile = path
	reg, err = Registry(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Saal", "Post", "Tintenalarm", "Pixum", "Druckerei"}, reg.Names())
}

func TestRecordWriter(t *testing.T) {
	w, closeFn, err := RecordWriter(&config.Config{})
	require.NoError(t, err)
	assert.IsType(t, &storage.YAMLStore{}, w)
	assert.NoError(t, closeFn())

	dir := t.TempDir()
	w, closeFn, err = RecordWriter(&config.Config{LedgerPath: filepath.Join(dir, "ledger.db")})
	require.NoError(t, err)
	defer closeFn()
	assert.NotNil(t, w)
	assert.FileExists(t, filepath.Join(dir, "ledger.db"))
}

func TestConverterAndReportWriter(t *testing.T) {
	conv, err := Converter(&config.Config{TextBackend: "native"})
	require.NoError(t, err)
	assert.IsType(t, pdftext.NativeConverter{}, conv)

	w, err := ReportWriter(context.Background(), &config.Config{ReportFormat: "csv", ReportPath: "r.csv"})
	require.NoError(t, err)
	assert.IsType(t, &report.CSVWriter{}, w)
}
