package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// SheetsWriter replaces the contents of a Google Sheets tab with the report.
type SheetsWriter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// SheetsOptions configures the Google Sheets destination.
type SheetsOptions struct {
	SpreadsheetID      string
	SheetName          string
	ServiceAccountFile string
}

func NewSheetsWriter(ctx context.Context, opts SheetsOptions) (*SheetsWriter, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if opts.SheetName == "" {
		opts.SheetName = sheetName
	}
	svc, err := newSheetsService(ctx, opts.ServiceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &SheetsWriter{svc: svc, spreadsheetID: opts.SpreadsheetID, sheetName: opts.SheetName}, nil
}

// newSheetsService authenticates with a service account key file.
func newSheetsService(ctx context.Context, serviceAccountFile string) (*gsheet.Service, error) {
	if serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if serviceAccountFile == "" {
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_APPLICATION_CREDENTIALS)")
	}
	credentialsJSON, err := os.ReadFile(serviceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}

	slog.DebugContext(ctx, "Creating Google Sheets service", "credentials_file", serviceAccountFile)
	return gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope),
		goption.WithHTTPClient(pooledHTTPClient()),
	)
}

func pooledHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &http.Client{Transport: transport, Timeout: 30 * time.Second}
}

func (w *SheetsWriter) Write(ctx context.Context, r Report) error {
	target := fmt.Sprintf("%s!A:E", w.sheetName)
	if _, err := w.svc.Spreadsheets.Values.Clear(w.spreadsheetID, target, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet: %w", err)
	}

	values := sheetValues(r)
	rng := fmt.Sprintf("%s!A1:E%d", w.sheetName, len(values))
	if _, err := w.svc.Spreadsheets.Values.Update(w.spreadsheetID, rng, &gsheet.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("update sheet: %w", err)
	}

	slog.InfoContext(ctx, "Report uploaded",
		"spreadsheet_id", w.spreadsheetID,
		"sheet", w.sheetName,
		"rows", len(r.Rows),
		"total", r.Total.String())
	return nil
}

// sheetValues lays rows out as USER_ENTERED cells; the total row is a SUM
// formula over the amount column.
func sheetValues(r Report) [][]interface{} {
	out := make([][]interface{}, 0, len(r.Rows)+2)
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	out = append(out, header)
	for _, row := range r.Rows {
		out = append(out, []interface{}{
			row.Category.String(),
			row.RecognizerName,
			row.Date.String(),
			row.Amount.Euros(),
			row.SourceDocument,
		})
	}
	total := interface{}(r.Total.Euros())
	if len(r.Rows) > 0 {
		total = fmt.Sprintf("=SUM(D2:D%d)", len(r.Rows)+1)
	}
	out = append(out, []interface{}{TotalLabel, "", "", total, ""})
	return out
}
