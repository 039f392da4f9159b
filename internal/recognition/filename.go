package recognition

import (
	"log/slog"
	"regexp"
	"strings"

	"pdfexpenses/internal/core"
)

// A user-applied "_BEZ<YYYY-MM-DD>" in the file name records the day the
// invoice was actually paid.
var paymentDateTag = regexp.MustCompile(`_BEZ(\d{4}-\d{2}-\d{2})`)

// PaymentDate returns the payment date tagged in the file name of path.
func PaymentDate(path string) (core.Date, bool) {
	m := paymentDateTag.FindStringSubmatch(baseName(path))
	if m == nil {
		return core.Date{}, false
	}
	d, err := core.ParseDate(m[1])
	if err != nil {
		slog.Warn("Ignoring invalid payment date tag", "source_document", path, "tag", m[0], "error", err)
		return core.Date{}, false
	}
	return d, true
}

// ApplyPaymentDate overwrites the expense date with the payment date tagged in
// its source document name. It takes precedence over every other date source.
func ApplyPaymentDate(e core.Expense) (core.Expense, bool) {
	d, ok := PaymentDate(e.SourceDocument)
	if !ok {
		return e, false
	}
	slog.Debug("Payment date overridden", "source_document", e.SourceDocument, "date", d.String())
	e.Date = d
	return e, true
}

// baseName strips directories using both slash and backslash separators since
// source documents may originate from another platform.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
