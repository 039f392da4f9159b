package recognition

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"pdfexpenses/internal/core"
	"pdfexpenses/internal/storage"
)

// Result is the outcome of recognizing one document.
type Result struct {
	Expense core.Expense
	// Template marks a record that needs manual review.
	Template bool
	// Cause explains why a template was produced. It is nil for recognized
	// records and for text no selector matched.
	Cause error
}

// Extractor turns document text into exactly one persisted expense record per
// document. Recognition misses never fail; they degrade to templates whose
// locations are collected for the operator.
//
// An Extractor is safe for concurrent use. The template list is append-only
// unless a limit is set.
type Extractor struct {
	registry *Registry
	writer   storage.Writer
	limit    int

	mu        sync.Mutex
	templates []string
	count     int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTemplateLimit keeps only the n most recent template locations. The
// template count keeps growing. Long-running consumers use it to bound memory.
func WithTemplateLimit(n int) Option {
	return func(x *Extractor) {
		x.limit = n
	}
}

func NewExtractor(registry *Registry, writer storage.Writer, opts ...Option) *Extractor {
	x := &Extractor{
		registry: registry,
		writer:   writer,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Recognize decides the record for text without persisting it.
func (x *Extractor) Recognize(text, sourceDocument string) Result {
	var res Result

	rec, ok := x.registry.Select(text)
	switch {
	case !ok:
		slog.Debug("No recognizer matched", "source_document", sourceDocument)
		res = Result{Expense: template(text, sourceDocument, nil), Template: true}
	default:
		slog.Debug("Recognizer matched", "source_document", sourceDocument, "recognizer", rec.Name)
		e, err := rec.Extract(text, sourceDocument)
		if err != nil {
			res = Result{Expense: template(text, sourceDocument, rec), Template: true, Cause: err}
		} else {
			res = Result{Expense: e}
		}
	}

	if res.Template {
		res.Expense, _ = ApplyPaymentDate(res.Expense)
	}
	return res
}

// RecognizeText recognizes text and persists the record at location.
func (x *Extractor) RecognizeText(ctx context.Context, text, sourceDocument, location string) (Result, error) {
	if strings.TrimSpace(sourceDocument) == "" {
		return Result{}, core.ErrEmptySourceDocument
	}

	res := x.Recognize(text, sourceDocument)
	if err := x.writer.Save(ctx, storage.Record{
		Path:     location,
		Expense:  res.Expense,
		Template: res.Template,
	}); err != nil {
		return Result{}, fmt.Errorf("save record %s: %w", location, err)
	}

	if res.Template {
		x.addTemplate(location)

		slog.WarnContext(ctx, "Created template for manual review",
			"source_document", sourceDocument,
			"recognizer", res.Expense.RecognizerName,
			"record_path", location,
			"cause", causeText(res.Cause))
		return res, nil
	}

	slog.InfoContext(ctx, "Recognized expense",
		"source_document", sourceDocument,
		"recognizer", res.Expense.RecognizerName,
		"category", res.Expense.Category.String(),
		"date", res.Expense.Date.String(),
		"amount", res.Expense.Amount.String())
	return res, nil
}

// RecognizeFile reads the text at txtPath and recognizes it. Failing to read
// the text is the only recognition error returned.
func (x *Extractor) RecognizeFile(ctx context.Context, txtPath, location, sourceDocument string) (Result, error) {
	data, err := os.ReadFile(txtPath)
	if err != nil {
		return Result{}, fmt.Errorf("read text: %w", err)
	}
	return x.RecognizeText(ctx, string(data), sourceDocument, location)
}

func (x *Extractor) addTemplate(location string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.count++
	if x.limit > 0 && len(x.templates) == x.limit {
		copy(x.templates, x.templates[1:])
		x.templates = x.templates[:x.limit-1]
	}
	x.templates = append(x.templates, location)
}

// Templates returns the locations of the templates created so far, oldest
// first. With a template limit only the most recent ones are kept.
func (x *Extractor) Templates() []string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]string(nil), x.templates...)
}

// TemplateCount returns the number of templates created so far.
func (x *Extractor) TemplateCount() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.count
}

func causeText(err error) string {
	if err == nil {
		return "no recognizer matched"
	}
	return err.Error()
}
