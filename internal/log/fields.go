package log

import (
	"log/slog"

	"pdfexpenses/internal/core"
)

// Common field names for structured logging
const (
	FieldComponent      = "component"
	FieldError          = "error"
	FieldOperation      = "operation"
	FieldSourceDocument = "source_document"
	FieldRecognizer     = "recognizer"
	FieldCategory       = "category"
	FieldDate           = "date"
	FieldAmount         = "amount"
	FieldRecordPath     = "record_path"
	FieldTemplate       = "template"
	FieldPDFPath        = "pdf_path"
	FieldDuration       = "duration_ms"
)

// Component names
const (
	ComponentApp         = "app"
	ComponentPipeline    = "pipeline"
	ComponentRecognition = "recognition"
	ComponentStorage     = "storage"
	ComponentReport      = "report"
	ComponentAMQP        = "amqp"
	ComponentWorker      = "worker"
)

// Operation names
const (
	OpExtract   = "extract"
	OpRecognize = "recognize"
	OpReport    = "report"
	OpEnqueue   = "enqueue"
	OpConsume   = "consume"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)

// ExpenseAttrs groups the fields of an expense record.
func ExpenseAttrs(e core.Expense) slog.Attr {
	return slog.Group("expense",
		slog.String(FieldSourceDocument, e.SourceDocument),
		slog.String(FieldRecognizer, e.RecognizerName),
		slog.String(FieldCategory, e.Category.String()),
		slog.String(FieldDate, e.Date.String()),
		slog.String(FieldAmount, e.Amount.String()),
	)
}

// Err returns the error attribute, or an empty attribute for nil.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(FieldError, err.Error())
}
