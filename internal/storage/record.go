package storage

import (
	"context"
	"errors"

	"pdfexpenses/internal/core"
)

// Record is an expense persisted at a location, usually a YAML file path.
type Record struct {
	Path     string
	Expense  core.Expense
	Template bool
}

// Writer persists expense records.
type Writer interface {
	Save(ctx context.Context, rec Record) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(ctx context.Context, rec Record) error

func (f WriterFunc) Save(ctx context.Context, rec Record) error {
	return f(ctx, rec)
}

// Tee saves every record to all writers in order. Nil writers are skipped.
func Tee(writers ...Writer) Writer {
	return WriterFunc(func(ctx context.Context, rec Record) error {
		var errs []error
		for _, w := range writers {
			if w == nil {
				continue
			}
			if err := w.Save(ctx, rec); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
