package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"pdfexpenses/internal/amqp"
	"pdfexpenses/internal/cache"
	"pdfexpenses/internal/pdftext"
	"pdfexpenses/internal/pipeline"
	"pdfexpenses/internal/recognition"
)

// ExtractionWorker handles document jobs from the queue, one document per job.
type ExtractionWorker struct {
	converter pdftext.Converter
	extractor *recognition.Extractor
	recent    *cache.RecentSet

	handled    atomic.Int64
	duplicates atomic.Int64
}

func NewExtractionWorker(converter pdftext.Converter, extractor *recognition.Extractor, recent *cache.RecentSet) *ExtractionWorker {
	return &ExtractionWorker{
		converter: converter,
		extractor: extractor,
		recent:    recent,
	}
}

// HandleJob converts and recognizes the job's document when its outputs are
// stale. A job for a PDF version already handled within the recent window is
// acknowledged without work. A missing or unconvertible document fails with
// amqp.ErrPermanent.
func (w *ExtractionWorker) HandleJob(ctx context.Context, job *amqp.DocumentJob) error {
	info, err := os.Stat(job.PDFPath)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: stat document: %w", amqp.ErrPermanent, err)
	}
	if err != nil {
		return fmt.Errorf("stat document: %w", err)
	}
	version := info.ModTime()

	if w.recent != nil && job.Force {
		w.recent.Forget(job.RecordPath)
	}
	if w.recent != nil && !job.Force && w.recent.Seen(job.RecordPath, version) {
		w.duplicates.Add(1)
		slog.DebugContext(ctx, "Skipping recently handled document",
			"pdf_path", job.PDFPath,
			"record_path", job.RecordPath)
		return nil
	}

	runner := &pipeline.Runner{
		Converter:   w.converter,
		Extractor:   w.extractor,
		Concurrency: 1,
		Force:       job.Force,
	}
	doc := pipeline.Document{PDFPath: job.PDFPath, TextPath: job.TextPath, RecordPath: job.RecordPath}
	sum, err := runner.Run(ctx, []pipeline.Document{doc})
	if err != nil && ctx.Err() == nil && errors.Is(err, pipeline.ErrConvert) {
		return fmt.Errorf("%w: process document job: %w", amqp.ErrPermanent, err)
	}
	if err != nil {
		return fmt.Errorf("process document job: %w", err)
	}

	if w.recent != nil {
		w.recent.Mark(job.RecordPath, version)
	}
	w.handled.Add(1)

	slog.InfoContext(ctx, "Document job handled",
		"pdf_path", job.PDFPath,
		"converted", sum.Converted > 0,
		"recognized", sum.Recognized > 0,
		"template", len(sum.Templates) > 0,
		"queued_at", job.Timestamp)
	return nil
}

// Stats returns the number of handled and duplicate jobs.
func (w *ExtractionWorker) Stats() (handled, duplicates int64) {
	return w.handled.Load(), w.duplicates.Load()
}
