package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"pdfexpenses/internal/pdftext"
	"pdfexpenses/internal/recognition"
	"pdfexpenses/internal/report"
	"pdfexpenses/internal/storage"
)

// ErrConvert wraps failures of the PDF to text conversion.
var ErrConvert = errors.New("convert")

// Summary counts what a run did.
type Summary struct {
	Documents  int
	Converted  int
	Recognized int
	Skipped    int
	Templates  []string
}

// Runner converts and recognizes documents. Text is regenerated when older
// than its PDF and records when older than their text, unless Force is set.
type Runner struct {
	Converter   pdftext.Converter
	Extractor   *recognition.Extractor
	Concurrency int
	Force       bool
}

func (r *Runner) limit() int {
	if r.Concurrency > 0 {
		return r.Concurrency
	}
	return runtime.NumCPU()
}

// Run processes docs with bounded parallelism. The first I/O failure cancels
// the remaining work and is returned.
func (r *Runner) Run(ctx context.Context, docs []Document) (Summary, error) {
	var (
		mu  sync.Mutex
		sum = Summary{Documents: len(docs)}
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit())
	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			step, err := r.process(ctx, doc)
			if err != nil {
				return fmt.Errorf("%s: %w", doc.PDFPath, err)
			}
			mu.Lock()
			defer mu.Unlock()
			if step.converted {
				sum.Converted++
			}
			switch {
			case step.recognized:
				sum.Recognized++
				if step.template {
					sum.Templates = append(sum.Templates, doc.RecordPath)
				}
			default:
				sum.Skipped++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}
	sort.Strings(sum.Templates)

	slog.InfoContext(ctx, "Pipeline finished",
		"documents", sum.Documents,
		"converted", sum.Converted,
		"recognized", sum.Recognized,
		"skipped", sum.Skipped,
		"templates", len(sum.Templates))
	return sum, nil
}

type stepResult struct {
	converted  bool
	recognized bool
	template   bool
}

func (r *Runner) process(ctx context.Context, doc Document) (stepResult, error) {
	var res stepResult

	stale, err := pdftext.Stale(doc.PDFPath, doc.TextPath)
	if err != nil {
		return res, err
	}
	if stale || r.Force {
		if err := r.Converter.Convert(ctx, doc.PDFPath, doc.TextPath); err != nil {
			return res, fmt.Errorf("%w: %w", ErrConvert, err)
		}
		res.converted = true
	}

	if !res.converted {
		stale, err = pdftext.Stale(doc.TextPath, doc.RecordPath)
		if err != nil {
			return res, err
		}
		if !stale {
			slog.DebugContext(ctx, "Record up to date", "record_path", doc.RecordPath)
			return res, nil
		}
	}

	out, err := r.Extractor.RecognizeFile(ctx, doc.TextPath, doc.RecordPath, doc.PDFPath)
	if err != nil {
		return res, err
	}
	res.recognized = true
	res.template = out.Template
	return res, nil
}

// Report loads the records at recordPaths, builds the report and writes it.
func Report(ctx context.Context, recordPaths []string, w report.Writer) (report.Report, error) {
	expenses, err := storage.NewYAMLStore().ReadAll(recordPaths)
	if err != nil {
		return report.Report{}, fmt.Errorf("load records: %w", err)
	}
	rep := report.Build(expenses)
	if err := w.Write(ctx, rep); err != nil {
		return rep, fmt.Errorf("write report: %w", err)
	}
	return rep, nil
}
