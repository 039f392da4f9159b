package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pdfexpenses/internal/cli"
	"pdfexpenses/internal/log"
	"pdfexpenses/internal/pipeline"
	"pdfexpenses/internal/recognition"
)

func newExtractCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Convert and recognize all PDFs without writing the report",
		Long: `Convert every PDF below the input directory to text and recognize it.
Only out-of-date text and record files are regenerated unless --force is set.

Examples:
  pdfexpenses extract --input ~/invoices/2017 --output ~/expenses/2017
  pdfexpenses extract --force --backend native`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := cli.SignalContext(cmd.Context())
			defer stop()
			_, _, err := a.extract(ctx, cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().BoolVar(&a.force, "force", false, "regenerate all text and record files")
	return cmd
}

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Extract all PDFs and write the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := cli.SignalContext(cmd.Context())
			defer stop()
			_, docs, err := a.extract(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return a.writeReport(ctx, cmd.OutOrStdout(), pipeline.RecordPaths(docs))
		},
	}
	cmd.Flags().BoolVar(&a.force, "force", false, "regenerate all text and record files")
	return cmd
}

// discover lists the documents below the input directory.
func (a *app) discover() ([]pipeline.Document, error) {
	pdfs, err := pipeline.Discover(a.cfg.InputDir)
	if err != nil {
		return nil, err
	}
	layout := pipeline.Layout{InputDir: a.cfg.InputDir, OutputDir: a.cfg.OutputDir}
	return layout.Documents(pdfs)
}

func (a *app) extract(ctx context.Context, out io.Writer) (pipeline.Summary, []pipeline.Document, error) {
	logger := log.FromContext(ctx).WithComponent(log.ComponentPipeline)

	docs, err := a.discover()
	if err != nil {
		return pipeline.Summary{}, nil, err
	}
	registry, err := cli.Registry(a.cfg)
	if err != nil {
		return pipeline.Summary{}, nil, err
	}
	writer, closeWriter, err := cli.RecordWriter(a.cfg)
	if err != nil {
		return pipeline.Summary{}, nil, err
	}
	defer closeWriter()
	converter, err := cli.Converter(a.cfg)
	if err != nil {
		return pipeline.Summary{}, nil, err
	}

	logger.InfoContext(ctx, "Extracting documents",
		"documents", len(docs),
		"recognizers", registry.Len(),
		log.FieldOperation, log.OpExtract)

	runner := &pipeline.Runner{
		Converter:   converter,
		Extractor:   recognition.NewExtractor(registry, writer),
		Concurrency: a.cfg.Concurrency,
		Force:       a.force,
	}
	sum, err := runner.Run(ctx, docs)
	if err != nil {
		return sum, docs, err
	}
	printSummary(out, sum)
	return sum, docs, nil
}

func printSummary(out io.Writer, sum pipeline.Summary) {
	fmt.Fprintf(out, "%d documents: %d converted, %d recognized, %d up to date\n",
		sum.Documents, sum.Converted, sum.Recognized, sum.Skipped)
	if len(sum.Templates) == 0 {
		return
	}
	fmt.Fprintf(out, "%d templates need manual review:\n", len(sum.Templates))
	for _, path := range sum.Templates {
		fmt.Fprintf(out, "  %s\n", path)
	}
}
