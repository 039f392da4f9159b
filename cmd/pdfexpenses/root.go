package main

import (
	"github.com/spf13/cobra"

	"pdfexpenses/internal/config"
	"pdfexpenses/internal/log"
)

var version = "dev"

// app carries the resolved configuration into subcommands. The logger
// travels in the command context.
type app struct {
	cfg   *config.Config
	force bool
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Load()}

	root := &cobra.Command{
		Use:   "pdfexpenses",
		Short: "Extract expenses from vendor invoice PDFs",
		Long: `pdfexpenses converts invoice PDFs to text, recognizes the vendor, date and
amount of each invoice and writes one YAML record per document. Invoices no
recognizer understands become templates for manual review. A report sums all
records into a spreadsheet.

Settings come from the environment (or .env) and can be overridden by flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			logCfg := log.DefaultConfig()
			logCfg.Level = a.cfg.SlogLevel()
			logCfg.Output = cmd.ErrOrStderr()
			logger := log.New(logCfg)
			log.SetDefault(logger)
			cmd.SetContext(log.WithLogger(cmd.Context(), logger))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.InputDir, "input", a.cfg.InputDir, "directory searched for invoice PDFs")
	flags.StringVar(&a.cfg.OutputDir, "output", a.cfg.OutputDir, "directory receiving text and record files")
	flags.StringVar(&a.cfg.ReportPath, "report", a.cfg.ReportPath, "report file path")
	flags.StringVar(&a.cfg.ReportFormat, "format", a.cfg.ReportFormat, "report format: xlsx, csv or sheets")
	flags.StringVar(&a.cfg.TextBackend, "backend", a.cfg.TextBackend, "text backend: pdftotext or native")
	flags.IntVar(&a.cfg.Concurrency, "concurrency", a.cfg.Concurrency, "documents processed in parallel")
	flags.StringVar(&a.cfg.LedgerPath, "ledger", a.cfg.LedgerPath, "optional SQLite ledger path")
	flags.StringVar(&a.cfg.RecognizersFile, "recognizers", a.cfg.RecognizersFile, "YAML file with additional recognizers")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "debug, info, warn or error")

	root.AddCommand(
		newRunCmd(a),
		newExtractCmd(a),
		newReportCmd(a),
		newRecognizeCmd(a),
		newRecognizersCmd(a),
		newTemplatesCmd(a),
		newEnqueueCmd(a),
	)
	return root
}
