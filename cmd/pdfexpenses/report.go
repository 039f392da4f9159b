package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pdfexpenses/internal/cli"
	"pdfexpenses/internal/core"
	"pdfexpenses/internal/log"
	"pdfexpenses/internal/pipeline"
	"pdfexpenses/internal/report"
	"pdfexpenses/internal/storage"
)

func newReportCmd(a *app) *cobra.Command {
	var fromLedger bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the expense report from existing records",
		Long: `Build the report from the record files of all PDFs below the input directory,
or from the SQLite ledger with --from-ledger.

Examples:
  pdfexpenses report --report expenses.xlsx
  pdfexpenses report --format csv --report expenses.csv
  pdfexpenses report --format sheets --from-ledger --ledger data/ledger.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if fromLedger {
				return a.writeLedgerReport(ctx, cmd.OutOrStdout())
			}
			docs, err := a.discover()
			if err != nil {
				return err
			}
			return a.writeReport(ctx, cmd.OutOrStdout(), pipeline.RecordPaths(docs))
		},
	}
	cmd.Flags().BoolVar(&fromLedger, "from-ledger", false, "read expenses from the ledger instead of record files")
	return cmd
}

func (a *app) writeReport(ctx context.Context, out io.Writer, recordPaths []string) error {
	w, err := cli.ReportWriter(ctx, a.cfg)
	if err != nil {
		return err
	}
	rep, err := pipeline.Report(ctx, recordPaths, w)
	if err != nil {
		return err
	}
	printReport(out, a.cfg.ReportTarget(), rep)
	return nil
}

func (a *app) writeLedgerReport(ctx context.Context, out io.Writer) error {
	if a.cfg.LedgerPath == "" {
		return fmt.Errorf("--from-ledger needs --ledger or LEDGER_PATH")
	}
	ledger, err := storage.NewLedger(a.cfg.LedgerPath)
	if err != nil {
		return err
	}
	defer ledger.Close()

	entries, err := ledger.ListExpenses(ctx)
	if err != nil {
		return err
	}
	expenses := make([]core.Expense, len(entries))
	for i, e := range entries {
		expenses[i] = e.Expense
	}

	w, err := cli.ReportWriter(ctx, a.cfg)
	if err != nil {
		return err
	}
	rep := report.Build(expenses)
	if err := w.Write(ctx, rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.FromContext(ctx).WithComponent(log.ComponentReport).InfoContext(ctx, "Report built from ledger", "rows", len(rep.Rows))
	printReport(out, a.cfg.ReportTarget(), rep)
	return nil
}

func printReport(out io.Writer, target string, rep report.Report) {
	fmt.Fprintf(out, "Report with %d expenses, total %s EUR written to %s\n",
		len(rep.Rows), rep.Total.Locale(), target)
	for _, c := range rep.ByCategory {
		fmt.Fprintf(out, "  %-18s %3d  %12s\n", c.Category, c.Count, c.Amount.Locale())
	}
	if rep.Manual > 0 {
		fmt.Fprintf(out, "%d expenses still need manual review\n", rep.Manual)
	}
}
