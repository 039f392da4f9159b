package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pdfexpenses/internal/cli"
	"pdfexpenses/internal/log"
	"pdfexpenses/internal/recognition"
	"pdfexpenses/internal/storage"
)

func newRecognizeCmd(a *app) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "recognize <text-file>",
		Short: "Recognize one text file and print its record",
		Long: `Run the recognizers against an already converted text file and print the
resulting YAML record without writing it. Useful when writing a new recognizer.

Examples:
  pdfexpenses recognize output/2017/Saal.txt
  pdfexpenses recognize --source invoices/Pixum_BEZ2017-01-03.pdf output/Pixum.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read text: %w", err)
			}
			if source == "" {
				source = args[0]
			}
			registry, err := cli.Registry(a.cfg)
			if err != nil {
				return err
			}

			res := recognition.NewExtractor(registry, nil).Recognize(string(data), source)
			if res.Template {
				log.FromContext(cmd.Context()).WithComponent(log.ComponentRecognition).Warn("Document needs manual review",
					log.ExpenseAttrs(res.Expense), log.Err(res.Cause))
			}
			body, err := storage.Encode(res.Expense)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(body)
			return err
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "source document recorded in the output (defaults to the text file)")
	return cmd
}

func newRecognizersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recognizers",
		Short: "List recognizers in matching order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := cli.Registry(a.cfg)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tCATEGORY\tSELECTOR")
			for i, r := range registry.Recognizers() {
				selector := strings.TrimPrefix(r.Selector.String(), "(?ms)")
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, r.Name, r.Category, selector)
			}
			return tw.Flush()
		},
	}
}

func newTemplatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List records awaiting manual review from the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.LedgerPath == "" {
				return fmt.Errorf("templates needs --ledger or LEDGER_PATH")
			}
			ledger, err := storage.NewLedger(a.cfg.LedgerPath)
			if err != nil {
				return err
			}
			defer ledger.Close()

			entries, err := ledger.ListTemplates(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(out, "%s\t%s\n", e.Path, e.Expense.RecognizerName)
			}
			fmt.Fprintf(out, "%d templates\n", len(entries))
			return nil
		},
	}
}
