// Command pdfexpenses turns a folder of vendor invoice PDFs into expense
// records and an expense report.
package main

import (
	"os"

	"pdfexpenses/internal/cli"
)

func main() {
	cli.LoadEnvFile()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
