// Package report aggregates expense records into a tabular report and writes
// it to spreadsheet destinations.
package report

import (
	"context"
	"sort"

	"pdfexpenses/internal/core"
)

// Column headers in output order.
var Header = []string{"Category", "Document Type", "Date", "Amount", "Source Document"}

// TotalLabel marks the trailing aggregate row.
const TotalLabel = "Total"

// Row is one expense line of the report.
type Row struct {
	Category       core.Category
	RecognizerName string
	Date           core.Date
	Amount         core.Money
	SourceDocument string
}

// Report is an ordered list of expense rows with their sum.
type Report struct {
	Rows       []Row
	Total      core.Money
	ByCategory []core.CategoryAmount
	// Manual counts rows that still need manual review.
	Manual int
}

// Writer outputs a report to a destination.
type Writer interface {
	Write(ctx context.Context, r Report) error
}

// Build orders expenses ascending by date, ties broken by source document,
// and sums their amounts exactly.
func Build(expenses []core.Expense) Report {
	r := Report{}
	rows := make([]Row, len(expenses))
	for i, e := range expenses {
		if e.IsManual() {
			r.Manual++
		}
		rows[i] = Row{
			Category:       e.Category,
			RecognizerName: e.RecognizerName,
			Date:           e.Date,
			Amount:         e.Amount,
			SourceDocument: e.SourceDocument,
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].SourceDocument < rows[j].SourceDocument
	})

	r.Rows = rows
	byCategory := map[core.Category]*core.CategoryAmount{}
	for _, row := range rows {
		r.Total = r.Total.Add(row.Amount)
		ca, ok := byCategory[row.Category]
		if !ok {
			ca = &core.CategoryAmount{Category: row.Category}
			byCategory[row.Category] = ca
		}
		ca.Amount = ca.Amount.Add(row.Amount)
		ca.Count++
	}
	for _, c := range core.Categories() {
		if ca, ok := byCategory[c]; ok {
			r.ByCategory = append(r.ByCategory, *ca)
		}
	}
	return r
}

// Values renders the report as a matrix of display strings including the
// header and the total row.
func (r Report) Values() [][]string {
	out := make([][]string, 0, len(r.Rows)+2)
	out = append(out, append([]string(nil), Header...))
	for _, row := range r.Rows {
		out = append(out, []string{
			row.Category.String(),
			row.RecognizerName,
			row.Date.String(),
			row.Amount.String(),
			row.SourceDocument,
		})
	}
	out = append(out, []string{TotalLabel, "", "", r.Total.String(), ""})
	return out
}
