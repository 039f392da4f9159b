package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"pdfexpenses/internal/core"

	_ "modernc.org/sqlite"
)

// Ledger indexes persisted records in SQLite, one row per source document.
// It lets reports and template reviews run without walking the output tree.
type Ledger struct {
	db *sql.DB
}

var _ Writer = (*Ledger)(nil)

// LedgerEntry is one indexed record.
type LedgerEntry struct {
	Record
	UpdatedAt string
}

func NewLedger(dbPath string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

const upsertExpense = `
INSERT INTO expenses (source_document, recognizer_name, category, expense_date, amount_cents, record_path, template, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (source_document) DO UPDATE SET
    recognizer_name = excluded.recognizer_name,
    category        = excluded.category,
    expense_date    = excluded.expense_date,
    amount_cents    = excluded.amount_cents,
    record_path     = excluded.record_path,
    template        = excluded.template,
    updated_at      = CURRENT_TIMESTAMP`

// Save implements Writer. Re-recognizing a document replaces its row.
func (l *Ledger) Save(ctx context.Context, rec Record) error {
	e := rec.Expense
	if err := e.Validate(); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}

	_, err := l.db.ExecContext(ctx, upsertExpense,
		e.SourceDocument,
		e.RecognizerName,
		int(e.Category),
		e.Date.String(),
		e.Amount.Cents,
		rec.Path,
		rec.Template || e.Template,
	)
	if err != nil {
		return fmt.Errorf("upsert expense: %w", err)
	}

	slog.DebugContext(ctx, "Expense indexed in ledger",
		"source_document", e.SourceDocument,
		"record_path", rec.Path,
		"template", rec.Template)
	return nil
}

const selectExpenses = `
SELECT source_document, recognizer_name, category, expense_date, amount_cents, record_path, template, updated_at
FROM expenses`

// ListExpenses returns all indexed records ordered by date.
func (l *Ledger) ListExpenses(ctx context.Context) ([]LedgerEntry, error) {
	return l.query(ctx, selectExpenses+` ORDER BY expense_date, source_document`)
}

// ListTemplates returns records awaiting manual review ordered by path.
func (l *Ledger) ListTemplates(ctx context.Context) ([]LedgerEntry, error) {
	return l.query(ctx, selectExpenses+` WHERE template = 1 ORDER BY record_path`)
}

func (l *Ledger) query(ctx context.Context, query string, args ...any) ([]LedgerEntry, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []LedgerEntry
	for rows.Next() {
		var (
			entry    LedgerEntry
			category int
			date     string
		)
		if err := rows.Scan(
			&entry.Expense.SourceDocument,
			&entry.Expense.RecognizerName,
			&category,
			&date,
			&entry.Expense.Amount.Cents,
			&entry.Path,
			&entry.Template,
			&entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		entry.Expense.Category = core.Category(category)
		entry.Expense.Template = entry.Template
		if entry.Expense.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("scan expense %s: %w", entry.Expense.SourceDocument, err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}
