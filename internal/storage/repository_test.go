package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfexpenses/internal/core"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := NewLedger(filepath.Join(t.TempDir(), "db", "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLedgerSaveAndList(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	saal := mustExpense(t, "/in/Saal.pdf", "Saal", core.ExternalService, "10.07.2017", "11,10")
	post := mustExpense(t, "/in/Post.pdf", "Post", core.PostageCosts, "02.01.17", "3,00")
	manual := core.Expense{
		SourceDocument: "/in/scan.pdf",
		RecognizerName: core.ManualRecognizer,
		Category:       core.Undefined,
		Date:           core.ManualEntryDate,
	}

	require.NoError(t, l.Save(ctx, Record{Path: "/out/Saal.yml", Expense: saal}))
	require.NoError(t, l.Save(ctx, Record{Path: "/out/Post.yml", Expense: post}))
	require.NoError(t, l.Save(ctx, Record{Path: "/out/scan.yml", Expense: manual, Template: true}))

	entries, err := l.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "/in/scan.pdf", entries[0].Expense.SourceDocument)
	assert.True(t, post.Equal(entries[1].Expense))
	assert.True(t, saal.Equal(entries[2].Expense))
	assert.Equal(t, "/out/Saal.yml", entries[2].Path)

	templates, err := l.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "/out/scan.yml", templates[0].Path)
	assert.True(t, templates[0].Template)
	assert.True(t, templates[0].Expense.IsManual())
}

func TestLedgerSaveReplacesDocument(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	first := core.Expense{
		SourceDocument: "/in/Pixum.pdf",
		RecognizerName: "Pixum",
		Category:       core.ExternalService,
		Date:           core.ManualEntryDate,
	}
	require.NoError(t, l.Save(ctx, Record{Path: "/out/Pixum.yml", Expense: first, Template: true}))

	fixed := mustExpense(t, "/in/Pixum.pdf", "Pixum", core.ExternalService, "18.12.2016", "148,37")
	require.NoError(t, l.Save(ctx, Record{Path: "/out/Pixum.yml", Expense: fixed}))

	entries, err := l.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, fixed.Equal(entries[0].Expense))
	assert.False(t, entries[0].Template)
}

func TestLedgerRejectsInvalidRecord(t *testing.T) {
	l := newTestLedger(t)
	err := l.Save(context.Background(), Record{Path: "x.yml"})
	assert.Error(t, err)
}

func TestNewLedgerReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	l, err := NewLedger(path)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	l, err = NewLedger(path)
	require.NoError(t, err)
	require.NoError(t, l.Close())
}
