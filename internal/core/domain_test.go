package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpense(t *testing.T) {
	e, err := NewExpense("q:/invoices/Saal.pdf", "Saal", ExternalService, "10.07.2017", "11,10")
	require.NoError(t, err)

	assert.Equal(t, "q:/invoices/Saal.pdf", e.SourceDocument)
	assert.Equal(t, "Saal", e.RecognizerName)
	assert.Equal(t, ExternalService, e.Category)
	assert.True(t, NewDate(2017, 7, 10).Equal(e.Date))
	assert.Equal(t, Money{Cents: 1110}, e.Amount)
	assert.False(t, e.IsManual())
}

func TestNewExpenseRejectsRawText(t *testing.T) {
	_, err := NewExpense("a.pdf", "Saal", ExternalService, "July 10th", "11,10")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = NewExpense("a.pdf", "Saal", ExternalService, "10.07.2017", "eleven")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewExpense("", "Saal", ExternalService, "10.07.2017", "11,10")
	assert.ErrorIs(t, err, ErrEmptySourceDocument)

	_, err = NewExpense("a.pdf", "", ExternalService, "10.07.2017", "11,10")
	assert.ErrorIs(t, err, ErrEmptyRecognizer)

	_, err = NewExpense("a.pdf", "Saal", Category(42), "10.07.2017", "11,10")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		SourceDocument: "a.pdf",
		RecognizerName: ManualRecognizer,
		Category:       Undefined,
		Date:           ManualEntryDate,
	}
	require.NoError(t, good.Validate())
	assert.True(t, good.IsManual())

	hinted := Expense{
		SourceDocument: "a.pdf",
		RecognizerName: "Saal",
		Category:       ExternalService,
		Date:           NewDate(2017, 7, 10),
		Template:       true,
	}
	require.NoError(t, hinted.Validate())
	assert.True(t, hinted.IsManual())

	bad := good
	bad.Date = Date{}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidDate)
}

func TestExpenseEqual(t *testing.T) {
	a, err := NewExpense("a.pdf", "Post", PostageCosts, "02.01.17", "3,00")
	require.NoError(t, err)
	b, err := NewExpense("a.pdf", "Post", PostageCosts, "2017-01-02", "3.00")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	b.Amount = Money{Cents: 301}
	assert.False(t, a.Equal(b))
}
