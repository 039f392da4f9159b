package core

import (
	"errors"
	"fmt"
	"strings"
)

// ManualRecognizer names records that no recognizer produced and that need
// manual review.
const ManualRecognizer = "Manual"

// Expense is one recognized expense with its provenance. Date and Amount are
// always normalized; raw invoice text never reaches this type.
//
// Template marks a record built from guesses rather than a recognizer match.
// It is only written when set, so recognized records keep the five keys.
type Expense struct {
	SourceDocument string   `yaml:"source_document"`
	RecognizerName string   `yaml:"recognizer_name"`
	Category       Category `yaml:"category"`
	Date           Date     `yaml:"date"`
	Amount         Money    `yaml:"amount"`
	Template       bool     `yaml:"template,omitempty"`
}

var (
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrEmptySourceDocument = errors.New("empty source document")
	ErrEmptyRecognizer     = errors.New("empty recognizer name")
)

// NewExpense builds a validated expense from invoice text fields. Date and
// amount text that matches no accepted format is an error.
func NewExpense(sourceDocument, recognizer string, category Category, dateText, amountText string) (Expense, error) {
	date, err := ParseDate(dateText)
	if err != nil {
		return Expense{}, err
	}
	amount, err := ParseAmount(amountText)
	if err != nil {
		return Expense{}, err
	}
	e := Expense{
		SourceDocument: sourceDocument,
		RecognizerName: recognizer,
		Category:       category,
		Date:           date,
		Amount:         amount,
	}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.SourceDocument) == "" {
		return ErrEmptySourceDocument
	}
	if strings.TrimSpace(e.RecognizerName) == "" {
		return ErrEmptyRecognizer
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidCategory, int(e.Category))
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	return nil
}

// IsManual reports whether the record still needs manual review: a template,
// hinted or not, or an entry typed in by hand.
func (e Expense) IsManual() bool {
	return e.Template || e.RecognizerName == ManualRecognizer
}

// Equal compares two expenses field by field.
func (e Expense) Equal(other Expense) bool {
	return e.SourceDocument == other.SourceDocument &&
		e.RecognizerName == other.RecognizerName &&
		e.Category == other.Category &&
		e.Date.Equal(other.Date) &&
		e.Amount == other.Amount &&
		e.Template == other.Template
}
