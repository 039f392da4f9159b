package recognition

import (
	"regexp"

	"pdfexpenses/internal/core"
)

var (
	anyDate = regexp.MustCompile(`\b\d{2}\.\d{2}\.(?:\d{4}|\d{2})\b`)

	// An amount within a short distance after a word introducing a total.
	totalAmount = regexp.MustCompile(
		`(?is)(?:gesamtbetrag|gesamt|endbetrag|rechnungsbetrag|summe|bruttoumsatz|total)[^\d]{0,40}?(\d{1,3}(?:\.\d{3})+,\d{2}|\d+,\d{2})`,
	)
)

// guessDate returns the first substring shaped like an invoice date that is a
// valid calendar day, or ManualEntryDate.
func guessDate(text string) (core.Date, bool) {
	for _, candidate := range anyDate.FindAllString(text, -1) {
		if d, err := core.ParseDate(candidate); err == nil {
			return d, true
		}
	}
	return core.ManualEntryDate, false
}

// guessAmount returns the last amount following a total keyword, or zero.
// Grand totals usually close an invoice, so later hits are preferred.
func guessAmount(text string) (core.Money, bool) {
	matches := totalAmount.FindAllStringSubmatch(text, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if m, err := core.ParseAmount(matches[i][1]); err == nil {
			return m, true
		}
	}
	return core.Money{}, false
}

// template builds a record for manual review. The guesses are pre-parsed so
// building a template never fails.
func template(text, sourceDocument string, hint *Recognizer) core.Expense {
	e := core.Expense{
		SourceDocument: sourceDocument,
		RecognizerName: core.ManualRecognizer,
		Category:       core.Undefined,
		Template:       true,
	}
	if hint != nil {
		e.RecognizerName = hint.Name
		e.Category = hint.Category
	}
	e.Date, _ = guessDate(text)
	e.Amount, _ = guessAmount(text)
	return e
}
