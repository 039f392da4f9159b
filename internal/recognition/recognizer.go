// Package recognition turns invoice text into expense records using an
// ordered list of per-vendor recognizers.
package recognition

import (
	"fmt"
	"regexp"

	"pdfexpenses/internal/core"
)

const (
	groupDate   = "date"
	groupAmount = "amount"

	// Patterns search the whole text as one buffer: ^ and $ anchor at line
	// boundaries and . also matches newlines.
	textFlags = "(?ms)"
)

// Recognizer detects invoices of one vendor and extracts their fields.
//
// The selector only decides applicability. The extractor carries the named
// groups "date" and "amount" and is matched once the selector succeeded.
type Recognizer struct {
	Name      string
	Category  core.Category
	Selector  *regexp.Regexp
	Extractor *regexp.Regexp
}

// NewRecognizer compiles selector and extractor patterns.
func NewRecognizer(name string, category core.Category, selector, extractor string) (*Recognizer, error) {
	if name == "" {
		return nil, core.ErrEmptyRecognizer
	}
	if !category.Valid() {
		return nil, fmt.Errorf("recognizer %q: %w: %d", name, core.ErrInvalidCategory, int(category))
	}
	sel, err := regexp.Compile(textFlags + selector)
	if err != nil {
		return nil, fmt.Errorf("recognizer %q: compile selector: %w", name, err)
	}
	ext, err := regexp.Compile(textFlags + extractor)
	if err != nil {
		return nil, fmt.Errorf("recognizer %q: compile extractor: %w", name, err)
	}
	for _, group := range []string{groupDate, groupAmount} {
		if ext.SubexpIndex(group) < 0 {
			return nil, fmt.Errorf("recognizer %q: %w %q", name, ErrMissingGroup, group)
		}
	}
	return &Recognizer{
		Name:      name,
		Category:  category,
		Selector:  sel,
		Extractor: ext,
	}, nil
}

// MustRecognizer is like NewRecognizer but panics on invalid patterns.
func MustRecognizer(name string, category core.Category, selector, extractor string) *Recognizer {
	r, err := NewRecognizer(name, category, selector, extractor)
	if err != nil {
		panic(err)
	}
	return r
}

// Match reports whether the selector occurs anywhere in text.
func (r *Recognizer) Match(text string) bool {
	return r.Selector.MatchString(text)
}

// Extract pulls date and amount from text and tags the record with this
// recognizer. A payment-date tag in sourceDocument overrides the extracted
// date.
func (r *Recognizer) Extract(text, sourceDocument string) (core.Expense, error) {
	m := r.Extractor.FindStringSubmatch(text)
	if m == nil {
		return core.Expense{}, &RecognitionFailedError{Name: r.Name}
	}

	e, err := core.NewExpense(
		sourceDocument,
		r.Name,
		r.Category,
		m[r.Extractor.SubexpIndex(groupDate)],
		m[r.Extractor.SubexpIndex(groupAmount)],
	)
	if err != nil {
		return core.Expense{}, fmt.Errorf("recognizer %q: %w", r.Name, err)
	}

	e, _ = ApplyPaymentDate(e)
	return e, nil
}
