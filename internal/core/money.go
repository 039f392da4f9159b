// Package core provides the expense record model and its locale-aware parsing.
//
// This file contains functions for parsing monetary amounts from invoice text
// and converting between cents and their decimal representation.
package core

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Money is an exact monetary value in cents.
type Money struct {
	Cents int64
}

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)

	// 1234,56 | 1.234,56 | 1234.56 | 1234
	commaAmount   = regexp.MustCompile(`^\d+(,\d{1,2})?$`)
	groupedAmount = regexp.MustCompile(`^\d{1,3}(\.\d{3})+,\d{1,2}$`)
	dotAmount     = regexp.MustCompile(`^\d+\.\d{1,2}$`)
)

// ParseAmount converts invoice amount text to Money.
//
// It accepts a comma decimal separator ("45,69"), dot thousands grouping
// together with a comma ("1.234,56") and the canonical dot form ("45.69").
// At most two fractional digits are accepted; a lone dot followed by three
// digits ("1.234") is ambiguous and rejected.
//
// Examples:
//
//	ParseAmount("11,10")    -> 1110
//	ParseAmount("1.234,56") -> 123456
//	ParseAmount("3.00")     -> 300
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)

	var normalized string
	switch {
	case commaAmount.MatchString(s):
		normalized = strings.Replace(s, ",", ".", 1)
	case groupedAmount.MatchString(s):
		normalized = strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
	case dotAmount.MatchString(s):
		normalized = s
	default:
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	cents := d.Mul(hundred)
	if cents.GreaterThan(maxCents) {
		return Money{}, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}
	return Money{Cents: cents.IntPart()}, nil
}

// Decimal returns the value in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Euros returns the value as a float64 for display purposes only, such as
// spreadsheet cells. Use cents for calculations.
func (m Money) Euros() float64 {
	return m.Decimal().InexactFloat64()
}

// Add returns the sum of m and other.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// String renders the amount with two decimals and a dot separator.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Locale renders the amount with a comma decimal separator.
func (m Money) Locale() string {
	return strings.Replace(m.String(), ".", ",", 1)
}

func (m Money) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

func (m *Money) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseAmount(node.Value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
