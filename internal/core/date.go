package core

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	isoLayout        = "2006-01-02"
	localeLayout     = "02.01.2006"
	localeLayoutYY   = "02.01.06"
	localeDateLength = len(localeLayout)
)

// ManualEntryDate marks a record whose date could not be recovered and has to
// be entered by hand.
var ManualEntryDate = NewDate(1900, 1, 1)

// Date is a calendar date without time of day, stored as UTC midnight.
type Date struct {
	time.Time
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts the invoice formats DD.MM.YY and DD.MM.YYYY as well as the
// ISO form YYYY-MM-DD. Two-digit years 69-99 map to 19xx, 00-68 to 20xx.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)

	var layout string
	switch {
	case len(s) == localeDateLength && strings.Count(s, ".") == 2:
		layout = localeLayout
	case len(s) == len(localeLayoutYY) && strings.Count(s, ".") == 2:
		layout = localeLayoutYY
	case len(s) == len(isoLayout) && strings.Count(s, "-") == 2:
		layout = isoLayout
	default:
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewDate(t.Year(), int(t.Month()), t.Day()), nil
}

// Validate checks that the date is set.
func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: date cannot be zero", ErrInvalidDate)
	}
	return nil
}

// Equal reports whether both dates denote the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// Before reports whether d is an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// String returns the ISO representation YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(isoLayout)
}

// Locale returns the German representation DD.MM.YYYY.
func (d Date) Locale() string {
	return d.Format(localeLayout)
}

func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseDate(node.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
