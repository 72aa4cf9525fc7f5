package core

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical wire format for dates. The two-digit year is
// ambiguous across centuries; it is kept as-is because every persisted
// document uses it (the document package carries a version marker for any
// future widening).
const DateLayout = "01/02/06"

// dateLayouts are accepted on input, in order of preference.
var dateLayouts = []string{DateLayout, "01/02/2006"}

// Date is a calendar day at UTC midnight.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an MM/DD/YY (or MM/DD/YYYY) string into a Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("%w: empty date", ErrMalformedInput)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t.UTC()}, nil
		}
	}
	return Date{}, fmt.Errorf("%w: invalid date %q (want MM/DD/YY)", ErrMalformedInput, s)
}

// String renders the canonical MM/DD/YY form.
func (d Date) String() string {
	return d.Time.Format(DateLayout)
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal reports whether d and other are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// Within reports whether d lies in [start, end], both boundaries inclusive.
func (d Date) Within(start, end Date) bool {
	return !d.Before(start) && !d.After(end)
}
