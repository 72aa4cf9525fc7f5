package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Planned EntryType = "planned"
	Actual  EntryType = "actual"

	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// EntryType marks an entry as a plan figure or a realized one.
	EntryType string

	// Kind partitions entries into income and expense for reporting.
	Kind string

	// Entry is one dated financial record. Entries exist only inside a
	// Budget and are immutable once appended.
	Entry struct {
		Type     EntryType
		Kind     Kind
		Category string
		Date     Date
		Amount   Money
	}

	// Budget is a named ledger bounded by a strict start/end date window.
	// The entry sequence is append-only and preserves insertion order.
	Budget struct {
		Name        string
		Description string
		Start       Date
		End         Date
		Entries     []Entry
	}
)

var (
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrDateOutOfRange   = errors.New("date out of budget range")
	ErrNegativeAmount   = errors.New("negative amount")
	ErrMalformedInput   = errors.New("malformed input")
	ErrNotFound         = errors.New("budget not found")
	ErrCorruptDocument  = errors.New("corrupt budget document")
)

// NormalizeKind maps a raw kind string to Income or Expense. Any string
// whose first letter is "i" (case-insensitive) is income, everything else
// is expense. This rule is canonical and applied exactly once, when an
// entry is created.
func NormalizeKind(raw string) Kind {
	if strings.HasPrefix(strings.ToLower(raw), "i") {
		return Income
	}
	return Expense
}

// ParseEntryType maps a raw type string to Planned or Actual. "budget" is
// accepted as a synonym for planned, matching the domain's budget_entry /
// actual_entry vocabulary.
func ParseEntryType(raw string) (EntryType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "planned", "budget":
		return Planned, nil
	case "actual":
		return Actual, nil
	default:
		return "", fmt.Errorf("%w: entry type %q (want planned or actual)", ErrMalformedInput, raw)
	}
}

// NewBudget creates an empty budget. The name must be non-empty and the
// window strict: start before end.
func NewBudget(name, description string, start, end Date) (*Budget, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: budget name required", ErrMalformedInput)
	}
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: missing start or end date", ErrInvalidDateRange)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidDateRange, start, end)
	}
	return &Budget{
		Name:        name,
		Description: description,
		Start:       start,
		End:         end,
	}, nil
}

// AddEntry validates and appends a new entry. This is the only mutator of
// the entry sequence. The date must lie within the budget window, both
// boundaries inclusive; the amount must be non-negative (zero allowed).
// The raw kind is normalized here and never recomputed.
func (b *Budget) AddEntry(entryType EntryType, kind, category string, date Date, amount Money) (Entry, error) {
	switch entryType {
	case Planned, Actual:
	default:
		return Entry{}, fmt.Errorf("%w: entry type %q", ErrMalformedInput, entryType)
	}
	if !date.Within(b.Start, b.End) {
		return Entry{}, fmt.Errorf("%w: %s outside [%s, %s]", ErrDateOutOfRange, date, b.Start, b.End)
	}
	if amount.Cents < 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	e := Entry{
		Type:     entryType,
		Kind:     NormalizeKind(kind),
		Category: category,
		Date:     date,
		Amount:   amount,
	}
	b.Entries = append(b.Entries, e)
	return e, nil
}
