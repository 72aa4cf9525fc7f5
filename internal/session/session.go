// Package session holds the state of one interactive budgeting session: the
// active budget and the document store it saves to. The command shell owns
// no budget of its own; every operation goes through a Session, which keeps
// the core free of ambient state.
package session

import (
	"context"
	"errors"
	"fmt"

	"budgetbook/internal/core"
	"budgetbook/internal/document"
	"budgetbook/internal/log"
	"budgetbook/internal/report"
	"budgetbook/internal/store"
)

// ErrNoBudget is returned by operations that need an active budget before
// one has been created or loaded.
var ErrNoBudget = errors.New("no active budget")

// Session is single-writer: callers embedding it in a concurrent system
// must serialize access themselves.
type Session struct {
	store  store.Store
	logger *log.Logger
	budget *core.Budget
}

func New(s store.Store, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Session{
		store:  s,
		logger: logger.WithComponent("session"),
	}
}

// Budget returns the active budget, or nil when none is loaded.
func (s *Session) Budget() *core.Budget {
	return s.budget
}

// Create parses the date strings and installs a fresh empty budget as the
// active one. Either date failing to parse is an invalid range here, not
// malformed input: the whole window is rejected as a unit.
func (s *Session) Create(name, description, startStr, endStr string) (*core.Budget, error) {
	start, err := core.ParseDate(startStr)
	if err != nil {
		return nil, fmt.Errorf("%w: start date %q", core.ErrInvalidDateRange, startStr)
	}
	end, err := core.ParseDate(endStr)
	if err != nil {
		return nil, fmt.Errorf("%w: end date %q", core.ErrInvalidDateRange, endStr)
	}
	b, err := core.NewBudget(name, description, start, end)
	if err != nil {
		return nil, err
	}
	s.budget = b
	s.logger.Info("Budget created", "name", b.Name, "start", b.Start.String(), "end", b.End.String())
	return b, nil
}

// AddEntry parses the raw field strings and appends a validated entry to
// the active budget.
func (s *Session) AddEntry(typeStr, kind, category, dateStr, amountStr string) (core.Entry, error) {
	if s.budget == nil {
		return core.Entry{}, ErrNoBudget
	}
	entryType, err := core.ParseEntryType(typeStr)
	if err != nil {
		return core.Entry{}, err
	}
	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Entry{}, err
	}
	amount, err := core.ParseAmount(amountStr)
	if err != nil {
		return core.Entry{}, err
	}
	e, err := s.budget.AddEntry(entryType, kind, category, date, amount)
	if err != nil {
		return core.Entry{}, err
	}
	s.logger.Debug("Entry added",
		"budget", s.budget.Name,
		"type", string(e.Type),
		"kind", string(e.Kind),
		"category", e.Category,
		"date", e.Date.String(),
		"amount", e.Amount.String())
	return e, nil
}

// Save encodes the active budget and writes it to the store as one
// whole-document snapshot.
func (s *Session) Save(ctx context.Context) error {
	if s.budget == nil {
		return ErrNoBudget
	}
	doc, err := document.Encode(s.budget)
	if err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	if err := s.store.Put(ctx, s.budget.Name, doc); err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	s.logger.Info("Budget saved", "name", s.budget.Name, "entries", len(s.budget.Entries))
	return nil
}

// Load fetches and decodes the named budget and installs it as the active
// one. On any failure the previously active budget stays current; a partial
// document is never installed.
func (s *Session) Load(ctx context.Context, name string) (*core.Budget, error) {
	doc, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load budget: %w", err)
	}
	b, err := document.Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("load budget %q: %w", name, err)
	}
	s.budget = b
	s.logger.Info("Budget loaded", "name", b.Name, "entries", len(b.Entries))
	return b, nil
}

// Names lists the budgets present in the store.
func (s *Session) Names(ctx context.Context) ([]string, error) {
	return s.store.Names(ctx)
}

// Report generates a variance report over [startStr, endStr]. The range
// need not lie within the budget period; entries outside it are excluded.
func (s *Session) Report(startStr, endStr string) (report.Report, error) {
	if s.budget == nil {
		return report.Report{}, ErrNoBudget
	}
	start, err := core.ParseDate(startStr)
	if err != nil {
		return report.Report{}, fmt.Errorf("%w: start date %q", core.ErrInvalidDateRange, startStr)
	}
	end, err := core.ParseDate(endStr)
	if err != nil {
		return report.Report{}, fmt.Errorf("%w: end date %q", core.ErrInvalidDateRange, endStr)
	}
	return report.Generate(s.budget, start, end), nil
}

// ReportFull generates a variance report over the budget's whole period.
func (s *Session) ReportFull() (report.Report, error) {
	if s.budget == nil {
		return report.Report{}, ErrNoBudget
	}
	return report.Generate(s.budget, s.budget.Start, s.budget.End), nil
}
