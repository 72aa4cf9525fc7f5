// Package report turns a budget ledger into a budgeted-vs-actual variance
// report over a caller-supplied date range.
//
// Generation is read-only: it never mutates the budget and the same inputs
// always produce the same numbers. All arithmetic runs on cents; only the
// variance percentages are floats.
package report

import (
	"budgetbook/internal/core"
)

// Percent is a variance percentage. It is not-meaningful (Valid false) when
// the budgeted denominator is not strictly positive; that is a sentinel, not
// an error, and never rendered as 0%.
type Percent struct {
	Valid bool
	Value float64
}

// Line is the variance for a single category within a group.
type Line struct {
	Category  string
	Budgeted  core.Money
	Actual    core.Money
	Variance  core.Money // actual - budgeted
	Percent   Percent
	Favorable bool
}

// Group aggregates one kind (income or expense) across its categories.
// Categories appear in first-seen entry order.
type Group struct {
	Kind      core.Kind
	Lines     []Line
	Budgeted  core.Money
	Actual    core.Money
	Variance  core.Money
	Percent   Percent
	Favorable bool
}

// Report is the full variance projection. It is transient: computed from a
// budget snapshot, handed to the caller, never persisted.
type Report struct {
	BudgetName string
	Start      core.Date
	End        core.Date

	Income  Group
	Expense Group

	NetBudgeted  core.Money // income budgeted - expense budgeted
	NetActual    core.Money
	NetVariance  core.Money
	NetPercent   Percent
	NetFavorable bool
}

type accumulator struct {
	order []string
	sums  map[string]*lineSums
}

type lineSums struct {
	budgeted int64
	actual   int64
}

func newAccumulator() *accumulator {
	return &accumulator{sums: make(map[string]*lineSums)}
}

func (a *accumulator) add(e core.Entry) {
	s, ok := a.sums[e.Category]
	if !ok {
		s = &lineSums{}
		a.sums[e.Category] = s
		a.order = append(a.order, e.Category)
	}
	switch e.Type {
	case core.Planned:
		s.budgeted += e.Amount.Cents
	case core.Actual:
		s.actual += e.Amount.Cents
	}
}

// Generate builds the variance report for entries dated within [start, end],
// both boundaries inclusive. Entries outside the range are excluded even
// though they remain in the ledger; an empty result is a zero report, not an
// error. The range need not lie within the budget's own period.
func Generate(b *core.Budget, start, end core.Date) Report {
	income := newAccumulator()
	expense := newAccumulator()

	for _, e := range b.Entries {
		if !e.Date.Within(start, end) {
			continue
		}
		switch e.Kind {
		case core.Income:
			income.add(e)
		default:
			expense.add(e)
		}
	}

	r := Report{
		BudgetName: b.Name,
		Start:      start,
		End:        end,
		Income:     buildGroup(core.Income, income),
		Expense:    buildGroup(core.Expense, expense),
	}

	r.NetBudgeted = core.Money{Cents: r.Income.Budgeted.Cents - r.Expense.Budgeted.Cents}
	r.NetActual = core.Money{Cents: r.Income.Actual.Cents - r.Expense.Actual.Cents}
	r.NetVariance = core.Money{Cents: r.NetActual.Cents - r.NetBudgeted.Cents}
	r.NetPercent = percentOf(r.NetVariance.Cents, r.NetBudgeted.Cents)
	r.NetFavorable = favorable(core.Income, r.NetVariance.Cents)
	return r
}

func buildGroup(kind core.Kind, acc *accumulator) Group {
	g := Group{Kind: kind}
	for _, cat := range acc.order {
		s := acc.sums[cat]
		variance := s.actual - s.budgeted
		g.Lines = append(g.Lines, Line{
			Category:  cat,
			Budgeted:  core.Money{Cents: s.budgeted},
			Actual:    core.Money{Cents: s.actual},
			Variance:  core.Money{Cents: variance},
			Percent:   percentOf(variance, s.budgeted),
			Favorable: favorable(kind, variance),
		})
		g.Budgeted.Cents += s.budgeted
		g.Actual.Cents += s.actual
	}
	g.Variance = core.Money{Cents: g.Actual.Cents - g.Budgeted.Cents}
	g.Percent = percentOf(g.Variance.Cents, g.Budgeted.Cents)
	g.Favorable = favorable(kind, g.Variance.Cents)
	return g
}

func percentOf(variance, budgeted int64) Percent {
	if budgeted <= 0 {
		return Percent{}
	}
	return Percent{Valid: true, Value: float64(variance) / float64(budgeted) * 100.0}
}

// favorable classifies a variance sign per kind: more income than planned is
// good, more spending than planned is bad. Zero variance counts as favorable
// for both kinds; landing exactly on plan is not an overrun.
func favorable(kind core.Kind, variance int64) bool {
	if kind == core.Income {
		return variance >= 0
	}
	return variance <= 0
}
