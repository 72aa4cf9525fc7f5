package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetbook/internal/core"
)

func yearBudget(t *testing.T) *core.Budget {
	t.Helper()
	b, err := core.NewBudget("2024", "test ledger", core.NewDate(2024, 1, 1), core.NewDate(2024, 12, 31))
	require.NoError(t, err)
	return b
}

func mustAdd(t *testing.T, b *core.Budget, typ core.EntryType, kind, cat string, d core.Date, cents int64) {
	t.Helper()
	_, err := b.AddEntry(typ, kind, cat, d, core.Money{Cents: cents})
	require.NoError(t, err)
}

func TestGenerateAggregation(t *testing.T) {
	b := yearBudget(t)
	mustAdd(t, b, core.Planned, "income", "Salary", core.NewDate(2024, 1, 5), 500000)
	mustAdd(t, b, core.Actual, "income", "Salary", core.NewDate(2024, 1, 6), 480000)
	mustAdd(t, b, core.Planned, "expense", "Rent", core.NewDate(2024, 1, 1), 120000)
	mustAdd(t, b, core.Actual, "expense", "Rent", core.NewDate(2024, 1, 1), 120000)

	r := Generate(b, core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))

	require.Len(t, r.Income.Lines, 1)
	salary := r.Income.Lines[0]
	assert.Equal(t, "Salary", salary.Category)
	assert.Equal(t, int64(500000), salary.Budgeted.Cents)
	assert.Equal(t, int64(480000), salary.Actual.Cents)
	assert.Equal(t, int64(-20000), salary.Variance.Cents)
	require.True(t, salary.Percent.Valid)
	assert.InDelta(t, -4.0, salary.Percent.Value, 1e-9)
	assert.False(t, salary.Favorable)

	require.Len(t, r.Expense.Lines, 1)
	rent := r.Expense.Lines[0]
	assert.Equal(t, int64(120000), rent.Budgeted.Cents)
	assert.Equal(t, int64(120000), rent.Actual.Cents)
	assert.Equal(t, int64(0), rent.Variance.Cents)
	assert.True(t, rent.Favorable, "zero expense variance is on plan")

	assert.Equal(t, int64(380000), r.NetBudgeted.Cents)
	assert.Equal(t, int64(360000), r.NetActual.Cents)
	assert.Equal(t, int64(-20000), r.NetVariance.Cents)
	require.True(t, r.NetPercent.Valid)
	assert.InDelta(t, -20000.0/380000.0*100.0, r.NetPercent.Value, 1e-9)
	assert.False(t, r.NetFavorable)
}

func TestGenerateNotMeaningfulPercent(t *testing.T) {
	b := yearBudget(t)
	// Actual spending with no plan: dollar variance is real, percentage is not
	mustAdd(t, b, core.Actual, "expense", "Surprise", core.NewDate(2024, 2, 1), 5000)

	r := Generate(b, core.NewDate(2024, 1, 1), core.NewDate(2024, 12, 31))

	require.Len(t, r.Expense.Lines, 1)
	line := r.Expense.Lines[0]
	assert.Equal(t, int64(5000), line.Variance.Cents)
	assert.False(t, line.Percent.Valid)
	assert.False(t, r.Expense.Percent.Valid)
	// Net budgeted is zero, so the net percentage is not meaningful either
	assert.False(t, r.NetPercent.Valid)
}

func TestGenerateRangeExclusivity(t *testing.T) {
	b := yearBudget(t)
	mustAdd(t, b, core.Actual, "expense", "Rent", core.NewDate(2024, 1, 15), 120000)
	mustAdd(t, b, core.Actual, "expense", "Rent", core.NewDate(2024, 2, 15), 130000)

	r := Generate(b, core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))

	require.Len(t, r.Expense.Lines, 1)
	assert.Equal(t, int64(120000), r.Expense.Lines[0].Actual.Cents,
		"February entry must not leak into a January report")
	// Both ledger entries are still present
	assert.Len(t, b.Entries, 2)
}

func TestGenerateRangeBoundariesInclusive(t *testing.T) {
	b := yearBudget(t)
	mustAdd(t, b, core.Actual, "expense", "Rent", core.NewDate(2024, 1, 1), 100)
	mustAdd(t, b, core.Actual, "expense", "Rent", core.NewDate(2024, 1, 31), 100)

	r := Generate(b, core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	assert.Equal(t, int64(200), r.Expense.Actual.Cents)
}

func TestGenerateEmptyRange(t *testing.T) {
	b := yearBudget(t)
	mustAdd(t, b, core.Planned, "income", "Salary", core.NewDate(2024, 6, 1), 1000)

	// A range with no entries is a zero report, not an error
	r := Generate(b, core.NewDate(2024, 7, 1), core.NewDate(2024, 7, 31))
	assert.Empty(t, r.Income.Lines)
	assert.Empty(t, r.Expense.Lines)
	assert.Equal(t, int64(0), r.NetBudgeted.Cents)
	assert.Equal(t, int64(0), r.NetActual.Cents)
	assert.False(t, r.NetPercent.Valid)
}

func TestGenerateFirstSeenCategoryOrder(t *testing.T) {
	b := yearBudget(t)
	mustAdd(t, b, core.Planned, "expense", "Rent", core.NewDate(2024, 1, 1), 100)
	mustAdd(t, b, core.Planned, "expense", "Groceries", core.NewDate(2024, 1, 2), 100)
	mustAdd(t, b, core.Actual, "expense", "Rent", core.NewDate(2024, 1, 3), 100)

	r := Generate(b, core.NewDate(2024, 1, 1), core.NewDate(2024, 12, 31))
	require.Len(t, r.Expense.Lines, 2)
	assert.Equal(t, "Rent", r.Expense.Lines[0].Category)
	assert.Equal(t, "Groceries", r.Expense.Lines[1].Category)
}

func TestGenerateCaseSensitiveCategories(t *testing.T) {
	b := yearBudget(t)
	mustAdd(t, b, core.Actual, "expense", "rent", core.NewDate(2024, 1, 1), 100)
	mustAdd(t, b, core.Actual, "expense", "Rent", core.NewDate(2024, 1, 2), 100)

	r := Generate(b, core.NewDate(2024, 1, 1), core.NewDate(2024, 12, 31))
	assert.Len(t, r.Expense.Lines, 2, "categories are case-sensitive aggregation keys")
}

func TestGenerateIdempotent(t *testing.T) {
	b := yearBudget(t)
	mustAdd(t, b, core.Planned, "income", "Salary", core.NewDate(2024, 1, 5), 500000)
	mustAdd(t, b, core.Actual, "expense", "Rent", core.NewDate(2024, 1, 6), 120000)

	first := Generate(b, core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	second := Generate(b, core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	assert.Equal(t, first, second)
	// Generation never mutates the ledger
	assert.Len(t, b.Entries, 2)
}

func TestFavorability(t *testing.T) {
	cases := []struct {
		kind     core.Kind
		variance int64
		want     bool
	}{
		{core.Income, 100, true},
		{core.Income, 0, true},
		{core.Income, -100, false},
		{core.Expense, -100, true},
		{core.Expense, 0, true},
		{core.Expense, 100, false},
	}
	for i, tc := range cases {
		if got := favorable(tc.kind, tc.variance); got != tc.want {
			t.Fatalf("case %d: favorable(%v, %d) = %v, want %v", i, tc.kind, tc.variance, got, tc.want)
		}
	}
}
