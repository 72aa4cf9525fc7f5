package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"budgetbook/internal/core"
	"budgetbook/internal/report"
)

// RenderReport writes the variance report as an aligned text table. A
// percentage that is not meaningful renders as "n/a", never as 0%.
func RenderReport(w io.Writer, r report.Report) {
	fmt.Fprintf(w, "%s: %s to %s\n\n", r.BudgetName, r.Start, r.End)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	renderGroup(tw, "INCOME", r.Income)
	renderGroup(tw, "EXPENSE", r.Expense)

	fmt.Fprintf(tw, "NET\t%s\t%s\t%s\t%s\t%s\n",
		r.NetBudgeted, r.NetActual, r.NetVariance,
		formatPercent(r.NetPercent), formatFavorable(r.NetFavorable))
	tw.Flush()
}

func renderGroup(tw *tabwriter.Writer, label string, g report.Group) {
	fmt.Fprintf(tw, "%s\tBudgeted\tActual\tVariance\tVar%%\t\n", label)
	for _, line := range g.Lines {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n",
			line.Category, line.Budgeted, line.Actual, line.Variance,
			formatPercent(line.Percent), formatFavorable(line.Favorable))
	}
	fmt.Fprintf(tw, "  Total\t%s\t%s\t%s\t%s\t%s\n\t\t\t\t\t\n",
		g.Budgeted, g.Actual, g.Variance,
		formatPercent(g.Percent), formatFavorable(g.Favorable))
}

func formatPercent(p report.Percent) string {
	if !p.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", p.Value)
}

func formatFavorable(favorable bool) string {
	if favorable {
		return "favorable"
	}
	return "unfavorable"
}

// RenderBudget dumps the budget header and its entries in ledger order.
func RenderBudget(w io.Writer, b *core.Budget) {
	fmt.Fprintf(w, "Budget: %s (%s to %s)\n", b.Name, b.Start, b.End)
	if b.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", b.Description)
	}
	if len(b.Entries) == 0 {
		fmt.Fprintln(w, "No entries.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tType\tKind\tCategory\tDate\tAmount\n")
	for i, e := range b.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1, e.Type, e.Kind, e.Category, e.Date, e.Amount)
	}
	tw.Flush()
}
