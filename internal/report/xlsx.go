package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Variance"

// WriteXLSX renders the report as a single-sheet Excel workbook: one block
// per group with category lines and a subtotal, then the net figures.
// Percentages that are not meaningful are left blank, never written as 0.
func WriteXLSX(r Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet(f.GetSheetName(0)); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	row := 1
	setRow := func(values []any, style int) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return err
		}
		if style != 0 {
			last, err := excelize.CoordinatesToCellName(len(values), row)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(xlsxSheet, cell, last, style); err != nil {
				return err
			}
		}
		row++
		return nil
	}

	title := fmt.Sprintf("%s: %s to %s", r.BudgetName, r.Start, r.End)
	if err := setRow([]any{title}, totalStyle); err != nil {
		return fmt.Errorf("write title: %w", err)
	}
	row++ // blank spacer

	writeGroup := func(label string, g Group) error {
		if err := setRow([]any{label, "Budgeted", "Actual", "Variance", "Variance %", "Favorable"}, headerStyle); err != nil {
			return err
		}
		for _, line := range g.Lines {
			if err := setRow(lineValues(line.Category, line.Budgeted.Float64(), line.Actual.Float64(), line.Variance.Float64(), line.Percent, line.Favorable), 0); err != nil {
				return err
			}
		}
		if err := setRow(lineValues("Total "+label, g.Budgeted.Float64(), g.Actual.Float64(), g.Variance.Float64(), g.Percent, g.Favorable), totalStyle); err != nil {
			return err
		}
		row++ // blank spacer
		return nil
	}

	if err := writeGroup("Income", r.Income); err != nil {
		return fmt.Errorf("write income group: %w", err)
	}
	if err := writeGroup("Expense", r.Expense); err != nil {
		return fmt.Errorf("write expense group: %w", err)
	}

	if err := setRow(lineValues("Net", r.NetBudgeted.Float64(), r.NetActual.Float64(), r.NetVariance.Float64(), r.NetPercent, r.NetFavorable), totalStyle); err != nil {
		return fmt.Errorf("write net row: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func lineValues(label string, budgeted, actual, variance float64, pct Percent, favorable bool) []any {
	values := []any{label, budgeted, actual, variance}
	if pct.Valid {
		values = append(values, pct.Value/100.0) // fraction, formatted by the sheet
	} else {
		values = append(values, nil)
	}
	fav := "no"
	if favorable {
		fav = "yes"
	}
	return append(values, fav)
}
