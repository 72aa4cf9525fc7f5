// Package importer bulk-loads ledger entries from spreadsheet-shaped
// sources. The importer is a plain caller of the budget's add-entry
// operation: every row goes through the same validation as a hand-typed
// entry, and a bad row never aborts the batch.
package importer

import (
	"context"
	"fmt"

	"budgetbook/internal/core"
	"budgetbook/internal/log"
)

// Row is one logical spreadsheet row: (entry_type, kind, category, date,
// amount). The date arrives either as a native value (Date set) or as
// MM/DD/YY text (DateText).
type Row struct {
	Type     string
	Kind     string
	Category string
	Date     core.Date
	DateText string
	Amount   string
}

// RowSource produces rows for the importer. Header rows are the source's
// problem; Rows returns data rows only.
type RowSource interface {
	// Name identifies the source for logs and result summaries.
	Name() string
	// Rows reads all data rows. A source-level failure (missing file,
	// unreadable workbook) is an error; individual bad rows are not.
	Rows(ctx context.Context) ([]Row, error)
}

// RowError records a row that failed validation. Index is the 1-based
// position within the source's data rows.
type RowError struct {
	Index int
	Row   Row
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Index, e.Err)
}

// Result summarizes one import run.
type Result struct {
	Source string
	Added  int
	Failed []RowError
}

// Import appends every valid row of src to the budget. Rows are processed
// in order; each failure is collected and the remaining rows still run, so
// callers decide what partial success means to them. Only a source-level
// read failure returns an error.
func Import(ctx context.Context, b *core.Budget, src RowSource, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent("importer")

	result := Result{Source: src.Name()}

	rows, err := src.Rows(ctx)
	if err != nil {
		return result, fmt.Errorf("read rows from %s: %w", src.Name(), err)
	}

	for i, row := range rows {
		if err := addRow(b, row); err != nil {
			result.Failed = append(result.Failed, RowError{Index: i + 1, Row: row, Err: err})
			logger.Warn("Row rejected", "source", src.Name(), "row", i+1, "error", err)
			continue
		}
		result.Added++
	}

	logger.Info("Import finished",
		"source", src.Name(),
		"added", result.Added,
		"failed", len(result.Failed))
	return result, nil
}

func addRow(b *core.Budget, row Row) error {
	entryType, err := core.ParseEntryType(row.Type)
	if err != nil {
		return err
	}
	date := row.Date
	if date.IsZero() {
		if date, err = core.ParseDate(row.DateText); err != nil {
			return err
		}
	}
	amount, err := core.ParseAmount(row.Amount)
	if err != nil {
		return err
	}
	_, err = b.AddEntry(entryType, row.Kind, row.Category, date, amount)
	return err
}

// looksLikeHeader reports whether a raw first row is a column header rather
// than data. Shared by the file-based sources.
func looksLikeHeader(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	_, err := core.ParseEntryType(cells[0])
	return err != nil
}

// padRow widens a short raw row to the five expected columns so validation
// reports a field error for the row instead of the source aborting.
func padRow(cells []string) []string {
	for len(cells) < 5 {
		cells = append(cells, "")
	}
	return cells
}
