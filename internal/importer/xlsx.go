package importer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads rows from an Excel workbook. Columns are
// (entry_type, kind, category, date, amount); a header row is skipped when
// the first cell is not a valid entry type.
type XLSXSource struct {
	path  string
	sheet string // empty means the workbook's first sheet
}

func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet}
}

func (s *XLSXSource) Name() string {
	return filepath.Base(s.path)
}

func (s *XLSXSource) Rows(_ context.Context) ([]Row, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var rows []Row
	for i, cells := range raw {
		if i == 0 && looksLikeHeader(cells) {
			continue
		}
		if isBlank(cells) {
			continue
		}
		cells = padRow(cells)
		rows = append(rows, Row{
			Type:     cells[0],
			Kind:     cells[1],
			Category: cells[2],
			DateText: cells[3],
			Amount:   cells[4],
		})
	}
	return rows, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
