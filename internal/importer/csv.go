package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CSVSource reads rows from a comma-separated file with the same column
// layout as the xlsx source.
type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) Name() string {
	return filepath.Base(s.path)
}

func (s *CSVSource) Rows(_ context.Context) ([]Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // short rows become row-level validation errors
	r.TrimLeadingSpace = true

	var rows []Row
	for i := 0; ; i++ {
		cells, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
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
