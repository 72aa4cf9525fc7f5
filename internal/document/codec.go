// Package document encodes a budget as its single persisted JSON document
// and decodes it back. The codec owns document structure; stores treat the
// encoded bytes as opaque.
//
// Layout (version 1):
//
//	{
//	  "version": 1,
//	  "name": "...",
//	  "description": "...",
//	  "start_date": "MM/DD/YY",
//	  "end_date": "MM/DD/YY",
//	  "entries": [["planned", "income", "Salary", "01/05/24", 5000], ...]
//	}
//
// Entries are five-element tuples in original insertion order. Documents
// written before versioning carry no "version" field and decode as the same
// layout; any other version is rejected rather than guessed at.
package document

import (
	"encoding/json"
	"fmt"

	"budgetbook/internal/core"
)

// Version is the current document schema version.
const Version = 1

type document struct {
	Version     int          `json:"version,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	Entries     []entryTuple `json:"entries"`
}

// entryTuple is one (entry_type, kind, category, date, amount) record. It
// marshals as a JSON array, not an object.
type entryTuple struct {
	Type     string
	Kind     string
	Category string
	Date     string
	Amount   float64
}

func (e entryTuple) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Type, e.Kind, e.Category, e.Date, e.Amount})
}

func (e *entryTuple) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 5 {
		return fmt.Errorf("entry has %d fields, want 5", len(raw))
	}
	fields := []*string{&e.Type, &e.Kind, &e.Category, &e.Date}
	for i, dst := range fields {
		if err := json.Unmarshal(raw[i], dst); err != nil {
			return fmt.Errorf("entry field %d: %w", i, err)
		}
	}
	if err := json.Unmarshal(raw[4], &e.Amount); err != nil {
		return fmt.Errorf("entry amount: %w", err)
	}
	return nil
}

// Encode is a pure transform of the in-memory budget into its document
// bytes. Dates are written in the canonical MM/DD/YY form and entries keep
// their insertion order.
func Encode(b *core.Budget) ([]byte, error) {
	doc := document{
		Version:     Version,
		Name:        b.Name,
		Description: b.Description,
		StartDate:   b.Start.String(),
		EndDate:     b.End.String(),
		Entries:     make([]entryTuple, 0, len(b.Entries)),
	}
	for _, e := range b.Entries {
		doc.Entries = append(doc.Entries, entryTuple{
			Type:     string(e.Type),
			Kind:     string(e.Kind),
			Category: e.Category,
			Date:     e.Date.String(),
			Amount:   e.Amount.Float64(),
		})
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode budget document: %w", err)
	}
	return data, nil
}

// Decode is the exact inverse of Encode. Structural damage yields
// ErrCorruptDocument; a field that fails date or amount parsing yields
// ErrMalformedInput. Entries are rebuilt through the validated add-entry
// path, so a decoded budget is never half-constructed: any failure discards
// the whole document.
func Decode(data []byte) (*core.Budget, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrCorruptDocument, err)
	}
	switch doc.Version {
	case 0, Version: // 0 is the pre-versioning layout
	default:
		return nil, fmt.Errorf("%w: unsupported document version %d", core.ErrCorruptDocument, doc.Version)
	}

	start, err := core.ParseDate(doc.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	end, err := core.ParseDate(doc.EndDate)
	if err != nil {
		return nil, fmt.Errorf("end date: %w", err)
	}
	b, err := core.NewBudget(doc.Name, doc.Description, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrCorruptDocument, err)
	}

	for i, t := range doc.Entries {
		entryType, err := core.ParseEntryType(t.Type)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		date, err := core.ParseDate(t.Date)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if t.Amount < 0 {
			return nil, fmt.Errorf("%w: entry %d: negative amount %v", core.ErrMalformedInput, i, t.Amount)
		}
		if _, err := b.AddEntry(entryType, t.Kind, t.Category, date, core.MoneyFromFloat(t.Amount)); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return b, nil
}
