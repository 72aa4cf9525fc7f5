package document

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"budgetbook/internal/core"
)

func sampleBudget(t *testing.T) *core.Budget {
	t.Helper()
	b, err := core.NewBudget("2024", "yearly plan", core.NewDate(2024, 1, 1), core.NewDate(2024, 12, 31))
	if err != nil {
		t.Fatal(err)
	}
	add := func(typ core.EntryType, kind, cat string, d core.Date, amount string) {
		m, err := core.ParseAmount(amount)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := b.AddEntry(typ, kind, cat, d, m); err != nil {
			t.Fatal(err)
		}
	}
	add(core.Planned, "income", "Salary", core.NewDate(2024, 1, 5), "5000")
	add(core.Actual, "income", "Salary", core.NewDate(2024, 1, 6), "4800.50")
	add(core.Planned, "expense", "Rent", core.NewDate(2024, 1, 1), "1200")
	add(core.Actual, "expense", "Rent", core.NewDate(2024, 1, 1), "1200")
	add(core.Actual, "expense", "Coffee", core.NewDate(2024, 12, 31), "0")
	return b
}

func TestRoundTrip(t *testing.T) {
	b := sampleBudget(t)

	data, err := Encode(b)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(b, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeShape(t *testing.T) {
	b := sampleBudget(t)
	data, err := Encode(b)
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"version", "name", "description", "start_date", "end_date", "entries"} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("document missing %q", key)
		}
	}

	var start string
	if err := json.Unmarshal(doc["start_date"], &start); err != nil {
		t.Fatal(err)
	}
	if start != "01/01/24" {
		t.Fatalf("dates must be two-digit-year MM/DD/YY, got %q", start)
	}

	var entries [][]json.RawMessage
	if err := json.Unmarshal(doc["entries"], &entries); err != nil {
		t.Fatalf("entries must be arrays of tuples: %v", err)
	}
	if len(entries) != 5 || len(entries[0]) != 5 {
		t.Fatalf("expected 5 entries of 5 fields, got %d", len(entries))
	}
}

func TestDecodeLegacyUnversioned(t *testing.T) {
	// Documents written before the version marker have no "version" field
	legacy := `{
		"name": "old",
		"description": "",
		"start_date": "01/01/24",
		"end_date": "12/31/24",
		"entries": [["planned", "income", "Salary", "01/05/24", 5000]]
	}`
	b, err := Decode([]byte(legacy))
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Entries) != 1 || b.Entries[0].Amount.Cents != 500000 {
		t.Fatalf("unexpected decode result: %+v", b.Entries)
	}
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	doc := `{"version": 2, "name": "b", "description": "", "start_date": "01/01/24", "end_date": "12/31/24", "entries": []}`
	_, err := Decode([]byte(doc))
	if !errors.Is(err, core.ErrCorruptDocument) {
		t.Fatalf("expected ErrCorruptDocument, got %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"not json", `{{{`, core.ErrCorruptDocument},
		{"wrong top-level type", `[1,2,3]`, core.ErrCorruptDocument},
		{"short tuple", `{"name":"b","description":"","start_date":"01/01/24","end_date":"12/31/24","entries":[["planned","income","Salary"]]}`, core.ErrCorruptDocument},
		{"bad start date", `{"name":"b","description":"","start_date":"nope","end_date":"12/31/24","entries":[]}`, core.ErrMalformedInput},
		{"bad entry date", `{"name":"b","description":"","start_date":"01/01/24","end_date":"12/31/24","entries":[["planned","income","Salary","nope",5000]]}`, core.ErrMalformedInput},
		{"negative amount", `{"name":"b","description":"","start_date":"01/01/24","end_date":"12/31/24","entries":[["planned","income","Salary","01/05/24",-5]]}`, core.ErrMalformedInput},
		{"reversed window", `{"name":"b","description":"","start_date":"12/31/24","end_date":"01/01/24","entries":[]}`, core.ErrCorruptDocument},
		{"entry outside window", `{"name":"b","description":"","start_date":"01/01/24","end_date":"12/31/24","entries":[["planned","income","Salary","01/05/23",5000]]}`, core.ErrDateOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.doc))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
