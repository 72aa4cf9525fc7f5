package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"budgetbook/internal/core"
)

// openStores lets the same contract run against every backend.
func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFileStore(filepath.Join(dir, "docs"))
	if err != nil {
		t.Fatal(err)
	}
	ss, err := NewSQLiteStore(filepath.Join(dir, "budgets.db"))
	if err != nil {
		t.Fatal(err)
	}
	return map[string]Store{
		"file":   fs,
		"sqlite": ss,
		"memory": NewMemoryStore(),
	}
}

func TestStoreContract(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			if _, err := s.Get(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}

			doc := []byte(`{"name":"2024"}`)
			if err := s.Put(ctx, "2024", doc); err != nil {
				t.Fatal(err)
			}
			got, err := s.Get(ctx, "2024")
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != string(doc) {
				t.Fatalf("expected %s, got %s", doc, got)
			}

			// Put replaces the whole document
			doc2 := []byte(`{"name":"2024","description":"v2"}`)
			if err := s.Put(ctx, "2024", doc2); err != nil {
				t.Fatal(err)
			}
			got, err = s.Get(ctx, "2024")
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != string(doc2) {
				t.Fatalf("expected replaced document, got %s", got)
			}

			if err := s.Put(ctx, "2025", []byte(`{}`)); err != nil {
				t.Fatal(err)
			}
			names, err := s.Names(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(names) != 2 || names[0] != "2024" || names[1] != "2025" {
				t.Fatalf("unexpected names: %v", names)
			}
		})
	}
}

func TestBackendIsValid(t *testing.T) {
	for _, b := range []Backend{FileBackend, SQLiteBackend, MemoryBackend} {
		if !b.IsValid() {
			t.Fatalf("%s should be valid", b)
		}
	}
	if Backend("postgres").IsValid() {
		t.Fatal("unknown backend should be invalid")
	}
}

func TestOpenFactory(t *testing.T) {
	dir := t.TempDir()
	cases := []Config{
		{Type: FileBackend, DataDirectory: filepath.Join(dir, "docs")},
		{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "budgets.db")},
		{Type: MemoryBackend},
	}
	for _, cfg := range cases {
		s, err := Open(cfg, nil)
		if err != nil {
			t.Fatalf("%s: %v", cfg.Type, err)
		}
		s.Close()
	}
	if _, err := Open(Config{Type: "postgres"}, nil); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
