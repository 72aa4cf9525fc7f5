package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"budgetbook/internal/core"
)

const docExt = ".json"

// FileStore keeps one JSON document per budget under a data directory.
// This is the default backend.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, fileName(name)+docExt)
}

func (s *FileStore) Put(_ context.Context, name string, doc []byte) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: budget name required", core.ErrMalformedInput)
	}
	// Write via a temp file so a crash never leaves a torn document behind.
	tmp, err := os.CreateTemp(s.dir, fileName(name)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close document: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("install document: %w", err)
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}

func (s *FileStore) Names(_ context.Context) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*"+docExt))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), docExt))
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStore) Close() error { return nil }

// fileName flattens a budget name into a safe file name. Path separators and
// whitespace collapse to underscores; the mapping is lossy but stable.
func fileName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':':
			return '_'
		case r == ' ' || r == '\t':
			return '_'
		default:
			return r
		}
	}, strings.TrimSpace(name))
	return mapped
}
