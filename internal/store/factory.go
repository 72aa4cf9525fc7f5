package store

import (
	"fmt"
	"log/slog"
)

// Backend selects which document store implementation a session uses.
type Backend string

const (
	FileBackend   Backend = "file"
	SQLiteBackend Backend = "sqlite"
	MemoryBackend Backend = "memory"
)

// String implements fmt.Stringer
func (b Backend) String() string {
	return string(b)
}

// IsValid returns true if the backend type is valid.
func (b Backend) IsValid() bool {
	switch b {
	case FileBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds what the factory needs for each backend.
type Config struct {
	Type Backend

	// File backend
	DataDirectory string

	// SQLite backend
	SQLiteDBPath string
}

// Open creates the configured document store.
func Open(cfg Config, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid store backend: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLiteBackend:
		s, err := NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite document store", "db_path", cfg.SQLiteDBPath)
		return s, nil
	case MemoryBackend:
		logger.Info("Initialized memory document store")
		return NewMemoryStore(), nil
	default:
		s, err := NewFileStore(cfg.DataDirectory)
		if err != nil {
			return nil, fmt.Errorf("initialize file store: %w", err)
		}
		logger.Info("Initialized file document store", "data_directory", cfg.DataDirectory)
		return s, nil
	}
}
