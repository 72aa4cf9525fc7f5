package config

import (
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid file backend config",
			config: Config{
				StoreBackend: "file",
				DataDir:      "./data/budgets",
				LogLevel:     "info",
			},
			wantErr: false,
		},
		{
			name: "valid sqlite backend config",
			config: Config{
				StoreBackend: "sqlite",
				SQLiteDBPath: "./test.db",
				LogLevel:     "debug",
			},
			wantErr: false,
		},
		{
			name: "valid memory backend config",
			config: Config{
				StoreBackend: "memory",
				LogLevel:     "warn",
			},
			wantErr: false,
		},
		{
			name: "invalid store backend",
			config: Config{
				StoreBackend: "postgres",
				LogLevel:     "info",
			},
			wantErr:     true,
			errorString: "invalid store backend 'postgres'",
		},
		{
			name: "file backend missing data directory",
			config: Config{
				StoreBackend: "file",
				DataDir:      "",
				LogLevel:     "info",
			},
			wantErr:     true,
			errorString: "data directory cannot be empty",
		},
		{
			name: "sqlite backend missing database path",
			config: Config{
				StoreBackend: "sqlite",
				SQLiteDBPath: "",
				LogLevel:     "info",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "invalid log level",
			config: Config{
				StoreBackend: "memory",
				LogLevel:     "loud",
			},
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
			} else if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.StoreBackend != "file" {
		t.Fatalf("expected file default backend, got %s", cfg.StoreBackend)
	}
	if cfg.GoogleSheetName != "Entries" {
		t.Fatalf("expected Entries default sheet name, got %s", cfg.GoogleSheetName)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}
