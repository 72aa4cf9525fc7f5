// budgetbook-import bulk-loads spreadsheet rows into a stored budget. Each
// row goes through the same validation as an interactive entry; bad rows
// are reported and skipped, the rest of the batch still lands.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"budgetbook/internal/config"
	"budgetbook/internal/importer"
	"budgetbook/internal/log"
	"budgetbook/internal/session"
	"budgetbook/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	budgetName := flag.String("budget", "", "name of the stored budget to import into (required)")
	file := flag.String("file", "", "path to a .xlsx or .csv file with entry rows")
	spreadsheetID := flag.String("spreadsheet-id", "", "Google spreadsheet ID (overrides GOOGLE_SPREADSHEET_ID)")
	sheetName := flag.String("sheet", "", "sheet name within the spreadsheet (overrides GOOGLE_SHEET_NAME)")
	dryRun := flag.Bool("dry-run", false, "validate rows without saving the budget")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: "budgetbook-import",
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		return 1
	}
	if *budgetName == "" {
		fmt.Fprintln(os.Stderr, "missing required -budget flag")
		flag.Usage()
		return 2
	}

	ctx := context.Background()

	src, err := buildSource(ctx, cfg, *file, *spreadsheetID, *sheetName)
	if err != nil {
		logger.Error("Failed to initialize row source", "error", err)
		return 1
	}

	st, err := store.Open(store.Config{
		Type:          store.Backend(cfg.StoreBackend),
		DataDirectory: cfg.DataDir,
		SQLiteDBPath:  cfg.SQLiteDBPath,
	}, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize document store", "error", err, "backend", cfg.StoreBackend)
		return 1
	}
	defer st.Close()

	sess := session.New(st, logger)
	budget, err := sess.Load(ctx, *budgetName)
	if err != nil {
		logger.Error("Failed to load budget", "name", *budgetName, "error", err)
		return 1
	}

	result, err := importer.Import(ctx, budget, src, logger)
	if err != nil {
		logger.Error("Import failed", "error", err)
		return 1
	}

	fmt.Printf("Imported %d entries into %q from %s.\n", result.Added, *budgetName, result.Source)
	for _, f := range result.Failed {
		fmt.Printf("  skipped %v\n", f)
	}

	if *dryRun {
		fmt.Println("Dry run: budget not saved.")
		return 0
	}
	if err := sess.Save(ctx); err != nil {
		logger.Error("Failed to save budget", "name", *budgetName, "error", err)
		return 1
	}
	return 0
}

func buildSource(ctx context.Context, cfg *config.Config, file, spreadsheetID, sheetName string) (importer.RowSource, error) {
	if file != "" {
		switch strings.ToLower(filepath.Ext(file)) {
		case ".xlsx":
			return importer.NewXLSXSource(file, sheetName), nil
		case ".csv":
			return importer.NewCSVSource(file), nil
		default:
			return nil, fmt.Errorf("unsupported file type %q: use .xlsx or .csv", filepath.Ext(file))
		}
	}
	if spreadsheetID == "" {
		spreadsheetID = cfg.GoogleSpreadsheetID
	}
	if sheetName == "" {
		sheetName = cfg.GoogleSheetName
	}
	if spreadsheetID == "" {
		return nil, fmt.Errorf("no source: pass -file or a spreadsheet ID")
	}
	return importer.NewSheetsSource(ctx, spreadsheetID, sheetName)
}
