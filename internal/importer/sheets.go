package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// SheetsSource reads rows from a Google Sheet range. Column layout matches
// the file-based sources: A=entry_type, B=kind, C=category, D=date,
// E=amount.
type SheetsSource struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheet         string
}

// NewSheetsSource creates a source for one sheet of one spreadsheet using
// Service Account credentials from the environment:
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewSheetsSource(ctx context.Context, spreadsheetID, sheet string) (*SheetsSource, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if strings.TrimSpace(sheet) == "" {
		sheet = "Entries"
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &SheetsSource{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheet:         sheet,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (s *SheetsSource) Name() string {
	return fmt.Sprintf("%s!%s", s.spreadsheetID, s.sheet)
}

func (s *SheetsSource) Rows(ctx context.Context) ([]Row, error) {
	if s.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	// Fetch the value range and the spreadsheet metadata in parallel; the
	// title is only used for logging but both calls hit the same API.
	var (
		values *gsheet.ValueRange
		meta   *gsheet.Spreadsheet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rng := fmt.Sprintf("%s!A:E", s.sheet)
		resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(gctx).Do()
		if err != nil {
			return fmt.Errorf("read %s: %w", rng, err)
		}
		values = resp
		return nil
	})
	g.Go(func() error {
		resp, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("properties.title").Context(gctx).Do()
		if err != nil {
			return fmt.Errorf("read spreadsheet metadata: %w", err)
		}
		meta = resp
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if meta.Properties != nil {
		slog.InfoContext(ctx, "Reading entries from Google Sheet",
			"spreadsheet", meta.Properties.Title,
			"sheet", s.sheet,
			"rows", len(values.Values))
	}

	var rows []Row
	for i, raw := range values.Values {
		cells := toStrings(raw)
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

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
