package assets

import (
	"context"
	"fmt"
	"regexp"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"tendermap/pkg/schema"
)

// spreadsheetIDPattern extracts the document ID from a full Sheets URL.
var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// SheetSource reads the asset catalogue from a Google Sheets tab. The first
// row of the tab is the header; authentication uses application default
// credentials (the service account attached to the runtime).
type SheetSource struct {
	SpreadsheetID string
	TabName       string

	service *sheets.Service
}

// NewSheetSource creates a source for the given spreadsheet URL (or bare ID)
// and tab name.
func NewSheetSource(ctx context.Context, sheetURL, tabName string, opts ...option.ClientOption) (*SheetSource, error) {
	id, err := SpreadsheetID(sheetURL)
	if err != nil {
		return nil, err
	}
	if tabName == "" {
		return nil, fmt.Errorf("sheet tab name is required")
	}

	opts = append([]option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}, opts...)
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetSource{SpreadsheetID: id, TabName: tabName, service: service}, nil
}

// SpreadsheetID resolves a Sheets URL or bare document ID to the document ID.
func SpreadsheetID(sheetURL string) (string, error) {
	if sheetURL == "" {
		return "", fmt.Errorf("sheet URL is required")
	}
	if m := spreadsheetIDPattern.FindStringSubmatch(sheetURL); len(m) > 1 {
		return m[1], nil
	}
	// Bare IDs carry no slashes; anything else is a malformed URL.
	if regexp.MustCompile(`^[a-zA-Z0-9-_]+$`).MatchString(sheetURL) {
		return sheetURL, nil
	}
	return "", fmt.Errorf("cannot extract spreadsheet ID from %q", sheetURL)
}

// Load reads the whole tab and maps it to asset records.
func (s *SheetSource) Load(ctx context.Context) ([]schema.AssetRecord, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.SpreadsheetID, s.TabName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s!%s: %w", s.SpreadsheetID, s.TabName, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		rows = append(rows, cells)
	}
	return RecordsFromRows(rows)
}
