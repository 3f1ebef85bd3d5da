package sheets

import (
	"context"
	"fmt"
	"time"

	sheetsclient "github.com/honeycarbs/lfx-mentorship/pkg/sheets"
)

const defaultTab = "Sheet1"

// valuesWriter is the subset of the Sheets client the exporter needs.
type valuesWriter interface {
	UpdateValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) (int64, error)
	ClearValues(ctx context.Context, spreadsheetID, range_ string) error
}

// Params selects the destination; empty fields fall back to the exporter defaults
type Params struct {
	SpreadsheetID string
	Tab           string
	Clear         bool
}

// Result describes the summary returned after export
type Result struct {
	SpreadsheetID string    `json:"spreadsheet_id"`
	Tab           string    `json:"tab"`
	WrittenRows   int       `json:"written_rows"`
	CompletedAt   time.Time `json:"completed_at"`
	Message       string    `json:"message,omitempty"`
}

// Exporter writes flattened project rows into a spreadsheet tab
type Exporter struct {
	client        valuesWriter
	spreadsheetID string
	tab           string
}

// NewExporter builds an exporter with default destination
func NewExporter(client *sheetsclient.Client, spreadsheetID, tab string) (*Exporter, error) {
	if client == nil {
		return nil, fmt.Errorf("sheets: client not configured")
	}
	return newExporter(client, spreadsheetID, tab), nil
}

func newExporter(client valuesWriter, spreadsheetID, tab string) *Exporter {
	if tab == "" {
		tab = defaultTab
	}
	return &Exporter{client: client, spreadsheetID: spreadsheetID, tab: tab}
}

// Export writes rows (header first) starting at A1 of the tab
func (e *Exporter) Export(ctx context.Context, rows [][]string, params Params) (Result, error) {
	result := Result{
		SpreadsheetID: params.SpreadsheetID,
		Tab:           params.Tab,
	}
	if result.SpreadsheetID == "" {
		result.SpreadsheetID = e.spreadsheetID
	}
	if result.Tab == "" {
		result.Tab = e.tab
	}
	if result.SpreadsheetID == "" {
		return result, fmt.Errorf("sheets: spreadsheet id is required")
	}

	if params.Clear {
		if err := e.client.ClearValues(ctx, result.SpreadsheetID, clearRange(result.Tab)); err != nil {
			return result, fmt.Errorf("sheets: failed to clear sheet: %w", err)
		}
	}

	if len(rows) == 0 {
		result.Message = "no rows to export"
		result.CompletedAt = time.Now().UTC()
		return result, nil
	}

	written, err := e.client.UpdateValues(ctx, result.SpreadsheetID, fmt.Sprintf("%s!A1", result.Tab), convertRowsToValues(rows))
	if err != nil {
		return result, fmt.Errorf("sheets: failed to write rows: %w", err)
	}

	result.WrittenRows = int(written)
	result.CompletedAt = time.Now().UTC()
	result.Message = fmt.Sprintf("successfully exported %d row(s)", result.WrittenRows)

	return result, nil
}

func clearRange(tab string) string {
	return fmt.Sprintf("%s!A1:Z", tab)
}

func convertRowsToValues(rows [][]string) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = make([]interface{}, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}
	return values
}
