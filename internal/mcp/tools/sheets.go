package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/lfx-mentorship/internal/domain/project"
	"github.com/honeycarbs/lfx-mentorship/internal/export/sheets"
	"github.com/honeycarbs/lfx-mentorship/pkg/logging"
)

// SheetsExporter writes flattened rows into a spreadsheet
type SheetsExporter interface {
	Export(ctx context.Context, rows [][]string, params sheets.Params) (sheets.Result, error)
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"Google Sheets document ID (defaults to the configured one)"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name to write into (defaults to the configured one)"`
	ClearTab      bool   `json:"clear_tab,omitempty" jsonschema:"If true, clears the tab before writing"`
	Offline       bool   `json:"offline,omitempty" jsonschema:"Export the latest stored snapshot instead of calling the API"`
}

type sheetsExportTool struct {
	service  project.Service
	exporter SheetsExporter
	logger   *logging.Logger
}

// WithSheetsExport registers the sheets_export tool
func WithSheetsExport(service project.Service, exporter SheetsExporter) Option {
	return func(reg *registry) {
		handler := sheetsExportTool{service: service, exporter: exporter, logger: reg.logger}
		addTool(reg, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Write the LFX Mentorship listing as rows into a Google Sheets tab",
		}, handler.handle)
	}
}

func (t sheetsExportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params *SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if t.exporter == nil {
		return nil, nil, fmt.Errorf("sheets export unavailable: GOOGLE_SHEETS_CREDENTIALS_PATH not set")
	}
	if params == nil {
		params = &SheetsExportParams{}
	}

	batch, err := loadBatch(ctx, t.service, params.Offline)
	if err != nil {
		return nil, nil, err
	}

	rows, err := batch.Listing.Rows()
	if err != nil {
		return nil, nil, err
	}

	result, err := t.exporter.Export(ctx, rows, sheets.Params{
		SpreadsheetID: params.SpreadsheetID,
		Tab:           params.Tab,
		Clear:         params.ClearTab,
	})
	if err != nil {
		t.logger.Error("sheets_export failed", "err", err, "spreadsheet_id", result.SpreadsheetID)
		return nil, nil, err
	}

	t.logger.Info("sheets_export completed",
		"spreadsheet_id", result.SpreadsheetID,
		"tab", result.Tab,
		"rows", result.WrittenRows,
	)

	msg := fmt.Sprintf("[sheets_export] %s: spreadsheet_id=%q tab=%q", result.Message, result.SpreadsheetID, result.Tab)
	return textResult(msg), result, nil
}
