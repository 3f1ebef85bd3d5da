package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/lfx-mentorship/internal/domain/project"
	"github.com/honeycarbs/lfx-mentorship/internal/export/files"
	"github.com/honeycarbs/lfx-mentorship/pkg/logging"
)

// ExportProjectsParams defines the arguments for the export_projects tool
type ExportProjectsParams struct {
	Format  string `json:"format,omitempty" jsonschema:"csv, json or both (default both)"`
	Offline bool   `json:"offline,omitempty" jsonschema:"Export the latest stored snapshot instead of calling the API"`
}

// ExportProjectsResult is the structured response of export_projects
type ExportProjectsResult struct {
	Files     []string  `json:"files" jsonschema:"Paths of the written files"`
	Records   int       `json:"records" jsonschema:"Number of records written"`
	FetchedAt time.Time `json:"fetched_at" jsonschema:"When the exported listing was fetched"`
}

type exportTool struct {
	service project.Service
	target  files.Target
	logger  *logging.Logger
}

// WithExportProjects registers the export_projects tool
func WithExportProjects(service project.Service, target files.Target) Option {
	return func(reg *registry) {
		handler := exportTool{service: service, target: target, logger: reg.logger}
		addTool(reg, &sdkmcp.Tool{
			Name:        "export_projects",
			Description: "Write the LFX Mentorship listing to CSV and/or JSON files in the data directory",
		}, handler.handle)
	}
}

func (t exportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params *ExportProjectsParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &ExportProjectsParams{}
	}

	format, err := files.ParseFormat(params.Format)
	if err != nil {
		return nil, nil, err
	}

	batch, err := loadBatch(ctx, t.service, params.Offline)
	if err != nil {
		t.logger.Error("export_projects: load failed", "err", err)
		return nil, nil, err
	}

	paths, err := files.Save(ctx, batch.Listing, t.target, format)
	if err != nil {
		t.logger.Error("export_projects: write failed", "err", err, "dir", t.target.Dir)
		return nil, nil, err
	}

	result := ExportProjectsResult{
		Files:     paths,
		Records:   batch.Listing.Len(),
		FetchedAt: batch.Listing.FetchedAt(),
	}

	t.logger.Info("export_projects completed", "files", paths, "records", result.Records)

	msg := fmt.Sprintf("[export_projects] Wrote %d record(s) to %s", result.Records, strings.Join(paths, ", "))
	return textResult(msg), result, nil
}
