package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/lfx-mentorship/internal/domain"
	"github.com/honeycarbs/lfx-mentorship/internal/domain/project"
	"github.com/honeycarbs/lfx-mentorship/pkg/logging"
)

// ListProjectsParams defines the arguments for the list_projects tool
type ListProjectsParams struct {
	Skill    string `json:"skill,omitempty" jsonschema:"Only projects requiring this skill (case-insensitive)"`
	Industry string `json:"industry,omitempty" jsonschema:"Only projects in this industry (case-insensitive)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of projects to return"`
	Offline  bool   `json:"offline,omitempty" jsonschema:"Read the latest stored snapshot instead of calling the API"`
}

// ListProjectsResult is the structured response of list_projects
type ListProjectsResult struct {
	Projects  []domain.ProjectSummary `json:"projects" jsonschema:"Matching projects in listing order"`
	Total     int                     `json:"total" jsonschema:"Number of projects in the listing before filtering"`
	FetchedAt time.Time               `json:"fetched_at" jsonschema:"When the listing was fetched"`
}

// SyncProjectsResult is the structured response of sync_projects
type SyncProjectsResult struct {
	SnapshotID string    `json:"snapshot_id,omitempty" jsonschema:"Stored snapshot identifier"`
	Projects   int       `json:"projects" jsonschema:"Number of projects fetched"`
	Stored     bool      `json:"stored" jsonschema:"Whether anything was persisted"`
	FetchedAt  time.Time `json:"fetched_at" jsonschema:"When the listing was fetched"`
}

type projectTools struct {
	service project.Service
	logger  *logging.Logger
}

// WithProjectTools registers list_projects and sync_projects
func WithProjectTools(service project.Service) Option {
	return func(reg *registry) {
		handler := projectTools{service: service, logger: reg.logger}

		addTool(reg, &sdkmcp.Tool{
			Name:        "list_projects",
			Description: "List open LFX Mentorship projects, optionally filtered by skill or industry",
		}, handler.list)

		addTool(reg, &sdkmcp.Tool{
			Name:        "sync_projects",
			Description: "Fetch the LFX Mentorship listing once and store the snapshot and project graph",
		}, handler.sync)
	}
}

func (t projectTools) list(ctx context.Context, _ *sdkmcp.CallToolRequest, params *ListProjectsParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &ListProjectsParams{}
	}
	if params.Limit < 0 {
		return nil, nil, fmt.Errorf("limit must not be negative")
	}

	t.logger.Info("list_projects request",
		"skill", params.Skill,
		"industry", params.Industry,
		"limit", params.Limit,
		"offline", params.Offline,
	)

	batch, err := loadBatch(ctx, t.service, params.Offline)
	if err != nil {
		t.logger.Error("list_projects: load failed", "err", err)
		return nil, nil, err
	}

	matched := project.Filter(batch.Projects, domain.ProjectFilters{
		Skill:    params.Skill,
		Industry: params.Industry,
		Limit:    params.Limit,
	})

	result := ListProjectsResult{
		Projects: project.Summarize(matched),
		Total:    len(batch.Projects),
	}
	if batch.Listing != nil {
		result.FetchedAt = batch.Listing.FetchedAt()
	}

	return textResult(formatProjects(result)), result, nil
}

func (t projectTools) sync(ctx context.Context, _ *sdkmcp.CallToolRequest, _ *struct{}) (*sdkmcp.CallToolResult, any, error) {
	if t.service == nil {
		return nil, nil, fmt.Errorf("project service not configured")
	}

	res, err := t.service.Sync(ctx)
	if err != nil {
		t.logger.Error("sync_projects failed", "err", err)
		return nil, nil, fmt.Errorf("sync failed: %w", err)
	}

	out := SyncProjectsResult{
		SnapshotID: res.SnapshotID,
		Projects:   len(res.Projects),
		Stored:     res.Stored,
		FetchedAt:  res.FetchedAt,
	}

	msg := fmt.Sprintf("[sync_projects] Fetched %d project(s)", out.Projects)
	if out.SnapshotID != "" {
		msg += fmt.Sprintf(", snapshot %s", out.SnapshotID)
	}
	if !out.Stored {
		msg += " (no storage configured)"
	}

	return textResult(msg), out, nil
}

func formatProjects(result ListProjectsResult) string {
	if len(result.Projects) == 0 {
		return fmt.Sprintf("[list_projects] No matching projects among %d", result.Total)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[list_projects] %d of %d project(s)\n", len(result.Projects), result.Total)
	for _, p := range result.Projects {
		fmt.Fprintf(&sb, "\n- %s (%s) skills: %s", p.Name, p.Repository, strings.Join(p.Skills, ", "))
	}
	return sb.String()
}
