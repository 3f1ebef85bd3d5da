package tools

import (
	"context"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/lfx-mentorship/internal/domain/project"
)

// textResult returns a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

// loadBatch returns the stored snapshot when offline is set, otherwise fetches live
func loadBatch(ctx context.Context, svc project.Service, offline bool) (project.Batch, error) {
	if svc == nil {
		return project.Batch{}, fmt.Errorf("project service not configured")
	}
	if !offline {
		return svc.Fetch(ctx)
	}

	batch, err := svc.Latest(ctx)
	if errors.Is(err, project.ErrNoSnapshot) {
		return project.Batch{}, fmt.Errorf("no stored snapshot, run sync_projects first: %w", err)
	}
	return batch, err
}
