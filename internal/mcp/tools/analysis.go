package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/lfx-mentorship/internal/domain/analysis"
	"github.com/honeycarbs/lfx-mentorship/internal/repository"
	"github.com/honeycarbs/lfx-mentorship/pkg/logging"
)

// SkillAnalyzer answers skill questions over the listed projects
type SkillAnalyzer interface {
	SkillDemand(ctx context.Context, limit int) (analysis.SkillDemand, error)
	Related(ctx context.Context, projectID string, limit int) ([]repository.RelatedProject, error)
}

// SkillDemandParams defines the arguments for the skill_demand tool
type SkillDemandParams struct {
	Limit int `json:"limit,omitempty" jsonschema:"How many skills to return (default 10)"`
}

// SkillEntry is one ranked skill
type SkillEntry struct {
	Skill    string `json:"skill"`
	Projects int    `json:"projects" jsonschema:"Number of projects requiring the skill"`
}

// SkillDemandResult is the structured response of skill_demand
type SkillDemandResult struct {
	Skills      []SkillEntry `json:"skills"`
	Origin      string       `json:"origin" jsonschema:"graph, snapshot or live"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// RelatedProjectsParams defines the arguments for the related_projects tool
type RelatedProjectsParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project identifier returned by list_projects"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of related projects (default 10)"`
}

// RelatedProjectEntry is a project sharing skills with the requested one
type RelatedProjectEntry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Repository   string   `json:"repository"`
	SharedSkills []string `json:"shared_skills"`
	Relevance    int      `json:"relevance"`
}

// RelatedProjectsResult is the structured response of related_projects
type RelatedProjectsResult struct {
	ProjectID string                `json:"project_id"`
	Related   []RelatedProjectEntry `json:"related"`
}

type analysisTools struct {
	analyzer SkillAnalyzer
	logger   *logging.Logger
}

// WithAnalysisTools registers skill_demand and related_projects
func WithAnalysisTools(analyzer SkillAnalyzer) Option {
	return func(reg *registry) {
		handler := analysisTools{analyzer: analyzer, logger: reg.logger}

		addTool(reg, &sdkmcp.Tool{
			Name:        "skill_demand",
			Description: "Rank the skills most often requested by mentorship projects",
		}, handler.skillDemand)

		addTool(reg, &sdkmcp.Tool{
			Name:        "related_projects",
			Description: "Find stored projects that share required skills with a given project",
		}, handler.related)
	}
}

func (t analysisTools) skillDemand(ctx context.Context, _ *sdkmcp.CallToolRequest, params *SkillDemandParams) (*sdkmcp.CallToolResult, any, error) {
	if t.analyzer == nil {
		return nil, nil, fmt.Errorf("analysis service not configured")
	}
	if params == nil {
		params = &SkillDemandParams{}
	}

	demand, err := t.analyzer.SkillDemand(ctx, params.Limit)
	if err != nil {
		t.logger.Error("skill_demand failed", "err", err)
		return nil, nil, fmt.Errorf("skill demand failed: %w", err)
	}

	result := SkillDemandResult{
		Skills:      make([]SkillEntry, 0, len(demand.Skills)),
		Origin:      demand.Origin,
		GeneratedAt: demand.GeneratedAt,
	}
	for _, s := range demand.Skills {
		result.Skills = append(result.Skills, SkillEntry{Skill: s.Skill, Projects: s.Projects})
	}

	t.logger.Debug("skill_demand completed", "skills", len(result.Skills), "origin", result.Origin)

	if len(result.Skills) == 0 {
		return textResult("[skill_demand] No skills found"), result, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[skill_demand] Top %d skill(s) from %s\n", len(result.Skills), result.Origin)
	for i, s := range result.Skills {
		fmt.Fprintf(&sb, "\n%d. %s (%d)", i+1, s.Skill, s.Projects)
	}
	return textResult(sb.String()), result, nil
}

func (t analysisTools) related(ctx context.Context, _ *sdkmcp.CallToolRequest, params *RelatedProjectsParams) (*sdkmcp.CallToolResult, any, error) {
	if t.analyzer == nil {
		return nil, nil, fmt.Errorf("analysis service not configured")
	}
	if params == nil || strings.TrimSpace(params.ProjectID) == "" {
		return nil, nil, fmt.Errorf("project_id is required")
	}

	related, err := t.analyzer.Related(ctx, params.ProjectID, params.Limit)
	if err != nil {
		t.logger.Error("related_projects failed", "err", err, "project_id", params.ProjectID)
		return nil, nil, err
	}

	result := RelatedProjectsResult{
		ProjectID: params.ProjectID,
		Related:   make([]RelatedProjectEntry, 0, len(related)),
	}
	for _, r := range related {
		result.Related = append(result.Related, RelatedProjectEntry(r))
	}

	if len(result.Related) == 0 {
		return textResult(fmt.Sprintf("[related_projects] No projects share skills with %s", params.ProjectID)), result, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[related_projects] %d project(s) related to %s\n", len(result.Related), params.ProjectID)
	for _, r := range result.Related {
		fmt.Fprintf(&sb, "\n- %s shares %s", r.Name, strings.Join(r.SharedSkills, ", "))
	}
	return textResult(sb.String()), result, nil
}
