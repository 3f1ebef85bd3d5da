package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/lfx-mentorship/internal/domain/analysis"
	"github.com/honeycarbs/lfx-mentorship/internal/domain/project"
	"github.com/honeycarbs/lfx-mentorship/internal/export/files"
	sheetsexport "github.com/honeycarbs/lfx-mentorship/internal/export/sheets"
	"github.com/honeycarbs/lfx-mentorship/internal/mcp/tools"
	"github.com/honeycarbs/lfx-mentorship/internal/storage/sqlite"
	"github.com/honeycarbs/lfx-mentorship/pkg/logging"
	n4j "github.com/honeycarbs/lfx-mentorship/pkg/neo4j"
)

type ToolRegistry struct {
	logger *logging.Logger
}

// Resources are the services the tools run against; Sheets, Neo4jClient and
// Snapshots are nil when not configured
type Resources struct {
	Projects    project.Service
	Analysis    *analysis.Service
	Sheets      *sheetsexport.Exporter
	Neo4jClient *n4j.Client
	Snapshots   *sqlite.SnapshotRepository
	Files       files.Target
}

func NewToolRegistry(logger *logging.Logger) *ToolRegistry {
	return &ToolRegistry{logger: logger}
}

// RegisterAll installs every tool backed by res
func (r *ToolRegistry) RegisterAll(server *sdkmcp.Server, res Resources) []string {
	var exporter tools.SheetsExporter
	if res.Sheets != nil {
		exporter = res.Sheets
	}

	var analyzer tools.SkillAnalyzer
	if res.Analysis != nil {
		analyzer = res.Analysis
	}

	names := tools.Register(server, r.logger,
		tools.WithProjectTools(res.Projects),
		tools.WithExportProjects(res.Projects, res.Files),
		tools.WithSheetsExport(res.Projects, exporter),
		tools.WithAnalysisTools(analyzer),
		tools.WithGraphQuery(res.Neo4jClient),
	)

	r.logger.Info("MCP tools registered", "tools", names)
	return names
}

func newResources(
	projects project.Service,
	analysisSvc *analysis.Service,
	sheets *sheetsexport.Exporter,
	neo4jClient *n4j.Client,
	snapshots *sqlite.SnapshotRepository,
	target files.Target,
) *Resources {
	return &Resources{
		Projects:    projects,
		Analysis:    analysisSvc,
		Sheets:      sheets,
		Neo4jClient: neo4jClient,
		Snapshots:   snapshots,
		Files:       target,
	}
}
