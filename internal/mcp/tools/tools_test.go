package tools

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/lfx-mentorship/internal/domain"
	"github.com/honeycarbs/lfx-mentorship/internal/domain/analysis"
	"github.com/honeycarbs/lfx-mentorship/internal/domain/project"
	"github.com/honeycarbs/lfx-mentorship/internal/export/files"
	"github.com/honeycarbs/lfx-mentorship/internal/export/sheets"
	"github.com/honeycarbs/lfx-mentorship/internal/repository"
	"github.com/honeycarbs/lfx-mentorship/pkg/lfx"
	"github.com/honeycarbs/lfx-mentorship/pkg/logging"
)

const listingBody = `{"hits":{"hits":[
	{"_source":{"name":"Proj1","repoLink":"https://x","industry":"Tech","description":"d",
		"apprenticeNeeds":{"skills":["Go","Rust"],"mentors":[{"name":"A","email":"a@x.com","introduction":"hi"}]},
		"programTerms":[{"activeUsers":5,"name":"T1","Active":true}]}},
	{"_source":{"name":"Proj2","repoLink":"https://y","industry":"Health","description":"e",
		"apprenticeNeeds":{"skills":["Python"],"mentors":[{"name":"B"}]},
		"programTerms":[{"name":"T2"}]}}
]}}`

var fetchedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type stubService struct {
	fetches   int
	latestErr error
	syncErr   error
}

func (s *stubService) batch() (project.Batch, error) {
	listing, err := lfx.ParseListing([]byte(listingBody), fetchedAt)
	if err != nil {
		return project.Batch{}, err
	}
	projects, err := project.FromListing("lfx", listing)
	if err != nil {
		return project.Batch{}, err
	}
	return project.Batch{Listing: listing, Projects: projects}, nil
}

func (s *stubService) Fetch(context.Context) (project.Batch, error) {
	s.fetches++
	return s.batch()
}

func (s *stubService) Sync(context.Context) (domain.SyncResult, error) {
	if s.syncErr != nil {
		return domain.SyncResult{}, s.syncErr
	}
	b, _ := s.batch()
	return domain.SyncResult{
		SnapshotID: "snap-1",
		Projects:   project.Summarize(b.Projects),
		FetchedAt:  fetchedAt,
		Stored:     true,
	}, nil
}

func (s *stubService) Latest(context.Context) (project.Batch, error) {
	if s.latestErr != nil {
		return project.Batch{}, s.latestErr
	}
	return s.batch()
}

type stubAnalyzer struct{}

func (stubAnalyzer) SkillDemand(_ context.Context, limit int) (analysis.SkillDemand, error) {
	return analysis.SkillDemand{
		Skills:      []repository.SkillCount{{Skill: "Go", Projects: 3}, {Skill: "Rust", Projects: 1}}[:limit],
		Origin:      "snapshot",
		GeneratedAt: fetchedAt,
	}, nil
}

func (stubAnalyzer) Related(_ context.Context, id string, _ int) ([]repository.RelatedProject, error) {
	return []repository.RelatedProject{{ID: "other", Name: "Proj9", SharedSkills: []string{"Go"}, Relevance: 1}}, nil
}

type stubExporter struct {
	rows   [][]string
	params sheets.Params
}

func (e *stubExporter) Export(_ context.Context, rows [][]string, params sheets.Params) (sheets.Result, error) {
	e.rows, e.params = rows, params
	return sheets.Result{SpreadsheetID: "sheet", Tab: "Projects", WrittenRows: len(rows), Message: "ok"}, nil
}

func connect(t *testing.T, opts ...Option) (*sdkmcp.ClientSession, []string) {
	t.Helper()
	ctx := context.Background()

	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test-server", Version: "0.0.1"}, nil)
	names := Register(server, logging.NewNop(), opts...)

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Wait()
	})
	return session, names
}

func call(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return res
}

func decode(t *testing.T, res *sdkmcp.CallToolResult, out any) {
	t.Helper()
	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func text(res *sdkmcp.CallToolResult) string {
	for _, c := range res.Content {
		if txt, ok := c.(*sdkmcp.TextContent); ok {
			return txt.Text
		}
	}
	return ""
}

func TestRegister_SkipsNilOptionsAndGraphWithoutClient(t *testing.T) {
	_, names := connect(t, WithProjectTools(&stubService{}), nil, WithGraphQuery(nil))
	assert.Equal(t, []string{"list_projects", "sync_projects"}, names)
}

func TestListProjects_Filters(t *testing.T) {
	session, _ := connect(t, WithProjectTools(&stubService{}))

	res := call(t, session, "list_projects", map[string]any{"skill": "python"})
	require.False(t, res.IsError, text(res))

	var got ListProjectsResult
	decode(t, res, &got)
	assert.Equal(t, 2, got.Total)
	require.Len(t, got.Projects, 1)
	assert.Equal(t, "Proj2", got.Projects[0].Name)
	assert.Equal(t, domain.NewProjectID("https://y", "Proj2"), got.Projects[0].ID)
	assert.True(t, got.FetchedAt.Equal(fetchedAt))
	assert.Contains(t, text(res), "1 of 2 project(s)")
}

func TestListProjects_OfflineWithoutSnapshot(t *testing.T) {
	svc := &stubService{latestErr: project.ErrNoSnapshot}
	session, _ := connect(t, WithProjectTools(svc))

	res := call(t, session, "list_projects", map[string]any{"offline": true})
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "sync_projects")
	assert.Zero(t, svc.fetches)
}

func TestSyncProjects(t *testing.T) {
	session, _ := connect(t, WithProjectTools(&stubService{}))

	res := call(t, session, "sync_projects", nil)
	require.False(t, res.IsError, text(res))

	var got SyncProjectsResult
	decode(t, res, &got)
	assert.Equal(t, "snap-1", got.SnapshotID)
	assert.Equal(t, 2, got.Projects)
	assert.True(t, got.Stored)
}

func TestSyncProjects_Error(t *testing.T) {
	session, _ := connect(t, WithProjectTools(&stubService{syncErr: errors.New("upstream down")}))

	res := call(t, session, "sync_projects", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "upstream down")
}

func TestExportProjects_WritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	session, _ := connect(t, WithExportProjects(&stubService{}, files.Target{Dir: dir}))

	res := call(t, session, "export_projects", map[string]any{"format": "json"})
	require.False(t, res.IsError, text(res))

	var got ExportProjectsResult
	decode(t, res, &got)
	assert.Equal(t, 2, got.Records)
	require.Equal(t, []string{filepath.Join(dir, lfx.DefaultJSONFile)}, got.Files)

	data, err := os.ReadFile(got.Files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Proj1"`)
}

func TestExportProjects_BadFormat(t *testing.T) {
	svc := &stubService{}
	session, _ := connect(t, WithExportProjects(svc, files.Target{Dir: t.TempDir()}))

	res := call(t, session, "export_projects", map[string]any{"format": "xml"})
	assert.True(t, res.IsError)
	assert.Zero(t, svc.fetches)
}

func TestSheetsExport(t *testing.T) {
	exporter := &stubExporter{}
	session, _ := connect(t, WithSheetsExport(&stubService{}, exporter))

	res := call(t, session, "sheets_export", map[string]any{"tab": "Mine", "clear_tab": true})
	require.False(t, res.IsError, text(res))

	require.Len(t, exporter.rows, 3)
	assert.Equal(t, lfx.Header, exporter.rows[0])
	assert.Equal(t, sheets.Params{Tab: "Mine", Clear: true}, exporter.params)

	var got sheets.Result
	decode(t, res, &got)
	assert.Equal(t, 3, got.WrittenRows)
}

func TestSheetsExport_NotConfigured(t *testing.T) {
	session, _ := connect(t, WithSheetsExport(&stubService{}, nil))

	res := call(t, session, "sheets_export", nil)
	assert.True(t, res.IsError)
}

func TestSkillDemand(t *testing.T) {
	session, _ := connect(t, WithAnalysisTools(stubAnalyzer{}))

	res := call(t, session, "skill_demand", map[string]any{"limit": 1})
	require.False(t, res.IsError, text(res))

	var got SkillDemandResult
	decode(t, res, &got)
	assert.Equal(t, []SkillEntry{{Skill: "Go", Projects: 3}}, got.Skills)
	assert.Equal(t, "snapshot", got.Origin)
	assert.Contains(t, text(res), "1. Go (3)")
}

func TestRelatedProjects(t *testing.T) {
	session, _ := connect(t, WithAnalysisTools(stubAnalyzer{}))

	res := call(t, session, "related_projects", map[string]any{"project_id": "abc"})
	require.False(t, res.IsError, text(res))

	var got RelatedProjectsResult
	decode(t, res, &got)
	assert.Equal(t, "abc", got.ProjectID)
	require.Len(t, got.Related, 1)
	assert.Equal(t, "Proj9", got.Related[0].Name)

	res = call(t, session, "related_projects", map[string]any{"project_id": "  "})
	assert.True(t, res.IsError)
}

func TestBuildGraphQuery(t *testing.T) {
	q, params := buildGraphQuery(GraphQueryParams{})
	assert.Equal(t, labelCountQuery, q)
	assert.Nil(t, params)

	q, params = buildGraphQuery(GraphQueryParams{ProjectID: "p1"})
	assert.Equal(t, projectInspectQuery, q)
	assert.Equal(t, map[string]any{"projectId": "p1"}, params)

	q, params = buildGraphQuery(GraphQueryParams{Cypher: "MATCH (n) RETURN n", ProjectID: "p1", Params: map[string]any{"x": 1}})
	assert.Equal(t, "MATCH (n) RETURN n", q)
	assert.Equal(t, map[string]any{"projectId": "p1", "x": 1}, params)

	_, params = buildGraphQuery(GraphQueryParams{Cypher: "RETURN 1"})
	assert.Nil(t, params)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "null", formatValue(nil))
	assert.Equal(t, `"go"`, formatValue("go"))
	assert.Equal(t, "3", formatValue(int64(3)))
	assert.Equal(t, `["a", 1]`, formatValue([]any{"a", int64(1)}))
	assert.Equal(t, "[]", formatValue([]any{}))
}
