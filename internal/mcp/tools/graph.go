package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	pkgneo4j "github.com/honeycarbs/lfx-mentorship/pkg/neo4j"
)

// GraphQueryParams defines the arguments for the graph_query tool
type GraphQueryParams struct {
	Cypher    string         `json:"cypher,omitempty" jsonschema:"Read-only Cypher query to run"`
	ProjectID string         `json:"project_id,omitempty" jsonschema:"Inspect one project and its skills, mentors and term"`
	Params    map[string]any `json:"params,omitempty" jsonschema:"Extra query parameters for cypher"`
}

const projectInspectQuery = `
	MATCH (p:Project {id: $projectId})
	OPTIONAL MATCH (p)-[:REQUIRES]->(s:Skill)
	OPTIONAL MATCH (m:Mentor)-[:MENTORS]->(p)
	OPTIONAL MATCH (p)-[:IN_TERM]->(t:ProgramTerm)
	RETURN p,
	       collect(DISTINCT s.name) as skills,
	       collect(DISTINCT m.name) as mentors,
	       t.name as term
`

const labelCountQuery = "MATCH (n) RETURN labels(n) as labels, count(n) as count ORDER BY count DESC LIMIT 20"

type graphToolHandler struct {
	client *pkgneo4j.Client
}

// WithGraphQuery registers the graph_query developer tool
func WithGraphQuery(client *pkgneo4j.Client) Option {
	return func(reg *registry) {
		if client == nil {
			return
		}
		handler := &graphToolHandler{client: client}
		addTool(reg, &sdkmcp.Tool{
			Name:        "graph_query",
			Description: "Developer tool for inspecting the Neo4j project graph with read-only Cypher",
		}, handler.handle)
	}
}

func (h *graphToolHandler) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params *GraphQueryParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &GraphQueryParams{}
	}

	query, queryParams := buildGraphQuery(*params)

	result, err := h.executeQuery(ctx, query, queryParams)
	if err != nil {
		return nil, nil, fmt.Errorf("graph_query: %w", err)
	}

	return textResult(result), nil, nil
}

// buildGraphQuery picks the custom query, the project inspection, or the label overview
func buildGraphQuery(params GraphQueryParams) (string, map[string]any) {
	switch {
	case params.Cypher != "":
		queryParams := make(map[string]any, len(params.Params)+1)
		for k, v := range params.Params {
			queryParams[k] = v
		}
		if params.ProjectID != "" {
			queryParams["projectId"] = params.ProjectID
		}
		if len(queryParams) == 0 {
			queryParams = nil
		}
		return params.Cypher, queryParams
	case params.ProjectID != "":
		return projectInspectQuery, map[string]any{"projectId": params.ProjectID}
	default:
		return labelCountQuery, nil
	}
}

func (h *graphToolHandler) executeQuery(ctx context.Context, query string, params map[string]any) (string, error) {
	session := h.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	var (
		allRecords []*neo4j.Record
		keys       []string
	)

	_, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}

		for result.Next(ctx) {
			record := result.Record()
			if keys == nil {
				keys = record.Keys
			}
			allRecords = append(allRecords, record)
		}

		if err := result.Err(); err != nil {
			return nil, err
		}

		return nil, nil
	})
	if err != nil {
		return "", fmt.Errorf("query execution failed: %w", err)
	}

	return formatCollectedResults(allRecords, keys)
}

func formatCollectedResults(records []*neo4j.Record, keys []string) (string, error) {
	if len(records) == 0 {
		return "Query returned no rows", nil
	}

	var sb strings.Builder
	sb.WriteString("Results:\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for i, record := range records {
		fmt.Fprintf(&sb, "Row %d:\n", i+1)

		for _, key := range keys {
			val, ok := record.Get(key)
			if !ok {
				fmt.Fprintf(&sb, "  %s: <not found>\n", key)
				continue
			}
			fmt.Fprintf(&sb, "  %s: %s\n", key, formatValue(val))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func formatValue(val any) string {
	if val == nil {
		return "null"
	}

	switch v := val.(type) {
	case neo4j.Node:
		propsJSON, _ := json.Marshal(v.Props)
		return fmt.Sprintf("Node[%v] %s", v.Labels, string(propsJSON))
	case neo4j.Relationship:
		propsJSON, _ := json.Marshal(v.Props)
		return fmt.Sprintf("Relationship[%s] %s", v.Type, string(propsJSON))
	case []any:
		if len(v) == 0 {
			return "[]"
		}
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, formatValue(item))
		}
		return fmt.Sprintf("[%s]", strings.Join(items, ", "))
	case map[string]any:
		jsonBytes, _ := json.Marshal(v)
		return string(jsonBytes)
	case string:
		return fmt.Sprintf("%q", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%.2f", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		jsonBytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(jsonBytes)
	}
}
