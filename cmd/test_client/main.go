package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	withSync := flag.Bool("sync", false, "Also call sync_projects (writes to the configured stores)")
	flag.Parse()

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "lfx-mentorship-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testListProjects(ctx, session)
	testSkillDemand(ctx, session)
	testExportProjects(ctx, session)
	if *withSync {
		testSyncProjects(ctx, session)
	}

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: tools/list")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("tools/list failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("  %s: %s\n", tool.Name, tool.Description)
	}
}

func testListProjects(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list_projects")

	// Test 1: unfiltered, first five
	callTool(ctx, session, "list_projects", map[string]any{"limit": 5})

	// Test 2: by skill
	fmt.Println("\n  list_projects with skill filter")
	callTool(ctx, session, "list_projects", map[string]any{"skill": "Go", "limit": 5})
}

func testSkillDemand(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: skill_demand")
	callTool(ctx, session, "skill_demand", map[string]any{"limit": 10})
}

func testExportProjects(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: export_projects")
	callTool(ctx, session, "export_projects", map[string]any{"format": "both"})
}

func testSyncProjects(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: sync_projects")
	callTool(ctx, session, "sync_projects", map[string]any{})
}

func callTool(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		log.Printf("%s failed: %v", name, err)
		return
	}

	printResult(result)
	if result.IsError {
		fmt.Printf("%s returned a tool error\n", name)
		return
	}
	fmt.Printf("%s passed\n", name)
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
