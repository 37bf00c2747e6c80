package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	recruiter := flag.String("recruiter", "", "recruiter email; recruiter checks are skipped when empty")
	password := flag.String("password", "", "recruiter password")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "jobzone-smoke",
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

	failed := false
	run := func(name string, args map[string]any) {
		fmt.Printf("\nTEST: %s\n", name)
		res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
		if err != nil {
			log.Printf("%s failed: %v", name, err)
			failed = true
			return
		}
		printResult(res)
		if res.IsError {
			fmt.Printf("%s returned a tool error\n", name)
			return
		}
		fmt.Printf("%s passed\n", name)
	}

	listTools(ctx, session)

	run("job_search", map[string]any{"refresh": true})
	run("job_page", map[string]any{"action": "next"})
	run("job_search", map[string]any{"title": "engineer"})
	run("job_search", map[string]any{"clear": "title"})

	// Fresh identity per run so the already-applied path is not hit by accident
	candidate := map[string]any{
		"email": fmt.Sprintf("smoke-%s@example.com", uuid.NewString()[:8]),
		"name":  "Smoke Test",
	}
	run("candidate_sync", candidate)

	run("recruiter_auth", map[string]any{"action": "state"})
	if *recruiter != "" {
		run("recruiter_auth", map[string]any{"action": "login", "email": *recruiter, "password": *password})
		run("recruiter_jobs", map[string]any{})
		run("recruiter_applications", map[string]any{})
		run("recruiter_auth", map[string]any{"action": "logout"})
	}

	if failed {
		fmt.Println("\nSmoke run finished with failures")
		os.Exit(1)
	}
	fmt.Println("\nAll tests completed")
}

func listTools(ctx context.Context, session *mcp.ClientSession) {
	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, t := range res.Tools {
		fmt.Printf("  %s: %s\n", t.Name, t.Description)
	}
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
