package api

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/titanomni/omni/internal/engine"
	"github.com/titanomni/omni/internal/storage"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Store *storage.Store
}

// NewMCPServer creates an MCP server exposing the content service to
// agent hosts: tools for browsing projects and deploying agents, plus
// resources mirroring the dashboard views.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"omni",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("omni — creative studio content service: generated projects, deployed agents, and the engine catalog."),
		server.WithRecovery(),
	)

	// Tools
	s.AddTool(
		mcp.NewTool("list_engines",
			mcp.WithDescription("List the available generation engines with their titles."),
		),
		mcpListEngines(),
	)

	s.AddTool(
		mcp.NewTool("list_projects",
			mcp.WithDescription("List stored projects, newest first. Returns summaries without the full artifact content."),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20)")),
		),
		mcpListProjects(deps),
	)

	s.AddTool(
		mcp.NewTool("get_project",
			mcp.WithDescription("Fetch a single project including its full artifact JSON."),
			mcp.WithString("id", mcp.Description("Project id"), mcp.Required()),
		),
		mcpGetProject(deps),
	)

	s.AddTool(
		mcp.NewTool("deploy_agent",
			mcp.WithDescription("Deploy an agent with a name and task. The agent is recorded as active."),
			mcp.WithString("name", mcp.Description("Agent name"), mcp.Required()),
			mcp.WithString("task", mcp.Description("What the agent should do"), mcp.Required()),
		),
		mcpDeployAgent(deps),
	)

	// Resources
	s.AddResource(
		mcp.NewResource(
			"omni://projects",
			"Projects",
			mcp.WithResourceDescription("All stored projects as JSON, newest first"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceProjects(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"omni://engines",
			"Engine Catalog",
			mcp.WithResourceDescription("Available generation engines as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceEngines(),
	)

	return s
}

type engineSummary struct {
	Tag        string `json:"tag"`
	Title      string `json:"title"`
	Generative bool   `json:"generative"`
}

func engineCatalog() []engineSummary {
	tags := engine.Tags()
	catalog := make([]engineSummary, 0, len(tags))
	for _, tag := range tags {
		desc, err := engine.Resolve(tag)
		if err != nil {
			continue
		}
		catalog = append(catalog, engineSummary{
			Tag:        string(desc.Tag),
			Title:      desc.Title,
			Generative: desc.Generative,
		})
	}
	return catalog
}

func mcpListEngines() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, err := json.Marshal(engineCatalog())
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal engines: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpListProjects(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := req.GetInt("limit", 20)
		if limit <= 0 {
			limit = 20
		}
		if limit > 100 {
			limit = 100
		}

		projects, err := deps.Store.ListProjects()
		if err != nil {
			return mcpError(fmt.Sprintf("failed to list projects: %v", err)), nil
		}
		if len(projects) > limit {
			projects = projects[:limit]
		}

		type projectSummary struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			Type      string `json:"type"`
			CreatedAt string `json:"created_at"`
		}
		summaries := make([]projectSummary, len(projects))
		for i, p := range projects {
			summaries[i] = projectSummary{
				ID:        p.ID,
				Name:      truncate(p.Name, 200),
				Type:      p.Type,
				CreatedAt: p.CreatedAt.Format("2006-01-02 15:04"),
			}
		}

		b, err := json.Marshal(summaries)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal projects: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpGetProject(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcpError("id is required"), nil
		}

		p, err := deps.Store.GetProject(id)
		if err != nil {
			return mcpError(fmt.Sprintf("project %s: %v", id, err)), nil
		}

		b, err := json.Marshal(p)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal project: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpDeployAgent(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return mcpError("name is required"), nil
		}
		task, err := req.RequireString("task")
		if err != nil {
			return mcpError("task is required"), nil
		}

		a := storage.Agent{
			ID:   uuid.New().String(),
			Name: name,
			Task: task,
		}
		if err := deps.Store.CreateAgent(a); err != nil {
			return mcpError(fmt.Sprintf("failed to deploy agent: %v", err)), nil
		}
		return mcpText(fmt.Sprintf("Deployed agent %s (%s)", a.ID, name)), nil
	}
}

func mcpResourceProjects(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		projects, err := deps.Store.ListProjects()
		if err != nil {
			return nil, fmt.Errorf("failed to list projects: %w", err)
		}

		b, err := json.Marshal(projects)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal projects: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpResourceEngines() server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(engineCatalog())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal engines: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
