// Package content is the typed client for the content service HTTP
// surface. The orchestrator persists generated artifacts through it and
// the CLI uses it for the dashboard views.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Project is the wire form of a persisted artifact.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Agent is the wire form of a deployed agent.
type Agent struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Task      string    `json:"task"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Snapshot is the dashboard view: both collections, newest first.
type Snapshot struct {
	Projects []Project
	Agents   []Agent
}

// Client talks to a running content service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshalling request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content service not reachable — is omni serve running? (%w)", err)
	}
	return resp, nil
}

func decodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("server returned %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if v == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// Health checks the /api/health endpoint.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// ListProjects returns all projects, newest first.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/projects", nil)
	if err != nil {
		return nil, err
	}
	var projects []Project
	if err := decodeJSON(resp, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject inserts a new project row.
func (c *Client) CreateProject(ctx context.Context, p Project) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/projects", p)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// UpdateProjectContent replaces a project's content wholesale. Updating an
// absent id succeeds without creating a row.
func (c *Client) UpdateProjectContent(ctx context.Context, id, content string) error {
	resp, err := c.do(ctx, http.MethodPut, "/api/projects/"+id, map[string]string{"content": content})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// DeleteProject removes a project; deleting an absent id succeeds.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/projects/"+id, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// ListAgents returns all agents, newest first.
func (c *Client) ListAgents(ctx context.Context) ([]Agent, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/agents", nil)
	if err != nil {
		return nil, err
	}
	var agents []Agent
	if err := decodeJSON(resp, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

// DeployAgent creates an agent; the service forces status to "active".
func (c *Client) DeployAgent(ctx context.Context, a Agent) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/agents", a)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// FetchSnapshot loads projects and agents concurrently for the dashboard.
func (c *Client) FetchSnapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects, err := c.ListProjects(gctx)
		if err != nil {
			return fmt.Errorf("listing projects: %w", err)
		}
		snap.Projects = projects
		return nil
	})
	g.Go(func() error {
		agents, err := c.ListAgents(gctx)
		if err != nil {
			return fmt.Errorf("listing agents: %w", err)
		}
		snap.Agents = agents
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
