package storage

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestMigrationsIdempotent runs Open twice on the same database and verifies
// the schema_version count stays correct (migration not re-applied).
func TestMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}

	v1, err := s1.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}
	s1.Close()

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer s2.Close()

	v2, err := s2.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}

	if len(v1) != len(v2) {
		t.Errorf("migration count changed: %d -> %d", len(v1), len(v2))
	}
}

func TestIndexesExist(t *testing.T) {
	s := openTestStore(t)

	indexes := []string{"idx_projects_created", "idx_projects_type", "idx_agents_created"}
	for _, idx := range indexes {
		var count int
		err := s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?", idx).Scan(&count)
		if err != nil {
			t.Fatalf("querying sqlite_master for %q: %v", idx, err)
		}
		if count != 1 {
			t.Errorf("index %q not found in sqlite_master", idx)
		}
	}
}

func TestProjectRoundTrip(t *testing.T) {
	s := openTestStore(t)

	p := Project{
		ID:      "p-1",
		Name:    "Neon City",
		Type:    "app",
		Content: `{"appName":"Neon City","code":"<div/>"}`,
	}
	if err := s.CreateProject(p); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	got, err := s.GetProject("p-1")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.Name != p.Name || got.Type != p.Type || got.Content != p.Content {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at not assigned")
	}
}

func TestCreateProjectDuplicateID(t *testing.T) {
	s := openTestStore(t)

	p := Project{ID: "dup", Name: "a", Type: "app", Content: "{}"}
	if err := s.CreateProject(p); err != nil {
		t.Fatalf("first CreateProject: %v", err)
	}
	err := s.CreateProject(p)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestListProjectsNewestFirst(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2040, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 3 {
		p := Project{
			ID:        fmt.Sprintf("p-%d", i),
			Name:      fmt.Sprintf("project %d", i),
			Type:      "story",
			Content:   "{}",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.CreateProject(p); err != nil {
			t.Fatalf("CreateProject: %v", err)
		}
	}

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(projects))
	}
	if projects[0].ID != "p-2" || projects[2].ID != "p-0" {
		t.Errorf("not ordered newest first: %s, %s, %s", projects[0].ID, projects[1].ID, projects[2].ID)
	}
}

func TestUpdateProjectContent(t *testing.T) {
	s := openTestStore(t)

	if err := s.CreateProject(Project{ID: "p-1", Name: "x", Type: "app", Content: "{}"}); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := s.UpdateProjectContent("p-1", `{"edited":true}`); err != nil {
		t.Fatalf("UpdateProjectContent: %v", err)
	}
	got, err := s.GetProject("p-1")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.Content != `{"edited":true}` {
		t.Errorf("content = %q", got.Content)
	}
}

// TestUpdateAbsentProjectIsNoOp verifies updating a non-existent id neither
// errors nor creates a row.
func TestUpdateAbsentProjectIsNoOp(t *testing.T) {
	s := openTestStore(t)

	if err := s.UpdateProjectContent("ghost", "{}"); err != nil {
		t.Fatalf("UpdateProjectContent on absent id: %v", err)
	}
	if _, err := s.GetProject("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProjectIdempotent(t *testing.T) {
	s := openTestStore(t)

	if err := s.CreateProject(Project{ID: "p-1", Content: "{}"}); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := s.DeleteProject("p-1"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if err := s.DeleteProject("p-1"); err != nil {
		t.Fatalf("second DeleteProject should succeed: %v", err)
	}
	if err := s.DeleteProject("never-existed"); err != nil {
		t.Fatalf("DeleteProject on absent id should succeed: %v", err)
	}
}

// TestCreateAgentForcesActive verifies the status column ignores whatever
// the caller supplied.
func TestCreateAgentForcesActive(t *testing.T) {
	s := openTestStore(t)

	a := Agent{ID: "a-1", Name: "Scout", Task: "survey the market", Status: "dormant"}
	if err := s.CreateAgent(a); err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}

	agents, err := s.ListAgents()
	if err != nil {
		t.Fatalf("ListAgents: %v", err)
	}
	if len(agents) != 1 {
		t.Fatalf("expected 1 agent, got %d", len(agents))
	}
	if agents[0].Status != "active" {
		t.Errorf("status = %q, want active", agents[0].Status)
	}
}
