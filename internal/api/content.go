// Package api exposes the content service over HTTP and MCP. The HTTP
// surface is a small unauthenticated CRUD API bound to localhost; the
// MCP surface gives agent hosts read access to the same data.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/titanomni/omni/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB

// NewContentHandler returns the content service HTTP handler.
func NewContentHandler(store *storage.Store) http.Handler {
	r := chi.NewRouter()

	r.Get("/api/health", handleHealth)
	r.Get("/api/projects", handleListProjects(store))
	r.Post("/api/projects", handleCreateProject(store))
	r.Put("/api/projects/{id}", handleUpdateProject(store))
	r.Delete("/api/projects/{id}", handleDeleteProject(store))
	r.Get("/api/agents", handleListAgents(store))
	r.Post("/api/agents", handleCreateAgent(store))

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "TITAN-OMNI Online",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func handleListProjects(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := store.ListProjects()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "storage_error", "listing projects: %v", err)
			return
		}
		if projects == nil {
			projects = []storage.Project{}
		}
		writeJSON(w, http.StatusOK, projects)
	}
}

func handleCreateProject(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var p storage.Project
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}

		if err := store.CreateProject(p); err != nil {
			if errors.Is(err, storage.ErrDuplicateID) {
				httpError(w, http.StatusConflict, "conflict", "a project with this id already exists")
				return
			}
			httpError(w, http.StatusInternalServerError, "storage_error", "creating project: %v", err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "id": p.ID})
	}
}

func handleUpdateProject(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var body struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		// Updating an absent id is a successful no-op.
		if err := store.UpdateProjectContent(chi.URLParam(r, "id"), body.Content); err != nil {
			httpError(w, http.StatusInternalServerError, "storage_error", "updating project: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func handleDeleteProject(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteProject(chi.URLParam(r, "id")); err != nil {
			httpError(w, http.StatusInternalServerError, "storage_error", "deleting project: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func handleListAgents(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agents, err := store.ListAgents()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "storage_error", "listing agents: %v", err)
			return
		}
		if agents == nil {
			agents = []storage.Agent{}
		}
		writeJSON(w, http.StatusOK, agents)
	}
}

func handleCreateAgent(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var a storage.Agent
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if a.ID == "" {
			a.ID = uuid.New().String()
		}

		// The store forces status to active regardless of the body.
		if err := store.CreateAgent(a); err != nil {
			if errors.Is(err, storage.ErrDuplicateID) {
				httpError(w, http.StatusConflict, "conflict", "an agent with this id already exists")
				return
			}
			httpError(w, http.StatusInternalServerError, "storage_error", "creating agent: %v", err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "id": a.ID})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
