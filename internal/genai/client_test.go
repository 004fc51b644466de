package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/titanomni/omni/internal/shape"
)

func fp(v float64) *float64 { return &v }

func candidateBody(text string) string {
	b, _ := json.Marshal(GenerateResponse{
		Candidates: []Candidate{{Content: Content{Parts: []Part{{Text: text}}}}},
	})
	return string(b)
}

func TestGenerateContent(t *testing.T) {
	var gotPath string
	var gotBody GenerateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, candidateBody(`{"title":"Dawn"}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	text, err := c.GenerateContent(context.Background(), Params{
		Model:             "gemini-3.1-pro-preview",
		Prompt:            "a sunrise over the sea",
		SystemInstruction: "You are a director.",
		ResponseSchema:    shape.VideoScript,
		Temperature:       fp(0.7),
		TopP:              fp(0.95),
		TopK:              40,
		MaxOutputTokens:   2048,
	})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}

	if text != `{"title":"Dawn"}` {
		t.Errorf("text = %q", text)
	}
	if want := "/v1beta/models/gemini-3.1-pro-preview:generateContent"; gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}
	if gotBody.SystemInstruction == nil || gotBody.SystemInstruction.Parts[0].Text != "You are a director." {
		t.Error("system instruction not forwarded")
	}
	cfg := gotBody.GenerationConfig
	if cfg == nil || cfg.ResponseMIMEType != "application/json" || cfg.ResponseSchema == nil {
		t.Error("response schema constraint not forwarded")
	}
	if cfg != nil && (cfg.Temperature == nil || *cfg.Temperature != 0.7 || cfg.TopK != 40 || cfg.MaxOutputTokens != 2048) {
		t.Errorf("sampling config not forwarded: %+v", cfg)
	}
}

// TestGenerateContent_ZeroTemperatureOnWire verifies an explicit 0
// survives serialization instead of being dropped as a zero value.
func TestGenerateContent_ZeroTemperatureOnWire(t *testing.T) {
	var gotBody GenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		fmt.Fprint(w, candidateBody("ok"))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	if _, err := c.GenerateContent(context.Background(), Params{
		Model:       "m",
		Prompt:      "x",
		Temperature: fp(0),
		TopP:        fp(0),
	}); err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}

	cfg := gotBody.GenerationConfig
	if cfg == nil || cfg.Temperature == nil || *cfg.Temperature != 0 {
		t.Errorf("temperature 0 missing from wire: %+v", cfg)
	}
	if cfg != nil && (cfg.TopP == nil || *cfg.TopP != 0) {
		t.Errorf("topP 0 missing from wire: %+v", cfg)
	}
}

func TestGenerateContent_NoSchemaOmitsMIMEType(t *testing.T) {
	var gotBody GenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		fmt.Fprint(w, candidateBody("a calm beach at dusk"))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	text, err := c.GenerateContent(context.Background(), Params{Model: "m", Prompt: "beach"})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if text != "a calm beach at dusk" {
		t.Errorf("text = %q", text)
	}
	if gotBody.GenerationConfig.ResponseMIMEType != "" {
		t.Error("mime type should be omitted without a schema")
	}
}

func TestGenerateContent_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"API key not valid"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("bad-key", srv.URL)
	_, err := c.GenerateContent(context.Background(), Params{Model: "m", Prompt: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "API key not valid") {
		t.Errorf("error should carry the upstream body: %v", err)
	}
}

func TestGenerateContent_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, candidateBody("ok"))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	text, err := c.GenerateContent(context.Background(), Params{Model: "m", Prompt: "x"})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if text != "ok" {
		t.Errorf("text = %q", text)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestGenerateContent_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	_, err := c.GenerateContent(context.Background(), Params{Model: "m", Prompt: "x"})
	if err == nil {
		t.Fatal("expected error for empty candidate list")
	}
}
