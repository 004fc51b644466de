// Package genai is the HTTP client for the hosted generative-language
// API. Every failure mode is surfaced to the caller; nothing here retries
// beyond the bounded rate-limit loop, and the returned text is never
// assumed to be valid JSON.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/titanomni/omni/internal/shape"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultTimeout = 120 * time.Second
	maxRetries     = 3
	initialBackoff = 500 * time.Millisecond
)

// Client communicates with the generative-language API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// NewClientWithBaseURL creates a client pointing at a custom base URL (for testing).
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// Params carries everything one generation call needs. Nil Temperature
// or TopP omits the field, leaving the model's own default; zero values
// are sent explicitly.
type Params struct {
	Model             string
	Prompt            string
	SystemInstruction string
	ResponseSchema    *shape.Schema
	Temperature       *float64
	TopP              *float64
	TopK              int
	MaxOutputTokens   int
}

// GenerateContent runs one generateContent call and returns the first
// candidate's text. When ResponseSchema is set the call requests
// application/json output constrained to that shape; the text is still
// returned verbatim.
func (c *Client) GenerateContent(ctx context.Context, p Params) (string, error) {
	req := GenerateRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: p.Prompt}}}},
	}
	if p.SystemInstruction != "" {
		req.SystemInstruction = &Content{Parts: []Part{{Text: p.SystemInstruction}}}
	}
	cfg := &GenerationConfig{
		Temperature:     p.Temperature,
		TopP:            p.TopP,
		TopK:            p.TopK,
		MaxOutputTokens: p.MaxOutputTokens,
	}
	if p.ResponseSchema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = p.ResponseSchema
	}
	req.GenerationConfig = cfg

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	var lastErr error
	for attempt := range maxRetries {
		text, err := c.doGenerate(ctx, p.Model, body)
		if err == nil {
			return text, nil
		}

		if !isRateLimit(err) {
			return "", err
		}

		lastErr = err
		if attempt < maxRetries-1 {
			backoff := time.Duration(float64(initialBackoff) * math.Pow(2, float64(attempt)))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return "", fmt.Errorf("rate limited after %d retries: %w", maxRetries, lastErr)
}

// rateLimitError is returned on HTTP 429.
type rateLimitError struct {
	status int
}

func (e *rateLimitError) Error() string {
	return fmt.Sprintf("rate limited (HTTP %d)", e.status)
}

func isRateLimit(err error) bool {
	_, ok := err.(*rateLimitError)
	return ok
}

func (c *Client) doGenerate(ctx context.Context, model string, body []byte) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", &rateLimitError{status: resp.StatusCode}
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}
	return result.Text(), nil
}
