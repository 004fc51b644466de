// Package orchestrator turns a user prompt plus an engine tag into a
// persisted artifact: resolve the engine, compose the instruction, call
// the generation capability, parse the JSON, derive a display name and
// write the project through the content service.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/titanomni/omni/internal/composer"
	"github.com/titanomni/omni/internal/content"
	"github.com/titanomni/omni/internal/engine"
	"github.com/titanomni/omni/internal/genai"
)

// Input errors, rejected before any external call.
var (
	ErrEmptyPrompt   = errors.New("prompt must not be empty")
	ErrNotGenerative = errors.New("engine is not generation-capable")
)

// MalformedResponseError is returned when the model's text does not parse
// as JSON. The raw text is preserved for diagnostics; nothing is persisted.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("model returned malformed JSON: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// TextGenerator is the generation capability boundary.
type TextGenerator interface {
	GenerateContent(ctx context.Context, p genai.Params) (string, error)
}

// ProjectStore is the persistence boundary (the content service client).
type ProjectStore interface {
	CreateProject(ctx context.Context, p content.Project) error
	ListProjects(ctx context.Context) ([]content.Project, error)
}

// Sampling carries the model sampling parameters. Nil fields take the
// documented defaults; zero is a meaningful explicit value for
// temperature and topP (greedy decoding), so unset is distinct from 0.
type Sampling struct {
	Temperature     *float64
	TopP            *float64
	TopK            *int
	MaxOutputTokens *int
}

// Default sampling parameters.
const (
	DefaultTemperature     = 0.7
	DefaultTopP            = 0.95
	DefaultTopK            = 40
	DefaultMaxOutputTokens = 2048
)

// resolvedSampling is the configuration after defaulting.
type resolvedSampling struct {
	temperature     float64
	topP            float64
	topK            int
	maxOutputTokens int
}

func (s Sampling) withDefaults() resolvedSampling {
	r := resolvedSampling{
		temperature:     DefaultTemperature,
		topP:            DefaultTopP,
		topK:            DefaultTopK,
		maxOutputTokens: DefaultMaxOutputTokens,
	}
	if s.Temperature != nil {
		r.temperature = *s.Temperature
	}
	if s.TopP != nil {
		r.topP = *s.TopP
	}
	if s.TopK != nil {
		r.topK = *s.TopK
	}
	if s.MaxOutputTokens != nil {
		r.maxOutputTokens = *s.MaxOutputTokens
	}
	return r
}

func (s resolvedSampling) validate() error {
	if s.temperature < 0 || s.temperature > 2 {
		return fmt.Errorf("temperature %v out of range [0, 2]", s.temperature)
	}
	if s.topP < 0 || s.topP > 1 {
		return fmt.Errorf("topP %v out of range [0, 1]", s.topP)
	}
	if s.topK < 1 {
		return fmt.Errorf("topK %d must be positive", s.topK)
	}
	if s.maxOutputTokens < 1 {
		return fmt.Errorf("maxOutputTokens %d must be positive", s.maxOutputTokens)
	}
	return nil
}

// Request is one generation invocation.
type Request struct {
	Prompt              string
	Engine              engine.Tag
	InstructionOverride string
	LongForm            bool
	Sampling            Sampling
	Safety              composer.SafetyLevel
	Encryption          bool
}

// Result carries the parsed artifact and the persistence outcome.
// Saved=false with a non-nil Artifact is the documented best-effort
// durability policy: the caller still renders the artifact.
type Result struct {
	Artifact map[string]any
	Project  content.Project
	Saved    bool
	// Projects is the refreshed listing after the save; nil when the
	// refresh itself failed (also best-effort).
	Projects []content.Project
}

// Options configures a Generator.
type Options struct {
	// Model is the model id used for every structured generation call.
	Model string
	// VideoModel overrides Model for the video sub-flow; empty means Model.
	VideoModel string
	// StrictPersist turns persistence failures into hard errors instead of
	// the default log-and-swallow policy.
	StrictPersist bool
	// Sleep stands in for time.Sleep in the simulated video render delay.
	// Nil uses a context-aware real sleep.
	Sleep func(ctx context.Context, d time.Duration) error
	// Logger for swallowed-failure diagnostics; nil uses slog.Default.
	Logger *slog.Logger
}

// Generator orchestrates generation calls against the capability and the
// content service.
type Generator struct {
	client TextGenerator
	store  ProjectStore
	opts   Options
	log    *slog.Logger
}

// New creates a Generator.
func New(client TextGenerator, store ProjectStore, opts Options) *Generator {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepCtx
	}
	return &Generator{client: client, store: store, opts: opts, log: log}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Generate runs one generation end to end. Input errors and upstream
// failures abort before any write; persistence failures after a
// successful generation are logged and swallowed unless StrictPersist.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	desc, err := engine.Resolve(req.Engine)
	if err != nil {
		return nil, err
	}
	if !desc.Generative {
		return nil, fmt.Errorf("%w: %q", ErrNotGenerative, req.Engine)
	}

	sampling := req.Sampling.withDefaults()
	if err := sampling.validate(); err != nil {
		return nil, err
	}

	safety := req.Safety
	if safety == "" {
		safety = composer.SafetyMedium
	}
	if !safety.Valid() {
		return nil, fmt.Errorf("invalid safety level %q", safety)
	}

	instruction := composer.Compose(desc.Instruction(req.LongForm), req.InstructionOverride, safety, req.Encryption)

	text, err := g.client.GenerateContent(ctx, genai.Params{
		Model:             g.opts.Model,
		Prompt:            req.Prompt,
		SystemInstruction: instruction,
		ResponseSchema:    desc.Shape,
		Temperature:       &sampling.temperature,
		TopP:              &sampling.topP,
		TopK:              sampling.topK,
		MaxOutputTokens:   sampling.maxOutputTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	var artifact map[string]any
	if err := json.Unmarshal([]byte(text), &artifact); err != nil {
		return nil, &MalformedResponseError{Raw: text, Err: err}
	}

	serialized, err := json.Marshal(artifact)
	if err != nil {
		return nil, fmt.Errorf("serializing artifact: %w", err)
	}

	project := content.Project{
		ID:      uuid.New().String(),
		Name:    deriveName(artifact),
		Type:    string(req.Engine),
		Content: string(serialized),
	}

	result := &Result{Artifact: artifact, Project: project}
	if err := g.persist(ctx, project, result); err != nil {
		return nil, err
	}
	return result, nil
}

// persist writes the project and refreshes the listing, honoring the
// best-effort durability policy.
func (g *Generator) persist(ctx context.Context, project content.Project, result *Result) error {
	if err := g.store.CreateProject(ctx, project); err != nil {
		if g.opts.StrictPersist {
			return fmt.Errorf("saving project: %w", err)
		}
		g.log.Warn("project save failed; artifact not persisted",
			"project_id", project.ID, "type", project.Type, "error", err)
		return nil
	}
	result.Saved = true

	projects, err := g.store.ListProjects(ctx)
	if err != nil {
		g.log.Warn("project list refresh failed", "error", err)
		return nil
	}
	result.Projects = projects
	return nil
}

// nameFields is the priority order for deriving a display name from the
// parsed artifact.
var nameFields = []string{"appName", "title", "agentName", "projectName"}

const fallbackName = "Untitled Project"

func deriveName(artifact map[string]any) string {
	for _, field := range nameFields {
		if v, ok := artifact[field].(string); ok && v != "" {
			return v
		}
	}
	return fallbackName
}
