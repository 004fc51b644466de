package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/titanomni/omni/internal/content"
	"github.com/titanomni/omni/internal/engine"
	"github.com/titanomni/omni/internal/genai"
)

// Video rendering is simulated: a fixed metadata call runs against the
// model (its text is discarded), then the flow waits a fixed delay and
// returns a placeholder clip. TODO: swap in a real video generation call
// once the upstream API ships one.
const (
	videoRenderDelay    = 3 * time.Second
	placeholderVideoURL = "https://www.w3schools.com/html/mov_bbb.mp4"
	videoNamePrefixLen  = 20
)

// VideoRequest is one simulated video render.
type VideoRequest struct {
	Prompt      string
	Style       string
	Resolution  string
	AspectRatio string
	Duration    string
}

// Video render option defaults.
const (
	DefaultVideoStyle       = "None"
	DefaultVideoResolution  = "720p"
	DefaultVideoAspectRatio = "Landscape"
	DefaultVideoDuration    = "4s"
)

func (r VideoRequest) withDefaults() VideoRequest {
	if r.Style == "" {
		r.Style = DefaultVideoStyle
	}
	if r.Resolution == "" {
		r.Resolution = DefaultVideoResolution
	}
	if r.AspectRatio == "" {
		r.AspectRatio = DefaultVideoAspectRatio
	}
	if r.Duration == "" {
		r.Duration = DefaultVideoDuration
	}
	return r
}

// VideoResult carries the rendered clip URL and the persistence outcome,
// under the same best-effort durability policy as Generate.
type VideoResult struct {
	VideoURL string
	Project  content.Project
	Saved    bool
	Projects []content.Project
}

// GenerateVideo runs the video flow: one fixed metadata call against the
// model, the simulated render delay, then a video artifact assembled
// around the placeholder URL, persisted as a project of type "video".
func (g *Generator) GenerateVideo(ctx context.Context, req VideoRequest) (*VideoResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	req = req.withDefaults()

	// The call's text is discarded; the placeholder below is the output
	// contract until a real render backend exists.
	metadataPrompt := fmt.Sprintf(
		"Generate a video description and metadata for: %s. Style: %s, Resolution: %s, Aspect Ratio: %s, Duration: %s",
		req.Prompt, req.Style, req.Resolution, req.AspectRatio, req.Duration)
	if _, err := g.client.GenerateContent(ctx, genai.Params{Model: g.videoModel(), Prompt: metadataPrompt}); err != nil {
		return nil, fmt.Errorf("video generation failed: %w", err)
	}

	if err := g.opts.Sleep(ctx, videoRenderDelay); err != nil {
		return nil, fmt.Errorf("video render interrupted: %w", err)
	}

	artifact := map[string]any{
		"videoUrl":    placeholderVideoURL,
		"prompt":      req.Prompt,
		"style":       req.Style,
		"resolution":  req.Resolution,
		"aspectRatio": req.AspectRatio,
		"duration":    req.Duration,
	}
	serialized, err := json.Marshal(artifact)
	if err != nil {
		return nil, fmt.Errorf("serializing video artifact: %w", err)
	}

	project := content.Project{
		ID:      uuid.New().String(),
		Name:    videoName(req.Prompt),
		Type:    string(engine.Video),
		Content: string(serialized),
	}

	result := &VideoResult{VideoURL: placeholderVideoURL, Project: project}
	inner := &Result{}
	if err := g.persist(ctx, project, inner); err != nil {
		return nil, err
	}
	result.Saved = inner.Saved
	result.Projects = inner.Projects
	return result, nil
}

func (g *Generator) videoModel() string {
	if g.opts.VideoModel != "" {
		return g.opts.VideoModel
	}
	return g.opts.Model
}

// videoName truncates the prompt to a short display name.
func videoName(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > videoNamePrefixLen {
		runes = runes[:videoNamePrefixLen]
	}
	return fmt.Sprintf("Video: %s...", string(runes))
}
