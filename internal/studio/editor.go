// Package studio is the scene-timeline editor behind the studio view. It
// owns an in-memory project (an ordered list of scenes plus an active
// scene cursor) and serializes to the same JSON manifest the studio
// engine generates, so generated projects open directly in the editor.
package studio

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNoProject is returned by operations that need a loaded project.
var ErrNoProject = errors.New("no project loaded")

// Transform positions a character layer inside the 16:9 stage.
type Transform struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

// Stage-centered defaults (half of the 800x450 canvas).
var DefaultTransform = Transform{X: 400, Y: 225, Scale: 1.0}

// Scene is one entry on the timeline.
type Scene struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Duration        int        `json:"duration"`
	Background      string     `json:"background"`
	Characters      []string   `json:"characters"`
	Dialogue        string     `json:"dialogue"`
	AudioPrompt     string     `json:"audioPrompt"`
	VoiceoverScript string     `json:"voiceoverScript"`
	Transform       *Transform `json:"transform,omitempty"`
}

// Asset is a media reference attached to the project. The editor carries
// assets through a load/save round-trip but does not edit them.
type Asset struct {
	Type string `json:"type"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Project is a studio manifest: a named ordered scene list.
type Project struct {
	ProjectName string  `json:"projectName"`
	Scenes      []Scene `json:"scenes"`
	Assets      []Asset `json:"assets,omitempty"`
}

// New scene defaults.
const (
	defaultSceneDuration   = 10
	defaultSceneBackground = "Village"
)

// now is swapped out in tests for deterministic scene ids.
var now = time.Now

func newScene(ordinal int) Scene {
	return Scene{
		ID:         fmt.Sprintf("scene-%d", now().UnixMilli()),
		Name:       fmt.Sprintf("New Scene %d", ordinal),
		Duration:   defaultSceneDuration,
		Background: defaultSceneBackground,
		Characters: []string{},
	}
}

// Editor holds the mutable editing session. It is not safe for
// concurrent use; the CLI drives it from a single goroutine.
type Editor struct {
	project     *Project
	activeScene int
}

// NewEditor creates an editor with no project loaded.
func NewEditor() *Editor {
	return &Editor{}
}

// NewProject loads a fresh single-scene project under the given name.
func (e *Editor) NewProject(name string) *Project {
	if name == "" {
		name = "Untitled Studio Project"
	}
	e.project = &Project{
		ProjectName: name,
		Scenes:      []Scene{newScene(1)},
	}
	e.activeScene = 0
	return e.project
}

// Load replaces the session with a parsed manifest. A manifest with no
// scenes gets a default scene so the editor always has an active one.
func (e *Editor) Load(manifest []byte) error {
	var p Project
	if err := json.Unmarshal(manifest, &p); err != nil {
		return fmt.Errorf("parsing studio manifest: %w", err)
	}
	if len(p.Scenes) == 0 {
		p.Scenes = []Scene{newScene(1)}
	}
	e.project = &p
	e.activeScene = 0
	return nil
}

// Manifest serializes the current project for persistence.
func (e *Editor) Manifest() ([]byte, error) {
	if e.project == nil {
		return nil, ErrNoProject
	}
	return json.Marshal(e.project)
}

// Project returns the loaded project, or nil.
func (e *Editor) Project() *Project {
	return e.project
}

// ActiveSceneIndex returns the timeline cursor.
func (e *Editor) ActiveSceneIndex() int {
	return e.activeScene
}

// ActiveScene returns the scene under the cursor.
func (e *Editor) ActiveScene() (*Scene, error) {
	if e.project == nil {
		return nil, ErrNoProject
	}
	return &e.project.Scenes[e.activeScene], nil
}

// AddScene appends a default scene to the timeline and makes it active.
func (e *Editor) AddScene() (*Scene, error) {
	if e.project == nil {
		return nil, ErrNoProject
	}
	s := newScene(len(e.project.Scenes) + 1)
	e.project.Scenes = append(e.project.Scenes, s)
	e.activeScene = len(e.project.Scenes) - 1
	return &e.project.Scenes[e.activeScene], nil
}

// SelectScene moves the cursor to index i.
func (e *Editor) SelectScene(i int) error {
	if e.project == nil {
		return ErrNoProject
	}
	if i < 0 || i >= len(e.project.Scenes) {
		return fmt.Errorf("scene index %d out of range [0, %d)", i, len(e.project.Scenes))
	}
	e.activeScene = i
	return nil
}

// NextScene advances the cursor, clamping at the last scene.
func (e *Editor) NextScene() int {
	if e.project != nil && e.activeScene < len(e.project.Scenes)-1 {
		e.activeScene++
	}
	return e.activeScene
}

// PrevScene retreats the cursor, clamping at the first scene.
func (e *Editor) PrevScene() int {
	if e.activeScene > 0 {
		e.activeScene--
	}
	return e.activeScene
}

// ApplyTransform sets the active scene's transform. The scene keeps its
// own copy so later edits to the caller's value don't leak in.
func (e *Editor) ApplyTransform(t Transform) error {
	s, err := e.ActiveScene()
	if err != nil {
		return err
	}
	copied := t
	s.Transform = &copied
	return nil
}

// SetSceneName renames the active scene.
func (e *Editor) SetSceneName(name string) error {
	s, err := e.ActiveScene()
	if err != nil {
		return err
	}
	s.Name = name
	return nil
}

// SetSceneDuration updates the active scene's duration in seconds.
func (e *Editor) SetSceneDuration(seconds int) error {
	if seconds < 1 {
		return fmt.Errorf("duration %d must be positive", seconds)
	}
	s, err := e.ActiveScene()
	if err != nil {
		return err
	}
	s.Duration = seconds
	return nil
}

// SetSceneBackground updates the active scene's background tag.
func (e *Editor) SetSceneBackground(background string) error {
	s, err := e.ActiveScene()
	if err != nil {
		return err
	}
	s.Background = background
	return nil
}

// SetSceneDialogue updates the active scene's dialogue text.
func (e *Editor) SetSceneDialogue(dialogue string) error {
	s, err := e.ActiveScene()
	if err != nil {
		return err
	}
	s.Dialogue = dialogue
	return nil
}

// SetSceneVoiceover updates the active scene's voiceover script.
func (e *Editor) SetSceneVoiceover(script string) error {
	s, err := e.ActiveScene()
	if err != nil {
		return err
	}
	s.VoiceoverScript = script
	return nil
}

// SetSceneAudioPrompt updates the active scene's audio prompt.
func (e *Editor) SetSceneAudioPrompt(prompt string) error {
	s, err := e.ActiveScene()
	if err != nil {
		return err
	}
	s.AudioPrompt = prompt
	return nil
}
