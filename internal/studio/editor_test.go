package studio

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

// fixedClock makes scene ids deterministic and strictly increasing.
func fixedClock(t *testing.T) {
	t.Helper()
	base := time.Date(2040, 6, 1, 12, 0, 0, 0, time.UTC)
	var ticks int64
	now = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Millisecond)
	}
	t.Cleanup(func() { now = time.Now })
}

func TestNewProjectHasDefaultScene(t *testing.T) {
	fixedClock(t)
	e := NewEditor()
	p := e.NewProject("My Film")

	if p.ProjectName != "My Film" {
		t.Errorf("project name = %q", p.ProjectName)
	}
	if len(p.Scenes) != 1 {
		t.Fatalf("expected 1 scene, got %d", len(p.Scenes))
	}
	s := p.Scenes[0]
	if s.Name != "New Scene 1" || s.Duration != 10 || s.Background != "Village" {
		t.Errorf("scene defaults wrong: %+v", s)
	}
	if s.ID == "" || s.ID[:6] != "scene-" {
		t.Errorf("scene id = %q", s.ID)
	}
	if e.ActiveSceneIndex() != 0 {
		t.Errorf("active index = %d", e.ActiveSceneIndex())
	}
}

func TestAddSceneActivatesNewScene(t *testing.T) {
	fixedClock(t)
	e := NewEditor()
	e.NewProject("p")

	s, err := e.AddScene()
	if err != nil {
		t.Fatalf("AddScene: %v", err)
	}
	if s.Name != "New Scene 2" {
		t.Errorf("scene name = %q", s.Name)
	}
	if e.ActiveSceneIndex() != 1 {
		t.Errorf("active index = %d, want 1", e.ActiveSceneIndex())
	}
	if len(e.Project().Scenes) != 2 {
		t.Errorf("scene count = %d", len(e.Project().Scenes))
	}
}

func TestAddSceneWithoutProject(t *testing.T) {
	e := NewEditor()
	if _, err := e.AddScene(); !errors.Is(err, ErrNoProject) {
		t.Fatalf("expected ErrNoProject, got %v", err)
	}
}

func TestCursorClamping(t *testing.T) {
	fixedClock(t)
	e := NewEditor()
	e.NewProject("p")
	e.AddScene()
	e.AddScene()
	e.SelectScene(0)

	if got := e.PrevScene(); got != 0 {
		t.Errorf("PrevScene at start = %d, want 0", got)
	}
	e.NextScene()
	e.NextScene()
	if got := e.NextScene(); got != 2 {
		t.Errorf("NextScene at end = %d, want 2", got)
	}
}

func TestSelectSceneOutOfRange(t *testing.T) {
	fixedClock(t)
	e := NewEditor()
	e.NewProject("p")

	if err := e.SelectScene(1); err == nil {
		t.Error("index past end accepted")
	}
	if err := e.SelectScene(-1); err == nil {
		t.Error("negative index accepted")
	}
}

func TestApplyTransformCopies(t *testing.T) {
	fixedClock(t)
	e := NewEditor()
	e.NewProject("p")

	tr := DefaultTransform
	if err := e.ApplyTransform(tr); err != nil {
		t.Fatalf("ApplyTransform: %v", err)
	}
	tr.X = 999

	s, _ := e.ActiveScene()
	if s.Transform == nil || s.Transform.X != 400 {
		t.Errorf("transform leaked caller mutation: %+v", s.Transform)
	}
}

func TestTransformOnlyTouchesActiveScene(t *testing.T) {
	fixedClock(t)
	e := NewEditor()
	e.NewProject("p")
	e.AddScene()

	if err := e.ApplyTransform(Transform{X: 100, Y: 50, Scale: 2}); err != nil {
		t.Fatalf("ApplyTransform: %v", err)
	}

	scenes := e.Project().Scenes
	if scenes[0].Transform != nil {
		t.Error("first scene should be untouched")
	}
	if scenes[1].Transform == nil || scenes[1].Transform.Scale != 2 {
		t.Errorf("second scene transform = %+v", scenes[1].Transform)
	}
}

func TestSceneFieldSetters(t *testing.T) {
	fixedClock(t)
	e := NewEditor()
	e.NewProject("p")

	steps := []struct {
		name string
		call func() error
	}{
		{"name", func() error { return e.SetSceneName("Opening") }},
		{"duration", func() error { return e.SetSceneDuration(25) }},
		{"background", func() error { return e.SetSceneBackground("City") }},
		{"dialogue", func() error { return e.SetSceneDialogue("Hello.") }},
		{"voiceover", func() error { return e.SetSceneVoiceover("A calm narration.") }},
		{"audio", func() error { return e.SetSceneAudioPrompt("soft rain") }},
	}
	for _, step := range steps {
		if err := step.call(); err != nil {
			t.Fatalf("set %s: %v", step.name, err)
		}
	}

	s, _ := e.ActiveScene()
	if s.Name != "Opening" || s.Duration != 25 || s.Background != "City" ||
		s.Dialogue != "Hello." || s.VoiceoverScript != "A calm narration." || s.AudioPrompt != "soft rain" {
		t.Errorf("scene after edits: %+v", s)
	}

	if err := e.SetSceneDuration(0); err == nil {
		t.Error("zero duration accepted")
	}
}

func TestManifestRoundTrip(t *testing.T) {
	fixedClock(t)
	e := NewEditor()
	e.NewProject("My Film")
	e.AddScene()
	e.SetSceneName("Finale")
	e.ApplyTransform(Transform{X: 10, Y: 20, Scale: 0.5})

	manifest, err := e.Manifest()
	if err != nil {
		t.Fatalf("Manifest: %v", err)
	}

	loaded := NewEditor()
	if err := loaded.Load(manifest); err != nil {
		t.Fatalf("Load: %v", err)
	}
	p := loaded.Project()
	if p.ProjectName != "My Film" || len(p.Scenes) != 2 {
		t.Fatalf("round-trip project: %+v", p)
	}
	if p.Scenes[1].Name != "Finale" || p.Scenes[1].Transform == nil || p.Scenes[1].Transform.Scale != 0.5 {
		t.Errorf("round-trip scene: %+v", p.Scenes[1])
	}
	if loaded.ActiveSceneIndex() != 0 {
		t.Errorf("load should reset cursor, got %d", loaded.ActiveSceneIndex())
	}
}

// TestLoadGeneratedManifest verifies a manifest in the shape the studio
// engine emits (no transform, string fields present) loads cleanly.
func TestLoadGeneratedManifest(t *testing.T) {
	fixedClock(t)
	manifest := []byte(`{
		"projectName": "Village Tales",
		"scenes": [
			{"id": "s1", "name": "Dawn", "duration": 12, "background": "Village",
			 "characters": ["Anya"], "dialogue": "It begins.",
			 "audioPrompt": "birdsong", "voiceoverScript": "Morning rises."}
		],
		"assets": [{"type": "image", "name": "poster", "url": "https://example.com/poster.png"}]
	}`)

	e := NewEditor()
	if err := e.Load(manifest); err != nil {
		t.Fatalf("Load: %v", err)
	}
	s, _ := e.ActiveScene()
	if s.Name != "Dawn" || len(s.Characters) != 1 {
		t.Errorf("scene = %+v", s)
	}

	// Assets are not editable but must survive a save.
	saved, err := e.Manifest()
	if err != nil {
		t.Fatalf("Manifest: %v", err)
	}
	if !strings.Contains(string(saved), "poster") {
		t.Errorf("assets dropped on round-trip: %s", saved)
	}
}

func TestLoadEmptySceneListGetsDefault(t *testing.T) {
	fixedClock(t)
	e := NewEditor()
	if err := e.Load([]byte(`{"projectName":"Empty"}`)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(e.Project().Scenes) != 1 {
		t.Fatalf("expected default scene, got %d", len(e.Project().Scenes))
	}
	if _, err := e.ActiveScene(); err != nil {
		t.Errorf("ActiveScene: %v", err)
	}
}

func TestLoadRejectsMalformedManifest(t *testing.T) {
	e := NewEditor()
	if err := e.Load([]byte(`not json`)); err == nil {
		t.Fatal("malformed manifest accepted")
	}
}

func TestManifestWithoutProject(t *testing.T) {
	if _, err := NewEditor().Manifest(); !errors.Is(err, ErrNoProject) {
		t.Fatalf("expected ErrNoProject, got %v", err)
	}
}

func TestManifestIsValidJSON(t *testing.T) {
	fixedClock(t)
	e := NewEditor()
	e.NewProject("p")
	for i := range 3 {
		e.AddScene()
		e.SetSceneName(fmt.Sprintf("Scene %d", i+2))
	}

	manifest, err := e.Manifest()
	if err != nil {
		t.Fatalf("Manifest: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(manifest, &decoded); err != nil {
		t.Fatalf("manifest not valid JSON: %v", err)
	}
}
