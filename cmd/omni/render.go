package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/titanomni/omni/internal/engine"
)

// renderArtifact prints a generated artifact in a shape suited to its
// engine. Unknown shapes fall back to indented JSON; artifacts are
// model output and may be missing any field.
func renderArtifact(tag engine.Tag, artifact map[string]any) {
	fmt.Println()
	switch tag {
	case engine.App, engine.Game:
		renderApp(artifact)
	case engine.Video:
		renderVideoScript(artifact)
	case engine.Agent:
		renderAgent(artifact)
	case engine.SaaS:
		renderSaaS(artifact)
	case engine.Story:
		renderStory(artifact)
	case engine.Studio:
		renderStudioProject(artifact)
	default:
		renderJSON(artifact)
	}
	fmt.Println()
}

func field(artifact map[string]any, key string) (string, bool) {
	v, ok := artifact[key].(string)
	return v, ok && v != ""
}

func printField(label, value string) {
	fmt.Printf("  %s %s\n", colorize(colorBold, label+":"), value)
}

func printList(label string, items []any) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("  %s\n", colorize(colorBold, label+":"))
	for _, item := range items {
		if s, ok := item.(string); ok {
			fmt.Printf("    - %s\n", s)
		}
	}
}

func renderApp(artifact map[string]any) {
	if v, ok := field(artifact, "appName"); ok {
		printField("App", v)
	}
	if v, ok := field(artifact, "description"); ok {
		printField("Description", v)
	}
	if features, ok := artifact["features"].([]any); ok {
		printList("Features", features)
	}
	if v, ok := field(artifact, "code"); ok {
		fmt.Printf("\n%s\n", v)
	}
}

func renderVideoScript(artifact map[string]any) {
	if v, ok := field(artifact, "title"); ok {
		printField("Title", v)
	}
	if v, ok := field(artifact, "style"); ok {
		printField("Style", v)
	}
	scenes, ok := artifact["scenes"].([]any)
	if !ok {
		return
	}
	rows := make([][]string, 0, len(scenes))
	for _, raw := range scenes {
		scene, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		timestamp, _ := scene["timestamp"].(string)
		visual, _ := scene["visual"].(string)
		audio, _ := scene["audio"].(string)
		rows = append(rows, []string{timestamp, truncateText(visual, 60), truncateText(audio, 40)})
	}
	if len(rows) > 0 {
		fmt.Println(renderTable([]string{"Time", "Visual", "Audio"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft}))
	}
}

func renderAgent(artifact map[string]any) {
	if v, ok := field(artifact, "agentName"); ok {
		printField("Agent", v)
	}
	if v, ok := field(artifact, "persona"); ok {
		printField("Persona", v)
	}
	if capabilities, ok := artifact["capabilities"].([]any); ok {
		printList("Capabilities", capabilities)
	}
	if v, ok := field(artifact, "systemPrompt"); ok {
		printField("System prompt", v)
	}
}

func renderSaaS(artifact map[string]any) {
	if v, ok := field(artifact, "productName"); ok {
		printField("Product", v)
	}
	if v, ok := field(artifact, "backendArchitecture"); ok {
		printField("Architecture", v)
	}
	apis, ok := artifact["apiEndpoints"].([]any)
	if !ok {
		renderJSON(artifact)
		return
	}
	rows := make([][]string, 0, len(apis))
	for _, raw := range apis {
		api, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		method, _ := api["method"].(string)
		path, _ := api["path"].(string)
		desc, _ := api["description"].(string)
		rows = append(rows, []string{method, path, truncateText(desc, 50)})
	}
	if len(rows) > 0 {
		fmt.Println(renderTable([]string{"Method", "Path", "Description"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft}))
	}
}

func renderStory(artifact map[string]any) {
	if v, ok := field(artifact, "title"); ok {
		printField("Title", v)
	}
	if v, ok := field(artifact, "genre"); ok {
		printField("Genre", v)
	}
	if v, ok := field(artifact, "synopsis"); ok {
		printField("Synopsis", v)
	}
	chapters, ok := artifact["chapters"].([]any)
	if !ok {
		return
	}
	for i, raw := range chapters {
		chapter, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		title, _ := chapter["title"].(string)
		body, _ := chapter["content"].(string)
		fmt.Printf("\n  %s\n", colorize(colorBold, fmt.Sprintf("Chapter %d: %s", i+1, title)))
		fmt.Printf("  %s\n", body)
	}
}

func renderStudioProject(artifact map[string]any) {
	if v, ok := field(artifact, "projectName"); ok {
		printField("Project", v)
	}
	scenes, ok := artifact["scenes"].([]any)
	if !ok {
		return
	}
	rows := make([][]string, 0, len(scenes))
	for i, raw := range scenes {
		scene, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name, _ := scene["name"].(string)
		background, _ := scene["background"].(string)
		dialogue, _ := scene["dialogue"].(string)
		duration := ""
		if d, ok := scene["duration"].(float64); ok {
			duration = fmt.Sprintf("%ds", int(d))
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), name, duration, background, truncateText(dialogue, 40)})
	}
	if len(rows) > 0 {
		fmt.Println(renderTable([]string{"#", "Scene", "Duration", "Background", "Dialogue"}, rows,
			[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft}))
	}
}

func renderJSON(artifact map[string]any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(artifact); err != nil {
		fmt.Printf("  %v\n", artifact)
	}
}
