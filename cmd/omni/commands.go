package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/titanomni/omni/internal/composer"
	"github.com/titanomni/omni/internal/config"
	"github.com/titanomni/omni/internal/content"
	"github.com/titanomni/omni/internal/engine"
	"github.com/titanomni/omni/internal/genai"
	"github.com/titanomni/omni/internal/orchestrator"
	"github.com/titanomni/omni/internal/studio"
)

func buildGenerator(cfg config.Config) (*orchestrator.Generator, error) {
	if !cfg.HasCredential() {
		return nil, fmt.Errorf("%s", config.CredentialHint())
	}
	client := genai.NewClientWithBaseURL(cfg.GenAI.APIKey, cfg.GenAI.BaseURL)
	store := newContentClient(cfg)
	return orchestrator.New(client, store, orchestrator.Options{
		Model:         cfg.GenAI.Model,
		StrictPersist: cfg.Generation.StrictPersist,
	}), nil
}

// --- generate ---

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate an artifact with one of the engines",
	Long: `Generate an artifact with one of the engines.

Examples:
  omni generate --engine app "a habit tracker with streaks"
  omni generate --engine story --long-form "a heist in a floating city"
  omni generate --engine agent --instruction "You are a pirate." "negotiate my rent"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.Join(args, " ")
		engineTag, _ := cmd.Flags().GetString("engine")
		instruction, _ := cmd.Flags().GetString("instruction")
		longForm, _ := cmd.Flags().GetBool("long-form")
		temperature, _ := cmd.Flags().GetFloat64("temperature")
		topP, _ := cmd.Flags().GetFloat64("top-p")
		topK, _ := cmd.Flags().GetInt("top-k")
		maxTokens, _ := cmd.Flags().GetInt("max-tokens")
		safety, _ := cmd.Flags().GetString("safety")
		noEncryption, _ := cmd.Flags().GetBool("no-encryption")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		gen, err := buildGenerator(cfg)
		if err != nil {
			return err
		}

		printStep("Generating with the %s engine...", engineTag)
		res, err := gen.Generate(cmd.Context(), orchestrator.Request{
			Prompt:              prompt,
			Engine:              engine.Tag(engineTag),
			InstructionOverride: instruction,
			LongForm:            longForm,
			Sampling: orchestrator.Sampling{
				Temperature:     &temperature,
				TopP:            &topP,
				TopK:            &topK,
				MaxOutputTokens: &maxTokens,
			},
			Safety:     composer.SafetyLevel(strings.ToUpper(safety)),
			Encryption: !noEncryption,
		})
		if err != nil {
			return err
		}

		renderArtifact(engine.Tag(engineTag), res.Artifact)

		if res.Saved {
			printSuccess("Saved project %s (%s)", res.Project.ID, res.Project.Name)
		} else {
			printWarning("Generated but not saved — is omni serve running?")
		}
		return nil
	},
}

// --- video ---

var videoCmd = &cobra.Command{
	Use:   "video <prompt>",
	Short: "Render a video clip from a prompt",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.Join(args, " ")
		style, _ := cmd.Flags().GetString("style")
		resolution, _ := cmd.Flags().GetString("resolution")
		aspectRatio, _ := cmd.Flags().GetString("aspect-ratio")
		duration, _ := cmd.Flags().GetString("duration")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		gen, err := buildGenerator(cfg)
		if err != nil {
			return err
		}

		printStep("Rendering video...")
		res, err := gen.GenerateVideo(cmd.Context(), orchestrator.VideoRequest{
			Prompt:      prompt,
			Style:       style,
			Resolution:  resolution,
			AspectRatio: aspectRatio,
			Duration:    duration,
		})
		if err != nil {
			return err
		}

		fmt.Printf("\n  %s %s\n\n", colorize(colorBold, "Video:"), res.VideoURL)
		if res.Saved {
			printSuccess("Saved project %s (%s)", res.Project.ID, res.Project.Name)
		} else {
			printWarning("Rendered but not saved — is omni serve running?")
		}
		return nil
	},
}

// --- engines ---

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List the available generation engines",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := make([][]string, 0, len(engine.Tags()))
		for _, tag := range engine.Tags() {
			desc, err := engine.Resolve(tag)
			if err != nil {
				continue
			}
			mode := "generative"
			if !desc.Generative {
				mode = "view"
			}
			rows = append(rows, []string{string(desc.Tag), desc.Title, mode})
		}
		fmt.Println(renderTable([]string{"Engine", "Title", "Mode"}, rows, []columnAlignment{alignLeft, alignLeft, alignLeft}))
		return nil
	},
}

// --- projects ---

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage stored projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored projects, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := loadedContentClient()
		if err != nil {
			return err
		}

		projects, err := client.ListProjects(cmd.Context())
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			fmt.Println("No projects yet.")
			return nil
		}

		rows := make([][]string, 0, len(projects))
		for _, p := range projects {
			rows = append(rows, []string{
				shortID(p.ID),
				truncateText(p.Name, 40),
				p.Type,
				p.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
		fmt.Println(renderTable([]string{"ID", "Name", "Type", "Created"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft}))
		return nil
	},
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a project's artifact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := loadedContentClient()
		if err != nil {
			return err
		}

		p, err := findProject(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}

		var artifact map[string]any
		if err := json.Unmarshal([]byte(p.Content), &artifact); err != nil {
			// Stored content is opaque; fall back to the raw text.
			fmt.Println(p.Content)
			return nil
		}
		renderArtifact(engine.Tag(p.Type), artifact)
		return nil
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := loadedContentClient()
		if err != nil {
			return err
		}

		p, err := findProject(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}
		if err := client.DeleteProject(cmd.Context(), p.ID); err != nil {
			return err
		}
		printSuccess("Deleted project %s (%s)", shortID(p.ID), p.Name)
		return nil
	},
}

var projectsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Open a project's artifact JSON in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		client, err := loadedContentClient()
		if err != nil {
			return err
		}

		p, err := findProject(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}

		pretty := p.Content
		var artifact any
		if json.Unmarshal([]byte(p.Content), &artifact) == nil {
			if data, err := json.MarshalIndent(artifact, "", "  "); err == nil {
				pretty = string(data)
			}
		}

		tmpFile, err := os.CreateTemp("", "omni-project-*.json")
		if err != nil {
			return fmt.Errorf("creating temp file: %w", err)
		}
		tmpPath := tmpFile.Name()
		defer os.Remove(tmpPath)

		if _, err := tmpFile.WriteString(pretty); err != nil {
			tmpFile.Close()
			return err
		}
		tmpFile.Close()

		editorCmd := exec.Command(editor, tmpPath)
		editorCmd.Stdin = os.Stdin
		editorCmd.Stdout = os.Stdout
		editorCmd.Stderr = os.Stderr
		if err := editorCmd.Run(); err != nil {
			return fmt.Errorf("editor exited with error: %w", err)
		}

		edited, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		var check any
		if err := json.Unmarshal(edited, &check); err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}

		if err := client.UpdateProjectContent(cmd.Context(), p.ID, string(edited)); err != nil {
			return err
		}
		printSuccess("Project %s updated", shortID(p.ID))
		return nil
	},
}

func init() {
	generateCmd.Flags().String("engine", "app", "engine to generate with (see 'omni engines')")
	generateCmd.Flags().String("instruction", "", "override the engine's system instruction")
	generateCmd.Flags().Bool("long-form", false, "use the engine's long-form instruction variant")
	generateCmd.Flags().Float64("temperature", orchestrator.DefaultTemperature, "sampling temperature")
	generateCmd.Flags().Float64("top-p", orchestrator.DefaultTopP, "nucleus sampling cutoff")
	generateCmd.Flags().Int("top-k", orchestrator.DefaultTopK, "top-k sampling")
	generateCmd.Flags().Int("max-tokens", orchestrator.DefaultMaxOutputTokens, "maximum output tokens")
	generateCmd.Flags().String("safety", "MEDIUM", "safety level: LOW, MEDIUM, or HIGH")
	generateCmd.Flags().Bool("no-encryption", false, "disable the encryption banner")

	videoCmd.Flags().String("style", "", "video style (default None)")
	videoCmd.Flags().String("resolution", "", "video resolution (default 720p)")
	videoCmd.Flags().String("aspect-ratio", "", "aspect ratio (default Landscape)")
	videoCmd.Flags().String("duration", "", "clip duration (default 4s)")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsShowCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
	projectsCmd.AddCommand(projectsEditCmd)
}

// findProject resolves a full or prefix project id via the listing; the
// service has no point lookup on its HTTP surface.
func findProject(ctx context.Context, client *content.Client, id string) (content.Project, error) {
	projects, err := client.ListProjects(ctx)
	if err != nil {
		return content.Project{}, err
	}

	var matches []content.Project
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
		if strings.HasPrefix(p.ID, id) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return content.Project{}, fmt.Errorf("no project with id %q", id)
	default:
		return content.Project{}, fmt.Errorf("id %q is ambiguous (%d matches)", id, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// --- agents ---

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Manage deployed agents",
}

var agentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List deployed agents, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := loadedContentClient()
		if err != nil {
			return err
		}

		agents, err := client.ListAgents(cmd.Context())
		if err != nil {
			return err
		}
		if len(agents) == 0 {
			fmt.Println("No agents deployed.")
			return nil
		}

		rows := make([][]string, 0, len(agents))
		for _, a := range agents {
			rows = append(rows, []string{
				shortID(a.ID),
				truncateText(a.Name, 30),
				truncateText(a.Task, 50),
				a.Status,
			})
		}
		fmt.Println(renderTable([]string{"ID", "Name", "Task", "Status"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft}))
		return nil
	},
}

var agentsDeployCmd = &cobra.Command{
	Use:   "deploy <name> <task>",
	Short: "Deploy an agent with a name and task",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		task := strings.Join(args[1:], " ")

		client, err := loadedContentClient()
		if err != nil {
			return err
		}

		a := content.Agent{Name: name, Task: task}
		if err := client.DeployAgent(cmd.Context(), a); err != nil {
			return err
		}
		printSuccess("Deployed agent %s", name)
		return nil
	},
}

func init() {
	agentsCmd.AddCommand(agentsListCmd)
	agentsCmd.AddCommand(agentsDeployCmd)
}

// --- studio ---

var studioCmd = &cobra.Command{
	Use:   "studio",
	Short: "Scene-timeline editor for studio projects",
}

var studioNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a blank studio project with one scene",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")

		editor := studio.NewEditor()
		project := editor.NewProject(name)
		manifest, err := editor.Manifest()
		if err != nil {
			return err
		}

		client, err := loadedContentClient()
		if err != nil {
			return err
		}

		p := content.Project{
			Name:    project.ProjectName,
			Type:    string(engine.Studio),
			Content: string(manifest),
		}
		if err := client.CreateProject(cmd.Context(), p); err != nil {
			return err
		}
		printSuccess("Created studio project %q with %d scene", name, len(project.Scenes))
		return nil
	},
}

var studioAddSceneCmd = &cobra.Command{
	Use:   "add-scene <project-id>",
	Short: "Append a default scene to a studio project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := loadedContentClient()
		if err != nil {
			return err
		}

		p, err := findProject(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}
		if p.Type != string(engine.Studio) {
			return fmt.Errorf("project %s is type %q, not a studio project", shortID(p.ID), p.Type)
		}

		editor := studio.NewEditor()
		if err := editor.Load([]byte(p.Content)); err != nil {
			return err
		}
		scene, err := editor.AddScene()
		if err != nil {
			return err
		}
		manifest, err := editor.Manifest()
		if err != nil {
			return err
		}

		if err := client.UpdateProjectContent(cmd.Context(), p.ID, string(manifest)); err != nil {
			return err
		}
		printSuccess("Added %q to %s", scene.Name, p.Name)
		return nil
	},
}

var studioScenesCmd = &cobra.Command{
	Use:   "scenes <project-id>",
	Short: "List the scenes of a studio project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := loadedContentClient()
		if err != nil {
			return err
		}

		p, err := findProject(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}

		editor := studio.NewEditor()
		if err := editor.Load([]byte(p.Content)); err != nil {
			return err
		}

		scenes := editor.Project().Scenes
		rows := make([][]string, 0, len(scenes))
		for i, s := range scenes {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				s.Name,
				fmt.Sprintf("%ds", s.Duration),
				s.Background,
				truncateText(s.Dialogue, 40),
			})
		}
		fmt.Println(renderTable([]string{"#", "Scene", "Duration", "Background", "Dialogue"}, rows,
			[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft}))
		return nil
	},
}

func init() {
	studioCmd.AddCommand(studioNewCmd)
	studioCmd.AddCommand(studioAddSceneCmd)
	studioCmd.AddCommand(studioScenesCmd)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
