// Package engine maps engine tags to their generation descriptors: the
// default system instruction handed to the model and the response shape
// constraining its output. The registry is a pure lookup table; unknown
// tags fail closed.
package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/titanomni/omni/internal/shape"
)

// ErrUnknownEngine is returned when a tag has no registered descriptor.
var ErrUnknownEngine = errors.New("unknown engine")

// Tag identifies one of the generation engines.
type Tag string

const (
	Dashboard Tag = "dashboard"
	Video     Tag = "video"
	App       Tag = "app"
	Agent     Tag = "agent"
	Game      Tag = "game"
	SaaS      Tag = "saas"
	AutoDraft Tag = "autodraft"
	Animation Tag = "animation"
	Character Tag = "character"
	GoogleAI  Tag = "googleai"
	ImageGen  Tag = "imagegen"
	Voiceover Tag = "voiceover"
	Story     Tag = "story"
	Studio    Tag = "studio"
	Veo3      Tag = "veo3"
	Gemini3   Tag = "gemini3"
	Caffeine  Tag = "caffeine"
	Udio      Tag = "udio"
)

// Descriptor holds everything the orchestrator needs to run one engine.
type Descriptor struct {
	Tag                Tag
	Title              string
	DefaultInstruction string
	// LongFormInstruction, when non-empty, replaces DefaultInstruction for
	// long-form requests. Only video and animation carry a variant.
	LongFormInstruction string
	Shape               *shape.Schema
	// Generative is false for tags that exist as views only (dashboard).
	// The orchestrator refuses to generate for them.
	Generative bool
}

// Instruction returns the default instruction for the requested form.
func (d Descriptor) Instruction(longForm bool) string {
	if longForm && d.LongFormInstruction != "" {
		return d.LongFormInstruction
	}
	return d.DefaultInstruction
}

var registry = map[Tag]Descriptor{
	Dashboard: {
		Tag:        Dashboard,
		Title:      "Dashboard",
		Generative: false,
	},
	Video: {
		Tag:   Video,
		Title: "Video Script",
		DefaultInstruction: "You are a master cinematic director and scriptwriter. " +
			"Generate a detailed video production script for a short cinematic clip. " +
			"Generate a sequence of scenes with precise camera directions, lighting cues, and emotional beats. " +
			"Ensure the output is structured and ready for production.",
		LongFormInstruction: "You are a master cinematic director and scriptwriter. " +
			"Generate a detailed video production script for a long-form production. " +
			"Structure the output into episodes and scenes with precise timestamps, visual directions, and audio cues. " +
			"Ensure the output is structured and ready for production.",
		Shape:      shape.VideoScript,
		Generative: true,
	},
	App: {
		Tag:   App,
		Title: "App Builder",
		DefaultInstruction: "You are a world-class full-stack engineer and UI/UX designer. " +
			"Generate a production-ready React component using Tailwind CSS. " +
			"Focus on accessibility, performance, and clean code. " +
			"The component should be visually stunning and highly functional.",
		Shape:      shape.AppBuilder,
		Generative: true,
	},
	Agent: {
		Tag:   Agent,
		Title: "Agent Persona",
		DefaultInstruction: "You are an AI architect and cognitive scientist. " +
			"Design a specialized autonomous agent with a deep persona, specific capabilities, and a clear mission. " +
			"Define its reasoning patterns and interaction style.",
		Shape:      shape.Agent,
		Generative: true,
	},
	Game: {
		Tag:   Game,
		Title: "Game Designer",
		DefaultInstruction: "You are a legendary game designer and creative director. " +
			"Generate a game concept, mechanics, and core logic. " +
			"Focus on player engagement, game balance, and immersive storytelling.",
		Shape:      shape.AppBuilder,
		Generative: true,
	},
	SaaS: {
		Tag:   SaaS,
		Title: "SaaS Design",
		DefaultInstruction: "You are a SaaS product strategist and system architect. " +
			"Design a complete SaaS platform including architecture, roles, monetization, and a clear path to MVP. " +
			"Focus on scalability and user value.",
		Shape:      shape.SaaSBuilder,
		Generative: true,
	},
	AutoDraft: {
		Tag:   AutoDraft,
		Title: "Auto Draft",
		DefaultInstruction: "You are TITAN-OMNI Master AI, the ultimate creative intelligence. " +
			"Generate a complete, multi-module project draft that seamlessly integrates App, Video, Agent, and SaaS architecture. " +
			"Your vision should be cohesive, innovative, and market-ready.",
		Shape:      shape.MasterDraft,
		Generative: true,
	},
	Animation: {
		Tag:   Animation,
		Title: "Animation Series",
		DefaultInstruction: "You are a 2D Animation Series Director. " +
			"Generate a comprehensive production manifest for a short animation. " +
			"Include detailed episodes, scenes, visual descriptions, character movements, and synchronized audio/voiceover prompts. " +
			"Focus on narrative flow, temporal consistency, and high-quality production values. " +
			"For audio, specify the exact mood, instruments, and SFX cues. " +
			"For voiceover, provide the full script with emotional markers.",
		LongFormInstruction: "You are a 2D Animation Series Director. " +
			"Generate a comprehensive production manifest for a long-form (1 hour+) series. " +
			"Include detailed episodes, scenes, visual descriptions, character movements, and synchronized audio/voiceover prompts. " +
			"Focus on narrative flow, temporal consistency, and high-quality production values. " +
			"For audio, specify the exact mood, instruments, and SFX cues. " +
			"For voiceover, provide the full script with emotional markers.",
		Shape:      shape.Animation,
		Generative: true,
	},
	Character: {
		Tag:   Character,
		Title: "Character Designer",
		DefaultInstruction: "You are a character designer and storyteller. " +
			"Create a detailed character profile with stats, backstory, and a distinct visual identity. " +
			"Ensure the character feels alive and has depth.",
		Shape:      shape.Character,
		Generative: true,
	},
	GoogleAI: {
		Tag:   GoogleAI,
		Title: "Google AI App",
		DefaultInstruction: "You are an expert in Google AI Studio and Gemini API. " +
			"Generate a complete web application that leverages the full power of Gemini AI, " +
			"including multimodal inputs and advanced reasoning.",
		Shape:      shape.GoogleAIApp,
		Generative: true,
	},
	ImageGen: {
		Tag:   ImageGen,
		Title: "Image Prompt",
		DefaultInstruction: "You are an AI Image Prompt Engineer and digital artist. " +
			"Create highly detailed, evocative prompts for various styles. " +
			"Focus on composition, lighting, texture, and mood to ensure breathtaking results.",
		Shape:      shape.ImageGen,
		Generative: true,
	},
	Voiceover: {
		Tag:   Voiceover,
		Title: "Voiceover",
		DefaultInstruction: "You are a voiceover director and script writer. " +
			"Create emotional, engaging scripts with clear tone indicators and pacing instructions for AI voice generation.",
		Shape:      shape.Voiceover,
		Generative: true,
	},
	Story: {
		Tag:   Story,
		Title: "Story Writer",
		DefaultInstruction: "You are a creative writer and novelist. " +
			"Generate engaging stories with complex plots, well-developed characters, and rich world-building. " +
			"Focus on narrative arc and emotional resonance.",
		Shape:      shape.StoryWriter,
		Generative: true,
	},
	Studio: {
		Tag:   Studio,
		Title: "Studio Project",
		DefaultInstruction: "You are a Studio Director and production manager. " +
			"Generate a full project structure with scenes, characters, and assets. " +
			"Ensure the project is organized and ready for the animation studio editor.",
		Shape:      shape.StudioProject,
		Generative: true,
	},
	Veo3: {
		Tag:   Veo3,
		Title: "Veo 3 Video",
		DefaultInstruction: "You are a Veo 3.1 Video Architect. " +
			"Generate a high-fidelity video production manifest with advanced temporal consistency and cinematic quality. " +
			"Focus on high-resolution details and fluid motion.",
		Shape:      shape.Veo3,
		Generative: true,
	},
	Gemini3: {
		Tag:   Gemini3,
		Title: "Gemini 3 Tasks",
		DefaultInstruction: "You are Gemini 3 Flash Preview, the pinnacle of high-speed reasoning. " +
			"Solve complex tasks with precision, providing structured solutions and deep insights. " +
			"Focus on efficiency and accuracy.",
		Shape:      shape.Gemini3,
		Generative: true,
	},
	Caffeine: {
		Tag:   Caffeine,
		Title: "Caffeine Audio",
		DefaultInstruction: "You are Caffeine AI, a master of real-time audio and sound design. " +
			"Design immersive audio experiences and musical compositions that evoke specific moods and atmospheres.",
		Shape:      shape.Caffeine,
		Generative: true,
	},
	Udio: {
		Tag:   Udio,
		Title: "Udio Music",
		DefaultInstruction: "You are Udio AI, a professional music producer and songwriter. " +
			"Compose high-quality music with lyrics, arrangement, and production notes. " +
			"Focus on musicality and professional sound.",
		Shape:      shape.Udio,
		Generative: true,
	},
}

// Resolve returns the descriptor for tag. Unknown tags fail with
// ErrUnknownEngine so no generation can proceed for them.
func Resolve(tag Tag) (Descriptor, error) {
	d, ok := registry[tag]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownEngine, tag)
	}
	return d, nil
}

// Tags returns all registered tags in lexical order.
func Tags() []Tag {
	tags := make([]Tag, 0, len(registry))
	for t := range registry {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}
