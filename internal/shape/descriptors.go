package shape

// AppBuilder describes a generated application artifact.
var AppBuilder = Obj(map[string]*Schema{
	"appName":     Str(""),
	"description": Str(""),
	"code":        Str("Complete React component code using Tailwind CSS"),
	"features":    Arr(Str("")),
}, "appName", "code")

// VideoScript describes a cinematic script, optionally split into episodes.
var VideoScript = Obj(map[string]*Schema{
	"title":         Str(""),
	"isLongForm":    Bool(),
	"totalDuration": Str("Total duration (e.g., '5m', '2h', '10h')"),
	"episodes": Arr(Obj(map[string]*Schema{
		"episodeNumber": Num(""),
		"title":         Str(""),
		"scenes": Arr(Obj(map[string]*Schema{
			"timestamp": Str(""),
			"visual":    Str(""),
			"audio":     Str(""),
			"duration":  Num(""),
		})),
	})),
	"scenes": Arr(Obj(map[string]*Schema{
		"timestamp": Str(""),
		"visual":    Str(""),
		"audio":     Str(""),
	})),
}, "title")

// Agent describes an autonomous agent persona.
var Agent = Obj(map[string]*Schema{
	"agentName":      Str(""),
	"persona":        Str(""),
	"capabilities":   Arr(Str("")),
	"initialMessage": Str(""),
})

// SaaSBuilder describes a SaaS platform design.
var SaaSBuilder = Obj(map[string]*Schema{
	"productName":          Str(""),
	"description":          Str(""),
	"userRoles":            Arr(Str("")),
	"monetizationStrategy": Str(""),
	"backendArchitecture":  Str("Detailed description of the backend architecture"),
	"apiEndpoints": Arr(Obj(map[string]*Schema{
		"method":      Str(""),
		"path":        Str(""),
		"description": Str(""),
	})),
	"frontendComponents": {Type: TypeArray, Items: Str(""), Description: "List of key frontend components to build"},
	"mvpCodeSnippet":     Str("A core React component or API route for the MVP"),
}, "productName", "backendArchitecture", "apiEndpoints")

// StudioProject describes a scene-timeline project for the studio editor.
var StudioProject = Obj(map[string]*Schema{
	"projectName": Str(""),
	"scenes": Arr(Obj(map[string]*Schema{
		"id":              Str(""),
		"name":            Str(""),
		"duration":        Num(""),
		"background":      Str(""),
		"characters":      Arr(Str("")),
		"dialogue":        Str(""),
		"audioPrompt":     Str(""),
		"voiceoverScript": Str(""),
	})),
	"assets": Arr(Obj(map[string]*Schema{
		"type": Str(""),
		"name": Str(""),
		"url":  Str(""),
	})),
}, "projectName", "scenes")

// MasterDraft is the combined multi-module draft produced by the autodraft engine.
var MasterDraft = Obj(map[string]*Schema{
	"projectName": Str(""),
	"vision":      Str(""),
	"app":         AppBuilder,
	"video":       VideoScript,
	"agent":       Agent,
	"saas":        SaaSBuilder,
	"studio":      StudioProject,
	"roadmap":     Arr(Str("")),
}, "projectName", "app", "saas", "studio")

// Animation describes an episodic animation production manifest.
var Animation = Obj(map[string]*Schema{
	"title":         Str(""),
	"style":         Str(""),
	"totalDuration": Str("Total duration of the animation (e.g., '10m', '1h')"),
	"episodes": Arr(Obj(map[string]*Schema{
		"episodeNumber": Num(""),
		"title":         Str(""),
		"scenes": Arr(Obj(map[string]*Schema{
			"sceneNumber":       Num(""),
			"visualDescription": Str(""),
			"movement":          Str(""),
			"audioPrompt":       Str("Background music and SFX prompt"),
			"voiceoverScript":   Str("The dialogue or narration for this scene"),
			"duration":          Num("Duration in seconds"),
		})),
	})),
}, "title", "episodes")

// Character describes a character profile with stats.
var Character = Obj(map[string]*Schema{
	"name":              Str(""),
	"species":           Str(""),
	"traits":            Arr(Str("")),
	"backstory":         Str(""),
	"visualDescription": Str(""),
	"stats": Obj(map[string]*Schema{
		"strength":     Num(""),
		"agility":      Num(""),
		"intelligence": Num(""),
	}),
})

// GoogleAIApp describes a generated Gemini-integrated web application.
var GoogleAIApp = Obj(map[string]*Schema{
	"appName":              Str(""),
	"description":          Str(""),
	"geminiIntegration":    Str("Description of how Gemini API is used"),
	"frontendCode":         Str("React component code with Gemini integration"),
	"backendCode":          Str("Express server code with Gemini integration"),
	"environmentVariables": Arr(Str("")),
	"setupInstructions":    Str(""),
}, "appName", "frontendCode", "geminiIntegration")

// ImageGen describes an engineered image-generation prompt.
var ImageGen = Obj(map[string]*Schema{
	"prompt":         Str(""),
	"style":          Str("Style like '3D Kids Animation', 'Painting Anime', 'Thriller & Horror', etc."),
	"revisedPrompt":  Str("AI-enhanced prompt for better image generation"),
	"negativePrompt": Str(""),
}, "prompt", "style", "revisedPrompt")

// Voiceover describes a voiceover script with voice selection.
var Voiceover = Obj(map[string]*Schema{
	"text":    Str(""),
	"voice":   Str("Voice name like 'Puck', 'Charon', 'Kore', 'Fenrir', 'Zephyr'"),
	"emotion": Str(""),
	"script":  Str("Enhanced script for the voiceover"),
}, "text", "voice", "script")

// StoryWriter describes a chaptered story.
var StoryWriter = Obj(map[string]*Schema{
	"title":       Str(""),
	"genre":       Str(""),
	"plotSummary": Str(""),
	"chapters": Arr(Obj(map[string]*Schema{
		"title":   Str(""),
		"content": Str(""),
	})),
}, "title", "genre", "plotSummary", "chapters")

// Veo3 describes a high-fidelity video production manifest.
var Veo3 = Obj(map[string]*Schema{
	"projectName": Str(""),
	"prompt":      Str(""),
	"style":       Str(""),
	"resolution":  Str(""),
	"aspectRatio": Str(""),
	"duration":    Str(""),
	"scenes": Arr(Obj(map[string]*Schema{
		"sceneNumber":    Num(""),
		"description":    Str(""),
		"cameraMovement": Str(""),
	})),
}, "projectName", "prompt", "scenes")

// Gemini3 describes a structured reasoning/solution artifact.
var Gemini3 = Obj(map[string]*Schema{
	"projectName": Str(""),
	"task":        Str(""),
	"analysis":    Str(""),
	"solution":    Str(""),
	"codeSnippet": Str(""),
	"nextSteps":   Arr(Str("")),
}, "projectName", "task", "solution")

// Caffeine describes an audio/sound-design composition.
var Caffeine = Obj(map[string]*Schema{
	"projectName": Str(""),
	"audioPrompt": Str(""),
	"mood":        Str(""),
	"tempo":       Num(""),
	"instruments": Arr(Str("")),
	"composition": Str("Detailed musical composition structure"),
}, "projectName", "audioPrompt", "composition")

// Udio describes a produced song with lyrics and arrangement.
var Udio = Obj(map[string]*Schema{
	"songTitle":       Str(""),
	"lyrics":          Str(""),
	"genre":           Str(""),
	"vocalStyle":      Str(""),
	"arrangement":     Arr(Str("")),
	"productionNotes": Str(""),
}, "songTitle", "lyrics", "genre")
