package config

import (
	"strings"
)

type Config struct {
	Server     ServerConfig
	GenAI      GenAIConfig
	Storage    StorageConfig
	Log        LogConfig
	Generation GenerationConfig
}

type ServerConfig struct {
	Port int
}

type GenAIConfig struct {
	BaseURL string
	Model   string
	APIKey  string
}

type StorageConfig struct {
	DataDir string
}

type LogConfig struct {
	Level string
}

type GenerationConfig struct {
	// StrictPersist makes a failed project save fail the whole generation
	// instead of returning the artifact unsaved.
	StrictPersist bool
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 3000,
		},
		GenAI: GenAIConfig{
			BaseURL: "https://generativelanguage.googleapis.com",
			Model:   "gemini-3.1-pro-preview",
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the platform-native backend, environment
// variables, and platform secret store.
//
// On macOS the backend is UserDefaults (domain: com.titanomni.omni) and
// the API key falls back to macOS Keychain.
// On Linux the backend is a JSON file at $XDG_CONFIG_HOME/omni/config.json
// and the API key falls back to a local secrets file.
//
// Environment variables (TITAN_*) override backend values on all platforms.
// A missing API key is not an error here: only generation commands need
// it, and they check HasCredential themselves.
func Load() (Config, error) {
	return loadWith(newPlatformBackend(), keychainReader{})
}

// keychain abstracts secret store access for testing.
type keychain interface {
	Get(service, account string) (string, error)
}

func loadWith(b ConfigBackend, kc keychain) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	// Try the platform secret store for the API key if still empty.
	if cfg.GenAI.APIKey == "" {
		if key, err := kc.Get("omni", "gemini_api_key"); err == nil && key != "" {
			cfg.GenAI.APIKey = key
		}
	}

	return cfg, nil
}

// HasCredential reports whether a Gemini API key is configured.
func (c Config) HasCredential() bool {
	return c.GenAI.APIKey != ""
}

// CredentialHint is the message shown when a generation command runs
// without an API key.
func CredentialHint() string {
	return "missing Gemini API key. Set it via environment variable TITAN_GEMINI_API_KEY" + apiKeyHint()
}

// keychainReader reads from the platform secret store.
type keychainReader struct{}

func (keychainReader) Get(service, account string) (string, error) {
	out, err := keychainGet(service, account)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
