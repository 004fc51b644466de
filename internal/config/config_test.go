package config

import (
	"testing"
)

// fakeBackend is an in-memory ConfigBackend for tests.
type fakeBackend struct {
	strings map[string]string
	ints    map[string]int
}

func (f *fakeBackend) GetString(key string) (string, bool, error) {
	v, ok := f.strings[key]
	return v, ok, nil
}

func (f *fakeBackend) GetInt(key string) (int, bool, error) {
	v, ok := f.ints[key]
	return v, ok, nil
}

func (f *fakeBackend) SetString(key, val string) error {
	f.strings[key] = val
	return nil
}

func (f *fakeBackend) SetInt(key string, val int) error {
	f.ints[key] = val
	return nil
}

func (f *fakeBackend) Delete(key string) error {
	delete(f.strings, key)
	delete(f.ints, key)
	return nil
}

type fakeKeychain struct {
	value string
	err   error
}

func (f fakeKeychain) Get(service, account string) (string, error) {
	return f.value, f.err
}

func emptyBackend() *fakeBackend {
	return &fakeBackend{strings: map[string]string{}, ints: map[string]int{}}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadWith(emptyBackend(), fakeKeychain{})
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.GenAI.Model != "gemini-3.1-pro-preview" {
		t.Errorf("model = %q", cfg.GenAI.Model)
	}
	if cfg.GenAI.BaseURL != "https://generativelanguage.googleapis.com" {
		t.Errorf("base url = %q", cfg.GenAI.BaseURL)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.Generation.StrictPersist {
		t.Error("strict_persist should default to false")
	}
	if cfg.HasCredential() {
		t.Error("no credential should be configured")
	}
}

func TestLoadBackendOverrides(t *testing.T) {
	b := emptyBackend()
	b.ints["server.port"] = 8080
	b.strings["genai.model"] = "gemini-experimental"
	b.strings["generation.strict_persist"] = "true"

	cfg, err := loadWith(b, fakeKeychain{})
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.GenAI.Model != "gemini-experimental" {
		t.Errorf("model = %q", cfg.GenAI.Model)
	}
	if !cfg.Generation.StrictPersist {
		t.Error("strict_persist not applied from backend")
	}
}

func TestLoadEnvOverridesBackend(t *testing.T) {
	b := emptyBackend()
	b.ints["server.port"] = 8080
	t.Setenv("TITAN_SERVER_PORT", "9090")
	t.Setenv("TITAN_GEMINI_API_KEY", "env-key")

	cfg, err := loadWith(b, fakeKeychain{})
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, env should win over backend", cfg.Server.Port)
	}
	if cfg.GenAI.APIKey != "env-key" {
		t.Errorf("api key = %q", cfg.GenAI.APIKey)
	}
}

func TestLoadKeychainFallback(t *testing.T) {
	cfg, err := loadWith(emptyBackend(), fakeKeychain{value: "kc-key"})
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}
	if cfg.GenAI.APIKey != "kc-key" {
		t.Errorf("api key = %q, want keychain value", cfg.GenAI.APIKey)
	}
	if !cfg.HasCredential() {
		t.Error("HasCredential should be true")
	}
}

func TestLoadEnvBeatsKeychain(t *testing.T) {
	t.Setenv("TITAN_GEMINI_API_KEY", "env-key")
	cfg, err := loadWith(emptyBackend(), fakeKeychain{value: "kc-key"})
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}
	if cfg.GenAI.APIKey != "env-key" {
		t.Errorf("api key = %q, env should win", cfg.GenAI.APIKey)
	}
}

func TestLoadInvalidEnvIntFallsBack(t *testing.T) {
	t.Setenv("TITAN_SERVER_PORT", "not-a-number")
	cfg, err := loadWith(emptyBackend(), fakeKeychain{})
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("port = %d, want default after bad env value", cfg.Server.Port)
	}
}

func TestShowAllOmitsSecrets(t *testing.T) {
	cfg := defaults()
	cfg.GenAI.APIKey = "secret-key"

	for _, info := range ShowAll(cfg) {
		if info.Key == "genai.api_key" {
			t.Error("ShowAll must not expose the API key")
		}
		if info.Value == "secret-key" {
			t.Errorf("secret leaked through key %s", info.Key)
		}
	}
}

func TestValidKeys(t *testing.T) {
	keys := ValidKeys()
	want := map[string]bool{
		"server.port":               false,
		"genai.base_url":            false,
		"genai.model":               false,
		"storage.data_dir":          false,
		"log.level":                 false,
		"generation.strict_persist": false,
	}
	for _, k := range keys {
		if k == "genai.api_key" {
			t.Error("secret key listed as settable")
		}
		if _, ok := want[k]; ok {
			want[k] = true
		}
	}
	for k, seen := range want {
		if !seen {
			t.Errorf("key %s missing from ValidKeys", k)
		}
	}
}
