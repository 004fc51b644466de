package main

import (
	"fmt"

	"github.com/titanomni/omni/internal/config"
	"github.com/titanomni/omni/internal/content"
)

// newContentClient builds a client for the local content service.
// Swappable in tests.
var newContentClient = func(cfg config.Config) *content.Client {
	return content.NewClient(fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port))
}

// loadedContentClient loads config and returns a client in one step for
// commands that need nothing else from the config.
func loadedContentClient() (*content.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return newContentClient(cfg), nil
}
