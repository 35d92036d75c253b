package cmd

import (
	"fmt"

	"stackctl/internal/backend"
	"stackctl/internal/config"
	"stackctl/internal/registry"
)

// buildEnvironment loads the layered configuration and constructs the
// registry and compose client every stack command needs. Errors here are
// pre-flight: nothing has been started yet.
func buildEnvironment() (config.StackctlConfig, *registry.Registry, *backend.ComposeClient, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.StackctlConfig{}, nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	reg, err := registry.New(cfg)
	if err != nil {
		return config.StackctlConfig{}, nil, nil, err
	}

	client, err := backend.NewComposeClient(cfg.GlobalSettings)
	if err != nil {
		return config.StackctlConfig{}, nil, nil, err
	}

	return cfg, reg, client, nil
}
