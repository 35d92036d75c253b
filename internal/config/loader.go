package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/stackctl"
	projectConfigDir = ".stackctl"
	configFileName   = "config.yaml"
)

// LoadConfig loads the stackctl configuration by layering default, user, and
// project settings. Later layers replace categories of the same name but
// never change the canonical order of the base list; categories that only
// exist in an overlay are appended.
func LoadConfig() (StackctlConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. Determine user-specific configuration path
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// Log this error but don't fail; user config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else {
		if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
			userConfig, err := loadConfigFromFile(userConfigPath)
			if err != nil {
				return StackctlConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
			}
			config = mergeConfigs(config, userConfig)
		}
	}

	// 3. Determine project-specific configuration path
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		// Log this error but don't fail; project config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else {
		if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
			projectConfig, err := loadConfigFromFile(projectConfigPath)
			if err != nil {
				return StackctlConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
			}
			config = mergeConfigs(config, projectConfig)
		}
	}

	if err := config.Validate(); err != nil {
		return StackctlConfig{}, err
	}

	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a StackctlConfig from a YAML file.
func loadConfigFromFile(filePath string) (StackctlConfig, error) {
	var config StackctlConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return StackctlConfig{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return StackctlConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
func mergeConfigs(base, overlay StackctlConfig) StackctlConfig {
	mergedConfig := base

	// Merge GlobalSettings (overlay overrides base)
	if overlay.GlobalSettings.Runtime != "" {
		mergedConfig.GlobalSettings.Runtime = overlay.GlobalSettings.Runtime
	}
	if overlay.GlobalSettings.Network != "" {
		mergedConfig.GlobalSettings.Network = overlay.GlobalSettings.Network
	}
	if overlay.GlobalSettings.ComposeDir != "" {
		mergedConfig.GlobalSettings.ComposeDir = overlay.GlobalSettings.ComposeDir
	}

	// Merge categories by name. The base list fixes the canonical order;
	// an overlay entry replaces its namesake in place, overlay-only
	// categories are appended at the end.
	overlayByName := make(map[string]CategoryConfig)
	for _, cat := range overlay.Categories {
		overlayByName[cat.Name] = cat
	}

	merged := make([]CategoryConfig, 0, len(mergedConfig.Categories))
	for _, cat := range mergedConfig.Categories {
		if replacement, exists := overlayByName[cat.Name]; exists {
			merged = append(merged, replacement)
			delete(overlayByName, cat.Name)
		} else {
			merged = append(merged, cat)
		}
	}
	for _, cat := range overlay.Categories {
		if _, pending := overlayByName[cat.Name]; pending {
			merged = append(merged, cat)
			delete(overlayByName, cat.Name)
		}
	}
	mergedConfig.Categories = merged

	return mergedConfig
}

// Validate checks the configuration for structural problems: duplicate
// category names, duplicate service IDs within a category, and services
// without a compose definition.
func (c StackctlConfig) Validate() error {
	seenCategories := make(map[string]bool)
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("category with empty name")
		}
		if seenCategories[cat.Name] {
			return fmt.Errorf("duplicate category %q", cat.Name)
		}
		seenCategories[cat.Name] = true

		seenServices := make(map[string]bool)
		for _, svc := range cat.Services {
			if svc.ID == "" {
				return fmt.Errorf("category %q: service with empty id", cat.Name)
			}
			if seenServices[svc.ID] {
				return fmt.Errorf("category %q: duplicate service %q", cat.Name, svc.ID)
			}
			seenServices[svc.ID] = true

			if svc.ComposeFile == "" {
				return fmt.Errorf("category %q: service %q has no composeFile", cat.Name, svc.ID)
			}
		}
	}
	return nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
