// Package config provides configuration management for stackctl.
//
// This package implements a layered configuration system that allows users to
// customize the installed service catalog through YAML files. Configuration
// is loaded from multiple sources and merged in a specific order, with later
// sources overriding earlier ones.
//
// # Configuration Layers
//
// Configuration is loaded and merged in the following order:
//
//  1. Default Configuration (embedded in binary)
//     - The stock category catalog in canonical startup order
//     - Ensures stackctl works out-of-the-box
//
//  2. User Configuration (~/.config/stackctl/config.yaml)
//     - User-specific settings that apply to all projects
//
//  3. Project Configuration (./.stackctl/config.yaml)
//     - Project-specific settings in the current directory
//     - Allows teams to share configuration via version control
//
// Overlays replace categories by name without disturbing the canonical
// startup order of the base list; categories that only exist in an overlay
// are appended after the stock ones.
//
// # Configuration Structure
//
//	globalSettings:
//	  runtime: "podman"            # or "docker"; omit for auto-detection
//	  network: "microservices-net" # shared network all services join
//	  composeDir: "apps"           # base for relative compose paths
//
//	categories:
//	  - name: "database"
//	    critical: true             # readiness gates later categories
//	    services:
//	      - id: "postgres"
//	        composeFile: "database/postgres.yml"
//	        health:
//	          type: "exec"
//	          command: ["pg_isready", "-U", "postgres"]
//
// The order of the categories list is the canonical startup order used by
// the installation scheduler; resolution filters it but never reorders it.
package config
