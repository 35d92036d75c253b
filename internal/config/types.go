package config

import (
	"time"
)

// StackctlConfig is the top-level configuration structure for stackctl.
// The order of Categories is the canonical startup order: resolution and
// installation never reorder it.
type StackctlConfig struct {
	GlobalSettings GlobalSettings   `yaml:"globalSettings"`
	Categories     []CategoryConfig `yaml:"categories"`
}

// GlobalSettings holds runtime-wide knobs that are not tied to a single
// category or service.
type GlobalSettings struct {
	Runtime    string `yaml:"runtime,omitempty"`    // "podman" or "docker"; empty means auto-detect
	Network    string `yaml:"network,omitempty"`    // shared container network all services join
	ComposeDir string `yaml:"composeDir,omitempty"` // base directory for relative compose file paths
}

// ProbeType defines how a service's readiness is verified.
type ProbeType string

const (
	ProbeTypeTCP  ProbeType = "tcp"  // dial a local TCP address
	ProbeTypeExec ProbeType = "exec" // run a command inside the container
)

// CategoryConfig defines one named group of services that are started
// together as one phase of installation.
type CategoryConfig struct {
	Name        string          `yaml:"name"`
	Critical    bool            `yaml:"critical,omitempty"`    // readiness gates later categories
	SettleDelay time.Duration   `yaml:"settleDelay,omitempty"` // pause after the category starts
	Services    []ServiceConfig `yaml:"services"`
}

// ServiceConfig defines one installable unit within a category.
type ServiceConfig struct {
	ID            string        `yaml:"id"`                      // unique within the category
	ComposeFile   string        `yaml:"composeFile"`             // compose definition handed to the backend
	ContainerName string        `yaml:"containerName,omitempty"` // defaults to ID
	StartupDelay  time.Duration `yaml:"startupDelay,omitempty"`  // grace period after start
	Health        *HealthConfig `yaml:"health,omitempty"`        // optional readiness probe
}

// HealthConfig defines the readiness probe for a service.
type HealthConfig struct {
	Type     ProbeType     `yaml:"type"`               // "tcp" or "exec"
	Address  string        `yaml:"address,omitempty"`  // for tcp probes, e.g. "localhost:5432"
	Command  []string      `yaml:"command,omitempty"`  // for exec probes, e.g. ["pg_isready", "-U", "postgres"]
	Interval time.Duration `yaml:"interval,omitempty"` // probe retry interval (default 2s)
}

// EffectiveContainerName returns the container name the backend should
// inspect for this service.
func (s ServiceConfig) EffectiveContainerName() string {
	if s.ContainerName != "" {
		return s.ContainerName
	}
	return s.ID
}
