package registry

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"stackctl/internal/config"
)

// ServiceDescriptor is the immutable metadata identifying one installable
// unit within a category. It is handed to the backend as-is; the registry
// and scheduler never interpret the compose file themselves.
type ServiceDescriptor struct {
	ID            string
	Category      string
	ComposeFile   string
	ContainerName string
	StartupDelay  time.Duration
	Health        *config.HealthConfig
}

// Category is a named group of services started together as one phase of
// installation. Membership and order are fixed at load time.
type Category struct {
	Name        string
	Critical    bool
	SettleDelay time.Duration
	Services    []ServiceDescriptor
}

// ConfigurationError reports a request that references categories the
// registry does not know about. It is fatal before any side effect.
type ConfigurationError struct {
	Unknown []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown categories: %s", strings.Join(e.Unknown, ", "))
}

// Registry is the immutable mapping from category name to its member
// services, plus the canonical global startup order. It is built once at
// process start and never mutated afterwards.
type Registry struct {
	order      []string
	categories map[string]Category
}

// New builds a Registry from an already-validated configuration. The order
// of cfg.Categories becomes the canonical startup order.
func New(cfg config.StackctlConfig) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Registry{
		order:      make([]string, 0, len(cfg.Categories)),
		categories: make(map[string]Category, len(cfg.Categories)),
	}

	for _, cat := range cfg.Categories {
		services := make([]ServiceDescriptor, 0, len(cat.Services))
		for _, svc := range cat.Services {
			services = append(services, ServiceDescriptor{
				ID:            svc.ID,
				Category:      cat.Name,
				ComposeFile:   svc.ComposeFile,
				ContainerName: svc.EffectiveContainerName(),
				StartupDelay:  svc.StartupDelay,
				Health:        svc.Health,
			})
		}
		r.order = append(r.order, cat.Name)
		r.categories[cat.Name] = Category{
			Name:        cat.Name,
			Critical:    cat.Critical,
			SettleDelay: cat.SettleDelay,
			Services:    services,
		}
	}

	return r, nil
}

// Names returns all category names in canonical startup order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Lookup returns the category with the given name, if registered.
func (r *Registry) Lookup(name string) (Category, bool) {
	cat, exists := r.categories[name]
	return cat, exists
}

// Resolve turns an include/exclude selection into the concrete ordered list
// of categories to install.
//
// Validation is all-or-nothing: any unknown name in either list yields a
// ConfigurationError and no categories. A non-empty include list selects
// exactly those categories, reordered to the canonical startup order
// regardless of how the caller listed them. An empty include list selects
// the full canonical order minus the excluded names.
func (r *Registry) Resolve(include, exclude []string) ([]Category, error) {
	if err := r.validateNames(include); err != nil {
		return nil, err
	}
	if err := r.validateNames(exclude); err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(include))
	for _, name := range include {
		selected[name] = true
	}
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}

	var resolved []Category
	for _, name := range r.order {
		if len(include) > 0 {
			if !selected[name] {
				continue
			}
		} else if excluded[name] {
			continue
		}
		resolved = append(resolved, r.categories[name])
	}
	return resolved, nil
}

// validateNames checks that every name exists in the registry, collecting
// all unknown names into one error.
func (r *Registry) validateNames(names []string) error {
	var unknown []string
	for _, name := range names {
		if _, exists := r.categories[name]; !exists {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &ConfigurationError{Unknown: unknown}
	}
	return nil
}
