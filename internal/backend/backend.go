package backend

import (
	"context"
	"fmt"

	"stackctl/internal/registry"
)

// StartResult reports what a Start call actually did.
type StartResult string

const (
	// StartResultStarted means the service was started by this call.
	StartResultStarted StartResult = "Started"
	// StartResultAlreadyRunning means the service was already up and the
	// call had no side effect.
	StartResultAlreadyRunning StartResult = "AlreadyRunning"
)

// Status is the observed container state of a service.
type Status string

const (
	StatusRunning Status = "Running"
	StatusStopped Status = "Stopped"
	StatusUnknown Status = "Unknown"
)

// StartOptions carries the per-run start knobs. A typed struct rather than
// assembled command strings keeps the backend contract narrow.
type StartOptions struct {
	ForceRecreate bool // recreate containers even if they are up
	Rebuild       bool // rebuild images before starting
}

// UnavailableError means the container runtime itself cannot be reached.
// It is fatal before any side effect.
type UnavailableError struct {
	Runtime string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("container runtime %s unavailable: %v", e.Runtime, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// ServiceBackend starts, stops, and reports the status of one service given
// its descriptor. It owns all interaction with the underlying container
// runtime; callers treat it as a black box. Implementations must be safe to
// call concurrently for distinct descriptors, and Start on an already-running
// service must return StartResultAlreadyRunning without side effects.
type ServiceBackend interface {
	// Available verifies the runtime can be reached. Returns an
	// *UnavailableError otherwise.
	Available(ctx context.Context) error

	// EnsureNetwork creates the shared container network if it does not
	// exist yet. Idempotent.
	EnsureNetwork(ctx context.Context, name string) error

	// Start brings the service up via its compose definition.
	Start(ctx context.Context, desc registry.ServiceDescriptor, opts StartOptions) (StartResult, error)

	// Stop tears the service down via its compose definition.
	Stop(ctx context.Context, desc registry.ServiceDescriptor) error

	// Status reports the observed container state of the service.
	Status(ctx context.Context, desc registry.ServiceDescriptor) (Status, error)

	// Execute runs a command inside the service's container and returns
	// its combined output and exit code.
	Execute(ctx context.Context, desc registry.ServiceDescriptor, command []string) (string, int, error)

	// Logs returns the last tail lines of the service's container logs.
	Logs(ctx context.Context, desc registry.ServiceDescriptor, tail string) (string, error)
}
