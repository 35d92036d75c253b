package health

import (
	"context"
	"fmt"
	"net"
	"time"

	"stackctl/internal/config"
	"stackctl/internal/registry"
	"stackctl/pkg/logging"
)

// Result is the outcome of one readiness check.
type Result string

const (
	ResultReady    Result = "Ready"
	ResultTimedOut Result = "TimedOut"
)

// DefaultInterval is the probe retry interval used when a service's health
// configuration does not set one.
const DefaultInterval = 2 * time.Second

// CommandRunner runs a command inside a service's container. Satisfied by
// the service backend; kept narrow so probes never start or stop anything.
type CommandRunner interface {
	Execute(ctx context.Context, desc registry.ServiceDescriptor, command []string) (string, int, error)
}

// Probe polls a single service for readiness using a bounded retry budget.
type Probe struct {
	runner CommandRunner

	// dial is replaceable in tests.
	dial func(ctx context.Context, network, address string) (net.Conn, error)
}

// NewProbe returns a probe that runs exec-type checks through runner.
func NewProbe(runner CommandRunner) *Probe {
	dialer := &net.Dialer{}
	return &Probe{
		runner: runner,
		dial:   dialer.DialContext,
	}
}

// Check polls the service until it reports ready or the attempt budget of
// ceil(timeout/interval) probes is exhausted. Success on any attempt
// terminates immediately; a service without a health configuration is
// considered ready as soon as it starts.
func (p *Probe) Check(ctx context.Context, desc registry.ServiceDescriptor, timeout, interval time.Duration) (Result, error) {
	if desc.Health == nil {
		return ResultReady, nil
	}
	if desc.Health.Interval > 0 {
		interval = desc.Health.Interval
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	attempts := int((timeout + interval - 1) / interval)
	if attempts < 1 {
		attempts = 1
	}

	subsystem := fmt.Sprintf("HealthProbe-%s", desc.ID)
	logging.Debug(subsystem, "Probing %s readiness (%d attempts, %s interval)", desc.Health.Type, attempts, interval)

	err := Retry(ctx, attempts, interval, func(ctx context.Context) error {
		return p.attempt(ctx, desc)
	})
	if err != nil {
		logging.Warn(subsystem, "Service not ready: %v", err)
		return ResultTimedOut, err
	}

	logging.Debug(subsystem, "Service ready")
	return ResultReady, nil
}

// attempt performs one readiness test according to the service's probe type.
func (p *Probe) attempt(ctx context.Context, desc registry.ServiceDescriptor) error {
	switch desc.Health.Type {
	case config.ProbeTypeTCP:
		conn, err := p.dial(ctx, "tcp", desc.Health.Address)
		if err != nil {
			return fmt.Errorf("dial %s: %w", desc.Health.Address, err)
		}
		conn.Close()
		return nil

	case config.ProbeTypeExec:
		output, exitCode, err := p.runner.Execute(ctx, desc, desc.Health.Command)
		if err != nil {
			return fmt.Errorf("exec probe: %w", err)
		}
		if exitCode != 0 {
			return fmt.Errorf("probe command exited %d: %s", exitCode, output)
		}
		return nil

	default:
		return fmt.Errorf("unknown probe type %q", desc.Health.Type)
	}
}
