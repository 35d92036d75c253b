package scheduler

import (
	"context"
	"sync"
	"time"

	"stackctl/internal/backend"
	"stackctl/internal/health"
	"stackctl/internal/registry"
)

// mockBackend is a hand-rolled ServiceBackend for testing with per-method
// function hooks and thread-safe call recording.
type mockBackend struct {
	mu sync.Mutex

	startFunc   func(ctx context.Context, desc registry.ServiceDescriptor, opts backend.StartOptions) (backend.StartResult, error)
	statusFunc  func(ctx context.Context, desc registry.ServiceDescriptor) (backend.Status, error)
	executeFunc func(ctx context.Context, desc registry.ServiceDescriptor, command []string) (string, int, error)

	availableErr error
	networkErr   error

	startCalls   []string // "category/service"
	networkCalls []string
}

func (m *mockBackend) Available(ctx context.Context) error {
	return m.availableErr
}

func (m *mockBackend) EnsureNetwork(ctx context.Context, name string) error {
	m.mu.Lock()
	m.networkCalls = append(m.networkCalls, name)
	m.mu.Unlock()
	return m.networkErr
}

func (m *mockBackend) Start(ctx context.Context, desc registry.ServiceDescriptor, opts backend.StartOptions) (backend.StartResult, error) {
	m.mu.Lock()
	m.startCalls = append(m.startCalls, desc.Category+"/"+desc.ID)
	m.mu.Unlock()

	if m.startFunc != nil {
		return m.startFunc(ctx, desc, opts)
	}
	return backend.StartResultStarted, nil
}

func (m *mockBackend) Stop(ctx context.Context, desc registry.ServiceDescriptor) error {
	return nil
}

func (m *mockBackend) Status(ctx context.Context, desc registry.ServiceDescriptor) (backend.Status, error) {
	if m.statusFunc != nil {
		return m.statusFunc(ctx, desc)
	}
	return backend.StatusStopped, nil
}

func (m *mockBackend) Execute(ctx context.Context, desc registry.ServiceDescriptor, command []string) (string, int, error) {
	if m.executeFunc != nil {
		return m.executeFunc(ctx, desc, command)
	}
	return "", 0, nil
}

func (m *mockBackend) Logs(ctx context.Context, desc registry.ServiceDescriptor, tail string) (string, error) {
	return "", nil
}

func (m *mockBackend) recordedStarts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.startCalls))
	copy(calls, m.startCalls)
	return calls
}

// mockProbe is a HealthProber with a configurable hook and call recording.
type mockProbe struct {
	mu sync.Mutex

	checkFunc func(ctx context.Context, desc registry.ServiceDescriptor, timeout, interval time.Duration) (health.Result, error)
	calls     []string
}

func (m *mockProbe) Check(ctx context.Context, desc registry.ServiceDescriptor, timeout, interval time.Duration) (health.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, desc.Category+"/"+desc.ID)
	m.mu.Unlock()

	if m.checkFunc != nil {
		return m.checkFunc(ctx, desc, timeout, interval)
	}
	return health.ResultReady, nil
}

func (m *mockProbe) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
