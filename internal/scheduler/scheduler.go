package scheduler

import (
	"context"
	"sync"
	"time"

	"stackctl/internal/backend"
	"stackctl/internal/health"
	"stackctl/internal/registry"
	"stackctl/pkg/logging"
)

// Mode selects how resolved categories are driven.
type Mode int

const (
	// ModeSequential starts categories one after another in canonical
	// order, gating on critical-category readiness.
	ModeSequential Mode = iota
	// ModeParallel starts every resolved category as its own concurrent
	// task. Ordering across categories is not guaranteed; per-category
	// internal sequencing (start before probe) is.
	ModeParallel
)

// DefaultHealthTimeout bounds a critical category's readiness probing when
// the request does not set one.
const DefaultHealthTimeout = 60 * time.Second

// Request describes one installation run. Constructed once per run and
// read-only thereafter.
type Request struct {
	IncludeCategories []string // empty means all
	ExcludeCategories []string
	Mode              Mode
	HealthTimeout     time.Duration
	ForceRecreate     bool
	Rebuild           bool
	DryRun            bool
}

// HealthProber verifies readiness of a single service within a bounded
// retry budget. Satisfied by *health.Probe.
type HealthProber interface {
	Check(ctx context.Context, desc registry.ServiceDescriptor, timeout, interval time.Duration) (health.Result, error)
}

// Scheduler resolves requested categories against the registry, drives
// per-category start calls through the backend, gates progression on health
// probes for critical categories, and aggregates outcomes into a report.
type Scheduler struct {
	registry *registry.Registry
	backend  backend.ServiceBackend
	probe    HealthProber
	network  string // shared network created before fan-out
}

// New creates a scheduler. All collaborators are injected; the scheduler
// holds no ambient state and a single instance may serve many runs.
func New(reg *registry.Registry, be backend.ServiceBackend, probe HealthProber, network string) *Scheduler {
	return &Scheduler{
		registry: reg,
		backend:  be,
		probe:    probe,
		network:  network,
	}
}

// Run executes one installation. Fatal pre-flight errors (unknown category
// names, unreachable runtime) are returned directly with a nil report and
// guarantee that no side effect occurred. All later failures are captured
// into the report, so a started run always completes with one.
func (s *Scheduler) Run(ctx context.Context, req Request) (*Report, error) {
	resolved, err := s.registry.Resolve(req.IncludeCategories, req.ExcludeCategories)
	if err != nil {
		return nil, err
	}

	if req.DryRun {
		return s.plan(resolved), nil
	}

	if err := s.backend.Available(ctx); err != nil {
		return nil, err
	}

	// Shared infrastructure is created exactly once, synchronously, before
	// any category task is launched.
	if s.network != "" {
		if err := s.backend.EnsureNetwork(ctx, s.network); err != nil {
			return nil, err
		}
	}

	if req.Mode == ModeParallel {
		return s.runParallel(ctx, resolved, req), nil
	}
	return s.runSequential(ctx, resolved, req), nil
}

// plan produces the dry-run report: the full resolved sequence with every
// outcome tagged as skipped, and no backend or probe invocations.
func (s *Scheduler) plan(resolved []registry.Category) *Report {
	report := &Report{DryRun: true}
	for _, cat := range resolved {
		outcomes := make([]ServiceOutcome, 0, len(cat.Services))
		for _, svc := range cat.Services {
			logging.Info("Scheduler", "[dry-run] would start %s/%s (%s)", cat.Name, svc.ID, svc.ComposeFile)
			outcomes = append(outcomes, ServiceOutcome{ServiceID: svc.ID, Outcome: OutcomeDryRun})
		}
		report.Categories = append(report.Categories, CategoryResult{
			Category: cat,
			Status:   StatusSkipped,
			Services: outcomes,
		})
	}
	return report
}

// runSequential iterates categories in resolved (canonical) order. A failed
// critical category skips everything still pending; a degraded non-critical
// category does not block its successors.
func (s *Scheduler) runSequential(ctx context.Context, resolved []registry.Category, req Request) *Report {
	report := &Report{}
	cascade := false

	for _, cat := range resolved {
		if cascade || ctx.Err() != nil {
			report.Categories = append(report.Categories, skippedResult(cat))
			continue
		}

		result := s.installCategory(ctx, cat, req)
		report.Categories = append(report.Categories, result)

		if result.Status == StatusFailed {
			logging.Error("Scheduler", result.Err, "Critical category %s failed, skipping remaining categories", cat.Name)
			cascade = true
			continue
		}

		if delay := settleDelay(cat); delay > 0 {
			logging.Debug("Scheduler", "Settle delay %s after category %s", delay, cat.Name)
			if !sleepCtx(ctx, delay) {
				// Interrupted mid-settle: later categories are skipped by
				// the ctx check at the top of the loop.
				continue
			}
		}
	}
	return report
}

// runParallel launches one task per resolved category. Tasks do not block
// each other; results are merged in canonical order once all tasks finish.
// A critical-category failure does not retroactively skip siblings already
// in flight, but it is still reflected in the report and the exit code.
func (s *Scheduler) runParallel(ctx context.Context, resolved []registry.Category, req Request) *Report {
	results := make([]CategoryResult, len(resolved))
	var wg sync.WaitGroup

	for i, cat := range resolved {
		if ctx.Err() != nil {
			results[i] = skippedResult(cat)
			continue
		}
		wg.Add(1)
		go func(i int, cat registry.Category) {
			defer wg.Done()
			results[i] = s.installCategory(ctx, cat, req)
		}(i, cat)
	}
	wg.Wait()

	return &Report{Categories: results}
}

// installCategory performs one category's start-then-maybe-probe sequence
// and derives its aggregate status. A single service failure never prevents
// the remaining services in the category from being attempted.
func (s *Scheduler) installCategory(ctx context.Context, cat registry.Category, req Request) CategoryResult {
	result := CategoryResult{Category: cat}
	opts := backend.StartOptions{ForceRecreate: req.ForceRecreate, Rebuild: req.Rebuild}

	anyFailed := false
	for _, svc := range cat.Services {
		if ctx.Err() != nil {
			result.Services = append(result.Services, ServiceOutcome{ServiceID: svc.ID, Outcome: OutcomeSkipped})
			continue
		}

		startResult, err := s.backend.Start(ctx, svc, opts)
		if err != nil {
			logging.Error("Scheduler", err, "Failed to start %s/%s", cat.Name, svc.ID)
			result.Services = append(result.Services, ServiceOutcome{ServiceID: svc.ID, Outcome: OutcomeFailed, Err: err})
			anyFailed = true
			continue
		}

		outcome := OutcomeStarted
		if startResult == backend.StartResultAlreadyRunning {
			outcome = OutcomeAlreadyRunning
		}
		logging.Info("Scheduler", "%s/%s: %s", cat.Name, svc.ID, outcome)
		result.Services = append(result.Services, ServiceOutcome{ServiceID: svc.ID, Outcome: outcome})
	}

	// Outcomes are final from here on; probing only affects the aggregate.
	result.Status = StatusReady
	if anyFailed {
		result.Status = StatusDegraded
	}

	if cat.Critical {
		if err := s.probeCategory(ctx, cat, req); err != nil {
			result.Status = StatusFailed
			result.Err = err
		}
	}

	return result
}

// probeCategory verifies readiness of every probed service in a critical
// category. Probing starts only after all of the category's start calls
// have returned.
func (s *Scheduler) probeCategory(ctx context.Context, cat registry.Category, req Request) error {
	timeout := req.HealthTimeout
	if timeout <= 0 {
		timeout = DefaultHealthTimeout
	}

	for _, svc := range cat.Services {
		res, err := s.probe.Check(ctx, svc, timeout, health.DefaultInterval)
		if res != health.ResultReady {
			return &HealthCheckTimeoutError{Category: cat.Name, ServiceID: svc.ID, Err: err}
		}
	}
	return nil
}

// skippedResult marks a category (and all its services) as never started.
func skippedResult(cat registry.Category) CategoryResult {
	result := CategoryResult{Category: cat, Status: StatusSkipped}
	for _, svc := range cat.Services {
		result.Services = append(result.Services, ServiceOutcome{ServiceID: svc.ID, Outcome: OutcomeSkipped})
	}
	return result
}

// settleDelay returns the pause applied after a category's services start,
// allowing asynchronous initialization to progress: the category's own
// settle delay or the longest per-service startup delay, whichever is
// larger.
func settleDelay(cat registry.Category) time.Duration {
	delay := cat.SettleDelay
	for _, svc := range cat.Services {
		if svc.StartupDelay > delay {
			delay = svc.StartupDelay
		}
	}
	return delay
}

// sleepCtx sleeps for d or until ctx is done. Reports whether the full
// duration elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
