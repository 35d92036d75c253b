package scheduler

import (
	"stackctl/internal/registry"
)

// Outcome is the final result of one service's start attempt. It is fixed
// as soon as the category's start phase completes; health probing never
// changes a service's own outcome, only the category's aggregate status.
type Outcome string

const (
	OutcomeStarted        Outcome = "Started"
	OutcomeAlreadyRunning Outcome = "AlreadyRunning"
	OutcomeFailed         Outcome = "Failed"
	OutcomeSkipped        Outcome = "Skipped"
	OutcomeDryRun         Outcome = "Skipped (dry-run)"
)

// ServiceOutcome records what happened to one service during a run.
type ServiceOutcome struct {
	ServiceID string
	Outcome   Outcome
	Err       error
}

// CategoryStatus is the aggregate state a category ends a run in.
type CategoryStatus string

const (
	// StatusReady means every service started (or was already running)
	// and, for critical categories, the health probe confirmed readiness.
	StatusReady CategoryStatus = "Ready"
	// StatusDegraded means some services failed to start but the category
	// did not block the run.
	StatusDegraded CategoryStatus = "Degraded"
	// StatusFailed means a critical category did not reach readiness.
	StatusFailed CategoryStatus = "Failed"
	// StatusSkipped means the category was never started: a preceding
	// critical category failed, the run was interrupted, or this is a
	// dry run.
	StatusSkipped CategoryStatus = "Skipped"
)

// CategoryResult pairs a category with its aggregate status and the
// per-service outcomes that produced it.
type CategoryResult struct {
	Category registry.Category
	Status   CategoryStatus
	Services []ServiceOutcome
	Err      error // detail for Failed categories, e.g. the probe timeout
}

// Report is the ordered record of one installation run. Categories appear
// in canonical startup order regardless of the mode they ran under, so
// reports are deterministic and diffable.
type Report struct {
	Categories []CategoryResult
	DryRun     bool
}

// Exit codes derived from a report. Code 1 is reserved for pre-flight
// configuration and backend errors, which never produce a report.
const (
	ExitOK       = 0
	ExitConfig   = 1
	ExitDegraded = 2
	ExitFailed   = 3
)

// ExitCode derives the process exit code: 0 if every resolved category
// reached Ready, 2 if at least one category is Degraded but none Failed,
// 3 if any category Failed.
func (r *Report) ExitCode() int {
	code := ExitOK
	for _, cat := range r.Categories {
		switch cat.Status {
		case StatusFailed:
			return ExitFailed
		case StatusDegraded:
			code = ExitDegraded
		}
	}
	return code
}
