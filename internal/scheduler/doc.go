// Package scheduler provides the category-based installation orchestrator
// for stackctl.
//
// The scheduler turns an installation request into a concrete, ordered plan
// of category installations and drives it through the service backend. It is
// the only component with ordering, retry, and failure-isolation policy;
// starting an individual service is the backend's concern, and verifying
// readiness is the health probe's.
//
// # Category State Machine
//
// Each category moves through:
//
//	Pending → Starting → (HealthChecking, critical only) → Ready | Degraded | Failed
//
// The terminal state Skipped is reachable only from Pending: a preceding
// critical category failed (sequential mode), the run was interrupted, or
// the request was a dry run.
//
// # Modes
//
// In sequential mode categories run strictly in canonical startup order.
// A critical category that fails its health probe marks every still-pending
// category Skipped; a degraded non-critical category does not block its
// successors. In parallel mode every resolved category runs as its own
// goroutine and results are merged back in canonical order, keeping reports
// deterministic regardless of completion order.
//
// # Failure Isolation
//
// Within a category, one service failing to start never prevents the
// remaining services from being attempted. Service outcomes are fixed as
// soon as the category's start phase completes; health probing only affects
// the category's aggregate status.
//
// # Cancellation
//
// Cancelling the run's context stops launching further categories and
// services but never stops what is already running: the scheduler has no
// rollback responsibility. A truncated run still produces a report covering
// everything that completed before the interrupt.
//
// # Usage Example
//
//	sched := scheduler.New(reg, client, health.NewProbe(client), cfg.GlobalSettings.Network)
//	report, err := sched.Run(ctx, scheduler.Request{
//	    IncludeCategories: []string{"database", "dbms"},
//	    Mode:              scheduler.ModeSequential,
//	})
//	if err != nil {
//	    return err // pre-flight failure, nothing was started
//	}
//	os.Exit(report.ExitCode())
package scheduler
