package scheduler

import (
	"fmt"
)

// HealthCheckTimeoutError means a critical category's service did not
// confirm readiness within the probe budget. In sequential mode it cascades
// a Skipped status to every category still pending.
type HealthCheckTimeoutError struct {
	Category  string
	ServiceID string
	Err       error
}

func (e *HealthCheckTimeoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("category %s: service %s did not become ready: %v", e.Category, e.ServiceID, e.Err)
	}
	return fmt.Sprintf("category %s: service %s did not become ready", e.Category, e.ServiceID)
}

func (e *HealthCheckTimeoutError) Unwrap() error {
	return e.Err
}
