package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportExitCode(t *testing.T) {
	tests := []struct {
		name     string
		statuses []CategoryStatus
		want     int
	}{
		{"empty report", nil, ExitOK},
		{"all ready", []CategoryStatus{StatusReady, StatusReady}, ExitOK},
		{"skipped only", []CategoryStatus{StatusSkipped, StatusSkipped}, ExitOK},
		{"one degraded", []CategoryStatus{StatusReady, StatusDegraded, StatusReady}, ExitDegraded},
		{"failed beats degraded", []CategoryStatus{StatusDegraded, StatusFailed}, ExitFailed},
		{"failed with cascade skips", []CategoryStatus{StatusFailed, StatusSkipped, StatusSkipped}, ExitFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &Report{}
			for _, status := range tt.statuses {
				report.Categories = append(report.Categories, CategoryResult{Status: status})
			}
			assert.Equal(t, tt.want, report.ExitCode())
		})
	}
}
