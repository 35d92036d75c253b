package cmd

import (
	"testing"
	"time"

	"stackctl/internal/scheduler"
)

func TestNewUpCmdFlags(t *testing.T) {
	upCmd := newUpCmd()

	for _, flag := range []string{"categories", "exclude", "parallel", "force", "rebuild", "health-timeout", "dry-run"} {
		if upCmd.Flags().Lookup(flag) == nil {
			t.Errorf("Expected flag --%s to be registered", flag)
		}
	}

	def := upCmd.Flags().Lookup("health-timeout").DefValue
	if def != scheduler.DefaultHealthTimeout.String() {
		t.Errorf("Expected health-timeout default %s, got %s", scheduler.DefaultHealthTimeout, def)
	}
}

func TestUpCmdParsesCategoryLists(t *testing.T) {
	upCmd := newUpCmd()

	if err := upCmd.Flags().Parse([]string{"--categories", "database,dbms", "--exclude", "ai", "--health-timeout", "90s"}); err != nil {
		t.Fatalf("Flag parse failed: %v", err)
	}

	categories, err := upCmd.Flags().GetStringSlice("categories")
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) != 2 || categories[0] != "database" || categories[1] != "dbms" {
		t.Errorf("Unexpected categories: %v", categories)
	}

	timeout, err := upCmd.Flags().GetDuration("health-timeout")
	if err != nil {
		t.Fatal(err)
	}
	if timeout != 90*time.Second {
		t.Errorf("Expected 90s health timeout, got %s", timeout)
	}
}

func TestNewDownCmdFlags(t *testing.T) {
	downCmd := newDownCmd()

	for _, flag := range []string{"categories", "exclude"} {
		if downCmd.Flags().Lookup(flag) == nil {
			t.Errorf("Expected flag --%s to be registered", flag)
		}
	}
}
