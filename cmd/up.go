package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"stackctl/internal/health"
	"stackctl/internal/reporting"
	"stackctl/internal/scheduler"
)

func newUpCmd() *cobra.Command {
	var (
		categories    []string
		exclude       []string
		parallel      bool
		force         bool
		rebuild       bool
		healthTimeout time.Duration
		dryRun        bool
	)

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Install and start the configured service categories",
		Long: `Starts the configured services category by category in canonical
startup order. Critical categories gate progression: their services must
pass a readiness probe before later categories are started. Non-critical
failures degrade the run without blocking it.

Exit codes: 0 all categories ready, 1 configuration or runtime error,
2 at least one category degraded, 3 a critical category failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, reg, client, err := buildEnvironment()
			if err != nil {
				return err
			}

			// Ctrl-C stops launching further work but never tears down what
			// is already running.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			mode := scheduler.ModeSequential
			if parallel {
				mode = scheduler.ModeParallel
			}

			sched := scheduler.New(reg, client, health.NewProbe(client), cfg.GlobalSettings.Network)
			report, err := sched.Run(ctx, scheduler.Request{
				IncludeCategories: categories,
				ExcludeCategories: exclude,
				Mode:              mode,
				HealthTimeout:     healthTimeout,
				ForceRecreate:     force,
				Rebuild:           rebuild,
				DryRun:            dryRun,
			})
			if err != nil {
				return err
			}

			reporting.Render(cmd.OutOrStdout(), report)

			switch code := report.ExitCode(); code {
			case scheduler.ExitOK:
				return nil
			case scheduler.ExitDegraded:
				return &exitError{code: code, msg: "installation completed with degraded categories"}
			default:
				return &exitError{code: code, msg: "installation failed"}
			}
		},
	}

	cmd.Flags().StringSliceVar(&categories, "categories", nil, "install only these categories (canonical order still applies)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "skip these categories")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "start all categories concurrently instead of sequentially")
	cmd.Flags().BoolVar(&force, "force", false, "recreate containers even if they are already running")
	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "rebuild images before starting")
	cmd.Flags().DurationVar(&healthTimeout, "health-timeout", scheduler.DefaultHealthTimeout, "readiness budget per critical category")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the installation plan without starting anything")

	return cmd
}
