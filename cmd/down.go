package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackctl/pkg/logging"
)

func newDownCmd() *cobra.Command {
	var (
		categories []string
		exclude    []string
	)

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Stop the configured service categories",
		Long: `Stops the configured services in reverse canonical order, so
dependents go down before the tiers they rely on. Stop failures are
reported per service but do not abort the remaining teardown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reg, client, err := buildEnvironment()
			if err != nil {
				return err
			}

			resolved, err := reg.Resolve(categories, exclude)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			failures := 0
			for i := len(resolved) - 1; i >= 0; i-- {
				cat := resolved[i]
				for _, svc := range cat.Services {
					if err := client.Stop(ctx, svc); err != nil {
						logging.Error("Down", err, "Failed to stop %s/%s", cat.Name, svc.ID)
						failures++
						continue
					}
					logging.Info("Down", "Stopped %s/%s", cat.Name, svc.ID)
				}
			}

			if failures > 0 {
				return fmt.Errorf("%d service(s) failed to stop", failures)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&categories, "categories", nil, "stop only these categories")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "skip these categories")

	return cmd
}
