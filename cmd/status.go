package cmd

import (
	"github.com/spf13/cobra"

	"stackctl/internal/reporting"
)

func newStatusCmd() *cobra.Command {
	var categories []string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the container state of every configured service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reg, client, err := buildEnvironment()
			if err != nil {
				return err
			}

			resolved, err := reg.Resolve(categories, nil)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var states []reporting.ServiceState
			for _, cat := range resolved {
				for _, svc := range cat.Services {
					state, err := client.Status(ctx, svc)
					if err != nil {
						return err
					}
					states = append(states, reporting.ServiceState{
						Category:  cat.Name,
						ServiceID: svc.ID,
						State:     state,
					})
				}
			}

			reporting.RenderStatus(cmd.OutOrStdout(), states)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&categories, "categories", nil, "show only these categories")

	return cmd
}
