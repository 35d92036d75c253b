package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogsCmd() *cobra.Command {
	var tail string

	cmd := &cobra.Command{
		Use:   "logs <service>",
		Short: "Show container logs for a configured service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serviceID := args[0]

			_, reg, client, err := buildEnvironment()
			if err != nil {
				return err
			}

			resolved, err := reg.Resolve(nil, nil)
			if err != nil {
				return err
			}

			for _, cat := range resolved {
				for _, svc := range cat.Services {
					if svc.ID != serviceID {
						continue
					}
					out, err := client.Logs(cmd.Context(), svc, tail)
					if err != nil {
						return err
					}
					fmt.Fprint(cmd.OutOrStdout(), out)
					return nil
				}
			}

			return fmt.Errorf("unknown service %q", serviceID)
		},
	}

	cmd.Flags().StringVar(&tail, "tail", "100", "number of log lines to show")

	return cmd
}
