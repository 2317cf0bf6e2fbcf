package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"memory-agent/internal/bootstrap"
	"memory-agent/internal/model"
)

func newClearCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored memory of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, _ := cmd.Flags().GetString("user")
			return opts.withAgent(cmd, func(a *bootstrap.Agent) error {
				if err := a.UseCase.ClearUserMemory(cmd.Context(), model.Scope{UserID: userID}); err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), map[string]bool{"success": true}, func() string {
					return fmt.Sprintf("cleared memories of %s", userID)
				})
			})
		},
	}
	requireUser(cmd)
	return cmd
}
