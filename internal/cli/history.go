package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"memory-agent/internal/bootstrap"
	"memory-agent/internal/chat"
	"memory-agent/internal/model"
)

func newHistoryCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the most recent turns of a user, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, _ := cmd.Flags().GetString("user")
			limit, _ := cmd.Flags().GetInt("limit")

			return opts.withAgent(cmd, func(a *bootstrap.Agent) error {
				out, err := a.UseCase.History(cmd.Context(), model.Scope{UserID: userID}, chat.HistoryInput{Limit: limit})
				if err != nil {
					return err
				}
				turns := out.Turns
				if turns == nil {
					turns = []model.Turn{}
				}
				return opts.print(cmd.OutOrStdout(), turns, func() string {
					if len(turns) == 0 {
						return "(no history)"
					}
					lines := make([]string, len(turns))
					for i, t := range turns {
						lines[i] = fmt.Sprintf("%s: %s", t.Role, t.Content)
					}
					return strings.Join(lines, "\n")
				})
			})
		},
	}
	requireUser(cmd)
	cmd.Flags().IntP("limit", "n", 0, "Number of turns (default: agent.history_limit)")
	return cmd
}
