package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"memory-agent/internal/bootstrap"
	"memory-agent/internal/chat"
	"memory-agent/internal/model"
)

type askResult struct {
	Response         string   `json:"response"`
	UsedMemory       bool     `json:"used_memory"`
	RelevantMemories []string `json:"relevant_memories"`
	ErrorCount       int      `json:"error_count"`
	LastError        string   `json:"last_error,omitempty"`
}

func newAskCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Send one message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			noMemory, _ := cmd.Flags().GetBool("no-memory")
			message := strings.Join(args, " ")

			return opts.withAgent(cmd, func(a *bootstrap.Agent) error {
				out, err := a.UseCase.HandleTurn(cmd.Context(), model.Scope{UserID: userID}, chat.TurnInput{
					Message:   message,
					UseMemory: !noMemory,
				})
				if err != nil {
					return err
				}
				res := askResult{
					Response:         out.Reply,
					UsedMemory:       out.UsedMemory,
					RelevantMemories: out.RelevantMemories,
					ErrorCount:       out.ErrorCount,
					LastError:        out.LastError,
				}
				return opts.print(cmd.OutOrStdout(), res, func() string { return out.Reply })
			})
		},
	}
	requireUser(cmd)
	cmd.Flags().Bool("no-memory", false, "Answer without reading or writing memory")
	return cmd
}
