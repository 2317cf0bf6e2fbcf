package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"memory-agent/internal/bootstrap"
	"memory-agent/internal/chat"
	"memory-agent/internal/model"
)

const prompt = "you> "

func newChatCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Long:  "Reads one message per line until EOF, \"exit\" or \"quit\". \"/clear\" wipes the user's memories.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, _ := cmd.Flags().GetString("user")
			noMemory, _ := cmd.Flags().GetBool("no-memory")
			sc := model.Scope{UserID: userID}

			return opts.withAgent(cmd, func(a *bootstrap.Agent) error {
				ctx := cmd.Context()
				out := cmd.OutOrStdout()
				scanner := bufio.NewScanner(cmd.InOrStdin())

				fmt.Fprint(out, prompt)
				for scanner.Scan() {
					line := strings.TrimSpace(scanner.Text())
					switch line {
					case "":
						fmt.Fprint(out, prompt)
						continue
					case "exit", "quit":
						return nil
					case "/clear":
						if err := a.UseCase.ClearUserMemory(ctx, sc); err != nil {
							fmt.Fprintf(out, "error: %v\n", err)
						} else {
							fmt.Fprintln(out, "memories cleared")
						}
						fmt.Fprint(out, prompt)
						continue
					}

					res, err := a.UseCase.HandleTurn(ctx, sc, chat.TurnInput{Message: line, UseMemory: !noMemory})
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "agent> %s\n", res.Reply)
					if opts.verbose && res.UsedMemory {
						fmt.Fprintf(out, "  (queries: %s; %d memories)\n", strings.Join(res.SearchQueries, " | "), len(res.RelevantMemories))
					}
					fmt.Fprint(out, prompt)
				}
				fmt.Fprintln(out)
				return scanner.Err()
			})
		},
	}
	requireUser(cmd)
	cmd.Flags().Bool("no-memory", false, "Answer without reading or writing memory")
	return cmd
}
