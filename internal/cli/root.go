// Package cli implements the memchat terminal client.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"memory-agent/config"
	"memory-agent/internal/bootstrap"
	"memory-agent/pkg/log"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// Opener builds the agent a command runs against.
type Opener func(ctx context.Context, configPath string, verbose bool) (*bootstrap.Agent, error)

type options struct {
	configPath string
	format     string
	verbose    bool
	open       Opener
}

// NewRootCmd returns the memchat command tree. A nil open uses OpenAgent.
func NewRootCmd(open Opener) *cobra.Command {
	if open == nil {
		open = OpenAgent
	}
	opts := &options{open: open}

	root := &cobra.Command{
		Use:           "memchat",
		Short:         "Chat with a memory-augmented agent",
		Long:          "A terminal client for the memory agent. It drives the same core as the HTTP API, in-process.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: search ./config, ., /etc/memory-agent/)")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", formatText, "Output format: text or json")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log at the configured level instead of errors only")

	root.AddCommand(
		newChatCmd(opts),
		newAskCmd(opts),
		newClearCmd(opts),
		newHistoryCmd(opts),
		newMigrateCmd(opts),
	)
	return root
}

// OpenAgent loads config and wires the full agent without metrics.
func OpenAgent(ctx context.Context, configPath string, verbose bool) (*bootstrap.Agent, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, err
	}

	level := "error"
	if verbose {
		level = cfg.Logger.Level
	}
	l := log.Init(log.ZapConfig{
		Level:        level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	return bootstrap.New(ctx, cfg, l, nil)
}

func (o *options) withAgent(cmd *cobra.Command, fn func(a *bootstrap.Agent) error) error {
	a, err := o.open(cmd.Context(), o.configPath, o.verbose)
	if err != nil {
		return fmt.Errorf("open agent: %w", err)
	}
	defer a.Close()
	return fn(a)
}

func (o *options) print(w io.Writer, v any, text func() string) error {
	if o.format == formatJSON {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	_, err := fmt.Fprintln(w, text())
	return err
}

func requireUser(cmd *cobra.Command) {
	cmd.Flags().StringP("user", "u", "", "User id (required)")
	_ = cmd.MarkFlagRequired("user")
}
