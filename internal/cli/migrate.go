package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"memory-agent/config"
	"memory-agent/internal/memory"
	"memory-agent/internal/memory/factory"
	"memory-agent/pkg/log"
)

type migrateResult struct {
	UserID string `json:"user_id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Total  int    `json:"total"`
	Copied int    `json:"copied"`
	Failed int    `json:"failed"`
}

func newMigrateCmd(opts *options) *cobra.Command {
	var to, toPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy a user's memories from the configured backend to another one",
		Long: "Re-embeds every record of a user into the target backend, keeping ids and timestamps.\n" +
			"--to-path is the database file for sqlite, the directory for chromem and the collection for qdrant.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			userID, _ := cmd.Flags().GetString("user")

			cfg, err := config.LoadFile(opts.configPath)
			if err != nil {
				return err
			}
			dstCfg, err := targetConfig(cfg, to, toPath)
			if err != nil {
				return err
			}

			level := "error"
			if opts.verbose {
				level = cfg.Logger.Level
			}
			l := log.Init(log.ZapConfig{Level: level, Mode: cfg.Logger.Mode, Encoding: cfg.Logger.Encoding})

			src, err := factory.NewStore(ctx, cfg, l)
			if err != nil {
				return fmt.Errorf("open source store: %w", err)
			}
			defer src.Close()
			dst, err := factory.NewStore(ctx, dstCfg, l)
			if err != nil {
				return fmt.Errorf("open target store: %w", err)
			}
			defer dst.Close()

			res, err := memory.Copy(ctx, src, dst, userID)
			if err != nil {
				return err
			}
			out := migrateResult{
				UserID: userID,
				From:   cfg.Memory.Backend,
				To:     dstCfg.Memory.Backend,
				Total:  res.Total,
				Copied: res.Copied,
				Failed: res.Failed,
			}
			return opts.print(cmd.OutOrStdout(), out, func() string {
				return fmt.Sprintf("copied %d/%d memories of %s from %s to %s", out.Copied, out.Total, userID, out.From, out.To)
			})
		},
	}
	requireUser(cmd)
	cmd.Flags().StringVar(&to, "to", "", "Target backend: qdrant, chromem or sqlite (required)")
	cmd.Flags().StringVar(&toPath, "to-path", "", "Target location, see above")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// targetConfig clones cfg pointed at another backend. It refuses a target
// that resolves to the source.
func targetConfig(cfg *config.Config, backend, path string) (*config.Config, error) {
	dst := *cfg
	dst.Memory.Backend = backend
	switch backend {
	case config.BackendSQLite:
		if path != "" {
			dst.SQLite.Path = path
		}
	case config.BackendChromem:
		if path != "" {
			dst.Chromem.Path = path
		}
		if dst.Chromem.Path == "" {
			return nil, fmt.Errorf("an in-memory chromem target would be discarded on exit, set --to-path")
		}
	case config.BackendQdrant:
		if path != "" {
			dst.Qdrant.CollectionName = path
		}
	default:
		return nil, fmt.Errorf("unknown target backend %q", backend)
	}
	if err := dst.Validate(); err != nil {
		return nil, err
	}
	if dst.Memory == cfg.Memory && dst.SQLite == cfg.SQLite && dst.Chromem == cfg.Chromem && dst.Qdrant == cfg.Qdrant {
		return nil, fmt.Errorf("target is the configured source store")
	}
	return &dst, nil
}
