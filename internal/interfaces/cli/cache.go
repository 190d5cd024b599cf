package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/database/redis"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Maintain the descriptor result cache",
	}

	var all bool
	purge := &cobra.Command{
		Use:   "purge",
		Short: "Delete cached rows of the current registry",
		Long: "Deletes the cached descriptor rows computed with the current registry selection.\n" +
			"With --all every row under cache.key_prefix is deleted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCachePurge(cmd, all)
		},
	}
	purge.Flags().BoolVar(&all, "all", false, "purge rows of every registry version")

	cmd.AddCommand(purge)
	return cmd
}

// PurgeResult is the printed result of cache purge.
type PurgeResult struct {
	Fingerprint string `json:"fingerprint,omitempty"`
	Deleted     int64  `json:"deleted"`
}

func (r PurgeResult) String() string {
	if r.Fingerprint == "" {
		return fmt.Sprintf("deleted %d cached rows\n", r.Deleted)
	}
	return fmt.Sprintf("deleted %d cached rows of registry %s\n", r.Deleted, r.Fingerprint)
}

func runCachePurge(cmd *cobra.Command, all bool) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg := cliCtx.Config
	if cfg.Cache.Addr == "" {
		return errors.New(errors.ErrCodeConfig, "cache.addr is not set")
	}

	fingerprint := ""
	if !all {
		reg, err := buildRegistry(cfg)
		if err != nil {
			return err
		}
		fingerprint = reg.Fingerprint()
	}

	ctx, cancel := commandContext(cmd, cliCtx.Timeout)
	defer cancel()

	client, err := redis.NewClient(ctx, redisConfig(cfg), cliCtx.Logger.Named("redis"))
	if err != nil {
		return err
	}
	defer client.Close()

	deleted, err := newResultCache(client, cfg, cliCtx.Logger).Purge(ctx, fingerprint)
	if err != nil {
		return err
	}
	cliCtx.Logger.Info("cache purged", logging.String("fingerprint", fingerprint), logging.Int64("deleted", deleted))
	return PrintResult(cmd, PurgeResult{Fingerprint: fingerprint, Deleted: deleted})
}

//Personal.AI order the ending
