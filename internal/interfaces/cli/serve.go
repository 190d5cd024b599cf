package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/KeyIP-Descriptors/internal/config"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	httpapi "github.com/turtacn/KeyIP-Descriptors/internal/interfaces/http"
	"github.com/turtacn/KeyIP-Descriptors/internal/interfaces/http/handlers"
	"github.com/turtacn/KeyIP-Descriptors/internal/interfaces/http/middleware"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the descriptor API over HTTP",
		Long: "Starts the JSON API (GET /api/v1/descriptors, POST /api/v1/descriptors/compute)\n" +
			"with /healthz, /readyz and /metrics. Log level changes in the config file are\n" +
			"applied without a restart.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := *cliCtx.Config
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return runServe(cmd.Context(), cliCtx, &cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from server.addr)")
	return cmd
}

func runServe(parent context.Context, cliCtx *CLIContext, cfg *config.Config) error {
	logger := cliCtx.Logger
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := buildRuntime(ctx, cfg, logger, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Mode:           cfg.Server.Mode,
		Logger:         logger,
		Metrics:        rt.metrics,
		MetricsHandler: rt.collector.Handler(),
		Logging:        middleware.DefaultLoggingConfig(),
		Health:         handlers.NewHealthHandler(Version, rt.checkers...),
		Descriptors: handlers.NewDescriptorHandler(rt.service, logger.Named("api"), handlers.DescriptorHandlerConfig{
			MaxRecords:   cfg.Server.MaxRecords,
			MaxBodyBytes: cfg.Server.MaxBodyBytes,
		}),
	})
	srv := httpapi.NewServer(httpapi.ServerConfig{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, router, logger)

	if cliCtx.ConfigPath != "" {
		watchLogLevel(cliCtx.ConfigPath, logger)
	}

	logger.Info("serving descriptors",
		logging.String("addr", cfg.Server.Addr),
		logging.String("registry_version", rt.registry.Version()),
		logging.Int("descriptors", rt.registry.Len()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Stop(context.Background())
	})
	return g.Wait()
}

// watchLogLevel applies log.level edits of the config file at runtime.
// Other settings need a restart.
func watchLogLevel(path string, logger logging.Logger) {
	setter, ok := logger.(logging.LevelSetter)
	if !ok {
		return
	}
	err := config.Watch(path, func(cfg *config.Config) {
		if err := setter.SetLevel(cfg.Log.Level); err != nil {
			logger.Warn("log level not changed", logging.Err(err))
			return
		}
		logger.Info("configuration reloaded", logging.String("log_level", cfg.Log.Level))
	}, func(err error) {
		logger.Warn("configuration reload rejected", logging.Err(err))
	})
	if err != nil {
		logger.Warn("configuration watch disabled", logging.Err(err))
	}
}

//Personal.AI order the ending
