package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/KeyIP-Descriptors/internal/application/pipeline"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect run events",
	}

	var (
		fromLatest bool
		limit      int
		groupID    string
	)
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Print run-completed events as they arrive",
		Long: "Joins the messaging.group_id consumer group on messaging.topic and prints one\n" +
			"line per completed run until interrupted or --limit events were printed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config.Messaging
			if groupID != "" {
				cfg.GroupID = groupID
			}
			consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
				Brokers:    cfg.Brokers,
				Topic:      cfg.Topic,
				GroupID:    cfg.GroupID,
				FromLatest: fromLatest,
				MaxWait:    time.Second,
			}, cliCtx.Logger.Named("kafka"))
			if err != nil {
				return err
			}
			defer consumer.Close()

			ctx, cancel := commandContext(cmd, cliCtx.Timeout)
			defer cancel()
			return watchEvents(ctx, cmd, consumer, limit, cliCtx.Logger)
		},
	}
	watch.Flags().BoolVar(&fromLatest, "from-latest", false, "skip events published before the group first joined")
	watch.Flags().IntVar(&limit, "limit", 0, "stop after this many events (0 = until interrupted)")
	watch.Flags().StringVar(&groupID, "group", "", "consumer group (default from messaging.group_id)")

	cmd.AddCommand(watch)
	return cmd
}

// eventSource is the part of kafka.Consumer used by watchEvents.
type eventSource interface {
	Consume(ctx context.Context, handler kafka.EventHandler) error
}

func watchEvents(ctx context.Context, cmd *cobra.Command, src eventSource, limit int, logger logging.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	seen := 0
	return src.Consume(ctx, func(ctx context.Context, env *kafka.EventEnvelope) error {
		if env.EventType != kafka.EventTypeRunCompleted {
			logger.Debug("ignoring event", logging.String("type", env.EventType))
			return nil
		}
		event, err := kafka.RunCompleted(env)
		if err != nil {
			return err
		}
		if err := PrintResult(cmd, runEventLine{event}); err != nil {
			return err
		}
		seen++
		if limit > 0 && seen >= limit {
			cancel()
		}
		return nil
	})
}

// runEventLine prints one run event.
type runEventLine struct {
	*pipeline.RunCompletedEvent
}

func (e runEventLine) String() string {
	line := fmt.Sprintf("%s  run %s  %s -> %s  rows=%d survived=%d dropped=%d substituted=%d",
		e.CompletedAt.Format(time.RFC3339), e.RunID, e.InputPath, e.OutputPath,
		e.TotalRows, e.Survived, e.Dropped, e.SubstitutedCells)
	if e.ArtifactURI != "" {
		line += "  " + e.ArtifactURI
	}
	return line + "\n"
}

//Personal.AI order the ending
