package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/KeyIP-Descriptors/internal/application/pipeline"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

var ErrConsumerClosed = errors.New(errors.ErrCodeMessagingError, "consumer closed")

const commitTimeout = 5 * time.Second

// ConsumerConfig holds configuration for the Consumer.
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	// FromLatest skips events published before the group first joined.
	FromLatest bool
	MaxWait    time.Duration
}

// ReaderInterface abstracts kafka.Reader for testing.
type ReaderInterface interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventHandler processes one decoded envelope.
type EventHandler func(ctx context.Context, env *EventEnvelope) error

// Consumer reads event envelopes from one topic as part of a consumer group.
type Consumer struct {
	reader  ReaderInterface
	config  ConsumerConfig
	logger  logging.Logger
	closed  atomic.Bool
	skipped atomic.Int64
}

// NewConsumer creates a Consumer.
func NewConsumer(cfg ConsumerConfig, logger logging.Logger) (*Consumer, error) {
	if err := ValidateConsumerConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.MaxWait == 0 {
		cfg.MaxWait = time.Second
	}
	readerCfg := kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		MaxWait:     cfg.MaxWait,
		StartOffset: kafka.FirstOffset,
		Dialer:      &kafka.Dialer{Timeout: 10 * time.Second, DualStack: true},
	}
	if cfg.FromLatest {
		readerCfg.StartOffset = kafka.LastOffset
	}
	return newConsumer(kafka.NewReader(readerCfg), cfg, logger), nil
}

func newConsumer(r ReaderInterface, cfg ConsumerConfig, logger logging.Logger) *Consumer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Consumer{reader: r, config: cfg, logger: logger}
}

// Consume hands every envelope to handler until ctx is cancelled or handler
// fails. Messages that do not decode are logged, committed and skipped; a
// handler error leaves its message uncommitted and is returned.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	if c.closed.Load() {
		return ErrConsumerClosed
	}
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, errors.ErrCodeMessagingError, "fetch message").WithDetail(c.config.Topic)
		}

		env, err := DecodeEnvelope(m.Value)
		if err != nil {
			c.skipped.Add(1)
			c.logger.Warn("skipping undecodable message",
				logging.Int("partition", m.Partition),
				logging.Int64("offset", m.Offset),
				logging.Err(err))
		} else if err := handler(ctx, env); err != nil {
			return err
		}

		// A handler may cancel ctx to stop after this message; it is still committed.
		commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), commitTimeout)
		err = c.reader.CommitMessages(commitCtx, m)
		cancel()
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeMessagingError, "commit message")
		}
	}
}

// Skipped returns the number of undecodable messages seen so far.
func (c *Consumer) Skipped() int64 { return c.skipped.Load() }

// Close closes the reader. Closing twice is a no-op.
func (c *Consumer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.reader.Close()
}

// ValidateConsumerConfig rejects configurations no reader can use.
func ValidateConsumerConfig(cfg ConsumerConfig) error {
	if len(cfg.Brokers) == 0 {
		return errors.New(errors.ErrCodeValidation, "brokers required")
	}
	if cfg.Topic == "" {
		return errors.New(errors.ErrCodeValidation, "topic required")
	}
	if cfg.GroupID == "" {
		return errors.New(errors.ErrCodeValidation, "group id required")
	}
	return nil
}

// RunCompleted decodes a run-completed envelope. Other event types are
// reported as a validation error.
func RunCompleted(env *EventEnvelope) (*pipeline.RunCompletedEvent, error) {
	if env.EventType != EventTypeRunCompleted {
		return nil, errors.Newf(errors.ErrCodeValidation, "unexpected event type %q", env.EventType)
	}
	var ev pipeline.RunCompletedEvent
	if err := env.DecodePayload(&ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

//Personal.AI order the ending
