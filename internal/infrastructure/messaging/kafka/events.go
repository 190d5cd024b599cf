package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/KeyIP-Descriptors/internal/application/pipeline"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

const (
	EventTypeRunCompleted = "descriptors.run.completed"
	SchemaVersion         = "v1"
	eventSource           = "keyip-desc"
)

// EventEnvelope wraps every event payload.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	SchemaVersion string          `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEventEnvelope marshals payload into a fresh envelope.
func NewEventEnvelope(eventType string, payload interface{}) (*EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal payload")
	}
	return &EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		Source:        eventSource,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: SchemaVersion,
		Payload:       data,
	}, nil
}

// DecodePayload unmarshals the payload into target.
func (e *EventEnvelope) DecodePayload(target interface{}) error {
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		return errors.New(errors.ErrCodeValidation, "event has no payload")
	}
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode payload")
	}
	return nil
}

func (e *EventEnvelope) headers() map[string]string {
	return map[string]string{
		"event_type":     e.EventType,
		"source_service": e.Source,
		"schema_version": e.SchemaVersion,
	}
}

// DecodeEnvelope parses a message value.
func DecodeEnvelope(value []byte) (*EventEnvelope, error) {
	if len(value) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "empty message value")
	}
	var env EventEnvelope
	if err := json.Unmarshal(value, &env); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to unmarshal envelope")
	}
	return &env, nil
}

// EventPublisher sends run events through a Producer.
type EventPublisher struct {
	producer *Producer
	logger   logging.Logger
}

var _ pipeline.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher creates an EventPublisher.
func NewEventPublisher(p *Producer, logger logging.Logger) *EventPublisher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &EventPublisher{producer: p, logger: logger}
}

// PublishRunCompleted publishes event keyed by its run ID, so events of one
// run always land on the same partition.
func (p *EventPublisher) PublishRunCompleted(ctx context.Context, event *pipeline.RunCompletedEvent) error {
	if event == nil {
		return errors.InvalidParam("event is required")
	}
	env, err := NewEventEnvelope(EventTypeRunCompleted, event)
	if err != nil {
		return err
	}
	value, err := json.Marshal(env)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal envelope")
	}
	if err := p.producer.Publish(ctx, []byte(event.RunID), value, env.headers()); err != nil {
		return err
	}
	p.logger.Info("run event published", logging.String("run_id", event.RunID), logging.String("event_id", env.EventID))
	return nil
}

// Close closes the underlying producer.
func (p *EventPublisher) Close() error { return p.producer.Close() }

//Personal.AI order the ending
