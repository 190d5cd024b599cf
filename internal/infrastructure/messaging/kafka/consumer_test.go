package kafka

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

// fakeReader serves queued messages, then blocks until the context ends.
type fakeReader struct {
	queue     []kafka.Message
	fetchErr  error
	commitErr error
	committed []int64
	closes    int
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if r.fetchErr != nil {
		return kafka.Message{}, r.fetchErr
	}
	if len(r.queue) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := r.queue[0]
	r.queue = r.queue[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	if r.commitErr != nil {
		return r.commitErr
	}
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.closes++
	return nil
}

func envelopeMessage(t *testing.T, offset int64) kafka.Message {
	t.Helper()
	env, err := NewEventEnvelope(EventTypeRunCompleted, sampleEvent())
	require.NoError(t, err)
	value, err := json.Marshal(env)
	require.NoError(t, err)
	return kafka.Message{Offset: offset, Value: value}
}

func testConsumerConfig() ConsumerConfig {
	return ConsumerConfig{Brokers: []string{"localhost:9092"}, Topic: "runs", GroupID: "watch"}
}

func TestConsumer_ConsumeCommitsAndSkips(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{
		envelopeMessage(t, 1),
		{Offset: 2, Value: []byte("garbage")},
		envelopeMessage(t, 3),
	}}
	c := newConsumer(r, testConsumerConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var seen []string
	err := c.Consume(ctx, func(_ context.Context, env *EventEnvelope) error {
		ev, err := RunCompleted(env)
		require.NoError(t, err)
		seen = append(seen, ev.RunID)
		if len(seen) == 2 {
			cancel()
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"run-1", "run-1"}, seen)
	assert.Equal(t, []int64{1, 2, 3}, r.committed)
	assert.Equal(t, int64(1), c.Skipped())
}

func TestConsumer_HandlerErrorStopsWithoutCommit(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{envelopeMessage(t, 7)}}
	c := newConsumer(r, testConsumerConfig(), nil)

	boom := stderrors.New("downstream unavailable")
	err := c.Consume(context.Background(), func(context.Context, *EventEnvelope) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, r.committed)
}

func TestConsumer_FetchError(t *testing.T) {
	r := &fakeReader{fetchErr: stderrors.New("broker gone")}
	c := newConsumer(r, testConsumerConfig(), nil)

	err := c.Consume(context.Background(), func(context.Context, *EventEnvelope) error { return nil })
	assert.True(t, errors.IsCode(err, errors.ErrCodeMessagingError))
}

func TestConsumer_Close(t *testing.T) {
	r := &fakeReader{}
	c := newConsumer(r, testConsumerConfig(), nil)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, r.closes)

	err := c.Consume(context.Background(), func(context.Context, *EventEnvelope) error { return nil })
	assert.ErrorIs(t, err, ErrConsumerClosed)
}

func TestValidateConsumerConfig(t *testing.T) {
	assert.NoError(t, ValidateConsumerConfig(testConsumerConfig()))

	cfg := testConsumerConfig()
	cfg.GroupID = ""
	assert.True(t, errors.IsCode(ValidateConsumerConfig(cfg), errors.ErrCodeValidation))
}

//Personal.AI order the ending
