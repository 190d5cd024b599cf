package redis

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

func TestNewClient_ConnectionFailed(t *testing.T) {
	cfg := &RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1}
	client, err := NewClient(context.Background(), cfg, logging.NewNopLogger())
	require.Error(t, err)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrConnectionFailed)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeCacheError))
}

func TestApplyDefaults(t *testing.T) {
	cfg := &RedisConfig{}
	applyDefaults(cfg)
	assert.Equal(t, 10, cfg.PoolSize)
	assert.Equal(t, 5*time.Second, cfg.DialTimeout)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestClient_Commands(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := newClient(db, &RedisConfig{}, logging.NewNopLogger())

	mock.ExpectPing().SetVal("PONG")
	mock.ExpectSet("k", "v", time.Minute).SetVal("OK")
	mock.ExpectGet("k").SetVal("v")
	mock.ExpectDel("k").SetVal(1)

	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Set(ctx, "k", "v", time.Minute).Err())
	v, err := c.Get(ctx, "k").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", v)
	n, err := c.Del(ctx, "k").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

//Personal.AI order the ending
