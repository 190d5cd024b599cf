package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/internal/testutil"
)

func TestRecordingLogger(t *testing.T) {
	logger := testutil.NewRecordingLogger()
	var _ logging.Logger = logger

	logger.Info("run started", logging.String("run_id", "r1"))
	child := logger.Named("cache").Named("redis").With(logging.Int("db", 2))
	child.Warn("result cache disabled", logging.String("addr", "x:1"))

	entries := logger.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "r1", entries[0].Fields["run_id"])
	assert.Equal(t, "cache.redis", entries[1].Logger)
	assert.Equal(t, 2, entries[1].Fields["db"])
	assert.Equal(t, "x:1", entries[1].Fields["addr"])

	assert.True(t, logger.Has("warn", "result cache disabled"))
	assert.False(t, logger.Has("info", "result cache disabled"))
	assert.Len(t, logger.Filter("warn", "cache"), 1)

	logger.Reset()
	assert.Empty(t, logger.Entries())
}

//Personal.AI order the ending
