package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

var ErrSerializationFailed = errors.New(errors.ErrCodeSerialization, "cached row serialization failed")

// cachedRow is the stored form of one descriptor row.
type cachedRow struct {
	Values []float64 `json:"v"`
}

// ResultCache stores descriptor rows keyed by registry fingerprint and
// SMILES. It satisfies the pipeline result cache contract.
type ResultCache struct {
	client       *Client
	logger       logging.Logger
	prefix       string
	ttl          time.Duration
	singleflight singleflight.Group
}

type CacheOption func(*ResultCache)

func WithPrefix(prefix string) CacheOption {
	return func(c *ResultCache) { c.prefix = prefix }
}

func WithTTL(ttl time.Duration) CacheOption {
	return func(c *ResultCache) { c.ttl = ttl }
}

// NewResultCache creates a cache over client.
func NewResultCache(client *Client, log logging.Logger, opts ...CacheOption) *ResultCache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	c := &ResultCache{
		client: client,
		logger: log,
		prefix: "keyip:desc:",
		ttl:    7 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the Redis key of a row. SMILES are hashed so keys stay short
// and free of glob metacharacters.
func (c *ResultCache) Key(fingerprint, smiles string) string {
	sum := sha256.Sum256([]byte(smiles))
	return c.prefix + fingerprint + ":" + hex.EncodeToString(sum[:16])
}

func (c *ResultCache) jitterTTL(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return 0
	}
	// +/- 10%
	jitter := float64(ttl) * 0.1 * (rand.Float64()*2 - 1)
	return ttl + time.Duration(jitter)
}

// Get returns the cached row, false on a miss. Concurrent lookups of the same
// key share one round trip.
func (c *ResultCache) Get(ctx context.Context, fingerprint, smiles string) ([]float64, bool, error) {
	key := c.Key(fingerprint, smiles)
	v, err, _ := c.singleflight.Do(key, func() (interface{}, error) {
		data, err := c.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return nil, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeCacheError, "failed to get from cache")
		}
		var row cachedRow
		if err := json.Unmarshal(data, &row); err != nil {
			return nil, ErrSerializationFailed.WithCause(err)
		}
		return row.Values, nil
	})
	if err != nil {
		return nil, false, err
	}
	values, _ := v.([]float64)
	if values == nil {
		return nil, false, nil
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out, true, nil
}

// Set stores a row. Rows must not contain NaN or infinities.
func (c *ResultCache) Set(ctx context.Context, fingerprint, smiles string, values []float64) error {
	data, err := json.Marshal(cachedRow{Values: values})
	if err != nil {
		return ErrSerializationFailed.WithCause(err)
	}
	if err := c.client.Set(ctx, c.Key(fingerprint, smiles), data, c.jitterTTL(c.ttl)).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to set cache")
	}
	return nil
}

// Purge deletes every row stored under fingerprint and returns the number of
// keys removed. An empty fingerprint purges all rows under the prefix.
func (c *ResultCache) Purge(ctx context.Context, fingerprint string) (int64, error) {
	match := c.prefix + "*"
	if fingerprint != "" {
		match = c.prefix + fingerprint + ":*"
	}
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, match, 500).Result()
		if err != nil {
			return deleted, errors.Wrap(err, errors.ErrCodeCacheError, "failed to scan cache")
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, errors.Wrap(err, errors.ErrCodeCacheError, "failed to delete cache keys")
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	c.logger.Info("purged result cache", logging.String("match", match), logging.Int64("deleted", deleted))
	return deleted, nil
}

//Personal.AI order the ending
