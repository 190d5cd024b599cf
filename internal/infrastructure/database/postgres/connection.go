// Package postgres implements the PostgreSQL run store: a pgx connection
// pool, embedded schema migrations and the run/result writer.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

var ErrConnectionFailed = errors.New(errors.ErrCodeDatabaseError, "postgres connection failed")

// PostgresConfig configures the connection pool.
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

// TxBeginner is the part of a pool the store needs. *pgxpool.Pool and
// pgxmock pools both satisfy it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// NewConnectionPool parses cfg.DSN, applies pool limits and pings the server.
func NewConnectionPool(ctx context.Context, cfg PostgresConfig, log logging.Logger) (*pgxpool.Pool, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfig, "invalid postgres dsn")
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, ErrConnectionFailed.WithCause(err).WithDetail(poolCfg.ConnConfig.Host)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, ErrConnectionFailed.WithCause(err).WithDetail(poolCfg.ConnConfig.Host)
	}

	log.Info("connected to postgres",
		logging.String("host", poolCfg.ConnConfig.Host),
		logging.Int("port", int(poolCfg.ConnConfig.Port)),
		logging.String("database", poolCfg.ConnConfig.Database),
		logging.Int("max_conns", int(poolCfg.MaxConns)))
	return pool, nil
}

// HealthCheck pings the pool and warns when it is nearly exhausted.
func HealthCheck(ctx context.Context, pool *pgxpool.Pool, log logging.Logger) error {
	if err := pool.Ping(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "postgres health check failed")
	}
	stat := pool.Stat()
	if stat.MaxConns() > 0 {
		usage := float64(stat.AcquiredConns()) / float64(stat.MaxConns())
		if usage > 0.8 && log != nil {
			log.Warn("high postgres pool usage",
				logging.Int("acquired", int(stat.AcquiredConns())),
				logging.Int("max", int(stat.MaxConns())),
				logging.Float64("usage", usage))
		}
	}
	return nil
}

// WithTransaction runs fn inside a transaction. The transaction is rolled
// back when fn returns an error or panics, and committed otherwise.
func WithTransaction(ctx context.Context, db TxBeginner, fn func(ctx context.Context, tx pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "begin transaction")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return errors.Wrap(err, errors.ErrCodeDatabaseError, "rollback failed: "+rbErr.Error())
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "commit transaction")
	}
	return nil
}

//Personal.AI order the ending
