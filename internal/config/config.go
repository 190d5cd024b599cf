// Package config defines the configuration structures for KeyIP-Descriptors.
// No I/O or parsing logic lives in this file, only plain data types and
// validation; see loader.go for how values are read.
package config

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
)

// Config is the root configuration object.
type Config struct {
	Log       logging.LogConfig `mapstructure:"log"`
	Input     InputConfig       `mapstructure:"input"`
	Output    OutputConfig      `mapstructure:"output"`
	Registry  RegistryConfig    `mapstructure:"registry"`
	Evaluator EvaluatorConfig   `mapstructure:"evaluator"`
	Cache     CacheConfig       `mapstructure:"cache"`
	Database  DatabaseConfig    `mapstructure:"database"`
	Storage   StorageConfig     `mapstructure:"storage"`
	Messaging MessagingConfig   `mapstructure:"messaging"`
	Metrics   MetricsConfig     `mapstructure:"metrics"`
	Server    ServerConfig      `mapstructure:"server"`
}

// InputConfig controls how the record loader reads delimited input.
type InputConfig struct {
	Delimiter string `mapstructure:"delimiter"`
	HasHeader bool   `mapstructure:"has_header"`
}

// OutputConfig controls the exported table.
type OutputConfig struct {
	Delimiter        string `mapstructure:"delimiter"`
	NameColumn       string `mapstructure:"name_column"`
	IdentifierColumn string `mapstructure:"identifier_column"`
	NaNValue         string `mapstructure:"nan_value"`
}

// RegistryConfig narrows the descriptor catalog. Include is an allow-list;
// empty means every catalog entry.
type RegistryConfig struct {
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`
}

// EvaluatorConfig holds batch evaluator tunables.
type EvaluatorConfig struct {
	Workers int `mapstructure:"workers"`
}

// CacheConfig configures the Redis result cache.
type CacheConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	TTL          time.Duration `mapstructure:"ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// DatabaseConfig configures the PostgreSQL run store.
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DSN             string        `mapstructure:"dsn"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrateOnStart  bool          `mapstructure:"migrate_on_start"`
	StoreRows       bool          `mapstructure:"store_rows"`
}

// StorageConfig configures the MinIO/S3 artifact store.
type StorageConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	// ExpiryDays expires uploaded tables after this many days; 0 keeps them.
	ExpiryDays int `mapstructure:"expiry_days"`
}

// MessagingConfig configures the Kafka run event publisher.
type MessagingConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	RequiredAcks int           `mapstructure:"required_acks"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Compression  string        `mapstructure:"compression"`
	// GroupID is the consumer group of the events watch command.
	GroupID string `mapstructure:"group_id"`
}

// MetricsConfig configures the Prometheus registry.
type MetricsConfig struct {
	Namespace     string `mapstructure:"namespace"`
	EnableRuntime bool   `mapstructure:"enable_runtime"`
	// TextfilePath, when set, receives a metrics dump after each CLI run.
	TextfilePath string `mapstructure:"textfile_path"`
}

// ServerConfig holds HTTP server tunables for the serve command.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxRecords      int           `mapstructure:"max_records"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate checks the configuration for values no component can work with.
// Settings of disabled sinks are not checked.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format must be json or console, got %q", c.Log.Format)
	}
	if _, err := ParseDelimiter(c.Input.Delimiter); err != nil {
		return fmt.Errorf("config: input.delimiter: %w", err)
	}
	if _, err := ParseDelimiter(c.Output.Delimiter); err != nil {
		return fmt.Errorf("config: output.delimiter: %w", err)
	}
	if strings.TrimSpace(c.Output.NameColumn) == "" || strings.TrimSpace(c.Output.IdentifierColumn) == "" {
		return fmt.Errorf("config: output identity column names must not be empty")
	}
	if c.Output.NameColumn == c.Output.IdentifierColumn {
		return fmt.Errorf("config: output.name_column and output.identifier_column must differ")
	}
	if c.Evaluator.Workers < 1 {
		return fmt.Errorf("config: evaluator.workers must be >= 1, got %d", c.Evaluator.Workers)
	}
	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("config: cache.addr is required when the cache is enabled")
	}
	if c.Database.Enabled && c.Database.DSN == "" {
		return fmt.Errorf("config: database.dsn is required when the run store is enabled")
	}
	if c.Storage.Enabled {
		if c.Storage.Endpoint == "" || c.Storage.Bucket == "" {
			return fmt.Errorf("config: storage.endpoint and storage.bucket are required when storage is enabled")
		}
	}
	if c.Messaging.Enabled {
		if len(c.Messaging.Brokers) == 0 || c.Messaging.Topic == "" {
			return fmt.Errorf("config: messaging.brokers and messaging.topic are required when messaging is enabled")
		}
	}
	if c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace must not be empty")
	}
	if c.Server.MaxRecords < 1 {
		return fmt.Errorf("config: server.max_records must be >= 1")
	}
	return nil
}

// ParseDelimiter converts a configured delimiter into a rune. "tab" and the
// escaped form "\t" are accepted for tab-separated files.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`, "\t":
		return '\t', nil
	case "":
		return 0, fmt.Errorf("delimiter must not be empty")
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}

//Personal.AI order the ending
