package config

import (
	"time"

	"github.com/spf13/viper"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	DefaultDelimiter        = ","
	DefaultNameColumn       = "Name"
	DefaultIdentifierColumn = "SMILES"
	DefaultNaNValue         = ""

	DefaultWorkers = 1

	DefaultRedisAddr     = "localhost:6379"
	DefaultRedisPoolSize = 10
	DefaultCacheTTL      = 7 * 24 * time.Hour
	DefaultCachePrefix   = "keyip:desc:"

	DefaultDBMaxConns = 5

	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMinIOBucket   = "descriptor-tables"
	DefaultMinIORegion   = "us-east-1"

	DefaultKafkaBroker = "localhost:9092"
	DefaultKafkaTopic  = "keyip.descriptors.run.completed"

	DefaultMetricsNamespace = "keyip_descriptors"

	DefaultServerAddr       = ":8080"
	DefaultServerMode       = "release"
	DefaultMaxRecords       = 5000
	DefaultMaxBodyBytes     = 8 << 20
	DefaultShutdownTimeout  = 15 * time.Second
	DefaultHTTPReadTimeout  = 30 * time.Second
	DefaultHTTPWriteTimeout = 60 * time.Second
)

// registerDefaults seeds v with every known key. Registering keys is also
// what lets AutomaticEnv resolve KEYIP_DESC_* variables during Unmarshal.
func registerDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.output_paths", []string{"stderr"})
	v.SetDefault("log.error_output_paths", []string{"stderr"})

	v.SetDefault("input.delimiter", DefaultDelimiter)
	v.SetDefault("input.has_header", true)

	v.SetDefault("output.delimiter", DefaultDelimiter)
	v.SetDefault("output.name_column", DefaultNameColumn)
	v.SetDefault("output.identifier_column", DefaultIdentifierColumn)
	v.SetDefault("output.nan_value", DefaultNaNValue)

	v.SetDefault("registry.include", []string{})
	v.SetDefault("registry.exclude", []string{})

	v.SetDefault("evaluator.workers", DefaultWorkers)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", DefaultRedisAddr)
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.pool_size", DefaultRedisPoolSize)
	v.SetDefault("cache.dial_timeout", 5*time.Second)
	v.SetDefault("cache.read_timeout", 3*time.Second)
	v.SetDefault("cache.write_timeout", 3*time.Second)
	v.SetDefault("cache.ttl", DefaultCacheTTL)
	v.SetDefault("cache.key_prefix", DefaultCachePrefix)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_conns", DefaultDBMaxConns)
	v.SetDefault("database.min_conns", 0)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.migrate_on_start", true)
	v.SetDefault("database.store_rows", true)

	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.endpoint", DefaultMinIOEndpoint)
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.region", DefaultMinIORegion)
	v.SetDefault("storage.bucket", DefaultMinIOBucket)
	v.SetDefault("storage.prefix", "runs/")
	v.SetDefault("storage.expiry_days", 0)

	v.SetDefault("messaging.enabled", false)
	v.SetDefault("messaging.brokers", []string{DefaultKafkaBroker})
	v.SetDefault("messaging.topic", DefaultKafkaTopic)
	v.SetDefault("messaging.required_acks", -1)
	v.SetDefault("messaging.write_timeout", 10*time.Second)
	v.SetDefault("messaging.compression", "snappy")
	v.SetDefault("messaging.group_id", "keyip-desc-watch")

	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)
	v.SetDefault("metrics.enable_runtime", false)
	v.SetDefault("metrics.textfile_path", "")

	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.mode", DefaultServerMode)
	v.SetDefault("server.read_timeout", DefaultHTTPReadTimeout)
	v.SetDefault("server.write_timeout", DefaultHTTPWriteTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("server.max_records", DefaultMaxRecords)
	v.SetDefault("server.max_body_bytes", DefaultMaxBodyBytes)
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	cfg, err := unmarshalAndFinalize(newViper())
	if err != nil {
		// The built-in defaults are validated by tests; reaching this is a bug.
		panic(err)
	}
	return cfg
}

//Personal.AI order the ending
