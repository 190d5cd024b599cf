package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
log:
  level: debug
  format: json
input:
  delimiter: tab
  has_header: false
output:
  name_column: Compound
  identifier_column: Structure
  nan_value: NaN
registry:
  exclude: [BalabanJ, Ipc]
evaluator:
  workers: 4
cache:
  enabled: true
  addr: redis:6379
  ttl: 1h
database:
  enabled: true
  dsn: postgres://u:p@db:5432/desc?sslmode=disable
messaging:
  enabled: true
  brokers: [k1:9092, k2:9092]
  topic: runs
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keyip-desc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, ",", cfg.Input.Delimiter)
	assert.True(t, cfg.Input.HasHeader)
	assert.Equal(t, "Name", cfg.Output.NameColumn)
	assert.Equal(t, "SMILES", cfg.Output.IdentifierColumn)
	assert.Equal(t, 1, cfg.Evaluator.Workers)
	assert.False(t, cfg.Cache.Enabled)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Storage.Enabled)
	assert.False(t, cfg.Messaging.Enabled)
	assert.Equal(t, DefaultCacheTTL, cfg.Cache.TTL)
	assert.Equal(t, DefaultMaxRecords, cfg.Server.MaxRecords)
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "tab", cfg.Input.Delimiter)
	assert.False(t, cfg.Input.HasHeader)
	assert.Equal(t, "Compound", cfg.Output.NameColumn)
	assert.Equal(t, "NaN", cfg.Output.NaNValue)
	assert.Equal(t, []string{"BalabanJ", "Ipc"}, cfg.Registry.Exclude)
	assert.Equal(t, 4, cfg.Evaluator.Workers)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "redis:6379", cfg.Cache.Addr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Messaging.Brokers)
	// untouched sections keep defaults
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultMinIOBucket, cfg.Storage.Bucket)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_EmptyPathUsesEnv(t *testing.T) {
	t.Setenv("KEYIP_DESC_EVALUATOR_WORKERS", "8")
	t.Setenv("KEYIP_DESC_OUTPUT_NAN_VALUE", "nan")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Evaluator.Workers)
	assert.Equal(t, "nan", cfg.Output.NaNValue)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("KEYIP_DESC_CACHE_ADDR", "other:6380")
	cfg, err := Load(writeConfig(t, validConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, "other:6380", cfg.Cache.Addr)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"workers":      "evaluator:\n  workers: 0\n",
		"level":        "log:\n  level: loud\n",
		"format":       "log:\n  format: xml\n",
		"delimiter":    "input:\n  delimiter: ';;'\n",
		"same columns": "output:\n  name_column: A\n  identifier_column: A\n",
		"cache addr":   "cache:\n  enabled: true\n  addr: ''\n",
		"dsn":          "database:\n  enabled: true\n",
		"storage":      "storage:\n  enabled: true\n  bucket: ''\n",
		"messaging":    "messaging:\n  enabled: true\n  topic: ''\n",
		"max records":  "server:\n  max_records: 0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestParseDelimiter(t *testing.T) {
	cases := map[string]rune{",": ',', ";": ';', "|": '|', "tab": '\t', `\t`: '\t', "\t": '\t'}
	for in, want := range cases {
		got, err := ParseDelimiter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "ab", `"`, "\n"} {
		_, err := ParseDelimiter(bad)
		assert.Error(t, err, bad)
	}
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope.yaml")) })
}

func TestWatch_RequiresPath(t *testing.T) {
	assert.Error(t, Watch("", func(*Config) {}, nil))
	assert.Error(t, Watch(filepath.Join(t.TempDir(), "nope.yaml"), func(*Config) {}, nil))
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")
	changed := make(chan *Config, 4)
	require.NoError(t, Watch(path, func(c *Config) { changed <- c }, nil))

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	select {
	case cfg := <-changed:
		assert.Equal(t, "debug", cfg.Log.Level)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not observed")
	}
}

func TestDiscover_FindsWorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.WriteFile("keyip-desc.yaml", []byte("log:\n  level: info\n"), 0o600))
	assert.Equal(t, "keyip-desc.yaml", Discover())
}

//Personal.AI order the ending
