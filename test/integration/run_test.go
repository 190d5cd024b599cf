//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-Descriptors/internal/interfaces/cli"
)

const input = "SMILES,Name\nc1ccccc1,Benzene\nnot_a_structure,Bad\n,Blank\nCCO,Ethanol\n"

func TestRun_CacheAndRunStore(t *testing.T) {
	redisAddr := startRedis(t)
	dsn := startPostgres(t)

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, map[string]interface{}{
		"log":      map[string]interface{}{"level": "warn"},
		"registry": map[string]interface{}{"include": []string{"MolWt", "NumAtoms", "TPSA"}},
		"cache":    map[string]interface{}{"enabled": true, "addr": redisAddr},
		"database": map[string]interface{}{"enabled": true, "dsn": dsn, "migrate_on_start": true, "store_rows": true},
	})
	in := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(in, []byte(input), 0o644))

	var first, second cli.RunSummary
	stdout, err := execute(t, "--config", cfgPath, "-o", "json", "run", in, filepath.Join(dir, "first.csv"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &first))

	stdout, err = execute(t, "--config", cfgPath, "-o", "json", "run", in, filepath.Join(dir, "second.csv"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &second))

	assert.Equal(t, 4, first.TotalRows)
	assert.Equal(t, 2, first.Survived)
	assert.Equal(t, 1, first.DroppedBlank)
	assert.Equal(t, 1, first.DroppedUnparseable)
	assert.Equal(t, 0, first.CacheHits)
	assert.Equal(t, 2, second.CacheHits)
	assert.Empty(t, first.SinkErrors)

	a, err := os.ReadFile(filepath.Join(dir, "first.csv"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dir, "second.csv"))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b), "cached values must export identically")

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)
	defer conn.Close(ctx)

	var runs, rows int
	require.NoError(t, conn.QueryRow(ctx, `SELECT count(*) FROM descriptor_runs`).Scan(&runs))
	require.NoError(t, conn.QueryRow(ctx, `SELECT count(*) FROM descriptor_results WHERE run_id = $1`, first.RunID).Scan(&rows))
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2, rows)

	stdout, err = execute(t, "--config", cfgPath, "-o", "json", "cache", "purge")
	require.NoError(t, err)
	var purged struct {
		Deleted int64 `json:"deleted"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &purged))
	assert.Equal(t, int64(2), purged.Deleted)
}

func TestMigrate_UpDownVersion(t *testing.T) {
	dsn := startPostgres(t)
	cfgPath := writeConfig(t, t.TempDir(), map[string]interface{}{
		"log":      map[string]interface{}{"level": "warn"},
		"database": map[string]interface{}{"dsn": dsn},
	})

	_, err := execute(t, "--config", cfgPath, "migrate", "up")
	require.NoError(t, err)

	stdout, err := execute(t, "--config", cfgPath, "-o", "json", "migrate", "version")
	require.NoError(t, err)
	var v struct {
		Version uint `json:"version"`
		Dirty   bool `json:"dirty"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &v))
	assert.Equal(t, uint(2), v.Version)
	assert.False(t, v.Dirty)

	_, err = execute(t, "--config", cfgPath, "migrate", "down", "--steps", "1")
	require.NoError(t, err)
	stdout, err = execute(t, "--config", cfgPath, "-o", "json", "migrate", "version")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &v))
	assert.Equal(t, uint(1), v.Version)
}

//Personal.AI order the ending
