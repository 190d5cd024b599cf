package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRecords_HeaderAndRows(t *testing.T) {
	path := writeFile(t, "in.csv", "SMILES,Name,Extra\nc1ccccc1,benzene,x\n  CCO , ethanol \nC\n")
	recs, stats, err := LoadRecords(context.Background(), path, DefaultLoaderOptions())
	require.NoError(t, err)
	assert.Equal(t, LoadStats{TotalRows: 3}, stats)
	assert.Equal(t, []InputRecord{
		{RawIdentifier: "c1ccccc1", DisplayName: "benzene", Line: 2},
		{RawIdentifier: "CCO", DisplayName: "ethanol", Line: 3},
		{RawIdentifier: "C", DisplayName: "", Line: 4},
	}, recs)
}

func TestLoadRecords_HeaderTextIsIgnored(t *testing.T) {
	path := writeFile(t, "in.csv", "structure,label\nCC,ethane\n")
	recs, _, err := LoadRecords(context.Background(), path, DefaultLoaderOptions())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "CC", recs[0].RawIdentifier)
	assert.Equal(t, "ethane", recs[0].DisplayName)
}

func TestLoadRecords_BlankIdentifiersDropped(t *testing.T) {
	path := writeFile(t, "in.csv", "SMILES,Name\n,empty\n   ,spaces\nCC,ethane\n\"\",quoted\n")
	recs, stats, err := LoadRecords(context.Background(), path, DefaultLoaderOptions())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalRows)
	assert.Equal(t, 3, stats.BlankRows)
	require.Len(t, recs, 1)
	assert.Equal(t, 4, recs[0].Line)
}

func TestLoadRecords_BOMAndDelimiter(t *testing.T) {
	path := writeFile(t, "in.tsv", "\xEF\xBB\xBFSMILES\tName\nCCO\tethanol\n")
	recs, _, err := LoadRecords(context.Background(), path, LoaderOptions{Delimiter: '\t', HasHeader: true})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "CCO", recs[0].RawIdentifier)
	assert.Equal(t, "ethanol", recs[0].DisplayName)
}

func TestLoadRecords_NoHeader(t *testing.T) {
	path := writeFile(t, "in.csv", "CCO,ethanol\nCC,ethane\n")
	recs, stats, err := LoadRecords(context.Background(), path, LoaderOptions{Delimiter: ','})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRows)
	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[0].Line)
}

func TestLoadRecords_HeaderOnly(t *testing.T) {
	path := writeFile(t, "in.csv", "SMILES,Name\n")
	recs, stats, err := LoadRecords(context.Background(), path, DefaultLoaderOptions())
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Zero(t, stats.TotalRows)
}

func TestLoadRecords_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
		code errors.ErrorCode
	}{
		{"missing", filepath.Join(dir, "missing.csv"), errors.CodeInputNotFound},
		{"directory", dir, errors.CodeInputNotFound},
		{"empty", writeFile(t, "empty.csv", ""), errors.CodeSchemaError},
		{"single column", writeFile(t, "one.csv", "SMILES\nCCO\n"), errors.CodeSchemaError},
		{"bare quote", writeFile(t, "quote.csv", "SMILES,Name\nC\"C,x\n"), errors.CodeSchemaError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadRecords(context.Background(), tt.path, DefaultLoaderOptions())
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestReadRecords_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := ReadRecords(ctx, strings.NewReader("SMILES,Name\nC,x\n"), DefaultLoaderOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDropBlank(t *testing.T) {
	kept, blank := dropBlank([]InputRecord{
		{RawIdentifier: " CC ", DisplayName: " ethane "},
		{RawIdentifier: ""},
		{RawIdentifier: "O", Line: 9},
	})
	assert.Equal(t, 1, blank)
	assert.Equal(t, []InputRecord{
		{RawIdentifier: "CC", DisplayName: "ethane", Line: 1},
		{RawIdentifier: "O", Line: 9},
	}, kept)
}

//Personal.AI order the ending
