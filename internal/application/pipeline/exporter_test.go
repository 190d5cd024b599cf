package pipeline

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

func sampleTable() *OutputTable {
	return &OutputTable{
		Columns: []string{"Name", "SMILES", "A", "B"},
		Rows: []ResultRow{
			{DisplayName: "ethanol", RawIdentifier: "CCO", Values: []float64{46.069, 9}},
			{DisplayName: "odd, name", RawIdentifier: "C", Values: []float64{math.NaN(), 0.1}},
		},
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "9", FormatValue(9, ""))
	assert.Equal(t, "0.1", FormatValue(0.1, ""))
	assert.Equal(t, "1e+21", FormatValue(1e21, ""))
	assert.Equal(t, "-0.0014", FormatValue(-0.0014, ""))
	assert.Equal(t, "", FormatValue(math.NaN(), ""))
	assert.Equal(t, "NA", FormatValue(math.NaN(), "NA"))
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(context.Background(), &buf, sampleTable(), DefaultExportOptions()))
	assert.Equal(t, "Name,SMILES,A,B\nethanol,CCO,46.069,9\n\"odd, name\",C,,0.1\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteTable(context.Background(), &buf, sampleTable(), ExportOptions{Delimiter: '\t', NaNValue: "NaN"}))
	assert.Equal(t, "Name\tSMILES\tA\tB\nethanol\tCCO\t46.069\t9\nodd, name\tC\tNaN\t0.1\n", buf.String())
}

func TestExportTable_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ExportTable(context.Background(), sampleTable(), path, DefaultExportOptions()))

	got, err := ReadTable(path, DefaultExportOptions())
	require.NoError(t, err)
	if diff := cmp.Diff(sampleTable(), got, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestExportTable_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	table := &OutputTable{Columns: []string{"Name", "SMILES", "MolWt"}}
	require.NoError(t, ExportTable(context.Background(), table, path, DefaultExportOptions()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Name,SMILES,MolWt\n", string(data))
}

func TestExportTable_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	require.NoError(t, ExportTable(context.Background(), sampleTable(), path, DefaultExportOptions()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ethanol")
}

func TestExportTable_WriteError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	err := ExportTable(context.Background(), sampleTable(), path, DefaultExportOptions())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeWriteError))
	assert.Equal(t, 5, errors.ExitCode(err))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReadTable_Errors(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "nope.csv"), DefaultExportOptions())
	assert.True(t, errors.IsCode(err, errors.CodeInputNotFound))

	path := writeFile(t, "bad.csv", "Name,SMILES,A\nx,C,abc\n")
	_, err = ReadTable(path, DefaultExportOptions())
	assert.True(t, errors.IsCode(err, errors.CodeSchemaError))
}

//Personal.AI order the ending
