package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-Descriptors/internal/application/pipeline"
	"github.com/turtacn/KeyIP-Descriptors/internal/domain/descriptor"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

const scenarioInput = "SMILES,Name\nc1ccccc1,Benzene\nnot_a_structure,Bad\nCCO,Ethanol\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// writeTestConfig writes a config with every sink disabled so tests never
// pick up a developer's keyip-desc.yaml.
func writeTestConfig(t *testing.T, dir string, extra map[string]interface{}) string {
	t.Helper()
	cfg := map[string]interface{}{"log": map[string]interface{}{"level": "error"}}
	for k, v := range extra {
		cfg[k] = v
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	return writeFile(t, dir, "config.yaml", string(data))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand_Structure(t *testing.T) {
	root := NewRootCommand()
	assert.Equal(t, "keyip-desc", root.Use)

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "validate", "descriptors", "serve", "migrate", "cache", "events", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
	for _, flag := range []string{"config", "log-level", "output", "verbose", "no-color", "timeout"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestRun_Scenario(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir, nil)
	in := writeFile(t, dir, "in.csv", scenarioInput)
	out := filepath.Join(dir, "out.csv")

	stdout, err := execute(t, "--config", cfgPath, "-o", "json",
		"run", in, out, "--include", "MolWt,NumAtoms")
	require.NoError(t, err)

	var summary RunSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, 3, summary.TotalRows)
	assert.Equal(t, 2, summary.Survived)
	assert.Equal(t, 1, summary.Dropped)
	assert.Equal(t, 1, summary.DroppedUnparseable)
	assert.Equal(t, 0, summary.DroppedBlank)
	assert.Equal(t, 2, summary.Descriptors)

	table, err := pipeline.ReadTable(out, pipeline.DefaultExportOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "SMILES", "MolWt", "NumAtoms"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Benzene", table.Rows[0].DisplayName)
	assert.Equal(t, "Ethanol", table.Rows[1].DisplayName)
}

func TestRun_TextSummary(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir, nil)
	in := writeFile(t, dir, "in.tsv", "c1ccccc1\tBenzene\n\tBlank\n")
	out := filepath.Join(dir, "out.tsv")

	stdout, err := execute(t, "--config", cfgPath, "--no-color",
		"run", in, out, "--delimiter", "tab", "--output-delimiter", "tab", "--no-header", "--include", "NumAtoms")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Run completed with dropped or substituted values")
	assert.Regexp(t, `survived:\s+1\n`, stdout)
	assert.Regexp(t, `dropped \(blank\):\s+1\n`, stdout)
	assert.Contains(t, stdout, out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Name\tSMILES\tNumAtoms\n"))
}

func TestRun_FatalErrorsMapToExitCodes(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir, nil)
	good := writeFile(t, dir, "good.csv", scenarioInput)
	oneColumn := writeFile(t, dir, "one.csv", "SMILES\nCCO\n")

	var all []string
	for _, e := range descriptor.Catalog() {
		all = append(all, e.Name)
	}
	emptyRegistry := writeTestConfig(t, t.TempDir(), map[string]interface{}{
		"registry": map[string]interface{}{"exclude": all},
	})

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"input not found", []string{"--config", cfgPath, "run", filepath.Join(dir, "missing.csv"), filepath.Join(dir, "o.csv")}, 2},
		{"schema error", []string{"--config", cfgPath, "run", oneColumn, filepath.Join(dir, "o.csv")}, 3},
		{"registry empty", []string{"--config", emptyRegistry, "run", good, filepath.Join(dir, "o.csv")}, 4},
		{"write error", []string{"--config", cfgPath, "run", good, filepath.Join(dir, "no", "such", "dir", "o.csv")}, 5},
		{"wrong arity", []string{"--config", cfgPath, "run", good}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.ExitCode(err), err.Error())
		})
	}
}

func TestRun_WritesMetricsFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir, nil)
	in := writeFile(t, dir, "in.csv", scenarioInput)
	metrics := filepath.Join(dir, "run.prom")

	_, err := execute(t, "--config", cfgPath, "run", in, filepath.Join(dir, "out.csv"),
		"--include", "NumAtoms", "--metrics-file", metrics)
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `keyip_descriptors_rows_total{outcome="parse_failure"} 1`)
	assert.Contains(t, string(data), `keyip_descriptors_runs_total{status="succeeded"} 1`)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir, nil)
	in := writeFile(t, dir, "in.csv", scenarioInput)

	stdout, err := execute(t, "--config", cfgPath, "-o", "table", "validate", in)
	require.NoError(t, err)
	assert.Contains(t, stdout, "LINE")
	assert.Contains(t, stdout, "not_a_structure")

	_, err = execute(t, "--config", cfgPath, "validate", "--strict", in)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeParseFailure))
	assert.Equal(t, 1, errors.ExitCode(err))
}

func TestDescriptors(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir, nil)

	stdout, err := execute(t, "--config", cfgPath, "-o", "json", "descriptors", "--include", "NumAtoms,MolWt")
	require.NoError(t, err)

	var list DescriptorList
	require.NoError(t, json.Unmarshal([]byte(stdout), &list))
	assert.Equal(t, descriptor.CatalogVersion, list.Version)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, "MolWt", list.Descriptors[0].Name)
	assert.Equal(t, "NumAtoms", list.Descriptors[1].Name)
	assert.NotEmpty(t, list.Fingerprint)
}

func TestDescriptors_TableOutput(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir(), nil)

	stdout, err := execute(t, "--config", cfgPath, "-o", FormatTabular, "descriptors", "--include", "MolWt")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "#  NAME"))
	assert.Contains(t, lines[2], "MolWt")
}

func TestDescriptors_UnknownInclude(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir(), nil)
	_, err := execute(t, "--config", cfgPath, "descriptors", "--include", "NoSuchDescriptor")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestVersion(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir(), nil)
	stdout, err := execute(t, "--config", cfgPath, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "keyip-desc "+Version)
	assert.Contains(t, stdout, descriptor.CatalogVersion)
}

func TestPersistentPreRun_Errors(t *testing.T) {
	t.Run("unknown output format", func(t *testing.T) {
		cfgPath := writeTestConfig(t, t.TempDir(), nil)
		_, err := execute(t, "--config", cfgPath, "-o", "yaml", "version")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "version")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeConfig))
	})
}

func TestMigrate_RequiresDSN(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir(), nil)
	_, err := execute(t, "--config", cfgPath, "migrate", "version")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfig))
}

func TestFormatTable(t *testing.T) {
	out := FormatTable([]string{"A", "LONG"}, [][]string{{"xyz", "1"}, {"q"}})
	assert.Equal(t, "A    LONG\n---  ----\nxyz  1\nq    \n", out)
	assert.Empty(t, FormatTable(nil, nil))
}

type fakeEventSource struct {
	envelopes []*kafka.EventEnvelope
}

func (f *fakeEventSource) Consume(ctx context.Context, handler kafka.EventHandler) error {
	for _, env := range f.envelopes {
		if ctx.Err() != nil {
			return nil
		}
		if err := handler(ctx, env); err != nil {
			return err
		}
	}
	return nil
}

func TestWatchEvents_PrintsRunEventsUpToLimit(t *testing.T) {
	mk := func(runID string) *kafka.EventEnvelope {
		env, err := kafka.NewEventEnvelope(kafka.EventTypeRunCompleted, &pipeline.RunCompletedEvent{
			RunID: runID, InputPath: "in.csv", OutputPath: "out.csv", TotalRows: 3, Survived: 2, Dropped: 1,
		})
		require.NoError(t, err)
		return env
	}
	other, err := kafka.NewEventEnvelope("descriptors.other", map[string]string{"k": "v"})
	require.NoError(t, err)
	src := &fakeEventSource{envelopes: []*kafka.EventEnvelope{mk("r1"), other, mk("r2"), mk("r3")}}

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetContext(context.WithValue(context.Background(), cliContextKey{}, &CLIContext{OutputFormat: FormatText}))

	require.NoError(t, watchEvents(context.Background(), root, src, 2, logging.NewNopLogger()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "run r1")
	assert.Contains(t, lines[0], "rows=3 survived=2 dropped=1")
	assert.Contains(t, lines[1], "run r2")
}

//Personal.AI order the ending
