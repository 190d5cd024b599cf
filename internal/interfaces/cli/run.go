package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turtacn/KeyIP-Descriptors/internal/application/pipeline"
	"github.com/turtacn/KeyIP-Descriptors/internal/config"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

type runOptions struct {
	delimiter       string
	outputDelimiter string
	workers         int
	include         []string
	exclude         []string
	noHeader        bool
	metricsFile     string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <input> <output>",
		Short: "Compute the descriptor table of a SMILES file",
		Long: "Reads <input> (SMILES in the first column, name in the second), computes every\n" +
			"registry descriptor for each parsable structure and writes the table to <output>.\n" +
			"A summary of surviving, dropped and substituted values is printed on completion.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts, args[0], args[1])
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.delimiter, "delimiter", "", `input field delimiter, e.g. "," or "\t" (default from input.delimiter)`)
	f.StringVar(&opts.outputDelimiter, "output-delimiter", "", "output field delimiter (default from output.delimiter)")
	f.IntVar(&opts.workers, "workers", 0, "records evaluated concurrently (default from evaluator.workers)")
	f.StringSliceVar(&opts.include, "include", nil, "compute only these descriptors")
	f.StringSliceVar(&opts.exclude, "exclude", nil, "skip these descriptors")
	f.BoolVar(&opts.noHeader, "no-header", false, "the input file has no header row")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")
	return cmd
}

// applyRunFlags copies explicitly set flags over cfg.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, opts *runOptions) {
	f := cmd.Flags()
	if f.Changed("delimiter") {
		cfg.Input.Delimiter = opts.delimiter
	}
	if f.Changed("output-delimiter") {
		cfg.Output.Delimiter = opts.outputDelimiter
	}
	if f.Changed("workers") {
		cfg.Evaluator.Workers = opts.workers
	}
	if f.Changed("include") {
		cfg.Registry.Include = opts.include
	}
	if f.Changed("exclude") {
		cfg.Registry.Exclude = opts.exclude
	}
	if opts.noHeader {
		cfg.Input.HasHeader = false
	}
	if opts.metricsFile != "" {
		cfg.Metrics.TextfilePath = opts.metricsFile
	}
}

func runBatch(cmd *cobra.Command, opts *runOptions, input, output string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg := *cliCtx.Config
	applyRunFlags(cmd, &cfg, opts)
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfig, "invalid run options")
	}

	ctx, cancel := commandContext(cmd, cliCtx.Timeout)
	defer cancel()

	rt, err := buildRuntime(ctx, &cfg, cliCtx.Logger, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	report, err := rt.service.Run(ctx, pipeline.RunRequest{InputPath: input, OutputPath: output})
	if path := cfg.Metrics.TextfilePath; path != "" {
		if werr := rt.collector.WriteTextfile(path); werr != nil {
			cliCtx.Logger.Warn("metrics textfile not written", logging.String("path", path), logging.Err(werr))
		}
	}
	if err != nil {
		return err
	}
	return PrintResult(cmd, newRunSummary(report))
}

// RunSummary is the printed result of a run.
type RunSummary struct {
	RunID              string   `json:"run_id"`
	Input              string   `json:"input"`
	Output             string   `json:"output"`
	RegistryVersion    string   `json:"registry_version"`
	Descriptors        int      `json:"descriptors"`
	TotalRows          int      `json:"total_rows"`
	Survived           int      `json:"survived"`
	Dropped            int      `json:"dropped"`
	DroppedBlank       int      `json:"dropped_blank"`
	DroppedUnparseable int      `json:"dropped_unparseable"`
	SubstitutedCells   int      `json:"substituted_cells"`
	CacheHits          int      `json:"cache_hits"`
	DurationMillis     int64    `json:"duration_ms"`
	ArtifactURI        string   `json:"artifact_uri,omitempty"`
	SinkErrors         []string `json:"sink_errors,omitempty"`
}

func newRunSummary(r *pipeline.Report) *RunSummary {
	return &RunSummary{
		RunID:              r.RunID,
		Input:              r.InputPath,
		Output:             r.OutputPath,
		RegistryVersion:    r.RegistryVersion,
		Descriptors:        r.Descriptors,
		TotalRows:          r.TotalRows,
		Survived:           r.Survived,
		Dropped:            r.Dropped(),
		DroppedBlank:       r.BlankRows,
		DroppedUnparseable: r.ParseFailures,
		SubstitutedCells:   r.SubstitutedCells,
		CacheHits:          r.CacheHits,
		DurationMillis:     r.Duration.Milliseconds(),
		ArtifactURI:        r.ArtifactURI,
		SinkErrors:         r.SinkErrors,
	}
}

func (s *RunSummary) fields() [][2]string {
	rows := [][2]string{
		{"run id", s.RunID},
		{"input", s.Input},
		{"output", s.Output},
		{"registry", fmt.Sprintf("%s (%d descriptors)", s.RegistryVersion, s.Descriptors)},
		{"total rows", strconv.Itoa(s.TotalRows)},
		{"survived", strconv.Itoa(s.Survived)},
		{"dropped (blank)", strconv.Itoa(s.DroppedBlank)},
		{"dropped (unparseable)", strconv.Itoa(s.DroppedUnparseable)},
		{"substituted cells", strconv.Itoa(s.SubstitutedCells)},
	}
	if s.CacheHits > 0 {
		rows = append(rows, [2]string{"cache hits", strconv.Itoa(s.CacheHits)})
	}
	if s.ArtifactURI != "" {
		rows = append(rows, [2]string{"artifact", s.ArtifactURI})
	}
	rows = append(rows, [2]string{"duration", (time.Duration(s.DurationMillis) * time.Millisecond).String()})
	return rows
}

func (s *RunSummary) String() string {
	var sb strings.Builder
	status := color.GreenString("completed")
	if s.Dropped > 0 || s.SubstitutedCells > 0 {
		status = color.YellowString("completed with dropped or substituted values")
	}
	fmt.Fprintf(&sb, "Run %s\n", status)
	for _, f := range s.fields() {
		fmt.Fprintf(&sb, "  %-22s %s\n", f[0]+":", f[1])
	}
	for _, e := range s.SinkErrors {
		fmt.Fprintf(&sb, "  %s %s\n", color.YellowString("sink error:"), e)
	}
	return sb.String()
}

func (s *RunSummary) TableHeaders() []string { return []string{"FIELD", "VALUE"} }

func (s *RunSummary) TableRows() [][]string {
	fields := s.fields()
	rows := make([][]string, len(fields))
	for i, f := range fields {
		rows[i] = []string{f[0], f[1]}
	}
	return rows
}

//Personal.AI order the ending
