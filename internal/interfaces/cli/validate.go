package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/KeyIP-Descriptors/internal/application/pipeline"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

type validateOptions struct {
	delimiter string
	noHeader  bool
	strict    bool
}

func newValidateCmd() *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <input>",
		Short: "Parse every record of a SMILES file without computing descriptors",
		Long: "Loads <input> and parses each SMILES, reporting the records a run would drop.\n" +
			"With --strict the command fails when any record is unparseable.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.delimiter, "delimiter", "", "input field delimiter (default from input.delimiter)")
	f.BoolVar(&opts.noHeader, "no-header", false, "the input file has no header row")
	f.BoolVar(&opts.strict, "strict", false, "exit non-zero when any record fails to parse")
	return cmd
}

func runValidate(cmd *cobra.Command, opts *validateOptions, input string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg := *cliCtx.Config
	if cmd.Flags().Changed("delimiter") {
		cfg.Input.Delimiter = opts.delimiter
	}
	if opts.noHeader {
		cfg.Input.HasHeader = false
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfig, "invalid validate options")
	}

	ctx, cancel := commandContext(cmd, cliCtx.Timeout)
	defer cancel()

	rt, err := buildRuntime(ctx, &cfg, cliCtx.Logger, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	res, err := rt.service.Validate(ctx, input)
	if err != nil {
		return err
	}
	if err := PrintResult(cmd, &ValidationReport{Input: input, ValidationResult: res}); err != nil {
		return err
	}
	if opts.strict && len(res.Failures) > 0 {
		return errors.Newf(errors.ErrCodeParseFailure, "%d of %d records failed to parse", len(res.Failures), res.TotalRows)
	}
	return nil
}

// ValidationReport is the printed result of validate.
type ValidationReport struct {
	Input string `json:"input"`
	*pipeline.ValidationResult
}

func (r *ValidationReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d rows, %d valid, %d blank, %d unparseable\n",
		r.Input, r.TotalRows, r.Valid, r.BlankRows, len(r.Failures))
	for _, f := range r.Failures {
		fmt.Fprintf(&sb, "  line %d %q (%s): %s\n", f.Record.Line, f.Record.RawIdentifier, f.Record.DisplayName, f.Reason)
	}
	return sb.String()
}

func (r *ValidationReport) TableHeaders() []string {
	return []string{"LINE", "NAME", "SMILES", "REASON"}
}

func (r *ValidationReport) TableRows() [][]string {
	rows := make([][]string, len(r.Failures))
	for i, f := range r.Failures {
		rows[i] = []string{strconv.Itoa(f.Record.Line), f.Record.DisplayName, f.Record.RawIdentifier, f.Reason}
	}
	return rows
}

//Personal.AI order the ending
