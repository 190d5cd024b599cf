package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/turtacn/KeyIP-Descriptors/internal/application/pipeline"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

const insertRunSQL = `INSERT INTO descriptor_runs (
	run_id, input_path, output_path, artifact_uri, registry_version, fingerprint,
	descriptors, columns, total_rows, blank_rows, parse_failures, survived,
	substituted_cells, cache_hits, started_at, duration_ms
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

var (
	resultsTable   = pgx.Identifier{"descriptor_results"}
	resultsColumns = []string{"run_id", "row_index", "name", "smiles", "values"}
)

// RunStore writes run summaries and, optionally, their result rows.
type RunStore struct {
	db     TxBeginner
	logger logging.Logger
}

var _ pipeline.RunStore = (*RunStore)(nil)

// NewRunStore creates a RunStore on db.
func NewRunStore(db TxBeginner, log logging.Logger) *RunStore {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &RunStore{db: db, logger: log}
}

// SaveRun inserts the run summary and copies its rows in one transaction.
func (s *RunStore) SaveRun(ctx context.Context, run *pipeline.RunRecord) error {
	if run == nil || run.Report == nil {
		return errors.InvalidParam("run record is required")
	}
	r := run.Report
	columns := run.Columns
	if columns == nil {
		columns = []string{}
	}

	err := WithTransaction(ctx, s.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insertRunSQL,
			r.RunID, r.InputPath, r.OutputPath, r.ArtifactURI, r.RegistryVersion, run.Fingerprint,
			r.Descriptors, columns, r.TotalRows, r.BlankRows, r.ParseFailures, r.Survived,
			r.SubstitutedCells, r.CacheHits, r.StartedAt, r.Duration.Milliseconds(),
		)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeDatabaseError, "insert run").WithDetail(r.RunID)
		}
		if len(run.Rows) == 0 {
			return nil
		}
		n, err := tx.CopyFrom(ctx, resultsTable, resultsColumns, pgx.CopyFromSlice(len(run.Rows), func(i int) ([]any, error) {
			row := run.Rows[i]
			return []any{r.RunID, i, row.DisplayName, row.RawIdentifier, row.Values}, nil
		}))
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeDatabaseError, "copy result rows").WithDetail(r.RunID)
		}
		if int(n) != len(run.Rows) {
			return errors.Newf(errors.ErrCodeDatabaseError, "copied %d of %d result rows", n, len(run.Rows))
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("run saved", logging.String("run_id", r.RunID), logging.Int("rows", len(run.Rows)))
	return nil
}

//Personal.AI order the ending
