package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/KeyIP-Descriptors/internal/domain/descriptor"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

// RunRecord is what a RunStore persists for a finished run.
type RunRecord struct {
	Report      *Report
	Fingerprint string
	Columns     []string
	// Rows is nil unless row storage is requested.
	Rows []ResultRow
}

// RunStore persists run summaries.
type RunStore interface {
	SaveRun(ctx context.Context, run *RunRecord) error
}

// ArtifactStore keeps a copy of the exported table and returns its URI.
type ArtifactStore interface {
	UploadTable(ctx context.Context, runID, localPath string) (string, error)
}

// RunCompletedEvent is published after every successful run.
type RunCompletedEvent struct {
	RunID            string    `json:"run_id"`
	InputPath        string    `json:"input_path"`
	OutputPath       string    `json:"output_path"`
	ArtifactURI      string    `json:"artifact_uri,omitempty"`
	RegistryVersion  string    `json:"registry_version"`
	Fingerprint      string    `json:"fingerprint"`
	TotalRows        int       `json:"total_rows"`
	Survived         int       `json:"survived"`
	Dropped          int       `json:"dropped"`
	SubstitutedCells int       `json:"substituted_cells"`
	DurationMillis   int64     `json:"duration_ms"`
	CompletedAt      time.Time `json:"completed_at"`
}

// EventPublisher announces finished runs.
type EventPublisher interface {
	PublishRunCompleted(ctx context.Context, event *RunCompletedEvent) error
}

// Sink names used in logs, metrics and Report.SinkErrors.
const (
	SinkRunStore  = "run_store"
	SinkArtifacts = "artifact_store"
	SinkEvents    = "event_publisher"
)

// RunRequest names the input and output files of a batch run.
type RunRequest struct {
	InputPath  string
	OutputPath string
}

// ComputeResult is the in-memory result of Compute.
type ComputeResult struct {
	Table    *OutputTable
	Failures []ParseFailure
	Report   *Report
}

// ValidationResult lists the records that would be dropped by a run.
type ValidationResult struct {
	TotalRows int            `json:"total_rows"`
	BlankRows int            `json:"blank_rows"`
	Valid     int            `json:"valid"`
	Failures  []ParseFailure `json:"failures"`
}

// Service runs descriptor batches.
type Service interface {
	// Run processes a file end to end.
	Run(ctx context.Context, req RunRequest) (*Report, error)
	// Compute processes in-memory records without touching the file system
	// or the sinks.
	Compute(ctx context.Context, records []InputRecord) (*ComputeResult, error)
	// Validate loads and parses a file without evaluating descriptors.
	Validate(ctx context.Context, path string) (*ValidationResult, error)
	// Registry returns the descriptor registry in use.
	Registry() *descriptor.Registry
}

// Options holds format settings of the service.
type Options struct {
	Loader    LoaderOptions
	Export    ExportOptions
	Assembler AssemblerOptions
	Workers   int
	// StoreRows passes result rows to the RunStore.
	StoreRows bool
}

// Dependencies are the collaborators of the service. Registry is required;
// every other field is optional.
type Dependencies struct {
	Registry  *descriptor.Registry
	Parser    StructureParser
	Cache     ResultCache
	RunStore  RunStore
	Artifacts ArtifactStore
	Events    EventPublisher
	Metrics   *prometheus.AppMetrics
	Logger    logging.Logger
}

type serviceImpl struct {
	registry  *descriptor.Registry
	parser    *ParserAdapter
	evaluator *Evaluator
	runStore  RunStore
	artifacts ArtifactStore
	events    EventPublisher
	metrics   *prometheus.AppMetrics
	logger    logging.Logger
	opts      Options
}

// NewService creates the pipeline service.
func NewService(deps Dependencies, opts Options) (Service, error) {
	if deps.Registry == nil {
		return nil, errors.New(errors.CodeRegistryEmpty, "descriptor registry is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &serviceImpl{
		registry: deps.Registry,
		parser:   NewParserAdapter(deps.Parser, logger),
		evaluator: NewEvaluator(deps.Registry, EvaluatorOptions{
			Workers: opts.Workers,
			Cache:   deps.Cache,
			Metrics: deps.Metrics,
		}, logger),
		runStore:  deps.RunStore,
		artifacts: deps.Artifacts,
		events:    deps.Events,
		metrics:   deps.Metrics,
		logger:    logger,
		opts:      opts,
	}, nil
}

func (s *serviceImpl) Registry() *descriptor.Registry { return s.registry }

func (s *serviceImpl) newReport(start time.Time) *Report {
	return &Report{
		RunID:           uuid.New().String(),
		RegistryVersion: s.registry.Version(),
		Descriptors:     s.registry.Len(),
		StartedAt:       start,
	}
}

func (s *serviceImpl) Run(ctx context.Context, req RunRequest) (*Report, error) {
	start := time.Now()
	report := s.newReport(start)
	report.InputPath = req.InputPath
	report.OutputPath = req.OutputPath
	logger := s.logger.With(logging.String("run_id", report.RunID))

	logger.Info("run started",
		logging.String("input", req.InputPath),
		logging.String("output", req.OutputPath),
		logging.Int("descriptors", s.registry.Len()),
		logging.String("registry_version", s.registry.Version()))

	table, err := s.process(ctx, report, func(ctx context.Context) ([]InputRecord, LoadStats, error) {
		return LoadRecords(ctx, req.InputPath, s.opts.Loader)
	}, nil)
	if err == nil {
		err = ExportTable(ctx, table, req.OutputPath, s.opts.Export)
	}
	report.Duration = time.Since(start)
	if err != nil {
		s.recordRun(report, "failed")
		logger.Error("run failed", logging.Err(err), logging.Code(err), logging.Duration("duration", report.Duration))
		return report, err
	}
	s.recordRun(report, "succeeded")

	logger.Info("run completed",
		logging.Int("total_rows", report.TotalRows),
		logging.Int("survived", report.Survived),
		logging.Int("dropped", report.Dropped()),
		logging.Int("dropped_blank", report.BlankRows),
		logging.Int("dropped_unparseable", report.ParseFailures),
		logging.Int("substituted_cells", report.SubstitutedCells),
		logging.Int("cache_hits", report.CacheHits),
		logging.Duration("duration", report.Duration))

	s.publish(ctx, logger, report, table)
	return report, nil
}

func (s *serviceImpl) Compute(ctx context.Context, records []InputRecord) (*ComputeResult, error) {
	start := time.Now()
	report := s.newReport(start)
	var failures []ParseFailure
	table, err := s.process(ctx, report, func(context.Context) ([]InputRecord, LoadStats, error) {
		kept, blank := dropBlank(records)
		return kept, LoadStats{TotalRows: len(records), BlankRows: blank}, nil
	}, &failures)
	report.Duration = time.Since(start)
	if err != nil {
		s.recordRun(report, "failed")
		return nil, err
	}
	s.recordRun(report, "succeeded")
	return &ComputeResult{Table: table, Failures: failures, Report: report}, nil
}

func (s *serviceImpl) Validate(ctx context.Context, path string) (*ValidationResult, error) {
	records, stats, err := LoadRecords(ctx, path, s.opts.Loader)
	if err != nil {
		return nil, err
	}
	parsed, failures, err := s.parser.ParseAll(ctx, records)
	if err != nil {
		return nil, err
	}
	if failures == nil {
		failures = []ParseFailure{}
	}
	return &ValidationResult{
		TotalRows: stats.TotalRows,
		BlankRows: stats.BlankRows,
		Valid:     len(parsed),
		Failures:  failures,
	}, nil
}

// process runs load, parse, evaluate and assemble, filling report.
func (s *serviceImpl) process(
	ctx context.Context,
	report *Report,
	load func(context.Context) ([]InputRecord, LoadStats, error),
	failuresOut *[]ParseFailure,
) (*OutputTable, error) {
	records, stats, err := load(ctx)
	if err != nil {
		return nil, err
	}
	report.TotalRows = stats.TotalRows
	report.BlankRows = stats.BlankRows

	parsed, failures, err := s.parser.ParseAll(ctx, records)
	if err != nil {
		return nil, err
	}
	report.ParseFailures = len(failures)
	if failuresOut != nil {
		*failuresOut = failures
	}

	rows, evalStats, err := s.evaluator.Evaluate(ctx, parsed)
	if err != nil {
		return nil, err
	}
	report.Survived = len(rows)
	report.SubstitutedCells = evalStats.SubstitutedCells
	report.CacheHits = evalStats.CacheHits

	return AssembleTable(s.registry, rows, s.opts.Assembler), nil
}

func (s *serviceImpl) recordRun(report *Report, status string) {
	s.metrics.RecordRun(prometheus.RunStats{
		Status:        status,
		Duration:      report.Duration,
		BlankRows:     report.BlankRows,
		ParseFailures: report.ParseFailures,
		Survived:      report.Survived,
	})
}

// publish hands a finished run to the optional sinks. Sink failures are
// logged and listed on the report; they never fail the run.
func (s *serviceImpl) publish(ctx context.Context, logger logging.Logger, report *Report, table *OutputTable) {
	sinkFailed := func(sink string, err error) {
		report.SinkErrors = append(report.SinkErrors, sink+": "+err.Error())
		s.metrics.RecordSinkError(sink)
		logger.Warn("result sink failed", logging.String("sink", sink), logging.Err(err), logging.Code(err))
	}

	if s.artifacts != nil {
		uri, err := s.artifacts.UploadTable(ctx, report.RunID, report.OutputPath)
		if err != nil {
			sinkFailed(SinkArtifacts, err)
		} else {
			report.ArtifactURI = uri
			logger.Info("table uploaded", logging.String("uri", uri))
		}
	}

	if s.runStore != nil {
		rec := &RunRecord{Report: report, Fingerprint: s.registry.Fingerprint(), Columns: table.Columns}
		if s.opts.StoreRows {
			rec.Rows = table.Rows
		}
		if err := s.runStore.SaveRun(ctx, rec); err != nil {
			sinkFailed(SinkRunStore, err)
		}
	}

	if s.events != nil {
		event := &RunCompletedEvent{
			RunID:            report.RunID,
			InputPath:        report.InputPath,
			OutputPath:       report.OutputPath,
			ArtifactURI:      report.ArtifactURI,
			RegistryVersion:  report.RegistryVersion,
			Fingerprint:      s.registry.Fingerprint(),
			TotalRows:        report.TotalRows,
			Survived:         report.Survived,
			Dropped:          report.Dropped(),
			SubstitutedCells: report.SubstitutedCells,
			DurationMillis:   report.Duration.Milliseconds(),
			CompletedAt:      time.Now().UTC(),
		}
		if err := s.events.PublishRunCompleted(ctx, event); err != nil {
			sinkFailed(SinkEvents, err)
		}
	}
}

//Personal.AI order the ending
