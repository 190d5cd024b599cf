package pipeline

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/KeyIP-Descriptors/internal/domain/descriptor"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/prometheus"
)

// ResultCache stores complete descriptor rows keyed by registry fingerprint
// and raw identifier. Implementations must be safe for concurrent use.
type ResultCache interface {
	Get(ctx context.Context, fingerprint, smiles string) ([]float64, bool, error)
	Set(ctx context.Context, fingerprint, smiles string, values []float64) error
}

const resultCacheLabel = "result"

// EvaluatorOptions configures an Evaluator.
type EvaluatorOptions struct {
	// Workers bounds the number of records evaluated concurrently. Values
	// below 1 mean 1.
	Workers int
	Cache   ResultCache
	Metrics *prometheus.AppMetrics
}

// EvaluationStats summarises one Evaluate call.
type EvaluationStats struct {
	SubstitutedCells int
	CacheHits        int
}

// Evaluator applies every registry entry to every parsed record.
type Evaluator struct {
	registry    *descriptor.Registry
	fingerprint string
	workers     int
	cache       ResultCache
	metrics     *prometheus.AppMetrics
	logger      logging.Logger
}

// NewEvaluator creates an Evaluator over registry.
func NewEvaluator(registry *descriptor.Registry, opts EvaluatorOptions, logger logging.Logger) *Evaluator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Evaluator{
		registry:    registry,
		fingerprint: registry.Fingerprint(),
		workers:     opts.Workers,
		cache:       opts.Cache,
		metrics:     opts.Metrics,
		logger:      logger,
	}
}

// Evaluate returns one row per record in input order. A failing descriptor
// yields NaN in its cell and is counted; it never drops the row. The only
// error is the context error when ctx is cancelled.
func (e *Evaluator) Evaluate(ctx context.Context, records []ParsedRecord) ([]ResultRow, EvaluationStats, error) {
	rows := make([]ResultRow, len(records))
	var substituted, hits int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range records {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row, subs, hit := e.evaluateRecord(gctx, records[i])
			rows[i] = row
			atomic.AddInt64(&substituted, int64(subs))
			if hit {
				atomic.AddInt64(&hits, 1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, EvaluationStats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, EvaluationStats{}, err
	}
	return rows, EvaluationStats{SubstitutedCells: int(substituted), CacheHits: int(hits)}, nil
}

func (e *Evaluator) evaluateRecord(ctx context.Context, rec ParsedRecord) (ResultRow, int, bool) {
	row := ResultRow{
		DisplayName:   rec.Record.DisplayName,
		RawIdentifier: rec.Record.RawIdentifier,
	}
	if values, ok := e.lookup(ctx, rec.Record); ok {
		row.Values = values
		return row, 0, true
	}

	start := time.Now()
	row.Values = make([]float64, e.registry.Len())
	substituted := 0
	for j := range row.Values {
		entry := e.registry.Entry(j)
		v, err := entry.Evaluate(rec.Structure)
		if err != nil {
			row.Values[j] = math.NaN()
			substituted++
			e.metrics.RecordSubstitution(entry.Name)
			e.logger.Warn("descriptor failed, substituting NaN",
				logging.Int("line", rec.Record.Line),
				logging.String("descriptor", entry.Name),
				logging.String("smiles", rec.Record.RawIdentifier),
				logging.Err(err),
				logging.Code(err))
			continue
		}
		row.Values[j] = v
	}
	e.metrics.RecordRowDuration(time.Since(start))

	if substituted == 0 && e.cache != nil {
		if err := e.cache.Set(ctx, e.fingerprint, rec.Record.RawIdentifier, row.Values); err != nil {
			e.logger.Warn("result cache write failed",
				logging.String("smiles", rec.Record.RawIdentifier), logging.Err(err))
		}
	}
	return row, substituted, false
}

// lookup consults the cache. Errors and rows of the wrong width count as
// misses.
func (e *Evaluator) lookup(ctx context.Context, rec InputRecord) ([]float64, bool) {
	if e.cache == nil {
		return nil, false
	}
	values, ok, err := e.cache.Get(ctx, e.fingerprint, rec.RawIdentifier)
	if err != nil {
		e.logger.Warn("result cache read failed",
			logging.String("smiles", rec.RawIdentifier), logging.Err(err))
		ok = false
	}
	if ok && len(values) != e.registry.Len() {
		e.logger.Warn("discarding cached row with wrong width",
			logging.String("smiles", rec.RawIdentifier),
			logging.Int("cached", len(values)),
			logging.Int("expected", e.registry.Len()))
		ok = false
	}
	e.metrics.RecordCacheLookup(resultCacheLabel, ok)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out, true
}

//Personal.AI order the ending
