package prometheus

import (
	"strconv"
	"time"
)

// Row outcomes used as the "outcome" label of rows_total.
const (
	OutcomeSurvived     = "survived"
	OutcomeBlank        = "blank"
	OutcomeParseFailure = "parse_failure"
)

// AppMetrics holds every metric the module records.
type AppMetrics struct {
	// Pipeline
	RunsTotal            CounterVec
	RunDuration          HistogramVec
	RowsTotal            CounterVec
	SubstitutedCells     CounterVec
	DescriptorDuration   HistogramVec
	LastRunSurvivingRows GaugeVec

	// Cache
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	// Sinks (run store, artifact store, events)
	SinkErrorsTotal CounterVec

	// HTTP
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec
}

var (
	DefaultHTTPDurationBuckets       = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultRunDurationBuckets        = []float64{.1, .5, 1, 5, 10, 30, 60, 300, 900}
	DefaultDescriptorDurationBuckets = []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05}
)

// NewAppMetrics registers all metrics on c.
func NewAppMetrics(c MetricsCollector) *AppMetrics {
	return &AppMetrics{
		RunsTotal:            c.RegisterCounter("runs_total", "Pipeline runs by status.", "status"),
		RunDuration:          c.RegisterHistogram("run_duration_seconds", "Pipeline run duration.", DefaultRunDurationBuckets, "status"),
		RowsTotal:            c.RegisterCounter("rows_total", "Input rows by outcome.", "outcome"),
		SubstitutedCells:     c.RegisterCounter("substituted_cells_total", "Descriptor cells replaced by NaN.", "descriptor"),
		DescriptorDuration:   c.RegisterHistogram("descriptor_duration_seconds", "Time spent computing one row of descriptors.", DefaultDescriptorDurationBuckets),
		LastRunSurvivingRows: c.RegisterGauge("last_run_surviving_rows", "Surviving rows of the most recent run."),
		CacheHitsTotal:       c.RegisterCounter("cache_hits_total", "Result cache hits.", "cache"),
		CacheMissesTotal:     c.RegisterCounter("cache_misses_total", "Result cache misses.", "cache"),
		SinkErrorsTotal:      c.RegisterCounter("sink_errors_total", "Failures of optional result sinks.", "sink"),
		HTTPRequestsTotal:    c.RegisterCounter("http_requests_total", "HTTP requests.", "method", "path", "status"),
		HTTPRequestDuration:  c.RegisterHistogram("http_request_duration_seconds", "HTTP request latency.", DefaultHTTPDurationBuckets, "method", "path"),
		HTTPActiveRequests:   c.RegisterGauge("http_active_requests", "In-flight HTTP requests."),
	}
}

// RunStats is the subset of a pipeline report recorded as metrics.
type RunStats struct {
	Status        string
	Duration      time.Duration
	BlankRows     int
	ParseFailures int
	Survived      int
}

// RecordRun records the outcome of one pipeline run.
func (m *AppMetrics) RecordRun(s RunStats) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(s.Status).Inc()
	m.RunDuration.WithLabelValues(s.Status).Observe(s.Duration.Seconds())
	m.RowsTotal.WithLabelValues(OutcomeSurvived).Add(float64(s.Survived))
	m.RowsTotal.WithLabelValues(OutcomeBlank).Add(float64(s.BlankRows))
	m.RowsTotal.WithLabelValues(OutcomeParseFailure).Add(float64(s.ParseFailures))
	m.LastRunSurvivingRows.WithLabelValues().Set(float64(s.Survived))
}

// RecordSubstitution counts one NaN cell for descriptor.
func (m *AppMetrics) RecordSubstitution(descriptor string) {
	if m == nil {
		return
	}
	m.SubstitutedCells.WithLabelValues(descriptor).Inc()
}

// RecordRowDuration observes the time spent evaluating one row.
func (m *AppMetrics) RecordRowDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.DescriptorDuration.WithLabelValues().Observe(d.Seconds())
}

// RecordCacheLookup counts a hit or miss on the named cache.
func (m *AppMetrics) RecordCacheLookup(cache string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

// RecordSinkError counts a failure of an optional sink.
func (m *AppMetrics) RecordSinkError(sink string) {
	if m == nil {
		return
	}
	m.SinkErrorsTotal.WithLabelValues(sink).Inc()
}

// RecordHTTPRequest records one completed HTTP request.
func (m *AppMetrics) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

//Personal.AI order the ending
