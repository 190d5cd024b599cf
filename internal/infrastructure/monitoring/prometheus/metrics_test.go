package prometheus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppMetrics_RecordRun(t *testing.T) {
	c := newTestCollector(t)
	m := NewAppMetrics(c)

	m.RecordRun(RunStats{Status: "success", Duration: time.Second, BlankRows: 1, ParseFailures: 2, Survived: 5})
	m.RecordSubstitution("BalabanJ")
	m.RecordRowDuration(time.Millisecond)
	m.RecordCacheLookup("redis", true)
	m.RecordCacheLookup("redis", false)
	m.RecordSinkError("kafka")
	m.RecordHTTPRequest("GET", "/healthz", 200, 5*time.Millisecond)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_runs_total{status="success"} 1`)
	assert.Contains(t, out, `test_unit_rows_total{outcome="survived"} 5`)
	assert.Contains(t, out, `test_unit_rows_total{outcome="blank"} 1`)
	assert.Contains(t, out, `test_unit_rows_total{outcome="parse_failure"} 2`)
	assert.Contains(t, out, "test_unit_last_run_surviving_rows 5")
	assert.Contains(t, out, `test_unit_substituted_cells_total{descriptor="BalabanJ"} 1`)
	assert.Contains(t, out, `test_unit_cache_hits_total{cache="redis"} 1`)
	assert.Contains(t, out, `test_unit_cache_misses_total{cache="redis"} 1`)
	assert.Contains(t, out, `test_unit_sink_errors_total{sink="kafka"} 1`)
	assert.Contains(t, out, `test_unit_http_requests_total{method="GET",path="/healthz",status="200"} 1`)
}

func TestAppMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *AppMetrics
	assert.NotPanics(t, func() {
		m.RecordRun(RunStats{Status: "failed"})
		m.RecordSubstitution("x")
		m.RecordRowDuration(time.Second)
		m.RecordCacheLookup("redis", true)
		m.RecordSinkError("minio")
		m.RecordHTTPRequest("GET", "/", 200, time.Second)
	})
}

//Personal.AI order the ending
