package client

import (
	"context"
	"math"
	"time"
)

// DescriptorList describes the server's descriptor registry.
type DescriptorList struct {
	Version     string   `json:"version"`
	Fingerprint string   `json:"fingerprint"`
	Count       int      `json:"count"`
	Names       []string `json:"names"`
}

// Record is one structure to compute.
type Record struct {
	SMILES string `json:"smiles"`
	Name   string `json:"name"`
}

// Row is one computed output row. Values follow ComputeResult.Columns after
// the name and SMILES columns; a nil value is a descriptor that failed.
type Row struct {
	Name   string     `json:"name"`
	SMILES string     `json:"smiles"`
	Values []*float64 `json:"values"`
}

// Value returns the i-th descriptor value, NaN when it failed.
func (r Row) Value(i int) float64 {
	if i < 0 || i >= len(r.Values) || r.Values[i] == nil {
		return math.NaN()
	}
	return *r.Values[i]
}

// Failure is a record the server dropped. Index is 1-based.
type Failure struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	SMILES string `json:"smiles"`
	Reason string `json:"reason"`
}

// Report summarises one computation.
type Report struct {
	RunID            string        `json:"run_id"`
	RegistryVersion  string        `json:"registry_version"`
	Descriptors      int           `json:"descriptors"`
	TotalRows        int           `json:"total_rows"`
	BlankRows        int           `json:"blank_rows"`
	ParseFailures    int           `json:"parse_failures"`
	Survived         int           `json:"survived"`
	SubstitutedCells int           `json:"substituted_cells"`
	CacheHits        int           `json:"cache_hits"`
	StartedAt        time.Time     `json:"started_at"`
	Duration         time.Duration `json:"duration"`
}

// Dropped is the number of records that produced no row.
func (r *Report) Dropped() int { return r.BlankRows + r.ParseFailures }

// ComputeResult is the response of Compute.
type ComputeResult struct {
	Columns  []string  `json:"columns"`
	Rows     []Row     `json:"rows"`
	Failures []Failure `json:"failures"`
	Report   *Report   `json:"report"`
}

// DescriptorColumns returns the descriptor names, without the identity columns.
func (r *ComputeResult) DescriptorColumns() []string {
	if len(r.Columns) < 2 {
		return nil
	}
	return r.Columns[2:]
}

// ListDescriptors returns the registry the server computes.
func (c *Client) ListDescriptors(ctx context.Context) (*DescriptorList, error) {
	var out DescriptorList
	if err := c.get(ctx, "/api/v1/descriptors", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Compute evaluates every descriptor for records.
func (c *Client) Compute(ctx context.Context, records []Record) (*ComputeResult, error) {
	req := struct {
		Records []Record `json:"records"`
	}{Records: records}
	var out ComputeResult
	if err := c.post(ctx, "/api/v1/descriptors/compute", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

//Personal.AI order the ending
