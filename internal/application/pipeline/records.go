// Package pipeline implements the descriptor batch: load delimited records,
// parse each SMILES, evaluate the descriptor registry on every surviving
// structure, assemble the output table and export it. The service in this
// package wires those stages together with the optional result cache and
// result sinks.
package pipeline

import (
	"time"

	"github.com/turtacn/KeyIP-Descriptors/internal/domain/molecule"
)

// InputRecord is one input row. Line is the 1-based line of the row in its
// source file, or its 1-based position for in-memory batches.
type InputRecord struct {
	RawIdentifier string `json:"smiles"`
	DisplayName   string `json:"name"`
	Line          int    `json:"line,omitempty"`
}

// ParsedRecord pairs a record with its parsed structure.
type ParsedRecord struct {
	Record    InputRecord
	Structure *molecule.Molecule
}

// ParseFailure explains why a record was dropped.
type ParseFailure struct {
	Record InputRecord `json:"record"`
	Reason string      `json:"reason"`
	Err    error       `json:"-"`
}

// ResultRow holds one value per registry entry, in registry order. Failed
// cells are NaN.
type ResultRow struct {
	DisplayName   string
	RawIdentifier string
	Values        []float64
}

// OutputTable is the assembled result: identity columns followed by
// descriptor columns.
type OutputTable struct {
	Columns []string
	Rows    []ResultRow
}

// Report summarises one run.
type Report struct {
	RunID            string        `json:"run_id"`
	InputPath        string        `json:"input_path,omitempty"`
	OutputPath       string        `json:"output_path,omitempty"`
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
	ArtifactURI      string        `json:"artifact_uri,omitempty"`
	SinkErrors       []string      `json:"sink_errors,omitempty"`
}

// Dropped is the number of records that produced no output row.
func (r *Report) Dropped() int { return r.BlankRows + r.ParseFailures }

//Personal.AI order the ending
