package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"os"
	"strings"

	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

// LoaderOptions controls how the input file is read.
type LoaderOptions struct {
	Delimiter rune
	HasHeader bool
}

// DefaultLoaderOptions reads comma separated input with a header row.
func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{Delimiter: ',', HasHeader: true}
}

// LoadStats counts rows seen by the loader.
type LoadStats struct {
	// TotalRows is the number of data rows, header excluded.
	TotalRows int
	// BlankRows were discarded because the identifier was empty.
	BlankRows int
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const cancelCheckInterval = 1024

// LoadRecords reads the delimited file at path. The first column is the raw
// identifier and the second the display name; further columns are ignored.
// Rows whose identifier is blank are counted and dropped.
func LoadRecords(ctx context.Context, path string, opts LoaderOptions) ([]InputRecord, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, LoadStats{}, errors.Wrap(err, errors.CodeInputNotFound, "input file not found").WithDetail(path)
		}
		return nil, LoadStats{}, errors.Wrap(err, errors.CodeInputNotFound, "input file cannot be opened").WithDetail(path)
	}
	defer f.Close()

	if fi, err := f.Stat(); err == nil && fi.IsDir() {
		return nil, LoadStats{}, errors.New(errors.CodeInputNotFound, "input path is a directory").WithDetail(path)
	}
	return ReadRecords(ctx, f, opts)
}

// ReadRecords reads records from r. See LoadRecords.
func ReadRecords(ctx context.Context, r io.Reader, opts LoaderOptions) ([]InputRecord, LoadStats, error) {
	var stats LoadStats
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.Comma = opts.Delimiter
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	var records []InputRecord
	first := true
	for {
		if stats.TotalRows%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}

		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if stderrors.As(err, &pe) {
				return nil, stats, errors.Wrap(err, errors.CodeSchemaError, "malformed input").
					WithDetailf("line %d", pe.Line)
			}
			return nil, stats, errors.Wrap(err, errors.CodeSchemaError, "input cannot be read")
		}
		line, _ := cr.FieldPos(0)

		if first {
			first = false
			if len(row) < 2 {
				return nil, stats, errors.New(errors.CodeSchemaError, "input needs at least two columns").
					WithDetailf("line %d has %d", line, len(row))
			}
			if opts.HasHeader {
				continue
			}
		}

		stats.TotalRows++
		rec := InputRecord{RawIdentifier: strings.TrimSpace(row[0]), Line: line}
		if len(row) > 1 {
			rec.DisplayName = strings.TrimSpace(row[1])
		}
		if rec.RawIdentifier == "" {
			stats.BlankRows++
			continue
		}
		records = append(records, rec)
	}

	if first {
		return nil, stats, errors.New(errors.CodeSchemaError, "input is empty")
	}
	return records, stats, nil
}

// dropBlank removes records without an identifier and numbers records that
// carry no line.
func dropBlank(in []InputRecord) ([]InputRecord, int) {
	out := make([]InputRecord, 0, len(in))
	blank := 0
	for i, rec := range in {
		rec.RawIdentifier = strings.TrimSpace(rec.RawIdentifier)
		rec.DisplayName = strings.TrimSpace(rec.DisplayName)
		if rec.Line == 0 {
			rec.Line = i + 1
		}
		if rec.RawIdentifier == "" {
			blank++
			continue
		}
		out = append(out, rec)
	}
	return out, blank
}

//Personal.AI order the ending
