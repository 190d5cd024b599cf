package pipeline

import (
	"bufio"
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

// ExportOptions controls the output format.
type ExportOptions struct {
	Delimiter rune
	// NaNValue is written for failed cells.
	NaNValue string
}

// DefaultExportOptions writes comma separated output with empty NaN cells.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{Delimiter: ','}
}

// FormatValue renders v in shortest round-trip form.
func FormatValue(v float64, nanValue string) string {
	if math.IsNaN(v) {
		return nanValue
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTable writes header and rows to w.
func WriteTable(ctx context.Context, w io.Writer, table *OutputTable, opts ExportOptions) error {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	cw := csv.NewWriter(w)
	cw.Comma = opts.Delimiter
	if err := cw.Write(table.Columns); err != nil {
		return err
	}
	record := make([]string, len(table.Columns))
	for i, row := range table.Rows {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		record = record[:0]
		record = append(record, row.DisplayName, row.RawIdentifier)
		for _, v := range row.Values {
			record = append(record, FormatValue(v, opts.NaNValue))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportTable writes table to path. The data goes to a temporary file in the
// destination directory which is renamed over path on success, so a failed
// export leaves no partial output.
func ExportTable(ctx context.Context, table *OutputTable, path string, opts ExportOptions) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, errors.CodeWriteError, "cannot create output").WithDetail(path)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = WriteTable(ctx, bw, table, opts); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return errors.Wrap(err, errors.CodeWriteError, "cannot write output").WithDetail(path)
	}
	if err = bw.Flush(); err != nil {
		return errors.Wrap(err, errors.CodeWriteError, "cannot write output").WithDetail(path)
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrap(err, errors.CodeWriteError, "cannot sync output").WithDetail(path)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, errors.CodeWriteError, "cannot close output").WithDetail(path)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrap(err, errors.CodeWriteError, "cannot set output permissions").WithDetail(path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, errors.CodeWriteError, "cannot move output into place").WithDetail(path)
	}
	return nil
}

// ReadTable reads a table written by ExportTable. Cells equal to nanValue
// (and empty cells) read back as NaN.
func ReadTable(path string, opts ExportOptions) (*OutputTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(err, errors.CodeInputNotFound, "table not found").WithDetail(path)
		}
		return nil, errors.Wrap(err, errors.CodeInputNotFound, "table cannot be opened").WithDetail(path)
	}
	defer f.Close()

	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	cr := csv.NewReader(bufio.NewReader(f))
	cr.Comma = opts.Delimiter

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSchemaError, "table has no header").WithDetail(path)
	}
	if len(header) < 2 {
		return nil, errors.New(errors.CodeSchemaError, "table needs at least two columns").WithDetail(path)
	}
	table := &OutputTable{Columns: append([]string(nil), header...), Rows: []ResultRow{}}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeSchemaError, "malformed table").WithDetail(path)
		}
		row := ResultRow{DisplayName: rec[0], RawIdentifier: rec[1], Values: make([]float64, len(rec)-2)}
		for j, cell := range rec[2:] {
			if cell == "" || cell == opts.NaNValue {
				row.Values[j] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				line, col := cr.FieldPos(j + 2)
				return nil, errors.Wrap(err, errors.CodeSchemaError, "non-numeric descriptor cell").
					WithDetailf("%s line %d column %d", path, line, col)
			}
			row.Values[j] = v
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

//Personal.AI order the ending
