// Package importer loads tabular data into a schema's record
// collection. Rows are validated through the form engine, so imported
// records obey the same normalization, calculation, and required-field
// rules as hand-entered ones.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/mfgworks/dynaform/internal/form"
	"github.com/mfgworks/dynaform/internal/schema"
	"github.com/mfgworks/dynaform/internal/types"
)

// Sink receives validated records. The catalog satisfies this.
type Sink interface {
	CreateRecord(ctx context.Context, schemaID string, rec types.Record) (types.Record, error)
}

// Result summarizes one import run. Failed rows are skipped, not
// aborted on: a bad line never blocks the rest of the file.
type Result struct {
	Created int      `json:"created"`
	Errors  []string `json:"errors,omitempty"`
}

// Importer reads CSV files against a schema.
type Importer struct {
	sink Sink
}

func New(sink Sink) *Importer {
	return &Importer{sink: sink}
}

// ImportCSV reads r as a headered CSV file and creates one record per
// data row. Header cells match fields by storage name first, then by
// label case-insensitively; unmatched columns are ignored.
func (im *Importer) ImportCSV(ctx context.Context, sc *schema.Schema, r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return Result{}, fmt.Errorf("empty file")
	}
	if err != nil {
		return Result{}, fmt.Errorf("read header: %w", err)
	}
	columns := matchColumns(sc, header)

	res := Result{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		rec, err := buildRecord(sc, columns, row)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		if _, err := im.sink.CreateRecord(ctx, sc.ID, rec); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		res.Created++
	}
	return res, nil
}

// matchColumns maps each header cell to a field name, or "" when the
// column has no matching field.
func matchColumns(sc *schema.Schema, header []string) []string {
	byLabel := map[string]string{}
	for _, f := range sc.Fields {
		byLabel[strings.ToLower(f.Label)] = f.Name
	}

	out := make([]string, len(header))
	for i, cell := range header {
		cell = strings.TrimSpace(cell)
		if f := sc.FieldByName(cell); f != nil {
			out[i] = f.Name
			continue
		}
		out[i] = byLabel[strings.ToLower(cell)]
	}
	return out
}

// buildRecord runs one CSV row through the form engine and validates
// it.
func buildRecord(sc *schema.Schema, columns, row []string) (types.Record, error) {
	f := form.New(sc)
	for i, cell := range row {
		if i >= len(columns) || columns[i] == "" {
			continue
		}
		f.Set(columns[i], strings.TrimSpace(cell))
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f.Record, nil
}
