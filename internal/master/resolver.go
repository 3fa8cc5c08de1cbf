// Package master resolves master-dropdown fields into option lists by
// reading the referenced master collection. Resolution is fail-soft: a
// missing or broken source yields an empty list so the form still
// renders.
package master

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mfgworks/dynaform/internal/schema"
	"github.com/mfgworks/dynaform/internal/types"
)

// Source lists the records of one master collection. The catalog's
// record store satisfies this.
type Source interface {
	MasterRecords(ctx context.Context, source string) ([]types.Record, error)
}

// Resolver turns master-bound field descriptors into option lists.
type Resolver struct {
	src Source
	log zerolog.Logger
}

func NewResolver(src Source, log zerolog.Logger) *Resolver {
	return &Resolver{src: src, log: log}
}

// Resolve returns the options for one master-bound field. Each record
// becomes an option whose ID is the record id (falling back to the
// display value for id-less rows) and whose label comes from the
// field's display attribute. Failures log and return an empty list.
func (r *Resolver) Resolve(ctx context.Context, fd schema.FieldDescriptor) []types.Option {
	if fd.MasterSource == "" {
		return nil
	}
	records, err := r.src.MasterRecords(ctx, fd.MasterSource)
	if err != nil {
		r.log.Warn().Err(err).Str("source", fd.MasterSource).Str("field", fd.Name).
			Msg("master source unavailable")
		return []types.Option{}
	}
	return Options(fd, records)
}

// ResolveAll resolves every master-bound field of a schema, keyed by
// source collection. Each source is fetched once even when several
// fields reference it.
func (r *Resolver) ResolveAll(ctx context.Context, sc *schema.Schema) map[string][]types.Option {
	out := map[string][]types.Option{}
	for _, fd := range sc.Fields {
		if fd.MasterSource == "" {
			continue
		}
		if _, done := out[fd.MasterSource]; done {
			continue
		}
		out[fd.MasterSource] = r.Resolve(ctx, fd)
	}
	return out
}

// Options maps master records to options without touching the store.
func Options(fd schema.FieldDescriptor, records []types.Record) []types.Option {
	out := make([]types.Option, 0, len(records))
	for _, rec := range records {
		label := fd.DisplayLabel(rec)
		id := rec.ID()
		if id == "" {
			id = label
		}
		if id == "" {
			continue
		}
		out = append(out, types.Option{ID: id, Label: label})
	}
	return out
}
