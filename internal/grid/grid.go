// Package grid implements the reusable record grid engine: free-text
// search, per-field filters, single-key tri-state sort, and one- or
// two-level grouping over any schema-bound record collection. The
// pipeline runs search, then filter, then sort, then group, so sort
// order is preserved within each group.
package grid

import (
	"sort"
	"strings"

	"github.com/mfgworks/dynaform/internal/schema"
	"github.com/mfgworks/dynaform/internal/types"
)

// Direction is the sort direction, cycling none → asc → desc → none.
type Direction string

const (
	DirectionNone Direction = ""
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// Next returns the following direction in the cycle.
func (d Direction) Next() Direction {
	switch d {
	case DirectionNone:
		return DirectionAsc
	case DirectionAsc:
		return DirectionDesc
	default:
		return DirectionNone
	}
}

// Sort holds the single active sort key.
type Sort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Cycle advances the sort state for a header click on field: a click on
// the active field steps the direction, a click elsewhere starts a
// fresh ascending sort.
func (s Sort) Cycle(field string) Sort {
	if s.Field == field {
		next := s.Direction.Next()
		if next == DirectionNone {
			return Sort{}
		}
		return Sort{Field: field, Direction: next}
	}
	return Sort{Field: field, Direction: DirectionAsc}
}

// Query describes one grid evaluation.
type Query struct {
	Search     string            `json:"search,omitempty"`
	Filters    map[string]string `json:"filters,omitempty"`
	Sort       Sort              `json:"sort"`
	GroupBy    string            `json:"group_by,omitempty"`
	SubGroupBy string            `json:"sub_group_by,omitempty"`
}

// Group is one grouping bucket. When sub-grouping is active, Rows is
// empty and Sub carries the second-level partition.
type Group struct {
	Key  string         `json:"key"`
	Rows []types.Record `json:"rows,omitempty"`
	Sub  []Group        `json:"sub,omitempty"`
}

// Result is the grid output: the filtered, sorted row set, plus its
// grouped view when grouping is active.
type Result struct {
	Rows    []types.Record `json:"rows"`
	Groups  []Group        `json:"groups,omitempty"`
	Grouped bool           `json:"grouped"`
}

// ungroupedKey is the bucket for records whose group field is missing
// or empty.
const ungroupedKey = "Ungrouped"

// Apply runs the full pipeline over records as described by q. The
// input slice is never mutated.
func Apply(sc *schema.Schema, records []types.Record, q Query) Result {
	rows := applySearch(sc, records, q.Search)
	rows = applyFilters(rows, q.Filters)
	rows = applySort(sc, rows, q.Sort)

	res := Result{Rows: rows}
	groupBy := groupableField(sc, q.GroupBy)
	if groupBy == "" {
		return res
	}
	subBy := groupableField(sc, q.SubGroupBy)
	if subBy == groupBy {
		subBy = ""
	}

	res.Grouped = true
	res.Groups = groupRows(rows, groupBy)
	if subBy != "" {
		for i := range res.Groups {
			res.Groups[i].Sub = groupRows(res.Groups[i].Rows, subBy)
			res.Groups[i].Rows = nil
		}
	}
	return res
}

// applySearch keeps records where any declared field's stringified
// value contains the term, case-insensitively. An empty term matches
// everything.
func applySearch(sc *schema.Schema, records []types.Record, term string) []types.Record {
	if term == "" {
		return append([]types.Record(nil), records...)
	}
	needle := strings.ToLower(term)
	var out []types.Record
	for _, rec := range records {
		for _, f := range sc.Fields {
			v := rec[f.Name]
			if v == nil {
				continue
			}
			if strings.Contains(strings.ToLower(types.String(v)), needle) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// applyFilters keeps records passing every active filter: the pattern
// must be a case-insensitive substring of the field's stringified
// value. Absent values fail any non-empty filter.
func applyFilters(records []types.Record, filters map[string]string) []types.Record {
	active := false
	for _, pattern := range filters {
		if pattern != "" {
			active = true
			break
		}
	}
	if !active {
		return records
	}

	var out []types.Record
	for _, rec := range records {
		if matchesFilters(rec, filters) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesFilters(rec types.Record, filters map[string]string) bool {
	for field, pattern := range filters {
		if pattern == "" {
			continue
		}
		v, ok := rec[field]
		if !ok || v == nil {
			return false
		}
		if !strings.Contains(strings.ToLower(types.String(v)), strings.ToLower(pattern)) {
			return false
		}
	}
	return true
}

// applySort orders rows by the active sort key. Numeric fields compare
// numerically, everything else as case-insensitive strings; the sort is
// stable so ties keep their original relative order.
func applySort(sc *schema.Schema, records []types.Record, s Sort) []types.Record {
	if s.Field == "" || s.Direction == DirectionNone {
		return records
	}

	numeric := false
	if f := sc.FieldByName(s.Field); f != nil {
		numeric = f.Type.Numeric()
	}

	sorted := append([]types.Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if s.Direction == DirectionDesc {
			// Compare the other way; equal elements compare false in
			// both orders, so stability is preserved.
			return lessValue(sorted[j][s.Field], sorted[i][s.Field], numeric)
		}
		return lessValue(sorted[i][s.Field], sorted[j][s.Field], numeric)
	})
	return sorted
}

func lessValue(a, b any, numeric bool) bool {
	if numeric {
		return types.Number(a) < types.Number(b)
	}
	return strings.ToLower(types.String(a)) < strings.ToLower(types.String(b))
}

// groupRows partitions rows by the exact stringified value of field,
// preserving first-seen group order and in-group row order.
func groupRows(rows []types.Record, field string) []Group {
	var groups []Group
	index := map[string]int{}
	for _, rec := range rows {
		key := types.String(rec[field])
		if key == "" {
			key = ungroupedKey
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Rows = append(groups[i].Rows, rec)
	}
	return groups
}

// groupableField returns name when it refers to a categorical field of
// the schema, and "" otherwise. Grouping silently ignores dates,
// numbers, and calculated fields.
func groupableField(sc *schema.Schema, name string) string {
	if name == "" {
		return ""
	}
	f := sc.FieldByName(name)
	if f == nil || !f.Type.Categorical() {
		return ""
	}
	return name
}
