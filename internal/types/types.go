// Package types provides the shared value types that flow between the
// schema engine, the grid, the form renderer, and the store. A Record is
// deliberately schemaless at this level; its shape is defined at runtime
// by whichever Schema it belongs to.
package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is one row of an entity's data: a mapping from field name to a
// scalar or array value. Values are JSON-shaped (string, float64, bool,
// []string, nil).
type Record map[string]any

// Clone returns a deep copy of the record. Slice values are copied so
// that mutating the clone never leaks into the original.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		switch vv := v.(type) {
		case []string:
			out[k] = append([]string(nil), vv...)
		case []any:
			out[k] = append([]any(nil), vv...)
		default:
			out[k] = v
		}
	}
	return out
}

// ID returns the record's "id" value, or "" when unset.
func (r Record) ID() string {
	return String(r["id"])
}

// String coerces a record value to its display string. Arrays join with
// ", ", floats drop trailing zeros, nil becomes "".
func String(v any) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case bool:
		return strconv.FormatBool(vv)
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64)
	case int:
		return strconv.Itoa(vv)
	case []string:
		return strings.Join(vv, ", ")
	case []any:
		parts := make([]string, len(vv))
		for i, e := range vv {
			parts[i] = String(e)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", vv)
	}
}

// Number coerces a record value to a float64. Missing, empty, and
// non-numeric values coerce to 0, the engine's fail-soft policy for
// arithmetic over user data.
func Number(v any) float64 {
	switch vv := v.(type) {
	case float64:
		if math.IsNaN(vv) || math.IsInf(vv, 0) {
			return 0
		}
		return vv
	case int:
		return float64(vv)
	case bool:
		if vv {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(vv), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// IsNumeric reports whether the value parses as a number. Used by the
// grid to decide between numeric and string comparison.
func IsNumeric(v any) bool {
	switch vv := v.(type) {
	case float64, int:
		return true
	case string:
		_, err := strconv.ParseFloat(strings.TrimSpace(vv), 64)
		return err == nil
	default:
		return false
	}
}

// Bool coerces a record value to a boolean. Checkbox values arrive as
// bool over the wire but as "true"/"false" strings from tabular imports.
func Bool(v any) bool {
	switch vv := v.(type) {
	case bool:
		return vv
	case string:
		return strings.EqualFold(vv, "true")
	default:
		return false
	}
}

// Strings coerces a record value to a string slice (multiselect storage).
func Strings(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			out = append(out, String(e))
		}
		return out
	case nil:
		return nil
	case string:
		if vv == "" {
			return nil
		}
		return []string{vv}
	default:
		return nil
	}
}

// Option is one selectable entry resolved from a master reference
// collection: the stored id plus the label shown to the user.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
