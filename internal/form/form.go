// Package form implements the schema-driven form engine: per-type
// control descriptors, value normalization on edit, recomputation of
// calculated fields, and required-field validation at save time.
package form

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mfgworks/dynaform/internal/formula"
	"github.com/mfgworks/dynaform/internal/schema"
	"github.com/mfgworks/dynaform/internal/types"
)

// MissingRequiredFieldError reports a save attempt with empty required
// fields, naming every offending label.
type MissingRequiredFieldError struct {
	Labels []string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Labels, ", "))
}

// Form binds a schema to one record under edit. All mutation flows
// through Set so that calculated fields are always current.
type Form struct {
	Schema *schema.Schema
	Record types.Record
}

// New creates a form over a fresh record carrying each field's default.
func New(sc *schema.Schema) *Form {
	f := &Form{Schema: sc, Record: sc.NewRecord()}
	f.Recalculate()
	return f
}

// Load creates a form over an existing record. Values for fields no
// longer in the schema are kept in the record but never rendered.
// Calculated fields are recomputed immediately; persisted calculated
// values are never trusted.
func Load(sc *schema.Schema, rec types.Record) *Form {
	if rec == nil {
		rec = types.Record{}
	}
	f := &Form{Schema: sc, Record: rec.Clone()}
	f.Recalculate()
	return f
}

// Set normalizes value for the named field and stores it, then
// recomputes every calculated field. Unknown field names and direct
// edits of calculated fields are ignored.
func (f *Form) Set(name string, value any) {
	fd := f.Schema.FieldByName(name)
	if fd == nil || fd.Type == schema.FieldCalculated {
		return
	}
	f.Record[name] = normalize(*fd, value)
	f.Recalculate()
}

// Recalculate re-runs every calculated field's formula against the
// current record. Fields evaluate in declared order, so a formula may
// reference an earlier calculated field.
func (f *Form) Recalculate() {
	for _, fd := range f.Schema.Fields {
		if fd.Type == schema.FieldCalculated {
			f.Record[fd.Name] = formula.Evaluate(fd.Calculation, f.Record)
		}
	}
}

// Validate checks the record for save: every required non-calculated
// field must hold a non-empty value. On failure it returns a
// MissingRequiredFieldError naming exactly the empty required labels.
func (f *Form) Validate() error {
	var missing []string
	for _, fd := range f.Schema.Fields {
		if !fd.Required || fd.Type == schema.FieldCalculated {
			continue
		}
		if isEmpty(f.Record[fd.Name]) {
			missing = append(missing, fd.Label)
		}
	}
	if len(missing) > 0 {
		return &MissingRequiredFieldError{Labels: missing}
	}
	return nil
}

// Controls returns the renderable control list in field order. masters
// supplies resolved options for master-bound fields, keyed by source
// collection; a missing entry degrades to an empty option list.
func (f *Form) Controls(masters map[string][]types.Option) []Control {
	fields := append([]schema.FieldDescriptor(nil), f.Schema.Fields...)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Order < fields[j].Order })

	out := make([]Control, 0, len(fields))
	for _, fd := range fields {
		out = append(out, ControlFor(fd, f.Record[fd.Name], masters[fd.MasterSource]))
	}
	return out
}

// isEmpty reports whether a value counts as unset for required-field
// validation. A numeric zero is an explicit value, not an empty one.
func isEmpty(v any) bool {
	switch vv := v.(type) {
	case nil:
		return true
	case string:
		return vv == ""
	case bool:
		return !vv
	case []string:
		return len(vv) == 0
	case []any:
		return len(vv) == 0
	default:
		return false
	}
}
