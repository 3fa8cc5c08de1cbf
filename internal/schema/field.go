package schema

import "github.com/mfgworks/dynaform/internal/types"

// FieldType enumerates the closed set of field variants. Control
// dispatch switches over this type so that adding a variant is a
// compile-checked change rather than a string lookup.
type FieldType string

const (
	FieldText           FieldType = "text"
	FieldTextarea       FieldType = "textarea"
	FieldNumber         FieldType = "number"
	FieldDecimal        FieldType = "decimal"
	FieldDate           FieldType = "date"
	FieldDropdown       FieldType = "dropdown"
	FieldMasterDropdown FieldType = "master-dropdown"
	FieldMultiSelect    FieldType = "multiselect"
	FieldCheckbox       FieldType = "checkbox"
	FieldFile           FieldType = "file"
	FieldCalculated     FieldType = "calculated"
	FieldRelationship   FieldType = "relationship"
)

// Valid reports whether t is a known field type.
func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldTextarea, FieldNumber, FieldDecimal, FieldDate,
		FieldDropdown, FieldMasterDropdown, FieldMultiSelect, FieldCheckbox,
		FieldFile, FieldCalculated, FieldRelationship:
		return true
	}
	return false
}

// Categorical reports whether the type may serve as a grouping key.
// Only discrete text-valued fields group usefully; dates, numbers, and
// derived values never do.
func (t FieldType) Categorical() bool {
	return t == FieldDropdown || t == FieldText
}

// Numeric reports whether values of this type compare as numbers.
func (t FieldType) Numeric() bool {
	return t == FieldNumber || t == FieldDecimal || t == FieldCalculated
}

// FieldDescriptor is the atomic schema unit: the typed definition of one
// column/input. Name is the storage key in every record and must be
// unique within a Schema. JSON tags follow the persisted document
// format (camelCase).
type FieldDescriptor struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`

	// Options is present only for dropdown/multiselect when not
	// master-bound.
	Options []string `json:"options,omitempty"`

	// MasterSource and MasterDisplayField bind a master-dropdown to an
	// external collection and the attribute shown as the label.
	MasterSource       string `json:"masterSource,omitempty"`
	MasterDisplayField string `json:"masterDisplayField,omitempty"`

	// Calculation is the formula string for calculated fields; it
	// references sibling field names.
	Calculation string `json:"calculation,omitempty"`

	// Presentation metadata, non-semantic.
	Width        string `json:"width,omitempty"`
	Order        int    `json:"order"`
	Placeholder  string `json:"placeholder,omitempty"`
	DefaultValue string `json:"defaultValue,omitempty"`
	HelpText     string `json:"helpText,omitempty"`
}

// ZeroValue returns the value a fresh record carries for this field:
// the declared default when present, otherwise the type's empty value.
func (f FieldDescriptor) ZeroValue() any {
	if f.DefaultValue != "" {
		return f.DefaultValue
	}
	switch f.Type {
	case FieldCheckbox:
		return false
	case FieldMultiSelect:
		return []string(nil)
	default:
		return ""
	}
}

// DisplayLabel resolves the label shown for an option record: the
// declared display field, falling back to "name" and then "id".
func (f FieldDescriptor) DisplayLabel(rec types.Record) string {
	if f.MasterDisplayField != "" {
		if s := types.String(rec[f.MasterDisplayField]); s != "" {
			return s
		}
	}
	if s := types.String(rec["name"]); s != "" {
		return s
	}
	return types.String(rec["id"])
}
