package form

import (
	"strings"
	"time"

	"github.com/mfgworks/dynaform/internal/schema"
	"github.com/mfgworks/dynaform/internal/types"
)

// ControlKind names the widget a renderer should draw for a field.
type ControlKind string

const (
	ControlTextInput   ControlKind = "text-input"
	ControlTextarea    ControlKind = "textarea"
	ControlNumberInput ControlKind = "number-input"
	ControlDatePicker  ControlKind = "date-picker"
	ControlSelect      ControlKind = "select"
	ControlMultiSelect ControlKind = "multi-select"
	ControlCheckbox    ControlKind = "checkbox"
	ControlFilePicker  ControlKind = "file-picker"
	ControlReadOnly    ControlKind = "read-only"
)

// Control is the renderer-facing description of one form input: the
// widget kind, the field metadata a client needs to draw it, and the
// current value.
type Control struct {
	Kind        ControlKind    `json:"kind"`
	Field       string         `json:"field"`
	Label       string         `json:"label"`
	Required    bool           `json:"required"`
	Value       any            `json:"value"`
	Options     []types.Option `json:"options,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`
	HelpText    string         `json:"helpText,omitempty"`
	Width       string         `json:"width,omitempty"`

	// Step distinguishes integer from decimal number inputs.
	Step string `json:"step,omitempty"`
}

// ControlFor maps one field descriptor to its control. masterOptions is
// the resolved option list for master-bound fields and is ignored for
// everything else; static dropdowns derive options from the descriptor.
// The switch is exhaustive over FieldType so new variants fail loudly
// here rather than rendering as a bare text box.
func ControlFor(fd schema.FieldDescriptor, value any, masterOptions []types.Option) Control {
	c := Control{
		Field:       fd.Name,
		Label:       fd.Label,
		Required:    fd.Required,
		Value:       value,
		Placeholder: fd.Placeholder,
		HelpText:    fd.HelpText,
		Width:       fd.Width,
	}

	switch fd.Type {
	case schema.FieldText:
		c.Kind = ControlTextInput
	case schema.FieldTextarea:
		c.Kind = ControlTextarea
	case schema.FieldNumber:
		c.Kind = ControlNumberInput
		c.Step = "1"
	case schema.FieldDecimal:
		c.Kind = ControlNumberInput
		c.Step = "0.01"
	case schema.FieldDate:
		c.Kind = ControlDatePicker
	case schema.FieldDropdown:
		c.Kind = ControlSelect
		c.Options = staticOptions(fd.Options)
	case schema.FieldMasterDropdown, schema.FieldRelationship:
		c.Kind = ControlSelect
		c.Options = masterOptions
	case schema.FieldMultiSelect:
		c.Kind = ControlMultiSelect
		if fd.MasterSource != "" {
			c.Options = masterOptions
		} else {
			c.Options = staticOptions(fd.Options)
		}
	case schema.FieldCheckbox:
		c.Kind = ControlCheckbox
	case schema.FieldFile:
		c.Kind = ControlFilePicker
	case schema.FieldCalculated:
		c.Kind = ControlReadOnly
		c.Value = types.Number(value)
	default:
		c.Kind = ControlReadOnly
	}
	return c
}

func staticOptions(opts []string) []types.Option {
	out := make([]types.Option, 0, len(opts))
	for _, o := range opts {
		out = append(out, types.Option{ID: o, Label: o})
	}
	return out
}

// normalize coerces an incoming edit value into the canonical storage
// shape for the field's type. Invalid input degrades to the type's
// empty value rather than erroring; validation happens at save time.
func normalize(fd schema.FieldDescriptor, value any) any {
	switch fd.Type {
	case schema.FieldNumber, schema.FieldDecimal:
		return normalizeNumber(value)
	case schema.FieldCheckbox:
		return types.Bool(value)
	case schema.FieldMultiSelect:
		return types.Strings(value)
	case schema.FieldDate:
		return normalizeDate(value)
	case schema.FieldFile:
		return types.String(value)
	default:
		return types.String(value)
	}
}

// normalizeNumber stores parseable input as float64 and keeps the raw
// string otherwise, so a half-typed value like "12." survives the next
// keystroke instead of snapping to zero.
func normalizeNumber(value any) any {
	switch vv := value.(type) {
	case float64:
		return vv
	case int:
		return float64(vv)
	case nil:
		return ""
	default:
		s := strings.TrimSpace(types.String(value))
		if s == "" {
			return ""
		}
		if types.IsNumeric(s) {
			return types.Number(s)
		}
		return s
	}
}

// normalizeDate accepts ISO dates only; anything else clears the field.
func normalizeDate(value any) any {
	s := strings.TrimSpace(types.String(value))
	if s == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ""
	}
	return s
}
