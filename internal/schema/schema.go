// Package schema implements the runtime-configurable data model: an
// ordered collection of field descriptors plus entity metadata, built by
// the schema builder and consumed by the form, grid, and paired-table
// engines.
package schema

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mfgworks/dynaform/internal/types"
)

// Schema is a named, categorized collection of field descriptors with
// capability flags. It is persisted as a whole document; versioning is
// by full replacement, never partial field migration.
type Schema struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Icon        string            `json:"icon,omitempty"`
	Category    string            `json:"category"`
	Fields      []FieldDescriptor `json:"fields"`

	EnableExcelUpload bool `json:"enableExcelUpload"`
	EnableImageUpload bool `json:"enableImageUpload"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	CreatedBy string     `json:"created_by,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	UpdatedBy string     `json:"updated_by,omitempty"`
}

// ValidationError reports a schema that cannot be saved.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// New creates an empty schema with a fresh id.
func New(name, category string) *Schema {
	return &Schema{
		ID:       uuid.New().String(),
		Name:     name,
		Category: category,
	}
}

// AddField appends a new field descriptor of the given type with a
// generated unique name and label, ordered last. Always succeeds; an
// unknown type falls back to text.
func (s *Schema) AddField(t FieldType) *FieldDescriptor {
	if !t.Valid() {
		t = FieldText
	}
	f := FieldDescriptor{
		ID:    uuid.New().String(),
		Name:  s.nextFieldName(),
		Type:  t,
		Order: len(s.Fields),
	}
	f.Label = fmt.Sprintf("Field %d", len(s.Fields)+1)
	if t == FieldDropdown || t == FieldMultiSelect {
		f.Options = []string{"Option 1", "Option 2"}
	}
	s.Fields = append(s.Fields, f)
	return &s.Fields[len(s.Fields)-1]
}

// nextFieldName generates field_N, bumping N past any existing name.
func (s *Schema) nextFieldName() string {
	n := len(s.Fields) + 1
	for {
		name := fmt.Sprintf("field_%d", n)
		if s.FieldByName(name) == nil {
			return name
		}
		n++
	}
}

// ReorderField moves the field at from to position to and renumbers all
// Order values to a contiguous 0..n-1 sequence. Out-of-range indices
// are a no-op.
func (s *Schema) ReorderField(from, to int) {
	if from < 0 || from >= len(s.Fields) || to < 0 || to >= len(s.Fields) {
		return
	}
	f := s.Fields[from]
	s.Fields = append(s.Fields[:from], s.Fields[from+1:]...)
	s.Fields = append(s.Fields[:to], append([]FieldDescriptor{f}, s.Fields[to:]...)...)
	s.renumber()
}

// RemoveField deletes the field with the given id. Storage keys of
// existing records are untouched: orphaned values remain in records but
// are no longer rendered.
func (s *Schema) RemoveField(fieldID string) {
	for i, f := range s.Fields {
		if f.ID == fieldID {
			s.Fields = append(s.Fields[:i], s.Fields[i+1:]...)
			s.renumber()
			return
		}
	}
}

func (s *Schema) renumber() {
	for i := range s.Fields {
		s.Fields[i].Order = i
	}
}

// SortFields restores field order after loading a document whose field
// array may not match the Order ranking.
func (s *Schema) SortFields() {
	sort.SliceStable(s.Fields, func(i, j int) bool {
		return s.Fields[i].Order < s.Fields[j].Order
	})
}

// FieldByName returns the descriptor with the given storage name, or nil.
func (s *Schema) FieldByName(name string) *FieldDescriptor {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// Validate checks the schema is saveable: a non-empty name and at least
// one field.
func (s *Schema) Validate() error {
	if s.Name == "" {
		return &ValidationError{Message: "schema name is required"}
	}
	if len(s.Fields) == 0 {
		return &ValidationError{Message: "schema must have at least one field"}
	}
	return nil
}

// NewRecord creates a record carrying each field's default value.
func (s *Schema) NewRecord() types.Record {
	rec := make(types.Record, len(s.Fields))
	for _, f := range s.Fields {
		rec[f.Name] = f.ZeroValue()
	}
	return rec
}
