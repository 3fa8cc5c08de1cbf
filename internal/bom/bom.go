// Package bom implements the bill-of-materials form: paired fabric and
// trims table sets that stay index-aligned, per-table row editing with
// serial renumbering, and the cross-table combo join that lets trims
// rows reference fabric combinations.
package bom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mfgworks/dynaform/internal/form"
	"github.com/mfgworks/dynaform/internal/schema"
	"github.com/mfgworks/dynaform/internal/types"
)

// ErrLastTable is returned when deletion would leave a side with no
// tables. The form always shows at least one fabric/trims pair.
var ErrLastTable = errors.New("cannot delete the last table")

// ErrTableNotFound is returned for operations addressing an unknown
// table id.
var ErrTableNotFound = errors.New("table not found")

// ErrRowOutOfRange is returned for operations addressing a row index a
// table does not have.
var ErrRowOutOfRange = errors.New("row index out of range")

// Side selects which half of the pair an operation targets.
type Side string

const (
	SideFabric Side = "fabric"
	SideTrims  Side = "trims"
)

func (s Side) Valid() bool { return s == SideFabric || s == SideTrims }

// Table is one titled row grid inside the form.
type Table struct {
	ID   int            `json:"id"`
	Name string         `json:"name"`
	Rows []types.Record `json:"items"`
}

// Pair holds the two coordinated table sets. Fabric and trims tables
// created together share the same id, so companion lookups are by id
// rather than by position.
type Pair struct {
	Fabric []Table `json:"fabricTables"`
	Trims  []Table `json:"trimsTables"`

	fabricSchema *schema.Schema
	trimsSchema  *schema.Schema
}

// NewPair creates the initial one-table-per-side pair, each table
// holding one default row.
func NewPair(fabricSchema, trimsSchema *schema.Schema) *Pair {
	p := &Pair{}
	p.Bind(fabricSchema, trimsSchema)
	p.AddTable()
	return p
}

// Bind attaches the row schemas. Required after deserializing a Pair,
// which carries only the table data.
func (p *Pair) Bind(fabricSchema, trimsSchema *schema.Schema) {
	p.fabricSchema = fabricSchema
	p.trimsSchema = trimsSchema
}

func (p *Pair) tables(side Side) *[]Table {
	if side == SideTrims {
		return &p.Trims
	}
	return &p.Fabric
}

func (p *Pair) rowSchema(side Side) *schema.Schema {
	if side == SideTrims {
		return p.trimsSchema
	}
	return p.fabricSchema
}

// nextID returns an id unused on either side, keeping companion tables
// addressable by one number.
func (p *Pair) nextID() int {
	max := 0
	for _, t := range p.Fabric {
		if t.ID > max {
			max = t.ID
		}
	}
	for _, t := range p.Trims {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// Find returns the table with the given id on the given side, or nil.
func (p *Pair) Find(side Side, tableID int) *Table {
	ts := *p.tables(side)
	for i := range ts {
		if ts[i].ID == tableID {
			return &ts[i]
		}
	}
	return nil
}

// AddTable appends a fresh fabric table and its trims companion in one
// step, sharing a new id and each holding one default row. Tables are
// named after the id, which is never reused, so a delete-then-add
// cannot produce two tables with the same name.
func (p *Pair) AddTable() (tableID int) {
	id := p.nextID()
	p.Fabric = append(p.Fabric, Table{
		ID:   id,
		Name: fmt.Sprintf("BOM Table %d", id),
		Rows: []types.Record{p.newRow(SideFabric, 0)},
	})
	p.Trims = append(p.Trims, Table{
		ID:   id,
		Name: fmt.Sprintf("Trims for BOM Table %d", id),
		Rows: []types.Record{p.newRow(SideTrims, 0)},
	})
	return id
}

// AddCompanionTable appends a trims-only table with no fabric
// counterpart, for trims that do not map to a fabric combination.
func (p *Pair) AddCompanionTable() (tableID int) {
	id := p.nextID()
	p.Trims = append(p.Trims, Table{
		ID:   id,
		Name: fmt.Sprintf("Trims Table %d", id),
		Rows: []types.Record{p.newRow(SideTrims, 0)},
	})
	return id
}

// CopyTable deep-clones the fabric table and its trims companion under
// one new shared id, appending " (Copy)" to both names.
func (p *Pair) CopyTable(tableID int) error {
	src := p.Find(SideFabric, tableID)
	if src == nil {
		return fmt.Errorf("copy table %d: %w", tableID, ErrTableNotFound)
	}
	id := p.nextID()
	p.Fabric = append(p.Fabric, cloneTable(*src, id))
	if companion := p.Find(SideTrims, tableID); companion != nil {
		p.Trims = append(p.Trims, cloneTable(*companion, id))
	}
	return nil
}

func cloneTable(src Table, id int) Table {
	dup := Table{ID: id, Name: src.Name + " (Copy)"}
	for _, row := range src.Rows {
		dup.Rows = append(dup.Rows, row.Clone())
	}
	return dup
}

// DeleteTable removes the fabric table and its trims companion in one
// step. The last remaining pair is protected; deleting it returns
// ErrLastTable with no state change. A trims-only table deletes alone
// and is never protected.
func (p *Pair) DeleteTable(tableID int) error {
	for i := range p.Fabric {
		if p.Fabric[i].ID != tableID {
			continue
		}
		if len(p.Fabric) <= 1 {
			return ErrLastTable
		}
		p.Fabric = append(p.Fabric[:i], p.Fabric[i+1:]...)
		for j := range p.Trims {
			if p.Trims[j].ID == tableID {
				p.Trims = append(p.Trims[:j], p.Trims[j+1:]...)
				break
			}
		}
		return nil
	}
	for i := range p.Trims {
		if p.Trims[i].ID == tableID {
			p.Trims = append(p.Trims[:i], p.Trims[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete table %d: %w", tableID, ErrTableNotFound)
}

// newRow builds a default-valued row carrying its 1-based serial.
func (p *Pair) newRow(side Side, index int) types.Record {
	row := types.Record{}
	if sc := p.rowSchema(side); sc != nil {
		row = sc.NewRecord()
	}
	renumberRow(row, index)
	return row
}

// AddRow appends a default-valued row to a table and renumbers serials.
func (p *Pair) AddRow(side Side, tableID int) error {
	t := p.Find(side, tableID)
	if t == nil {
		return fmt.Errorf("add row: %s table %d: %w", side, tableID, ErrTableNotFound)
	}
	t.Rows = append(t.Rows, p.newRow(side, len(t.Rows)))
	renumber(t)
	return nil
}

// CopyRow duplicates one row in place, inserting the copy right after
// the original, then renumbers.
func (p *Pair) CopyRow(side Side, tableID, rowIndex int) error {
	t := p.Find(side, tableID)
	if t == nil {
		return fmt.Errorf("copy row: %s table %d: %w", side, tableID, ErrTableNotFound)
	}
	if rowIndex < 0 || rowIndex >= len(t.Rows) {
		return fmt.Errorf("copy row: index %d: %w", rowIndex, ErrRowOutOfRange)
	}
	dup := t.Rows[rowIndex].Clone()
	t.Rows = append(t.Rows[:rowIndex+1], append([]types.Record{dup}, t.Rows[rowIndex+1:]...)...)
	renumber(t)
	return nil
}

// DeleteRow removes one row and renumbers. A table may hold zero rows.
func (p *Pair) DeleteRow(side Side, tableID, rowIndex int) error {
	t := p.Find(side, tableID)
	if t == nil {
		return fmt.Errorf("delete row: %s table %d: %w", side, tableID, ErrTableNotFound)
	}
	if rowIndex < 0 || rowIndex >= len(t.Rows) {
		return fmt.Errorf("delete row: index %d: %w", rowIndex, ErrRowOutOfRange)
	}
	t.Rows = append(t.Rows[:rowIndex], t.Rows[rowIndex+1:]...)
	renumber(t)
	return nil
}

// SetCell writes one cell value and recomputes the row's calculated
// fields in declared field order.
func (p *Pair) SetCell(side Side, tableID, rowIndex int, field string, value any) error {
	t := p.Find(side, tableID)
	if t == nil {
		return fmt.Errorf("set cell: %s table %d: %w", side, tableID, ErrTableNotFound)
	}
	if rowIndex < 0 || rowIndex >= len(t.Rows) {
		return fmt.Errorf("set cell: index %d: %w", rowIndex, ErrRowOutOfRange)
	}
	sc := p.rowSchema(side)
	if sc == nil {
		t.Rows[rowIndex][field] = value
		return nil
	}
	// Route through the form engine so normalization and recalculation
	// match standalone record editing.
	f := form.Load(sc, t.Rows[rowIndex])
	f.Set(field, value)
	t.Rows[rowIndex] = f.Record
	renumberRow(t.Rows[rowIndex], rowIndex)
	return nil
}

// renumber rewrites every row's srNo to its 1-based position.
func renumber(t *Table) {
	for i := range t.Rows {
		renumberRow(t.Rows[i], i)
	}
}

func renumberRow(row types.Record, index int) {
	if row == nil {
		return
	}
	row["srNo"] = float64(index + 1)
}

// ComboOptions collects the distinct non-empty values of the combo
// field across the rows of one fabric table, in first-seen order. The
// companion trims table's rows select from this list to join back to
// that table's fabric combinations. An unknown id yields an empty list.
func (p *Pair) ComboOptions(tableID int, comboField string) []string {
	t := p.Find(SideFabric, tableID)
	if t == nil {
		return nil
	}
	var out []string
	seen := map[string]bool{}
	for _, row := range t.Rows {
		v := strings.TrimSpace(types.String(row[comboField]))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
