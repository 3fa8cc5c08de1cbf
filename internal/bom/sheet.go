package bom

import (
	"time"

	"github.com/mfgworks/dynaform/internal/schema"
	"github.com/mfgworks/dynaform/internal/types"
)

// Sheet is one saved bill of materials: the order header values plus
// the paired table data, persisted as a whole document.
type Sheet struct {
	ID     string       `json:"id"`
	Header types.Record `json:"header"`
	Pair
	Status string `json:"status"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	CreatedBy string     `json:"created_by,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	UpdatedBy string     `json:"updated_by,omitempty"`
}

// StatusAssigned is the status a sheet carries on creation.
const StatusAssigned = "assigned"

// FormConfig is the editable field layout of the BOM form: the order
// header fields plus the row schemas for each table side. Stored as a
// single document and reloaded by the builder.
type FormConfig struct {
	HeaderFields []schema.FieldDescriptor `json:"headerFields"`
	FabricFields []schema.FieldDescriptor `json:"fabricTableFields"`
	TrimsFields  []schema.FieldDescriptor `json:"trimsTableFields"`
}

// FabricSchema wraps the fabric row fields as a schema for the form and
// grid engines.
func (c FormConfig) FabricSchema() *schema.Schema {
	return &schema.Schema{ID: "bom_fabric_rows", Name: "Fabric Rows", Fields: c.FabricFields}
}

// TrimsSchema wraps the trims row fields as a schema.
func (c FormConfig) TrimsSchema() *schema.Schema {
	return &schema.Schema{ID: "bom_trims_rows", Name: "Trims Rows", Fields: c.TrimsFields}
}

// HeaderSchema wraps the order header fields as a schema.
func (c FormConfig) HeaderSchema() *schema.Schema {
	return &schema.Schema{ID: "bom_header", Name: "BOM Header", Fields: c.HeaderFields}
}

// DefaultFormConfig is the built-in BOM layout used until an
// administrator saves a custom one.
func DefaultFormConfig() FormConfig {
	return FormConfig{
		HeaderFields: []schema.FieldDescriptor{
			{ID: "h1", Name: "orderNo", Label: "Order No", Type: schema.FieldText, Required: true, Order: 0},
			{ID: "h2", Name: "buyer", Label: "Buyer", Type: schema.FieldMasterDropdown, Required: true, MasterSource: "buyer_master", MasterDisplayField: "name", Order: 1},
			{ID: "h3", Name: "style", Label: "Style", Type: schema.FieldText, Order: 2},
			{ID: "h4", Name: "orderPcs", Label: "Order Pcs", Type: schema.FieldNumber, Required: true, Order: 3},
			{ID: "h5", Name: "extraPcs", Label: "Extra Pcs", Type: schema.FieldNumber, Order: 4},
			{ID: "h6", Name: "totalPcs", Label: "Total Pcs", Type: schema.FieldCalculated, Calculation: "orderPcs + extraPcs", Order: 5},
			{ID: "h7", Name: "deliveryDate", Label: "Delivery Date", Type: schema.FieldDate, Order: 6},
		},
		FabricFields: []schema.FieldDescriptor{
			{ID: "f1", Name: "srNo", Label: "Sr No", Type: schema.FieldNumber, Order: 0, Width: "60px"},
			{ID: "f2", Name: "fabricName", Label: "Fabric", Type: schema.FieldMasterDropdown, Required: true, MasterSource: "fabric_master", MasterDisplayField: "fabric_name", Order: 1},
			{ID: "f3", Name: "comboName", Label: "Combo", Type: schema.FieldText, Order: 2},
			{ID: "f4", Name: "color", Label: "Color", Type: schema.FieldMasterDropdown, MasterSource: "color_master", MasterDisplayField: "name", Order: 3},
			{ID: "f5", Name: "consumption", Label: "Consumption", Type: schema.FieldDecimal, Order: 4},
			{ID: "f6", Name: "wastagePct", Label: "Wastage %", Type: schema.FieldDecimal, Order: 5},
			{ID: "f7", Name: "requirement", Label: "Requirement", Type: schema.FieldCalculated, Calculation: "consumption + consumption * wastagePct / 100", Order: 6},
		},
		TrimsFields: []schema.FieldDescriptor{
			{ID: "t1", Name: "srNo", Label: "Sr No", Type: schema.FieldNumber, Order: 0, Width: "60px"},
			{ID: "t2", Name: "trimName", Label: "Trim", Type: schema.FieldMasterDropdown, Required: true, MasterSource: "raw_material_master", MasterDisplayField: "name", Order: 1},
			{ID: "t3", Name: "comboName", Label: "Combo", Type: schema.FieldDropdown, Order: 2},
			{ID: "t4", Name: "size", Label: "Size", Type: schema.FieldMasterDropdown, MasterSource: "size_master", MasterDisplayField: "name", Order: 3},
			{ID: "t5", Name: "qtyPerPc", Label: "Qty / Pc", Type: schema.FieldDecimal, Order: 4},
			{ID: "t6", Name: "totalQty", Label: "Total Qty", Type: schema.FieldCalculated, Calculation: "qtyPerPc", Order: 5},
		},
	}
}
