package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfgworks/dynaform/internal/bom"
	"github.com/mfgworks/dynaform/internal/schema"
	"github.com/mfgworks/dynaform/internal/types"
)

// Collection layout. Schema documents live in one catalog collection;
// each schema's records live in their own dynamic collection named
// after the schema id.
const (
	schemasCollection  = "schemas"
	sheetsCollection   = "bom_sheets"
	settingsCollection = "settings"
	dynamicPrefix      = "dynamic_"

	formConfigID = "bom_form_config"
)

// Catalog is the typed persistence layer: schemas, per-schema record
// collections, master lookups, BOM sheets, and the BOM form layout, all
// over one document Store.
type Catalog struct {
	store Store
	now   func() time.Time
}

func NewCatalog(s Store) *Catalog {
	return &Catalog{store: s, now: time.Now}
}

// recordsCollection names the dynamic collection holding a schema's
// records.
func recordsCollection(schemaID string) string { return dynamicPrefix + schemaID }

// toDoc round-trips any JSON-taggable value into the store's document
// shape.
func toDoc(v any) (types.Record, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc types.Record
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func fromDoc(doc types.Record, v any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// SaveSchema validates and upserts a schema document, stamping audit
// times.
func (c *Catalog) SaveSchema(ctx context.Context, sc *schema.Schema) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	if sc.ID == "" {
		sc.ID = uuid.New().String()
	}
	now := c.now().UTC()
	if sc.CreatedAt == nil {
		sc.CreatedAt = &now
	}
	sc.UpdatedAt = &now

	doc, err := toDoc(sc)
	if err != nil {
		return fmt.Errorf("encode schema %s: %w", sc.ID, err)
	}
	return c.store.Put(ctx, schemasCollection, sc.ID, doc)
}

// Schema loads one schema by id, with fields restored to declared
// order.
func (c *Catalog) Schema(ctx context.Context, id string) (*schema.Schema, error) {
	doc, err := c.store.Get(ctx, schemasCollection, id)
	if err != nil {
		return nil, err
	}
	var sc schema.Schema
	if err := fromDoc(doc, &sc); err != nil {
		return nil, fmt.Errorf("decode schema %s: %w", id, err)
	}
	sc.SortFields()
	return &sc, nil
}

// Schemas lists all schemas, optionally restricted to one category.
func (c *Catalog) Schemas(ctx context.Context, category string) ([]*schema.Schema, error) {
	docs, err := c.store.List(ctx, schemasCollection)
	if err != nil {
		return nil, err
	}
	out := []*schema.Schema{}
	for _, doc := range docs {
		var sc schema.Schema
		if err := fromDoc(doc, &sc); err != nil {
			return nil, fmt.Errorf("decode schema %s: %w", doc.ID(), err)
		}
		if category != "" && sc.Category != category {
			continue
		}
		sc.SortFields()
		out = append(out, &sc)
	}
	return out, nil
}

// DeleteSchema removes a schema and drops its record collection.
func (c *Catalog) DeleteSchema(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, schemasCollection, id); err != nil {
		return err
	}
	return c.store.Drop(ctx, recordsCollection(id))
}

// EnsurePredefinedMasters installs any built-in master schema not yet
// present and returns how many were created. Existing masters are never
// overwritten, so operator customizations survive restarts.
func (c *Catalog) EnsurePredefinedMasters(ctx context.Context) (int, error) {
	created := 0
	for _, sc := range schema.Predefined() {
		_, err := c.store.Get(ctx, schemasCollection, sc.ID)
		if err == nil {
			continue
		}
		if err != ErrNotFound {
			return created, err
		}
		if err := c.SaveSchema(ctx, sc); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// PredefinedStatus reports, per built-in master id, whether it is
// installed.
func (c *Catalog) PredefinedStatus(ctx context.Context) (map[string]bool, error) {
	out := map[string]bool{}
	for _, sc := range schema.Predefined() {
		_, err := c.store.Get(ctx, schemasCollection, sc.ID)
		switch err {
		case nil:
			out[sc.ID] = true
		case ErrNotFound:
			out[sc.ID] = false
		default:
			return nil, err
		}
	}
	return out, nil
}

// CreateRecord inserts a record into a schema's collection, assigning
// an id and creation time.
func (c *Catalog) CreateRecord(ctx context.Context, schemaID string, rec types.Record) (types.Record, error) {
	doc := rec.Clone()
	doc["id"] = uuid.New().String()
	doc["created_at"] = c.now().UTC().Format(time.RFC3339)
	if err := c.store.Put(ctx, recordsCollection(schemaID), doc.ID(), doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// UpdateRecord replaces an existing record, preserving its id.
func (c *Catalog) UpdateRecord(ctx context.Context, schemaID, id string, rec types.Record) (types.Record, error) {
	existing, err := c.store.Get(ctx, recordsCollection(schemaID), id)
	if err != nil {
		return nil, err
	}
	doc := rec.Clone()
	doc["id"] = id
	if v, ok := existing["created_at"]; ok {
		doc["created_at"] = v
	}
	doc["updated_at"] = c.now().UTC().Format(time.RFC3339)
	if err := c.store.Put(ctx, recordsCollection(schemaID), id, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Record loads one record from a schema's collection.
func (c *Catalog) Record(ctx context.Context, schemaID, id string) (types.Record, error) {
	return c.store.Get(ctx, recordsCollection(schemaID), id)
}

// Records lists a schema's records in insertion order.
func (c *Catalog) Records(ctx context.Context, schemaID string) ([]types.Record, error) {
	return c.store.List(ctx, recordsCollection(schemaID))
}

// DeleteRecord removes one record.
func (c *Catalog) DeleteRecord(ctx context.Context, schemaID, id string) error {
	return c.store.Delete(ctx, recordsCollection(schemaID), id)
}

// MasterRecords lists the records of a master collection. Satisfies the
// master resolver's Source.
func (c *Catalog) MasterRecords(ctx context.Context, source string) ([]types.Record, error) {
	return c.store.List(ctx, recordsCollection(source))
}

// SaveSheet upserts a BOM sheet, assigning id and status on first save.
func (c *Catalog) SaveSheet(ctx context.Context, sheet *bom.Sheet) error {
	now := c.now().UTC()
	if sheet.ID == "" {
		sheet.ID = uuid.New().String()
		sheet.Status = bom.StatusAssigned
		sheet.CreatedAt = &now
	}
	sheet.UpdatedAt = &now

	doc, err := toDoc(sheet)
	if err != nil {
		return fmt.Errorf("encode sheet %s: %w", sheet.ID, err)
	}
	return c.store.Put(ctx, sheetsCollection, sheet.ID, doc)
}

// Sheet loads one BOM sheet. The caller binds row schemas before using
// the pair.
func (c *Catalog) Sheet(ctx context.Context, id string) (*bom.Sheet, error) {
	doc, err := c.store.Get(ctx, sheetsCollection, id)
	if err != nil {
		return nil, err
	}
	var sheet bom.Sheet
	if err := fromDoc(doc, &sheet); err != nil {
		return nil, fmt.Errorf("decode sheet %s: %w", id, err)
	}
	return &sheet, nil
}

// Sheets lists all BOM sheets in insertion order.
func (c *Catalog) Sheets(ctx context.Context) ([]*bom.Sheet, error) {
	docs, err := c.store.List(ctx, sheetsCollection)
	if err != nil {
		return nil, err
	}
	out := []*bom.Sheet{}
	for _, doc := range docs {
		var sheet bom.Sheet
		if err := fromDoc(doc, &sheet); err != nil {
			return nil, fmt.Errorf("decode sheet %s: %w", doc.ID(), err)
		}
		out = append(out, &sheet)
	}
	return out, nil
}

// DeleteSheet removes one BOM sheet.
func (c *Catalog) DeleteSheet(ctx context.Context, id string) error {
	return c.store.Delete(ctx, sheetsCollection, id)
}

// FormConfig returns the saved BOM form layout, or the built-in default
// when none has been saved.
func (c *Catalog) FormConfig(ctx context.Context) (bom.FormConfig, error) {
	doc, err := c.store.Get(ctx, settingsCollection, formConfigID)
	if err == ErrNotFound {
		return bom.DefaultFormConfig(), nil
	}
	if err != nil {
		return bom.FormConfig{}, err
	}
	var cfg bom.FormConfig
	if err := fromDoc(doc, &cfg); err != nil {
		return bom.FormConfig{}, fmt.Errorf("decode form config: %w", err)
	}
	return cfg, nil
}

// SaveFormConfig replaces the BOM form layout.
func (c *Catalog) SaveFormConfig(ctx context.Context, cfg bom.FormConfig) error {
	doc, err := toDoc(cfg)
	if err != nil {
		return fmt.Errorf("encode form config: %w", err)
	}
	return c.store.Put(ctx, settingsCollection, formConfigID, doc)
}
