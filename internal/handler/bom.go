package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfgworks/dynaform/internal/bom"
	"github.com/mfgworks/dynaform/internal/form"
	"github.com/mfgworks/dynaform/internal/store"
	"github.com/mfgworks/dynaform/internal/types"
)

// BOMHandler serves BOM sheets, their paired-table operations, and the
// editable form layout.
type BOMHandler struct {
	catalog *store.Catalog
}

func NewBOMHandler(catalog *store.Catalog) *BOMHandler {
	return &BOMHandler{catalog: catalog}
}

// loadSheet fetches a sheet and binds the current form layout's row
// schemas so pair operations normalize and recalculate correctly.
func (h *BOMHandler) loadSheet(w http.ResponseWriter, r *http.Request) (*bom.Sheet, bom.FormConfig, bool) {
	sheet, err := h.catalog.Sheet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errorToHTTP(w, err)
		return nil, bom.FormConfig{}, false
	}
	cfg, err := h.catalog.FormConfig(r.Context())
	if err != nil {
		errorToHTTP(w, err)
		return nil, bom.FormConfig{}, false
	}
	sheet.Bind(cfg.FabricSchema(), cfg.TrimsSchema())
	return sheet, cfg, true
}

// validHeader runs submitted header values through the form engine:
// normalized, calculated fields recomputed, required fields checked.
func validHeader(w http.ResponseWriter, cfg bom.FormConfig, header types.Record) (types.Record, bool) {
	f := form.New(cfg.HeaderSchema())
	for _, fd := range cfg.HeaderFields {
		if v, ok := header[fd.Name]; ok {
			f.Set(fd.Name, v)
		}
	}
	if err := f.Validate(); err != nil {
		errorToHTTP(w, err)
		return nil, false
	}
	return f.Record, true
}

func (h *BOMHandler) save(w http.ResponseWriter, r *http.Request, sheet *bom.Sheet) {
	if err := h.catalog.SaveSheet(r.Context(), sheet); err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

func (h *BOMHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Header types.Record `json:"header"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid sheet body")
		return
	}
	cfg, err := h.catalog.FormConfig(r.Context())
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	header, ok := validHeader(w, cfg, body.Header)
	if !ok {
		return
	}

	sheet := &bom.Sheet{
		Header: header,
		Pair:   *bom.NewPair(cfg.FabricSchema(), cfg.TrimsSchema()),
	}
	if err := h.catalog.SaveSheet(r.Context(), sheet); err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sheet)
}

func (h *BOMHandler) List(w http.ResponseWriter, r *http.Request) {
	sheets, err := h.catalog.Sheets(r.Context())
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filtered := sheets[:0]
		for _, s := range sheets {
			if s.Status == status {
				filtered = append(filtered, s)
			}
		}
		sheets = filtered
	}
	writeJSON(w, http.StatusOK, sheets)
}

func (h *BOMHandler) Get(w http.ResponseWriter, r *http.Request) {
	sheet, _, ok := h.loadSheet(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

// Update replaces the sheet's header and table data wholesale. Table
// structure operations have their own endpoints.
func (h *BOMHandler) Update(w http.ResponseWriter, r *http.Request) {
	sheet, cfg, ok := h.loadSheet(w, r)
	if !ok {
		return
	}
	var body struct {
		Header types.Record `json:"header"`
		Status string       `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid sheet body")
		return
	}
	if body.Header != nil {
		header, ok := validHeader(w, cfg, body.Header)
		if !ok {
			return
		}
		sheet.Header = header
	}
	if body.Status != "" {
		sheet.Status = body.Status
	}
	h.save(w, r, sheet)
}

func (h *BOMHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteSheet(r.Context(), chi.URLParam(r, "id")); err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AddTable appends a fabric table and its trims companion. With
// ?side=trims it appends a standalone trims table instead.
func (h *BOMHandler) AddTable(w http.ResponseWriter, r *http.Request) {
	sheet, _, ok := h.loadSheet(w, r)
	if !ok {
		return
	}
	if bom.Side(r.URL.Query().Get("side")) == bom.SideTrims {
		sheet.AddCompanionTable()
	} else {
		sheet.AddTable()
	}
	h.save(w, r, sheet)
}

// CopyTable clones a fabric table and its trims companion under a new
// shared id.
func (h *BOMHandler) CopyTable(w http.ResponseWriter, r *http.Request) {
	sheet, _, ok := h.loadSheet(w, r)
	if !ok {
		return
	}
	tableID, ok := parseInt(w, chi.URLParam(r, "tableID"), "table id")
	if !ok {
		return
	}
	if err := sheet.CopyTable(tableID); err != nil {
		errorToHTTP(w, err)
		return
	}
	h.save(w, r, sheet)
}

// DeleteTable removes a fabric table and its trims companion together.
func (h *BOMHandler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	sheet, _, ok := h.loadSheet(w, r)
	if !ok {
		return
	}
	tableID, ok := parseInt(w, chi.URLParam(r, "tableID"), "table id")
	if !ok {
		return
	}
	if err := sheet.DeleteTable(tableID); err != nil {
		errorToHTTP(w, err)
		return
	}
	h.save(w, r, sheet)
}

func (h *BOMHandler) AddRow(w http.ResponseWriter, r *http.Request) {
	sheet, _, ok := h.loadSheet(w, r)
	if !ok {
		return
	}
	side, ok := parseSide(w, r)
	if !ok {
		return
	}
	tableID, ok := parseInt(w, chi.URLParam(r, "tableID"), "table id")
	if !ok {
		return
	}
	if err := sheet.AddRow(side, tableID); err != nil {
		errorToHTTP(w, err)
		return
	}
	h.save(w, r, sheet)
}

func (h *BOMHandler) CopyRow(w http.ResponseWriter, r *http.Request) {
	sheet, _, ok := h.loadSheet(w, r)
	if !ok {
		return
	}
	side, ok := parseSide(w, r)
	if !ok {
		return
	}
	tableID, ok := parseInt(w, chi.URLParam(r, "tableID"), "table id")
	if !ok {
		return
	}
	index, ok := parseInt(w, chi.URLParam(r, "index"), "row index")
	if !ok {
		return
	}
	if err := sheet.CopyRow(side, tableID, index); err != nil {
		errorToHTTP(w, err)
		return
	}
	h.save(w, r, sheet)
}

func (h *BOMHandler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	sheet, _, ok := h.loadSheet(w, r)
	if !ok {
		return
	}
	side, ok := parseSide(w, r)
	if !ok {
		return
	}
	tableID, ok := parseInt(w, chi.URLParam(r, "tableID"), "table id")
	if !ok {
		return
	}
	index, ok := parseInt(w, chi.URLParam(r, "index"), "row index")
	if !ok {
		return
	}
	if err := sheet.DeleteRow(side, tableID, index); err != nil {
		errorToHTTP(w, err)
		return
	}
	h.save(w, r, sheet)
}

// SetCell writes one cell of one row, recalculating the row.
func (h *BOMHandler) SetCell(w http.ResponseWriter, r *http.Request) {
	sheet, _, ok := h.loadSheet(w, r)
	if !ok {
		return
	}
	side, ok := parseSide(w, r)
	if !ok {
		return
	}
	tableID, ok := parseInt(w, chi.URLParam(r, "tableID"), "table id")
	if !ok {
		return
	}
	index, ok := parseInt(w, chi.URLParam(r, "index"), "row index")
	if !ok {
		return
	}
	var body struct {
		Field string `json:"field"`
		Value any    `json:"value"`
	}
	if err := decodeJSON(r, &body); err != nil || body.Field == "" {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid cell body")
		return
	}
	if err := sheet.SetCell(side, tableID, index, body.Field, body.Value); err != nil {
		errorToHTTP(w, err)
		return
	}
	h.save(w, r, sheet)
}

// Combos lists the distinct combo values of one fabric table, the
// choices its companion trims rows can select.
func (h *BOMHandler) Combos(w http.ResponseWriter, r *http.Request) {
	sheet, _, ok := h.loadSheet(w, r)
	if !ok {
		return
	}
	tableID, ok := parseInt(w, chi.URLParam(r, "tableID"), "table id")
	if !ok {
		return
	}
	combos := sheet.ComboOptions(tableID, "comboName")
	if combos == nil {
		combos = []string{}
	}
	writeJSON(w, http.StatusOK, combos)
}

// FormConfig returns the current BOM form layout.
func (h *BOMHandler) FormConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.catalog.FormConfig(r.Context())
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// SaveFormConfig replaces the BOM form layout.
func (h *BOMHandler) SaveFormConfig(w http.ResponseWriter, r *http.Request) {
	var cfg bom.FormConfig
	if err := decodeJSON(r, &cfg); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid form config body")
		return
	}
	if err := h.catalog.SaveFormConfig(r.Context(), cfg); err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}
