package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mfgworks/dynaform/internal/form"
	"github.com/mfgworks/dynaform/internal/grid"
	"github.com/mfgworks/dynaform/internal/store"
	"github.com/mfgworks/dynaform/internal/types"
)

// RecordHandler serves record CRUD and grid queries for any schema.
type RecordHandler struct {
	catalog *store.Catalog
}

func NewRecordHandler(catalog *store.Catalog) *RecordHandler {
	return &RecordHandler{catalog: catalog}
}

// List runs the grid pipeline over a schema's records. Query
// parameters: search, filter.<field>, sort, dir, group_by,
// sub_group_by.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	schemaID := chi.URLParam(r, "id")
	sc, err := h.catalog.Schema(r.Context(), schemaID)
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	records, err := h.catalog.Records(r.Context(), schemaID)
	if err != nil {
		errorToHTTP(w, err)
		return
	}

	res := grid.Apply(sc, records, gridQuery(r))
	writeJSON(w, http.StatusOK, res)
}

// gridQuery builds a grid query from request parameters.
func gridQuery(r *http.Request) grid.Query {
	params := r.URL.Query()
	q := grid.Query{
		Search:     params.Get("search"),
		GroupBy:    params.Get("group_by"),
		SubGroupBy: params.Get("sub_group_by"),
	}
	if field := params.Get("sort"); field != "" {
		dir := grid.Direction(params.Get("dir"))
		if dir != grid.DirectionAsc && dir != grid.DirectionDesc {
			dir = grid.DirectionAsc
		}
		q.Sort = grid.Sort{Field: field, Direction: dir}
	}
	for key, values := range params {
		name, ok := strings.CutPrefix(key, "filter.")
		if !ok || len(values) == 0 || values[0] == "" {
			continue
		}
		if q.Filters == nil {
			q.Filters = map[string]string{}
		}
		q.Filters[name] = values[0]
	}
	return q
}

func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.catalog.Record(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "recordID"))
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	schemaID := chi.URLParam(r, "id")
	sc, err := h.catalog.Schema(r.Context(), schemaID)
	if err != nil {
		errorToHTTP(w, err)
		return
	}

	var body types.Record
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid record body")
		return
	}

	// Run the payload through the form engine so stored records are
	// normalized, recalculated, and validated.
	f := form.New(sc)
	for _, fd := range sc.Fields {
		if v, ok := body[fd.Name]; ok {
			f.Set(fd.Name, v)
		}
	}
	if err := f.Validate(); err != nil {
		errorToHTTP(w, err)
		return
	}

	rec, err := h.catalog.CreateRecord(r.Context(), schemaID, f.Record)
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	schemaID := chi.URLParam(r, "id")
	recordID := chi.URLParam(r, "recordID")
	sc, err := h.catalog.Schema(r.Context(), schemaID)
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	existing, err := h.catalog.Record(r.Context(), schemaID, recordID)
	if err != nil {
		errorToHTTP(w, err)
		return
	}

	var body types.Record
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid record body")
		return
	}

	f := form.Load(sc, existing)
	for _, fd := range sc.Fields {
		if v, ok := body[fd.Name]; ok {
			f.Set(fd.Name, v)
		}
	}
	if err := f.Validate(); err != nil {
		errorToHTTP(w, err)
		return
	}

	rec, err := h.catalog.UpdateRecord(r.Context(), schemaID, recordID, f.Record)
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteRecord(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "recordID")); err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
