package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfgworks/dynaform/internal/schema"
	"github.com/mfgworks/dynaform/internal/store"
)

// SchemaHandler serves schema CRUD and predefined-master management.
type SchemaHandler struct {
	catalog *store.Catalog
}

func NewSchemaHandler(catalog *store.Catalog) *SchemaHandler {
	return &SchemaHandler{catalog: catalog}
}

func (h *SchemaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var sc schema.Schema
	if err := decodeJSON(r, &sc); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid schema body")
		return
	}
	sc.ID = ""
	if err := h.catalog.SaveSchema(r.Context(), &sc); err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &sc)
}

func (h *SchemaHandler) List(w http.ResponseWriter, r *http.Request) {
	schemas, err := h.catalog.Schemas(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schemas)
}

func (h *SchemaHandler) Get(w http.ResponseWriter, r *http.Request) {
	sc, err := h.catalog.Schema(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (h *SchemaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.catalog.Schema(r.Context(), id)
	if err != nil {
		errorToHTTP(w, err)
		return
	}

	var sc schema.Schema
	if err := decodeJSON(r, &sc); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid schema body")
		return
	}
	sc.ID = id
	sc.CreatedAt = existing.CreatedAt
	sc.CreatedBy = existing.CreatedBy
	if err := h.catalog.SaveSchema(r.Context(), &sc); err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &sc)
}

func (h *SchemaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteSchema(r.Context(), chi.URLParam(r, "id")); err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// InitPredefined installs any missing built-in master schema.
func (h *SchemaHandler) InitPredefined(w http.ResponseWriter, r *http.Request) {
	created, err := h.catalog.EnsurePredefinedMasters(r.Context())
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"created": created})
}

// PredefinedStatus reports which built-in masters are installed.
func (h *SchemaHandler) PredefinedStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.catalog.PredefinedStatus(r.Context())
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
