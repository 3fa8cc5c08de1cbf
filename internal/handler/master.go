package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfgworks/dynaform/internal/master"
	"github.com/mfgworks/dynaform/internal/schema"
)

// MasterHandler serves resolved option lists for master-bound fields.
type MasterHandler struct {
	resolver *master.Resolver
}

func NewMasterHandler(resolver *master.Resolver) *MasterHandler {
	return &MasterHandler{resolver: resolver}
}

// Options resolves one master collection into selectable options. The
// display_field parameter overrides the label attribute; it defaults to
// the conventional "name" fallback.
func (h *MasterHandler) Options(w http.ResponseWriter, r *http.Request) {
	fd := schema.FieldDescriptor{
		Type:               schema.FieldMasterDropdown,
		MasterSource:       chi.URLParam(r, "source"),
		MasterDisplayField: r.URL.Query().Get("display_field"),
	}
	writeJSON(w, http.StatusOK, h.resolver.Resolve(r.Context(), fd))
}
