package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/mfgworks/dynaform/internal/bom"
	"github.com/mfgworks/dynaform/internal/form"
	"github.com/mfgworks/dynaform/internal/schema"
	"github.com/mfgworks/dynaform/internal/store"
)

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("writeJSON encode")
	}
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// errorToHTTP maps engine errors to appropriate HTTP responses.
func errorToHTTP(w http.ResponseWriter, err error) {
	var verr *schema.ValidationError
	var missing *form.MissingRequiredFieldError
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, bom.ErrTableNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, bom.ErrRowOutOfRange):
		writeError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.As(err, &missing):
		writeError(w, http.StatusBadRequest, "MISSING_REQUIRED", err.Error())
	case errors.Is(err, bom.ErrLastTable):
		writeError(w, http.StatusConflict, "LAST_TABLE", err.Error())
	default:
		log.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// parseInt extracts an integer query or path value, with a bad-request
// response on failure.
func parseInt(w http.ResponseWriter, raw, name string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid "+name+": "+raw)
		return 0, false
	}
	return n, true
}

// parseSide extracts the fabric/trims side query parameter, defaulting
// to fabric.
func parseSide(w http.ResponseWriter, r *http.Request) (bom.Side, bool) {
	raw := r.URL.Query().Get("side")
	if raw == "" {
		return bom.SideFabric, true
	}
	side := bom.Side(raw)
	if !side.Valid() {
		writeError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid side: "+raw)
		return "", false
	}
	return side, true
}
