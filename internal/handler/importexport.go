package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mfgworks/dynaform/internal/importer"
	"github.com/mfgworks/dynaform/internal/store"
	"github.com/mfgworks/dynaform/internal/upload"
)

// maxUploadBytes caps import and attachment uploads at 25 MiB.
const maxUploadBytes = 25 << 20

// ImportHandler loads CSV files into a schema's record collection.
type ImportHandler struct {
	catalog  *store.Catalog
	importer *importer.Importer
}

func NewImportHandler(catalog *store.Catalog) *ImportHandler {
	return &ImportHandler{catalog: catalog, importer: importer.New(catalog)}
}

// Import accepts either a multipart "file" part or a raw CSV body.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	sc, err := h.catalog.Schema(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errorToHTTP(w, err)
		return
	}

	var body io.Reader
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", "missing file part")
			return
		}
		defer file.Close()
		body = file
	} else {
		defer r.Body.Close()
		body = r.Body
	}

	res, err := h.importer.ImportCSV(r.Context(), sc, io.LimitReader(body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FILE", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// UploadHandler stores file attachments and returns their reference.
type UploadHandler struct {
	uploader upload.Uploader
}

func NewUploadHandler(uploader upload.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "missing file part")
		return
	}
	defer file.Close()

	url, err := h.uploader.Save(header.Filename, file)
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
