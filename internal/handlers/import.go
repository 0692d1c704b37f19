package handlers

import (
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/finata-app/finata/internal/importer"
	"github.com/finata-app/finata/internal/middleware"
	"github.com/finata-app/finata/internal/store"
)

// ImportHandler handles statement uploads.
type ImportHandler struct {
	importer *importer.Importer
	log      zerolog.Logger
}

// NewImportHandler creates an import handler backed by the record store.
func NewImportHandler(s store.Store, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		importer: importer.New(s, log),
		log:      log,
	}
}

// Import handles POST /api/import. The multipart form carries the statement
// under "file" and an optional "cardId". The response body is always the
// full import outcome, counts plus row errors, so the client can report
// "N imported, M skipped" even on partial failure.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, errorResponse{Error: "failed to parse multipart form"})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, errorResponse{Error: "missing file field"})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, errorResponse{Error: "failed to read upload"})
		return
	}

	outcome, err := h.importer.Import(r.Context(), raw, importer.Options{
		UserID: userID,
		CardID: r.FormValue("cardId"),
	})
	if err != nil {
		// File-level failure. The outcome still carries the fatal message.
		writeJSON(w, h.log, http.StatusUnprocessableEntity, outcome)
		return
	}
	writeJSON(w, h.log, http.StatusOK, outcome)
}
