package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/finata-app/finata/internal/detect"
)

// DetectHandler exposes the institution detector as a standalone endpoint.
type DetectHandler struct {
	log zerolog.Logger
}

// NewDetectHandler creates a detect handler.
func NewDetectHandler(log zerolog.Logger) *DetectHandler {
	return &DetectHandler{log: log}
}

type detectRequest struct {
	Headers     []string `json:"headers"`
	SampleLines []string `json:"sampleLines"`
}

// Detect handles POST /api/detect. It takes just the header row and a
// handful of sample lines and returns the detection result; it never fails
// on content, only on malformed requests.
func (h *DetectHandler) Detect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	if len(req.Headers) == 0 {
		writeJSON(w, h.log, http.StatusBadRequest, errorResponse{Error: "headers are required"})
		return
	}

	writeJSON(w, h.log, http.StatusOK, detect.Detect(req.Headers, req.SampleLines))
}
