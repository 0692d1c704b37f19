// Package handlers implements the HTTP surface of the ingestion engine.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// maxUploadBytes bounds multipart parsing; the effective upload limit is
// enforced upstream by the reverse proxy.
const maxUploadBytes = 10 << 20

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response body")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}
