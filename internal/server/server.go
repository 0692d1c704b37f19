// Package server wires the HTTP routes of the ingestion engine.
package server

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/finata-app/finata/internal/handlers"
	"github.com/finata-app/finata/internal/middleware"
	"github.com/finata-app/finata/internal/store"
)

// Server is the statement ingestion API server.
type Server struct {
	mux *http.ServeMux
}

// New creates a server over the given record store and token verifier.
func New(s store.Store, verifier middleware.TokenVerifier, log zerolog.Logger) *Server {
	srv := &Server{mux: http.NewServeMux()}
	srv.setupRoutes(s, verifier, log)
	return srv
}

// setupRoutes configures all HTTP routes
func (srv *Server) setupRoutes(s store.Store, verifier middleware.TokenVerifier, log zerolog.Logger) {
	// Health check (no auth required)
	srv.mux.HandleFunc("/health", handlers.HealthCheck)

	importHandler := handlers.NewImportHandler(s, log)
	detectHandler := handlers.NewDetectHandler(log)
	budgetHandler := handlers.NewBudgetHandler(s, log)
	authMiddleware := middleware.NewAuthMiddleware(verifier)

	srv.mux.Handle("POST /api/import", authMiddleware.RequireAuth(http.HandlerFunc(importHandler.Import)))
	srv.mux.Handle("POST /api/detect", authMiddleware.RequireAuth(http.HandlerFunc(detectHandler.Detect)))
	srv.mux.Handle("POST /api/budgets", authMiddleware.RequireAuth(http.HandlerFunc(budgetHandler.CreateBudget)))
	srv.mux.Handle("GET /api/billing-period", authMiddleware.RequireAuth(http.HandlerFunc(budgetHandler.BillingPeriod)))
}

// Handler returns the HTTP handler
func (srv *Server) Handler() http.Handler {
	return middleware.CORS(srv.mux)
}
