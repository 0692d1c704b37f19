package main

import (
	"context"
	"net/http"
	"os"

	"github.com/finata-app/finata/internal/config"
	"github.com/finata-app/finata/internal/logger"
	"github.com/finata-app/finata/internal/middleware"
	"github.com/finata-app/finata/internal/server"
	"github.com/finata-app/finata/internal/store"
	fsstore "github.com/finata-app/finata/internal/store/firestore"
	"github.com/finata-app/finata/internal/store/sqlite"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	var (
		recordStore store.Store
		verifier    middleware.TokenVerifier
	)

	switch cfg.StoreBackend {
	case config.BackendFirestore:
		client, err := fsstore.NewClient(ctx, cfg.ProjectID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Firestore")
		}
		defer client.Close()
		recordStore = client
		verifier = client.Auth

	default:
		db, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
		}
		defer db.Close()
		recordStore = db

		if cfg.ProjectID != "" {
			client, err := fsstore.NewClient(ctx, cfg.ProjectID)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to create token verifier")
			}
			defer client.Close()
			verifier = client.Auth
		} else {
			log.Warn().Str("user", cfg.DevUserID).Msg("token verification disabled, all requests run as the dev user")
			verifier = middleware.StaticVerifier{UserID: cfg.DevUserID}
		}
	}

	srv := server.New(recordStore, verifier, log)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("store", cfg.StoreBackend).Msg("listening")
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
