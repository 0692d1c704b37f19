// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendSQLite    = "sqlite"
	BackendFirestore = "firestore"
)

// Config holds everything the server entrypoint needs.
type Config struct {
	Port         string
	StoreBackend string
	DBPath       string // sqlite backend
	ProjectID    string // firestore backend
	DevUserID    string // non-empty enables the static verifier
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	// Missing .env is fine; env vars may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getenv("PORT", "8080"),
		StoreBackend: getenv("FINATA_STORE", BackendSQLite),
		DBPath:       getenv("FINATA_DB", "finata.db"),
		ProjectID:    os.Getenv("GOOGLE_PROJECT_ID"),
		DevUserID:    os.Getenv("FINATA_DEV_USER"),
	}

	switch cfg.StoreBackend {
	case BackendSQLite:
		if cfg.DevUserID == "" && cfg.ProjectID == "" {
			return nil, fmt.Errorf("sqlite backend needs FINATA_DEV_USER or GOOGLE_PROJECT_ID for token verification")
		}
	case BackendFirestore:
		if cfg.ProjectID == "" {
			return nil, fmt.Errorf("firestore backend requires GOOGLE_PROJECT_ID")
		}
	default:
		return nil, fmt.Errorf("unknown store backend %q (want %s or %s)", cfg.StoreBackend, BackendSQLite, BackendFirestore)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
