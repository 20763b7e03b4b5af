package config

import "errors"

// Configuration validation errors returned by Config.Validate
var (
	// ErrUnknownStore is returned when STORE_DRIVER names no supported backend.
	ErrUnknownStore = errors.New("unknown store driver: use mongo, postgres or sqlite")

	// ErrMissingDatabaseURL is returned when the postgres store is selected without DATABASE_URL.
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required for the postgres store")

	ErrUnknownProvider = errors.New("unknown question provider: use auto, catalog, gemini or ollama")

	// ErrMissingAPIKey is returned when gemini is requested explicitly without a key.
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY is required for the gemini provider")

	ErrInvalidTimeout = errors.New("invalid question timeout: must be positive")
)
