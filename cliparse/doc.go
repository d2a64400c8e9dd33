// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8080)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - Env: "development" or "production" (controls cookie Secure flag)
  - CORSOrigin: Allowed frontend origin (default: http://localhost:5173)
  - AIProvider: "http", "gemini", "openai", or "mock" (default: http)
  - AIServiceURL: Endpoint for the http provider
  - AITimeout: Per-call deadline for the AI Text Service (default: 30s)

# CLI Flags

	-port (-p)          Server port
	-database-url (-d)  Database URL
	-database-type (-t) Database type (sqlite or postgres)
	-ai-provider        AI provider
	-ai-url             AI text service URL
	-ai-timeout         AI call timeout in seconds

# Environment Variables

Flags fall back to environment variables:

	PORT           → -port
	DATABASE_URL   → -database-url
	DATABASE_TYPE  → -database-type
	AI_PROVIDER    → -ai-provider
	AI_SERVICE_URL → -ai-url
	AI_TIMEOUT     → -ai-timeout

Provider credentials are env-only: GEMINI_API_KEY, GEMINI_MODEL,
OPENAI_API_KEY, OPENAI_MODEL, OPENAI_BASE_URL. ENV and CORS_ORIGIN are
also env-only. CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - AI_SERVICE_URL must be provided when AIProvider is "http"
  - the selected provider's API key must be set for gemini/openai

# Session TTL

SessionTTL (2 hours) is the single canonical session lifetime, used for
both the stored expiry and the cookie max-age.

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(db, cfg, provider)
*/
package cliparse
