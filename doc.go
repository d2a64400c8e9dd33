// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the SkillCheck API server.

SkillCheck is a skill-assessment service: users describe what they know,
an AI model generates a 20-question multiple-choice quiz, and submitting
answers produces a performance analysis and study recommendations.

# Starting the Server

The server reads configuration from a .env file, environment variables or
CLI flags:

	DATABASE_URL=skillcheck.db AI_PROVIDER=gemini GEMINI_API_KEY=... go run .

Or with flags:

	go run . --port 8080 --database-url "postgres://..." --database-type postgres --ai-provider openai

# Configuration

Required settings:

  - DATABASE_URL (-database-url, -d): SQLite path or PostgreSQL connection string
  - AI_SERVICE_URL (-ai-url): upstream text service (http provider only)
  - GEMINI_API_KEY / OPENAI_API_KEY: credentials for the direct providers

Optional settings:

  - PORT (-port, -p): Server port (default: 8080)
  - DATABASE_TYPE (-database-type, -t): sqlite or postgres (default: sqlite)
  - AI_PROVIDER (-ai-provider): http, gemini, openai or mock (default: http)
  - AI_TIMEOUT (-ai-timeout): per-call timeout in seconds (default: 30)
  - ENV: development or production (controls the Secure cookie flag)
  - CORS_ORIGIN: allowed frontend origin

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, quiz flow, AI text)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Domain and request/response types
  - auth: Password hashing, IDs, verification codes
  - session: Cookie sessions and the per-request session gate
  - llm: AI text providers behind one interface
  - prompts: Prompt builders, fenced-JSON extraction, payload schemas
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
