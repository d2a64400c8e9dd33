// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the SkillCheck API.

# Route Registration

NewRouter returns the full handler chain, CORS included:

	handler := router.NewRouter(db, cfg, provider)

# Endpoints

Health:

	GET /health

Authentication (cookie sessions):

	POST /api/auth/signup       - Register, issues verification code
	POST /api/auth/login        - Log in, sets session cookie
	POST /api/auth/logout       - Log out (idempotent)
	GET  /api/auth/me           - Current user, or user null
	POST /api/auth/verify-email - Redeem verification code

Quiz flow (session required):

	POST /api/app/getquiz          - Generate and persist a quiz + flow
	POST /api/app/submitquiz       - Store answers, create analysis
	POST /api/app/getroadmap       - AI roadmap, nothing persisted
	GET  /api/app/getflow/{flowId} - Resolved flow view

AI text service:

	POST /api/gemini/geminiai - Prompt in, raw text out

# Handler Initialization

The router creates handler instances with dependency injection:

	authHandler := handlers.NewAuthHandler(db, cfg)
	quizHandler := handlers.NewQuizHandler(db, cfg, provider)
	aiHandler := handlers.NewAIHandler(cfg, provider)

The AI provider is constructed once in main and shared by every handler
that talks to the model.
*/
package router
