// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the SkillCheck API.

# Handler Types

Each handler is a struct with its dependencies injected:

  - AuthHandler: signup, login, logout, me, email verification
  - QuizHandler: quiz generation, submission, roadmap, flow retrieval
  - AIHandler: raw prompt-to-text endpoint backed by the configured provider

Handlers are created via constructor functions:

	authHandler := handlers.NewAuthHandler(db, cfg)
	quizHandler := handlers.NewQuizHandler(db, cfg, provider)

# Authentication

Session cookies gate the quiz endpoints. Every gated handler resolves the
cookie through the session package on each request:

	POST /api/auth/signup       → Signup (issues a verification code)
	POST /api/auth/login        → Login (sets the session cookie)
	POST /api/auth/logout       → Logout (idempotent)
	GET  /api/auth/me           → Me (never errors; user null on failure)
	POST /api/auth/verify-email → VerifyEmail

Login failures always read "Invalid credentials" regardless of whether the
email exists.

# Quiz Flow

A flow links one generated quiz to its eventual analysis:

	POST /api/app/getquiz          → GetQuiz (quiz + flow created)
	POST /api/app/submitquiz       → SubmitQuiz (answers stored, analysis linked)
	POST /api/app/getroadmap       → GetRoadmap (nothing persisted)
	GET  /api/app/getflow/{flowId} → GetFlow (resolved quiz + analysis view)

# AI Calls

Model replies are treated as untrusted text: the fenced JSON block is
extracted and schema-validated before anything is persisted. A malformed
reply is retried once; timeouts and transport failures are not. Raw model
output is logged but never returned to clients.

	POST /api/gemini/geminiai → GenerateText (prompt in, text out)
*/
package handlers
