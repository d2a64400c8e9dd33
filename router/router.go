// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/skillcheck/server/cliparse"
	"github.com/skillcheck/server/handlers"
	"github.com/skillcheck/server/llm"
	"github.com/skillcheck/server/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, provider llm.Provider) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	quizHandler := handlers.NewQuizHandler(db, cfg, provider)
	aiHandler := handlers.NewAIHandler(cfg, provider)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication
	mux.HandleFunc("POST /api/auth/signup", middleware.WithLogging(authHandler.Signup))
	mux.HandleFunc("POST /api/auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /api/auth/me", middleware.WithLogging(authHandler.Me))
	mux.HandleFunc("POST /api/auth/verify-email", middleware.WithLogging(authHandler.VerifyEmail))

	// Quiz flow (session gated inside the handlers)
	mux.HandleFunc("POST /api/app/getquiz", middleware.WithLogging(quizHandler.GetQuiz))
	mux.HandleFunc("POST /api/app/submitquiz", middleware.WithLogging(quizHandler.SubmitQuiz))
	mux.HandleFunc("POST /api/app/getroadmap", middleware.WithLogging(quizHandler.GetRoadmap))
	mux.HandleFunc("GET /api/app/getflow/{flowId}", middleware.WithLogging(quizHandler.GetFlow))

	// Raw AI text service
	mux.HandleFunc("POST /api/gemini/geminiai", middleware.WithLogging(aiHandler.GenerateText))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("skillcheck API v1"))
	})

	return middleware.CORS(mux, cfg.CORSOrigin)
}
