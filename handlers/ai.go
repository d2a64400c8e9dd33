// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/skillcheck/server/cliparse"
	"github.com/skillcheck/server/llm"
	"github.com/skillcheck/server/middleware"
	"github.com/skillcheck/server/models"
)

// AIHandler exposes the configured text provider as a plain prompt-in,
// text-out endpoint. The orchestrator's http provider can point at this
// route, so one deployment can serve as another's AI backend.
type AIHandler struct {
	cfg      cliparse.Config
	provider llm.Provider
}

func NewAIHandler(cfg cliparse.Config, provider llm.Provider) *AIHandler {
	return &AIHandler{cfg: cfg, provider: provider}
}

// GenerateText handles POST /api/gemini/geminiai
func (h *AIHandler) GenerateText(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateTextRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Prompt == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "prompt is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.AITimeout)
	defer cancel()

	text, err := h.provider.GenerateText(ctx, req.Prompt)
	if err != nil {
		slog.Error("text generation failed", "error", err, "provider", h.provider.Name())
		if errors.Is(err, context.DeadlineExceeded) {
			middleware.ErrorResponse(w, http.StatusInternalServerError, "AI request timed out")
			return
		}
		middleware.ErrorResponse(w, http.StatusInternalServerError, "AI service unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.GenerateTextResponse{
		Success: true,
		Message: "Text generated",
		Text:    text,
	})
}
