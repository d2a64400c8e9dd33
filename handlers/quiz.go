// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/skillcheck/server/cliparse"
	"github.com/skillcheck/server/llm"
	"github.com/skillcheck/server/middleware"
	"github.com/skillcheck/server/models"
	"github.com/skillcheck/server/prompts"
	"github.com/skillcheck/server/session"
)

type QuizHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	provider llm.Provider
}

func NewQuizHandler(db *sql.DB, cfg cliparse.Config, provider llm.Provider) *QuizHandler {
	return &QuizHandler{db: db, cfg: cfg, provider: provider}
}

// requireUser runs the session gate and writes the 401 response itself when
// resolution fails. Callers stop on a nil user.
func (h *QuizHandler) requireUser(w http.ResponseWriter, r *http.Request) *models.User {
	user, err := session.Resolve(h.db, session.TokenFromRequest(r))
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoSession):
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		case errors.Is(err, session.ErrExpired):
			session.ClearCookie(w)
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Session expired")
		case errors.Is(err, session.ErrInvalidSession):
			session.ClearCookie(w)
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session")
		default:
			slog.Error("failed to resolve session", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		}
		return nil
	}
	return user
}

// askAI calls the provider, extracts the fenced JSON payload and hands it to
// decode. A malformed or mis-shaped model response is retried once with the
// same prompt; timeouts and transport failures are never retried.
func (h *QuizHandler) askAI(ctx context.Context, prompt string, decode func(json.RawMessage) error) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		text, err := h.provider.GenerateText(ctx, prompt)
		if err != nil {
			return err
		}

		raw, err := prompts.ExtractJSONBlock(text)
		if err == nil {
			err = decode(raw)
		}
		if err == nil {
			return nil
		}

		var malformed *prompts.MalformedResponseError
		var shape *prompts.PayloadShapeError
		if !errors.As(err, &malformed) && !errors.As(err, &shape) {
			return err
		}

		slog.Warn("unusable AI response", "error", err, "provider", h.provider.Name(), "attempt", attempt+1)
		lastErr = err
	}
	return lastErr
}

// writeAIError translates an AI pipeline failure into a client response.
// Raw model output never reaches the client.
func writeAIError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		middleware.ErrorResponse(w, http.StatusInternalServerError, "AI request timed out")
	default:
		var malformed *prompts.MalformedResponseError
		var shape *prompts.PayloadShapeError
		if errors.As(err, &malformed) || errors.As(err, &shape) {
			middleware.ErrorResponse(w, http.StatusInternalServerError, "AI returned an invalid response")
			return
		}
		middleware.ErrorResponse(w, http.StatusInternalServerError, "AI service unavailable")
	}
}

// GetQuiz handles POST /api/app/getquiz
// Generates a quiz from the user's skill description, persists it and links
// a new flow to it.
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	user := h.requireUser(w, r)
	if user == nil {
		return
	}

	var req models.GetQuizRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.UserRes == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userRes is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.AITimeout)
	defer cancel()

	var questions []models.Question
	err := h.askAI(ctx, prompts.QuizPrompt(req.UserRes), func(raw json.RawMessage) error {
		var decodeErr error
		questions, decodeErr = prompts.ValidateQuizPayload(raw)
		return decodeErr
	})
	if err != nil {
		slog.Error("quiz generation failed", "error", err, "user_id", user.ID)
		writeAIError(w, err)
		return
	}

	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		slog.Error("failed to marshal questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save quiz")
		return
	}

	// Quiz first, then flow. There is no cross-record transaction: a flow
	// insert failure leaves an orphan quiz, which reads are built to
	// tolerate.
	quizID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO quiz (id, user_id, questions, created_at)
		VALUES ($1, $2, $3, $4)
	`, quizID, user.ID, questionsJSON, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert quiz", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save quiz")
		return
	}

	flowID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO flow (id, user_id, quiz_id, analysis_id, created_at)
		VALUES ($1, $2, $3, NULL, $4)
	`, flowID, user.ID, quizID, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert flow", "error", err, "quiz_id", quizID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save quiz")
		return
	}

	slog.Info("quiz generated", "user_id", user.ID, "quiz_id", quizID, "flow_id", flowID)

	middleware.JSONResponse(w, http.StatusOK, models.GetQuizResponse{
		Success: true,
		Message: "Quiz generated",
		Data:    questions,
		QuizID:  quizID,
		FlowID:  flowID,
	})
}

// SubmitQuiz handles POST /api/app/submitquiz
// Stores the user's answers and produces the AI performance analysis linked
// back to the quiz's flow.
func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	user := h.requireUser(w, r)
	if user == nil {
		return
	}

	var req models.SubmitQuizRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	submitted := req.CurrentQuizData
	if submitted.QuizID == "" || len(submitted.Questions) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "currentQiuzData with quizId and questions is required")
		return
	}

	answersJSON, err := json.Marshal(submitted.Questions)
	if err != nil {
		slog.Error("failed to marshal answers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit quiz")
		return
	}

	// The question list is replaced wholesale; ownership is enforced by the
	// WHERE clause rather than a prior read.
	res, err := h.db.Exec(`
		UPDATE quiz SET questions = $1 WHERE id = $2 AND user_id = $3
	`, answersJSON, submitted.QuizID, user.ID)
	if err != nil {
		slog.Error("failed to update quiz", "error", err, "quiz_id", submitted.QuizID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit quiz")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Quiz not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.AITimeout)
	defer cancel()

	var payload *models.AnalysisPayload
	err = h.askAI(ctx, prompts.AnalysisPrompt(string(answersJSON)), func(raw json.RawMessage) error {
		var decodeErr error
		payload, decodeErr = prompts.ValidateAnalysisPayload(raw)
		return decodeErr
	})
	if err != nil {
		slog.Error("analysis generation failed", "error", err, "user_id", user.ID, "quiz_id", submitted.QuizID)
		writeAIError(w, err)
		return
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal analysis", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save analysis")
		return
	}

	analysisID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO analysis (id, user_id, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`, analysisID, user.ID, payloadJSON, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert analysis", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save analysis")
		return
	}

	// A quiz without a flow (orphan) still gets its analysis; the missing
	// link is only logged.
	res, err = h.db.Exec(`
		UPDATE flow SET analysis_id = $1 WHERE quiz_id = $2 AND user_id = $3
	`, analysisID, submitted.QuizID, user.ID)
	if err != nil {
		slog.Error("failed to link analysis to flow", "error", err, "analysis_id", analysisID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save analysis")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		slog.Warn("no flow found for submitted quiz", "quiz_id", submitted.QuizID, "user_id", user.ID)
	}

	slog.Info("quiz analyzed", "user_id", user.ID, "quiz_id", submitted.QuizID, "analysis_id", analysisID)

	middleware.JSONResponse(w, http.StatusOK, models.SubmitQuizResponse{
		Success:    true,
		Message:    "Quiz analyzed",
		Analysis:   *payload,
		AnalysisID: analysisID,
	})
}

// GetRoadmap handles POST /api/app/getroadmap
// Produces a study roadmap from the user's details. Nothing is persisted;
// the extracted JSON is passed through as-is.
func (h *QuizHandler) GetRoadmap(w http.ResponseWriter, r *http.Request) {
	user := h.requireUser(w, r)
	if user == nil {
		return
	}

	var req models.RoadmapRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.UserDataRes) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userDataRes is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.AITimeout)
	defer cancel()

	var roadmap json.RawMessage
	err := h.askAI(ctx, prompts.RoadmapPrompt(string(req.UserDataRes)), func(raw json.RawMessage) error {
		roadmap = raw
		return nil
	})
	if err != nil {
		slog.Error("roadmap generation failed", "error", err, "user_id", user.ID)
		writeAIError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RoadmapResponse{
		Success: true,
		Message: "Roadmap generated",
		Roadmap: roadmap,
	})
}

// GetFlow handles GET /api/app/getflow/{flowId}
// Returns the flow with its quiz and analysis references resolved. A flow
// belonging to another user reads exactly like a missing one.
func (h *QuizHandler) GetFlow(w http.ResponseWriter, r *http.Request) {
	user := h.requireUser(w, r)
	if user == nil {
		return
	}

	flowID := r.PathValue("flowId")
	if flowID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "flowId is required")
		return
	}

	var flow models.Flow
	err := h.db.QueryRow(`
		SELECT id, user_id, quiz_id, analysis_id, created_at
		FROM flow WHERE id = $1 AND user_id = $2
	`, flowID, user.ID).Scan(&flow.ID, &flow.UserID, &flow.QuizID, &flow.AnalysisID, &flow.CreatedAt)

	if err == sql.ErrNoRows {
		// Kept as a 200 with success false for client compatibility.
		middleware.JSONResponse(w, http.StatusOK, models.ErrorResponse{
			Success: false,
			Message: "Flow not found",
		})
		return
	}
	if err != nil {
		slog.Error("failed to query flow", "error", err, "flow_id", flowID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	view := models.FlowView{
		ID:     flow.ID,
		UserID: flow.UserID,
	}

	// Both references are weak: a deleted quiz or analysis leaves the slot
	// null rather than failing the read.
	quiz, err := h.loadQuiz(flow.QuizID)
	if err != nil {
		slog.Error("failed to load flow quiz", "error", err, "quiz_id", flow.QuizID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	view.Quiz = quiz

	if flow.AnalysisID != nil {
		analysis, err := h.loadAnalysis(*flow.AnalysisID)
		if err != nil {
			slog.Error("failed to load flow analysis", "error", err, "analysis_id", *flow.AnalysisID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		view.Analysis = analysis
	}

	middleware.JSONResponse(w, http.StatusOK, models.GetFlowResponse{
		Success: true,
		Message: "Flow found",
		Flow:    view,
	})
}

func (h *QuizHandler) loadQuiz(quizID string) (*models.Quiz, error) {
	var quiz models.Quiz
	var questionsJSON []byte
	err := h.db.QueryRow(`
		SELECT id, user_id, questions, created_at FROM quiz WHERE id = $1
	`, quizID).Scan(&quiz.ID, &quiz.UserID, &questionsJSON, &quiz.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questionsJSON, &quiz.Questions); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (h *QuizHandler) loadAnalysis(analysisID string) (*models.Analysis, error) {
	var analysis models.Analysis
	var payloadJSON []byte
	err := h.db.QueryRow(`
		SELECT id, user_id, payload, created_at FROM analysis WHERE id = $1
	`, analysisID).Scan(&analysis.ID, &analysis.UserID, &payloadJSON, &analysis.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payloadJSON, &analysis.Payload); err != nil {
		return nil, err
	}
	return &analysis, nil
}
