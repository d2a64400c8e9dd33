// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/skillcheck/server/auth"
	"github.com/skillcheck/server/cliparse"
	"github.com/skillcheck/server/middleware"
	"github.com/skillcheck/server/models"
	"github.com/skillcheck/server/session"
)

// verifyCodeTTL bounds how long an emailed verification code stays valid.
const verifyCodeTTL = time.Hour

type AuthHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// flowIDs returns the user's flow history, oldest first. The id tiebreak
// keeps the order stable for flows created in the same instant. Always
// returns a non-nil slice so the JSON field is [] rather than null.
func (h *AuthHandler) flowIDs(userID string) ([]string, error) {
	rows, err := h.db.Query(`
		SELECT id FROM flow WHERE user_id = $1 ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Username == "" || req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	// A username held by a different email is always a conflict, even when
	// that account is still unverified.
	var claimedBy string
	err := h.db.QueryRow(`
		SELECT email FROM app_user WHERE username = $1
	`, req.Username).Scan(&claimedBy)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to check username", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign up")
		return
	}
	if err == nil && claimedBy != req.Email {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Username already taken")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign up")
		return
	}

	verifyCode, err := auth.GenerateVerifyCode()
	if err != nil {
		slog.Error("failed to generate verification code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign up")
		return
	}
	codeExpiry := time.Now().UTC().Add(verifyCodeTTL)

	// Existing account for this email decides the path: verified accounts
	// are final, unverified ones are overwritten with the fresh signup.
	var userID string
	var isVerified bool
	err = h.db.QueryRow(`
		SELECT id, is_verified FROM app_user WHERE email = $1
	`, req.Email).Scan(&userID, &isVerified)

	switch {
	case err == sql.ErrNoRows:
		userID = uuid.NewString()
		_, err = h.db.Exec(`
			INSERT INTO app_user (id, username, email, password_hash, is_verified, verify_code, verify_code_expires_at, created_at)
			VALUES ($1, $2, $3, $4, FALSE, $5, $6, $7)
		`, userID, req.Username, req.Email, passwordHash, verifyCode, codeExpiry, time.Now().UTC())
		if err != nil {
			slog.Error("failed to insert user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign up")
			return
		}

	case err != nil:
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign up")
		return

	case isVerified:
		middleware.ErrorResponse(w, http.StatusBadRequest, "User already exists and is verified")
		return

	default:
		// Unverified: the previous signup attempt never completed, so the
		// new one replaces it.
		_, err = h.db.Exec(`
			UPDATE app_user
			SET username = $1, password_hash = $2, verify_code = $3, verify_code_expires_at = $4
			WHERE id = $5
		`, req.Username, passwordHash, verifyCode, codeExpiry, userID)
		if err != nil {
			slog.Error("failed to update unverified user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign up")
			return
		}
	}

	// Delivery is a no-op: there is no mail transport wired up, so the code
	// is only logged.
	slog.Info("verification code issued", "user_id", userID, "email", req.Email, "code", verifyCode)

	middleware.JSONResponse(w, http.StatusOK, models.SignupResponse{
		Success: true,
		Message: "User registered. Verification code sent.",
		UserID:  userID,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var user models.User
	err := h.db.QueryRow(`
		SELECT id, username, email, password_hash, is_verified
		FROM app_user WHERE email = $1
	`, req.Email).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.IsVerified)

	// Unknown email and wrong password produce the same message so the
	// response never reveals whether an account exists.
	if err == sql.ErrNoRows || (err == nil && !auth.CheckPassword(user.PasswordHash, req.Password)) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	s, err := session.Create(h.db, user.ID, cliparse.SessionTTL)
	if err != nil {
		slog.Error("failed to create session", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	session.SetCookie(w, s.ID, cliparse.SessionTTL, h.cfg.Env == "production")

	flows, err := h.flowIDs(user.ID)
	if err != nil {
		slog.Error("failed to list flows", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "ip", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Success: true,
		Message: "Logged in",
		User: models.PublicUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			FlowIDs:  flows,
		},
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := session.TokenFromRequest(r)
	if token != "" {
		if err := session.Delete(h.db, token); err != nil {
			slog.Error("failed to delete session", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log out")
			return
		}
	}

	session.ClearCookie(w)

	middleware.JSONResponse(w, http.StatusOK, models.LogoutResponse{
		Success: true,
		Message: "Logged out",
	})
}

// Me handles GET /api/auth/me
// Unlike the gated endpoints this never errors: a failed resolution answers
// 200 with user null and clears the stale cookie, so the frontend can poll
// it to decide whether a login screen is needed.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token := session.TokenFromRequest(r)
	user, err := session.Resolve(h.db, token)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			session.ClearCookie(w)
		}
		middleware.JSONResponse(w, http.StatusOK, models.MeResponse{
			Success: false,
			User:    nil,
		})
		return
	}

	flows, err := h.flowIDs(user.ID)
	if err != nil {
		slog.Error("failed to list flows", "error", err, "user_id", user.ID)
		middleware.JSONResponse(w, http.StatusOK, models.MeResponse{
			Success: false,
			User:    nil,
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{
		Success: true,
		User: &models.PublicUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			FlowIDs:  flows,
		},
	})
}

// VerifyEmail handles POST /api/auth/verify-email
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyEmailRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID == "" || req.Code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId and code are required")
		return
	}

	var storedCode sql.NullString
	var expiresAt sql.NullTime
	err := h.db.QueryRow(`
		SELECT verify_code, verify_code_expires_at FROM app_user WHERE id = $1
	`, req.UserID).Scan(&storedCode, &expiresAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid or expired verification code")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to verify email")
		return
	}

	if !storedCode.Valid || storedCode.String != req.Code ||
		!expiresAt.Valid || expiresAt.Time.Before(time.Now()) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid or expired verification code")
		return
	}

	_, err = h.db.Exec(`
		UPDATE app_user
		SET is_verified = TRUE, verify_code = NULL, verify_code_expires_at = NULL
		WHERE id = $1
	`, req.UserID)
	if err != nil {
		slog.Error("failed to mark user verified", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to verify email")
		return
	}

	slog.Info("email verified", "user_id", req.UserID)

	middleware.JSONResponse(w, http.StatusOK, models.VerifyEmailResponse{
		Success: true,
		Message: "Email verified",
	})
}
