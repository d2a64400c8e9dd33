// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/skillcheck/server/auth"
	"github.com/skillcheck/server/models"
)

var (
	// ErrNoSession means the request carried no session token.
	ErrNoSession = errors.New("not authenticated")
	// ErrInvalidSession means the token resolved to no usable session.
	ErrInvalidSession = errors.New("invalid session")
	// ErrExpired means the session existed but its expiry has passed.
	// The row is deleted as a side effect of the check.
	ErrExpired = errors.New("session expired")
)

// Create inserts a new session for the user and returns it. The token is a
// random 32-hex-character ID with no embedded meaning.
func Create(db *sql.DB, userID string, ttl time.Duration) (*models.Session, error) {
	id, err := auth.GenerateID(16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	now := time.Now().UTC()
	s := &models.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	_, err = db.Exec(`
		INSERT INTO session (id, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, s.ID, s.UserID, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	return s, nil
}

// Delete removes a session by ID. Deleting a session that does not exist is
// not an error (logout is idempotent).
func Delete(db *sql.DB, id string) error {
	_, err := db.Exec(`DELETE FROM session WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Resolve is the session gate: it turns an inbound session token into the
// owning user or fails. Expired sessions are deleted the moment they are
// observed; there is no background sweep. The returned user never includes
// the password hash. Resolve runs fresh on every request - the resolved
// identity is never cached.
func Resolve(db *sql.DB, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	var userID string
	var expiresAt time.Time
	err := db.QueryRow(`
		SELECT user_id, expires_at FROM session WHERE id = $1
	`, token).Scan(&userID, &expiresAt)

	if err == sql.ErrNoRows {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	if expiresAt.Before(time.Now()) {
		// Lazy cleanup: the expired row is gone after this observation,
		// so a second check reports an invalid session, not a second
		// expiry.
		if err := Delete(db, token); err != nil {
			slog.Error("failed to delete expired session", "error", err, "session_id", token)
		}
		return nil, ErrExpired
	}

	var user models.User
	err = db.QueryRow(`
		SELECT id, username, email, is_verified, created_at
		FROM app_user WHERE id = $1
	`, userID).Scan(&user.ID, &user.Username, &user.Email, &user.IsVerified, &user.CreatedAt)

	if err == sql.ErrNoRows {
		// Orphaned session: the user is gone; resolution fails.
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session user: %w", err)
	}

	return &user, nil
}
