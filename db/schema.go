// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are always bound explicitly by the application so the same
// schema works on both postgres and sqlite (no NOW() defaults).
const schema = `
-- Users
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    is_verified BOOLEAN NOT NULL DEFAULT FALSE,
    verify_code TEXT,
    verify_code_expires_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_app_user_email ON app_user(email);
CREATE INDEX IF NOT EXISTS idx_app_user_username ON app_user(username);

-- Sessions
CREATE TABLE IF NOT EXISTS session (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    expires_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_user_id ON session(user_id);

-- Quizzes: the ordered question list is stored as a single JSON document
-- and replaced wholesale on submission.
CREATE TABLE IF NOT EXISTS quiz (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    questions JSONB NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quiz_user_id ON quiz(user_id);

-- Analyses: immutable once written.
CREATE TABLE IF NOT EXISTS analysis (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    payload JSONB NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analysis_user_id ON analysis(user_id);

-- Flows: join records linking a quiz to its eventual analysis.
-- References are weak (no cascading deletes); orphans are tolerated.
CREATE TABLE IF NOT EXISTS flow (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    quiz_id TEXT NOT NULL,
    analysis_id TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_flow_user_id ON flow(user_id);
CREATE INDEX IF NOT EXISTS idx_flow_quiz_user ON flow(quiz_id, user_id);
`
