// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/skillcheck/server/auth"
	"github.com/skillcheck/server/cliparse"
	appdb "github.com/skillcheck/server/db"
	"github.com/skillcheck/server/models"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// Connections are capped at one so every statement sees the same
// in-memory instance.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := appdb.CreateSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		Env:          "test",
		CORSOrigin:   "http://localhost:5173",
		AIProvider:   "mock",
		AITimeout:    5 * time.Second,
	}
}

// CreateTestUser inserts a verified user and returns it. The password is
// stored hashed so login against it works.
func CreateTestUser(t *testing.T, db *sql.DB, username, email, password string) *models.User {
	t.Helper()

	id, _ := auth.GenerateID(12)
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	_, err = db.Exec(`
		INSERT INTO app_user (id, username, email, password_hash, is_verified, created_at)
		VALUES ($1, $2, $3, $4, TRUE, $5)
	`, id, username, email, hash, now)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return &models.User{
		ID:         id,
		Username:   username,
		Email:      email,
		IsVerified: true,
		CreatedAt:  now,
	}
}

// CreateTestSession inserts a session for a user and returns its token.
// A negative ttl produces an already-expired session.
func CreateTestSession(t *testing.T, db *sql.DB, userID string, ttl time.Duration) string {
	t.Helper()

	token, _ := auth.GenerateID(16)
	now := time.Now().UTC()
	_, err := db.Exec(`
		INSERT INTO session (id, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, token, userID, now, now.Add(ttl))
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return token
}

// CreateTestQuiz inserts a quiz owned by a user and returns its ID.
func CreateTestQuiz(t *testing.T, db *sql.DB, userID string, questions []models.Question) string {
	t.Helper()

	id, _ := auth.GenerateID(12)
	data, err := json.Marshal(questions)
	if err != nil {
		t.Fatalf("Failed to marshal test questions: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO quiz (id, user_id, questions, created_at)
		VALUES ($1, $2, $3, $4)
	`, id, userID, data, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test quiz: %v", err)
	}

	return id
}

// CreateTestAnalysis inserts an analysis owned by a user and returns its ID.
func CreateTestAnalysis(t *testing.T, db *sql.DB, userID string, payload models.AnalysisPayload) string {
	t.Helper()

	id, _ := auth.GenerateID(12)
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal test analysis: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO analysis (id, user_id, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`, id, userID, data, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test analysis: %v", err)
	}

	return id
}

// CreateTestFlow inserts a flow linking a quiz (and optionally an analysis)
// and returns the flow ID.
func CreateTestFlow(t *testing.T, db *sql.DB, userID, quizID string, analysisID *string) string {
	t.Helper()

	id, _ := auth.GenerateID(12)
	_, err := db.Exec(`
		INSERT INTO flow (id, user_id, quiz_id, analysis_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, userID, quizID, analysisID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test flow: %v", err)
	}

	return id
}

// TestQuestions builds a full-length question list. When answered is true
// every question carries a user answer (half of them wrong).
func TestQuestions(answered bool) []models.Question {
	questions := make([]models.Question, models.QuestionCount)
	for i := range questions {
		q := models.Question{
			ID:       fmt.Sprintf("q%d", i+1),
			Question: fmt.Sprintf("Question %d?", i+1),
			Options: models.Options{
				A: "Option A",
				B: "Option B",
				C: "Option C",
				D: "Option D",
			},
			CorrectAnswer: models.AnswerA,
			Explanation:   "Because A is correct.",
		}
		if answered {
			answer := models.AnswerA
			if i%2 == 1 {
				answer = models.AnswerB
			}
			q.UserAnswer = &answer
		}
		questions[i] = q
	}
	return questions
}

// QuizResponseText returns a model reply containing a valid fenced quiz
// payload, with chatter around the fence the way real models produce it.
func QuizResponseText() string {
	items := make([]string, models.QuestionCount)
	for i := range items {
		items[i] = fmt.Sprintf(`{
			"id": "q%d",
			"question": "Question %d?",
			"options": {"A": "Option A", "B": "Option B", "C": "Option C", "D": "Option D"},
			"correctAnswer": "A",
			"userAnswer": null,
			"explanation": "Because A is correct."
		}`, i+1, i+1)
	}

	return "Here is your quiz:\n```json\n[" + strings.Join(items, ",") + "]\n```\nGood luck!"
}

// AnalysisResponseText returns a model reply containing a valid fenced
// analysis payload.
func AnalysisResponseText() string {
	payload := `{
		"strengths": ["Solid fundamentals"],
		"areasForImprovement": ["Edge cases"],
		"studyTips": ["Practice daily"],
		"recommendedResources": [{"title": "Docs", "url": "https://example.com/docs"}],
		"nextSteps": ["Build a project"]
	}`

	return "Analysis complete.\n```json\n" + payload + "\n```"
}

// TestAnalysisPayload returns a minimal valid analysis payload.
func TestAnalysisPayload() models.AnalysisPayload {
	return models.AnalysisPayload{
		Strengths:            []string{"Solid fundamentals"},
		AreasForImprovement:  []string{"Edge cases"},
		StudyTips:            []string{"Practice daily"},
		RecommendedResources: []models.Resource{{Title: "Docs", URL: "https://example.com/docs"}},
		NextSteps:            []string{"Build a project"},
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// WithSessionCookie attaches a session cookie to a request.
func WithSessionCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: "sessionId", Value: token})
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertJSONBytes decodes raw JSON bytes into the provided struct
func AssertJSONBytes(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Failed to decode JSON bytes: %v", err)
	}
}
