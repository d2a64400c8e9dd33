// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skillcheck/server/llm"
	"github.com/skillcheck/server/models"
	"github.com/skillcheck/server/session"
	"github.com/skillcheck/server/testutil"
)

// TestFullQuizWorkflow tests the complete end-to-end workflow:
// 1. Sign up
// 2. Verify email
// 3. Log in (session cookie)
// 4. Generate a quiz
// 5. Fetch the flow (no analysis yet)
// 6. Submit answers
// 7. Fetch the flow again (analysis resolved)
// 8. Log out
func TestFullQuizWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: testutil.QuizResponseText()},
		llm.MockResponse{Text: testutil.AnalysisResponseText()},
	)
	authHandler := NewAuthHandler(db, cfg)
	quizHandler := NewQuizHandler(db, cfg, mock)

	// Step 1: Sign up
	req := testutil.MakeRequest("POST", "/api/auth/signup", models.SignupRequest{
		Username: "workflow",
		Email:    "workflow@example.com",
		Password: "secret123",
	}, nil)
	w := httptest.NewRecorder()
	authHandler.Signup(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 1 - Signup failed: %d - %s", w.Code, w.Body.String())
	}

	var signupResp models.SignupResponse
	testutil.AssertJSON(t, w, &signupResp)
	t.Logf("Step 1 - Signed up user: %s", signupResp.UserID)

	// Step 2: Verify email with the issued code
	var code string
	if err := db.QueryRow(`SELECT verify_code FROM app_user WHERE id = $1`, signupResp.UserID).Scan(&code); err != nil {
		t.Fatalf("Step 2 - Failed to read verification code: %v", err)
	}

	req = testutil.MakeRequest("POST", "/api/auth/verify-email", models.VerifyEmailRequest{
		UserID: signupResp.UserID,
		Code:   code,
	}, nil)
	w = httptest.NewRecorder()
	authHandler.VerifyEmail(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Verify email failed: %d - %s", w.Code, w.Body.String())
	}
	t.Log("Step 2 - Email verified")

	// Step 3: Log in
	req = testutil.MakeRequest("POST", "/api/auth/login", models.LoginRequest{
		Email:    "workflow@example.com",
		Password: "secret123",
	}, nil)
	w = httptest.NewRecorder()
	authHandler.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Login failed: %d - %s", w.Code, w.Body.String())
	}

	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("Step 3 - Missing session cookie")
	}
	t.Log("Step 3 - Logged in")

	// Step 4: Generate a quiz
	req = testutil.MakeRequest("POST", "/api/app/getquiz", models.GetQuizRequest{
		UserRes: "Intermediate Go, weak on channels",
	}, nil)
	testutil.WithSessionCookie(req, token)
	w = httptest.NewRecorder()
	quizHandler.GetQuiz(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 4 - GetQuiz failed: %d - %s", w.Code, w.Body.String())
	}

	var quizResp models.GetQuizResponse
	testutil.AssertJSON(t, w, &quizResp)
	if len(quizResp.Data) != models.QuestionCount {
		t.Fatalf("Step 4 - Expected %d questions, got %d", models.QuestionCount, len(quizResp.Data))
	}
	t.Logf("Step 4 - Quiz %s created with flow %s", quizResp.QuizID, quizResp.FlowID)

	// Step 5: Flow shows the quiz but no analysis yet
	req = testutil.MakeRequest("GET", "/api/app/getflow/"+quizResp.FlowID, nil, nil)
	req.SetPathValue("flowId", quizResp.FlowID)
	testutil.WithSessionCookie(req, token)
	w = httptest.NewRecorder()
	quizHandler.GetFlow(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 5 - GetFlow failed: %d - %s", w.Code, w.Body.String())
	}

	var flowResp models.GetFlowResponse
	testutil.AssertJSON(t, w, &flowResp)
	if flowResp.Flow.Quiz == nil || flowResp.Flow.Quiz.ID != quizResp.QuizID {
		t.Fatal("Step 5 - Expected the flow to resolve its quiz")
	}
	if flowResp.Flow.Analysis != nil {
		t.Fatal("Step 5 - Expected no analysis before submission")
	}
	t.Log("Step 5 - Flow resolved, analysis pending")

	// Step 6: Answer everything and submit
	answered := quizResp.Data
	for i := range answered {
		answer := answered[i].CorrectAnswer
		answered[i].UserAnswer = &answer
	}

	req = testutil.MakeRequest("POST", "/api/app/submitquiz", models.SubmitQuizRequest{
		CurrentQuizData: models.SubmittedQuiz{
			QuizID:    quizResp.QuizID,
			Questions: answered,
		},
	}, nil)
	testutil.WithSessionCookie(req, token)
	w = httptest.NewRecorder()
	quizHandler.SubmitQuiz(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - SubmitQuiz failed: %d - %s", w.Code, w.Body.String())
	}

	var submitResp models.SubmitQuizResponse
	testutil.AssertJSON(t, w, &submitResp)
	if submitResp.AnalysisID == "" {
		t.Fatal("Step 6 - Missing analysisId")
	}
	t.Logf("Step 6 - Analysis %s created", submitResp.AnalysisID)

	// Step 7: Flow now resolves the analysis with all five sections
	req = testutil.MakeRequest("GET", "/api/app/getflow/"+quizResp.FlowID, nil, nil)
	req.SetPathValue("flowId", quizResp.FlowID)
	testutil.WithSessionCookie(req, token)
	w = httptest.NewRecorder()
	quizHandler.GetFlow(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - GetFlow failed: %d - %s", w.Code, w.Body.String())
	}

	testutil.AssertJSON(t, w, &flowResp)
	if flowResp.Flow.Analysis == nil || flowResp.Flow.Analysis.ID != submitResp.AnalysisID {
		t.Fatal("Step 7 - Expected the flow to resolve its analysis")
	}
	payload := flowResp.Flow.Analysis.Payload
	if len(payload.Strengths) == 0 || len(payload.AreasForImprovement) == 0 ||
		len(payload.StudyTips) == 0 || len(payload.RecommendedResources) == 0 ||
		len(payload.NextSteps) == 0 {
		t.Errorf("Step 7 - Expected all analysis sections populated: %+v", payload)
	}
	t.Log("Step 7 - Analysis resolved through the flow")

	// Step 8: Log out and confirm the session is gone
	req = testutil.MakeRequest("POST", "/api/auth/logout", nil, nil)
	testutil.WithSessionCookie(req, token)
	w = httptest.NewRecorder()
	authHandler.Logout(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 8 - Logout failed: %d - %s", w.Code, w.Body.String())
	}

	req = testutil.MakeRequest("POST", "/api/app/getquiz", models.GetQuizRequest{UserRes: "anything"}, nil)
	testutil.WithSessionCookie(req, token)
	w = httptest.NewRecorder()
	quizHandler.GetQuiz(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Step 8 - Expected 401 after logout, got %d", w.Code)
	}

	t.Log("Integration test completed successfully!")
}
