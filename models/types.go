// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"time"
)

// Answer key constants
const (
	AnswerA = "A"
	AnswerB = "B"
	AnswerC = "C"
	AnswerD = "D"
)

// QuestionCount is the number of questions every generated quiz must contain.
const QuestionCount = 20

// Domain types

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never expose in JSON
	IsVerified   bool   `json:"isVerified"`

	VerifyCode          *string    `json:"-"`
	VerifyCodeExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
}

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Options holds the four answer choices for a question, keyed A-D.
type Options struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Question is a single multiple-choice quiz question. UserAnswer stays nil
// until the user submits the quiz.
type Question struct {
	ID            string  `json:"id"`
	Question      string  `json:"question"`
	Options       Options `json:"options"`
	CorrectAnswer string  `json:"correctAnswer"`
	UserAnswer    *string `json:"userAnswer"`
	Explanation   string  `json:"explanation"`
}

type Quiz struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Resource is a recommended study resource inside an analysis.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// AnalysisPayload is the AI-generated performance breakdown.
type AnalysisPayload struct {
	Strengths            []string   `json:"strengths"`
	AreasForImprovement  []string   `json:"areasForImprovement"`
	StudyTips            []string   `json:"studyTips"`
	RecommendedResources []Resource `json:"recommendedResources"`
	NextSteps            []string   `json:"nextSteps"`
}

type Analysis struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Payload   AnalysisPayload `json:"analysis"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Flow links one generated quiz to its eventual analysis for a user.
// AnalysisID is nil until the quiz has been submitted and analyzed.
type Flow struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	QuizID     string    `json:"quizId"`
	AnalysisID *string   `json:"analysisId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FlowView is the composed getflow response: the flow with its quiz and
// analysis references resolved. Either may be absent.
type FlowView struct {
	ID       string    `json:"_id"`
	UserID   string    `json:"userId"`
	Quiz     *Quiz     `json:"quizId"`
	Analysis *Analysis `json:"analysisId"`
}

// PublicUser is the user shape returned to clients after login / me.
// FlowIDs is the user's flow history, oldest first, so the frontend can
// list past quizzes without a separate call.
type PublicUser struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	FlowIDs  []string `json:"flowIds"`
}

// Request types

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyEmailRequest struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
}

type GetQuizRequest struct {
	UserRes string `json:"userRes"`
}

// SubmitQuizRequest keeps the original incoming key name ("currentQiuzData")
// to avoid breaking clients.
type SubmitQuizRequest struct {
	CurrentQuizData SubmittedQuiz `json:"currentQiuzData"`
}

type SubmittedQuiz struct {
	QuizID    string     `json:"quizId"`
	Questions []Question `json:"questions"`
}

type RoadmapRequest struct {
	UserDataRes json.RawMessage `json:"userDataRes"`
}

type GenerateTextRequest struct {
	Prompt string `json:"prompt"`
}

// Response types

// ErrorResponse is the failure envelope for every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SignupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type LoginResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	User    PublicUser `json:"user"`
}

type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type MeResponse struct {
	Success bool        `json:"success"`
	User    *PublicUser `json:"user"`
}

type VerifyEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type GetQuizResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    []Question `json:"data"`
	QuizID  string     `json:"quizId"`
	FlowID  string     `json:"flowId"`
}

type SubmitQuizResponse struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Analysis   AnalysisPayload `json:"analysis"`
	AnalysisID string          `json:"analysisId"`
}

type RoadmapResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Roadmap json.RawMessage `json:"roadmap"`
}

type GetFlowResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Flow    FlowView `json:"flow"`
}

type GenerateTextResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Text    string `json:"text"`
}
