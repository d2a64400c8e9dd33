// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SignupRequest: username, email, password
  - LoginRequest: email, password
  - VerifyEmailRequest: userId, code
  - GetQuizRequest: userRes (free-text skill description)
  - SubmitQuizRequest: currentQiuzData (quizId + answered questions)
  - RoadmapRequest: userDataRes
  - GenerateTextRequest: prompt

SubmitQuizRequest keeps the misspelled "currentQiuzData" key that existing
clients send.

# Response Types

Every response carries a boolean "success" flag. Failures use ErrorResponse
(success=false plus a message); successes use per-endpoint types
(SignupResponse, LoginResponse, GetQuizResponse, SubmitQuizResponse,
RoadmapResponse, GetFlowResponse, GenerateTextResponse, ...).

# Domain Types

Internal data structures:

  - User: account with unique username/email, bcrypt hash, verification state
  - Session: server-side login proof with expiry
  - Quiz: ordered list of 20 Questions owned by a user
  - Question: multiple-choice item with options A-D, correctAnswer,
    optional userAnswer, explanation
  - AnalysisPayload / Analysis: AI performance breakdown (strengths,
    areasForImprovement, studyTips, recommendedResources, nextSteps)
  - Flow: join record linking one quiz to its eventual analysis
  - FlowView: a flow with quiz and analysis references resolved

# Constants

Answer keys:

	AnswerA = "A" ... AnswerD = "D"

Quiz size:

	QuestionCount = 20
*/
package models
