// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package prompts owns the contract with the AI Text Service: building
prompts, extracting the fenced JSON payload from completions, and
validating payload shape before anything is persisted.

# Prompt Builders

	prompts.QuizPrompt(userInput)       // 20-question quiz request
	prompts.AnalysisPrompt(answeredJSON) // performance analysis request
	prompts.RoadmapPrompt(detailsJSON)   // 5-day roadmap request

# Extraction

ExtractJSONBlock finds the first fenced block tagged json and parses it:

	raw, err := prompts.ExtractJSONBlock(text)

Missing block or unparseable contents produce *MalformedResponseError,
which carries the offending raw text for diagnostics. Extraction is pure:
no I/O, no schema knowledge.

# Shape Validation

The extractor is shape-agnostic; callers validate per call site:

	questions, err := prompts.ValidateQuizPayload(raw)
	payload, err := prompts.ValidateAnalysisPayload(raw)

Both compile their JSON Schema once (cached) and reject anything off-shape
with *PayloadShapeError. The quiz schema demands exactly 20 questions with
options A-D, a correctAnswer in A-D, and a null userAnswer; the analysis
schema demands the five named list fields. Roadmap payloads are passed
through as raw JSON since nothing is persisted from them.
*/
package prompts
