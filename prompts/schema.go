// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package prompts

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/skillcheck/server/models"
)

// PayloadShapeError reports an extracted JSON value that does not match the
// expected payload schema. Nothing is persisted when validation fails.
type PayloadShapeError struct {
	Payload string
	Err     error
}

func (e *PayloadShapeError) Error() string {
	return fmt.Sprintf("invalid AI payload shape: %v", e.Err)
}

func (e *PayloadShapeError) Unwrap() error { return e.Err }

// quizSchema is the contract for a generated quiz: exactly 20 questions,
// options keyed A-D, correctAnswer within A-D, userAnswer still null.
var quizSchema = map[string]any{
	"type":     "array",
	"minItems": models.QuestionCount,
	"maxItems": models.QuestionCount,
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":       map[string]any{"type": "string"},
			"question": map[string]any{"type": "string"},
			"options": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"A": map[string]any{"type": "string"},
					"B": map[string]any{"type": "string"},
					"C": map[string]any{"type": "string"},
					"D": map[string]any{"type": "string"},
				},
				"required": []any{"A", "B", "C", "D"},
			},
			"correctAnswer": map[string]any{
				"type": "string",
				"enum": []any{"A", "B", "C", "D"},
			},
			"userAnswer":  map[string]any{"type": "null"},
			"explanation": map[string]any{"type": "string"},
		},
		"required": []any{"id", "question", "options", "correctAnswer", "userAnswer", "explanation"},
	},
}

// analysisSchema is the contract for an AI performance analysis.
var analysisSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"strengths":           stringArraySchema,
		"areasForImprovement": stringArraySchema,
		"studyTips":           stringArraySchema,
		"recommendedResources": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{"type": "string"},
					"url":   map[string]any{"type": "string"},
				},
				"required": []any{"title", "url"},
			},
		},
		"nextSteps": stringArraySchema,
	},
	"required": []any{"strengths", "areasForImprovement", "studyTips", "recommendedResources", "nextSteps"},
}

var stringArraySchema = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// ValidateQuizPayload checks an extracted quiz payload against the quiz
// schema and decodes it into typed questions. Returns *PayloadShapeError
// on any mismatch; a partially-shaped quiz is never returned.
func ValidateQuizPayload(raw json.RawMessage) ([]models.Question, error) {
	if err := validate("quiz", quizSchema, raw); err != nil {
		return nil, err
	}

	var questions []models.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, &PayloadShapeError{Payload: string(raw), Err: err}
	}
	return questions, nil
}

// ValidateAnalysisPayload checks an extracted analysis payload against the
// analysis schema and decodes it.
func ValidateAnalysisPayload(raw json.RawMessage) (*models.AnalysisPayload, error) {
	if err := validate("analysis", analysisSchema, raw); err != nil {
		return nil, err
	}

	var payload models.AnalysisPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &PayloadShapeError{Payload: string(raw), Err: err}
	}
	return &payload, nil
}

func validate(name string, definition map[string]any, raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &PayloadShapeError{Payload: string(raw), Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := getCompiledSchema(name, definition)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return &PayloadShapeError{Payload: string(raw), Err: err}
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw
	// bytes. Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
