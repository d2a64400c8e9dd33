// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package llm provides clients for the AI Text Service.

# Provider

The core abstraction is a free-text completion call:

	text, err := provider.GenerateText(ctx, prompt)

The completion is treated as untrusted, unstructured text; extracting and
validating the JSON payload inside it is the prompts package's job.

# Implementations

  - HTTPProvider: black-box POST {prompt} -> {text} endpoint (the shape of
    the server's own /api/gemini/geminiai route)
  - GeminiProvider: google.golang.org/genai
  - OpenAIProvider: sashabaranov/go-openai, also covers OpenAI-compatible
    endpoints via a custom base URL
  - MockProvider: canned FIFO responses for tests

NewProvider selects one from config:

	provider, err := llm.NewProvider(ctx, cfg)

# Timeouts and Errors

Providers do not set their own deadlines; callers bound each call with a
context timeout and a deadline hit surfaces as context.DeadlineExceeded.
Transport and upstream failures are wrapped in *UnavailableError.
*/
package llm
