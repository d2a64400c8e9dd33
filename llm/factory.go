// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package llm

import (
	"context"
	"fmt"

	"github.com/skillcheck/server/cliparse"
)

// NewProvider creates a Provider from configuration. It is called once at
// startup and the result is injected into handlers.
func NewProvider(ctx context.Context, cfg cliparse.Config) (Provider, error) {
	switch cfg.AIProvider {
	case "http":
		return NewHTTPProvider(cfg.AIServiceURL), nil
	case "gemini":
		return NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q", cfg.AIProvider)
	}
}
