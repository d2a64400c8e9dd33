// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPProvider talks to a black-box text-generation endpoint:
// POST {prompt} -> {text}. This matches the wire shape of the server's own
// /api/gemini/geminiai endpoint, so the URL may point at this process or at
// any external service speaking the same contract.
type HTTPProvider struct {
	url    string
	client *http.Client
}

type httpGenerateRequest struct {
	Prompt string `json:"prompt"`
}

type httpGenerateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Text    string `json:"text"`
}

// NewHTTPProvider creates a provider for the given endpoint URL.
// Timeouts are governed by the caller's context, not the client.
func NewHTTPProvider(url string) *HTTPProvider {
	return &HTTPProvider{
		url:    url,
		client: &http.Client{},
	}
}

func (p *HTTPProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(httpGenerateRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal AI request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create AI request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		// Context errors (cancellation, deadline) pass through so the
		// caller can tell a timeout from an outage.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &UnavailableError{Provider: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", &UnavailableError{
			Provider: p.Name(),
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, string(raw)),
		}
	}

	var out httpGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &UnavailableError{
			Provider: p.Name(),
			Err:      fmt.Errorf("failed to decode response: %w", err),
		}
	}

	return out.Text, nil
}

func (p *HTTPProvider) Name() string { return "http" }
