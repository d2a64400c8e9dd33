// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package llm

import (
	"context"
	"fmt"
)

// Provider is the AI Text Service abstraction: free-text prompt in,
// free-text completion out. The completion is expected to contain a fenced
// JSON block, but that contract is enforced by the caller (see the prompts
// package), not here.
type Provider interface {
	// GenerateText sends a prompt and returns the raw completion text.
	// Callers bound the call with a context deadline; a deadline hit
	// surfaces as context.DeadlineExceeded.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider for logging.
	Name() string
}

// UnavailableError indicates the upstream text service is down, unreachable,
// or returned a non-success status.
type UnavailableError struct {
	Provider string
	Err      error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("AI provider %s unavailable: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("AI provider %s unavailable", e.Provider)
}

func (e *UnavailableError) Unwrap() error { return e.Err }
