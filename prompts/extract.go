// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package prompts

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// jsonBlockRe matches the first fenced code block tagged json in a
// completion, tolerating surrounding prose.
var jsonBlockRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// MalformedResponseError reports an AI completion that did not contain a
// parseable JSON block. Raw carries the offending text for logs; it is
// never sent to clients.
type MalformedResponseError struct {
	Reason string
	Raw    string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed AI response: %s", e.Reason)
}

// ExtractJSONBlock pulls the JSON payload out of a free-text AI completion.
// The completion must contain a triple-backtick block with a json language
// hint; the block's contents must parse as JSON. Pure text-in,
// value-out - no I/O.
func ExtractJSONBlock(text string) (json.RawMessage, error) {
	m := jsonBlockRe.FindStringSubmatch(text)
	if m == nil {
		return nil, &MalformedResponseError{Reason: "no JSON block", Raw: text}
	}

	block := m[1]
	if !json.Valid([]byte(block)) {
		return nil, &MalformedResponseError{Reason: "invalid JSON", Raw: block}
	}

	return json.RawMessage(block), nil
}
