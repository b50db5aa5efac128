package decision

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ParseDecision validates a model reply. After stripping an optional
// markdown code fence, the content must be exactly one JSON object with a
// non-empty action field; anything else is a retryable failure. The action
// string is normalized: any value containing the gamble keyword maps to
// gamble, everything else to work.
func ParseDecision(content string) (Decision, error) {
	trimmed := stripCodeFence(strings.TrimSpace(content))
	if trimmed == "" {
		return Decision{}, errors.New("empty decision payload")
	}

	var raw struct {
		Action string `json:"action"`
		Reason string `json:"reason"`
	}
	dec := json.NewDecoder(strings.NewReader(trimmed))
	if err := dec.Decode(&raw); err != nil {
		return Decision{}, fmt.Errorf("malformed decision payload: %w", err)
	}
	if dec.More() {
		return Decision{}, errors.New("trailing data after decision object")
	}
	if strings.TrimSpace(raw.Action) == "" {
		return Decision{}, errors.New("decision payload missing action")
	}

	action := ActionWork
	if strings.Contains(strings.ToLower(raw.Action), ActionGamble) {
		action = ActionGamble
	}

	reason := strings.TrimSpace(raw.Reason)
	if reason == "" {
		reason = "model decision"
	}

	return Decision{Action: action, Reason: reason, IsAI: true}, nil
}

// stripCodeFence removes a surrounding ``` fence, with or without a language
// tag, so fenced-but-valid JSON replies still parse strictly.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
