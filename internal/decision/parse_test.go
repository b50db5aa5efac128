package decision

import (
	"strings"
	"testing"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantAction string
		wantReason string
		wantErr    bool
	}{
		{
			name:       "plain work",
			content:    `{"action": "work", "reason": "steady income beats the odds"}`,
			wantAction: ActionWork,
			wantReason: "steady income beats the odds",
		},
		{
			name:       "plain gamble",
			content:    `{"action": "gamble", "reason": "behind schedule, need the upside"}`,
			wantAction: ActionGamble,
			wantReason: "behind schedule, need the upside",
		},
		{
			name:       "gamble keyword inside longer action",
			content:    `{"action": "I will gamble today", "reason": "feeling lucky"}`,
			wantAction: ActionGamble,
			wantReason: "feeling lucky",
		},
		{
			name:       "case insensitive keyword",
			content:    `{"action": "GAMBLE", "reason": "x"}`,
			wantAction: ActionGamble,
			wantReason: "x",
		},
		{
			name:       "unknown action falls back to work",
			content:    `{"action": "invest", "reason": "diversify"}`,
			wantAction: ActionWork,
			wantReason: "diversify",
		},
		{
			name:       "missing reason gets default",
			content:    `{"action": "work"}`,
			wantAction: ActionWork,
			wantReason: "model decision",
		},
		{
			name:       "fenced json",
			content:    "```json\n{\"action\": \"work\", \"reason\": \"fence test\"}\n```",
			wantAction: ActionWork,
			wantReason: "fence test",
		},
		{
			name:       "fenced without language tag",
			content:    "```\n{\"action\": \"gamble\", \"reason\": \"fence test\"}\n```",
			wantAction: ActionGamble,
			wantReason: "fence test",
		},
		{
			name:    "empty content",
			content: "",
			wantErr: true,
		},
		{
			name:    "missing action",
			content: `{"reason": "no action given"}`,
			wantErr: true,
		},
		{
			name:    "prose before the object",
			content: `Sure, here you go: {"action": "work", "reason": "x"}`,
			wantErr: true,
		},
		{
			name:    "trailing data after the object",
			content: `{"action": "work", "reason": "x"} and that is final`,
			wantErr: true,
		},
		{
			name:    "bare string",
			content: `"work"`,
			wantErr: true,
		},
		{
			name:    "null object",
			content: `null`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := ParseDecision(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDecision(%q) succeeded, expected an error", tt.content)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecision(%q) error = %v", tt.content, err)
			}
			if dec.Action != tt.wantAction {
				t.Errorf("action = %q, expected %q", dec.Action, tt.wantAction)
			}
			if dec.Reason != tt.wantReason {
				t.Errorf("reason = %q, expected %q", dec.Reason, tt.wantReason)
			}
			if !dec.IsAI {
				t.Error("parsed decisions must be marked as AI decisions")
			}
		})
	}
}

func TestBuildPromptContents(t *testing.T) {
	req := Request{
		Age:               23,
		DayInYear:         120,
		Money:             5000,
		TargetDescription: "house",
		TargetAmount:      36500,
		RemainingDays:     610,
		Pressure:          42,
		PressureText:      "reflective",
		WorkDays:          100,
		GambleDays:        20,
		Wins:              8,
		Losses:            12,
		WorkIncome:        200,
		DailyCost:         50,
		GambleWinRate:     50,
		GambleWinAmount:   300,
		GambleLossAmount:  200,
	}

	prompt := buildPrompt(req)
	for _, fragment := range []string{
		"Age: 23",
		"Savings: 5000",
		"house",
		"36500",
		"Days until deadline: 610",
		"42/100 (reflective)",
		"100 work days",
		"150/day",        // work net
		"expected 0/day", // 0.5*300 - 0.5*200 - 50
		`"action": "work" or "gamble"`,
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt is missing %q\n%s", fragment, prompt)
		}
	}
}

func TestBuildPromptNoTarget(t *testing.T) {
	prompt := buildPrompt(Request{WorkIncome: 200, DailyCost: 50})
	if !strings.Contains(prompt, "none") {
		t.Error("prompt should name a missing target as none")
	}
}
