// Package decision acquires the day's action choice from an external
// reasoning service. The provider contract is retry-until-success: transient
// failures are absorbed by a fixed backoff loop and never surfaced to the
// caller; only cancellation ends an acquisition without a decision.
package decision

import (
	"context"
	"errors"
)

// Canonical action values returned by a provider.
const (
	ActionWork   = "work"
	ActionGamble = "gamble"
)

// ErrCancelled reports that an acquisition was abandoned because the caller
// cancelled it, typically by pausing the simulation. It is a control signal,
// not a failure.
var ErrCancelled = errors.New("decision acquisition cancelled")

// Decision is the outcome of one decision acquisition, consumed once per
// day step.
type Decision struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
	IsAI   bool   `json:"isAI"`
}

// Request is the structured state summary a provider reasons over.
type Request struct {
	Age               int
	DayInYear         int
	Money             float64
	TargetDescription string
	TargetAmount      float64
	RemainingDays     int
	Pressure          int
	PressureText      string
	WorkDays          int
	GambleDays        int
	Wins              int
	Losses            int
	WorkIncome        float64
	DailyCost         float64
	GambleWinRate     float64
	GambleWinAmount   float64
	GambleLossAmount  float64
}

// Provider resolves one day's action choice. Decide must eventually return
// a decision unless ctx is cancelled, in which case it returns ErrCancelled.
type Provider interface {
	Decide(ctx context.Context, req Request) (Decision, error)
}
