package sim

import (
	"fmt"
	"math/rand"

	"lifesim/pkg/constants"
)

// Action is a day's chosen activity.
type Action string

const (
	// ActionWork earns the configured work income.
	ActionWork Action = "work"
	// ActionGamble draws one random outcome at the configured win rate.
	ActionGamble Action = "gamble"
)

// ActionResult is the monetary outcome of one executed action.
type ActionResult struct {
	Income      float64
	NetIncome   float64
	Label       string
	Description string
	IsWin       bool
}

// ExecuteAction applies the chosen action to produce a monetary outcome.
// Work is deterministic; gamble draws one uniform value from rng so outcomes
// are reproducible under test seeding. The daily cost is charged either way.
func ExecuteAction(action Action, cfg Config, rng *rand.Rand) ActionResult {
	if action == ActionWork {
		return ActionResult{
			Income:      cfg.WorkIncome,
			NetIncome:   cfg.WorkIncome - cfg.DailyCost,
			Label:       "💼 work",
			Description: "a steady day of work",
		}
	}

	isWin := rng.Float64()*constants.PercentageMultiplier < cfg.GambleWinRate
	if isWin {
		return ActionResult{
			Income:      cfg.GambleWinAmount,
			NetIncome:   cfg.GambleWinAmount - cfg.DailyCost,
			Label:       "🎰 gamble: won!",
			Description: fmt.Sprintf("lucky! won %.0f", cfg.GambleWinAmount),
			IsWin:       true,
		}
	}
	return ActionResult{
		Income:      -cfg.GambleLossAmount,
		NetIncome:   -cfg.GambleLossAmount - cfg.DailyCost,
		Label:       "💸 gamble: lost!",
		Description: fmt.Sprintf("tough luck, lost %.0f", cfg.GambleLossAmount),
	}
}
