package decision

import (
	"fmt"
	"strings"

	"lifesim/pkg/constants"
	"lifesim/pkg/mathutil"
)

const systemPrompt = "You are a rational decision-making agent that weighs " +
	"risk against reward. Always reply with a JSON object."

// buildPrompt renders the structured state summary the model reasons over.
func buildPrompt(req Request) string {
	workNet := req.WorkIncome - req.DailyCost
	gambleExpected := mathutil.Round(
		(req.GambleWinRate/constants.PercentageMultiplier)*req.GambleWinAmount -
			((constants.PercentageMultiplier-req.GambleWinRate)/constants.PercentageMultiplier)*req.GambleLossAmount -
			req.DailyCost)

	target := req.TargetDescription
	if target == "" {
		target = "none"
	}

	var b strings.Builder
	b.WriteString("You are making the daily decision in a life simulator. Pick today's action from the current state.\n\n")
	b.WriteString("[Current state]\n")
	fmt.Fprintf(&b, "- Age: %d, day %d of the year\n", req.Age, req.DayInYear)
	fmt.Fprintf(&b, "- Savings: %.0f\n", req.Money)
	fmt.Fprintf(&b, "- Current target: %s (cumulative requirement %.0f)\n", target, req.TargetAmount)
	fmt.Fprintf(&b, "- Days until deadline: %d\n", req.RemainingDays)
	fmt.Fprintf(&b, "- Pressure: %d/100 (%s)\n", req.Pressure, req.PressureText)
	fmt.Fprintf(&b, "- History: %d work days, %d gamble days (%d won, %d lost)\n\n",
		req.WorkDays, req.GambleDays, req.Wins, req.Losses)
	b.WriteString("[Options]\n")
	fmt.Fprintf(&b, "1. work: a reliable %.0f/day\n", workNet)
	fmt.Fprintf(&b, "2. gamble: %.0f%% chance to win %.0f, %.0f%% chance to lose %.0f, expected %.0f/day\n\n",
		req.GambleWinRate, req.GambleWinAmount,
		constants.PercentageMultiplier-req.GambleWinRate, req.GambleLossAmount, gambleExpected)
	b.WriteString("[Requirements]\n")
	b.WriteString("- Weigh the pressure, the time remaining, and your track record\n")
	b.WriteString("- You must choose either \"work\" or \"gamble\"\n")
	b.WriteString("- Give a one-sentence reason\n\n")
	b.WriteString(`Reply as JSON: {"action": "work" or "gamble", "reason": "..."}`)
	return b.String()
}
