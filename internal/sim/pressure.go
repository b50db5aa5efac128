package sim

import (
	"fmt"
	"math"

	"lifesim/pkg/constants"
	"lifesim/pkg/mathutil"
)

// Pressure label thresholds. The score is mapped to the first label whose
// threshold it exceeds, checked from the top down.
const (
	despairThreshold      = 90
	highPressureThreshold = 75
	anxiousThreshold      = 55
	reflectiveThreshold   = 35
	steadyThreshold       = 15
)

// EvaluatePressure computes the 0-100 urgency score for the given state.
// It is a pure function: it recomputes target accumulation on every call and
// mutates nothing.
func EvaluatePressure(st *State) PressureInfo {
	if len(st.Targets) == 0 {
		return PressureInfo{Pressure: 0, Emoji: "😊", Text: "no target"}
	}

	accumulated := AccumulateTargets(st.Targets)
	var active []Target
	for _, t := range accumulated {
		if !t.Completed && t.DeadlineAge >= st.CurrentAge {
			active = append(active, t)
		}
	}
	if len(active) == 0 {
		return PressureInfo{
			Pressure: 0,
			Emoji:    "🎉",
			Text:     "all complete",
			Reason:   "all targets reached",
		}
	}

	current := active[0]
	remainingMoney := current.AccumulatedAmount - st.CurrentMoney
	remainingDays := (current.DeadlineAge-st.CurrentAge)*constants.DaysPerYear - st.CurrentDayInYear

	if remainingDays <= 0 {
		return PressureInfo{
			Pressure:       constants.MaxPressure,
			Emoji:          "💀",
			Text:           "deadline passed",
			Reason:         fmt.Sprintf("past the age %d deadline, still %.0f short", current.DeadlineAge, remainingMoney),
			CurrentTarget:  &current,
			RemainingMoney: remainingMoney,
			RemainingDays:  0,
		}
	}

	dailyRequired := remainingMoney / float64(remainingDays)
	safeIncome := st.Config.WorkIncome - st.Config.DailyCost

	var basePressure float64
	switch {
	case dailyRequired <= 0:
		basePressure = 0
	case dailyRequired <= safeIncome*0.3:
		basePressure = 10
	case dailyRequired <= safeIncome*0.6:
		basePressure = 25
	case dailyRequired <= safeIncome*0.9:
		basePressure = 40
	case dailyRequired <= safeIncome*1.2:
		basePressure = 55
	case dailyRequired <= safeIncome*1.8:
		basePressure = 75
	default:
		basePressure = 90
	}

	totalDaysForTarget := float64((current.DeadlineAge - st.Config.StartAge) * constants.DaysPerYear)
	timeRatio := float64(st.DayCount) / totalDaysForTarget
	timePressure := timeRatio * 20

	var failRatio float64
	if st.History.TotalGambles > 0 {
		failRatio = float64(st.History.Losses) / float64(st.History.TotalGambles)
	}
	failPressure := failRatio * 15

	expectedProgress := timeRatio * current.AccumulatedAmount
	progressDeficit := math.Max(0, (expectedProgress-st.CurrentMoney)/current.AccumulatedAmount)
	progressPressure := progressDeficit * 25

	total := mathutil.Clamp(basePressure+timePressure+failPressure+progressPressure, 0, constants.MaxPressure)

	emoji, text := "😊", "relaxed"
	switch {
	case total > despairThreshold:
		emoji, text = "💀", "despair"
	case total > highPressureThreshold:
		emoji, text = "🤯", "high-pressure"
	case total > anxiousThreshold:
		emoji, text = "😰", "anxious"
	case total > reflectiveThreshold:
		emoji, text = "🤔", "reflective"
	case total > steadyThreshold:
		emoji, text = "😌", "steady"
	}

	reason := fmt.Sprintf("needs %.0f/day | time %.0f%% | fail %.0f%% | behind %.0f%%",
		dailyRequired,
		timeRatio*constants.PercentageMultiplier,
		failRatio*constants.PercentageMultiplier,
		progressDeficit*constants.PercentageMultiplier,
	)

	return PressureInfo{
		Pressure:       int(math.Round(total)),
		Emoji:          emoji,
		Text:           text,
		Reason:         reason,
		CurrentTarget:  &current,
		RemainingMoney: remainingMoney,
		RemainingDays:  remainingDays,
		DailyRequired:  dailyRequired,
	}
}
