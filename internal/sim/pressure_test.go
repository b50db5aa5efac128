package sim

import (
	"strings"
	"testing"

	"lifesim/pkg/constants"
)

func baseConfig() Config {
	return Config{
		StartAge:         20,
		DeadlineAge:      30,
		WorkIncome:       200,
		DailyCost:        50,
		GambleWinRate:    50,
		GambleWinAmount:  300,
		GambleLossAmount: 200,
	}
}

func TestEvaluatePressureNoTargets(t *testing.T) {
	st := &State{Config: baseConfig(), CurrentAge: 20, CurrentDayInYear: 1}

	info := EvaluatePressure(st)
	if info.Pressure != 0 {
		t.Errorf("pressure = %d, expected 0", info.Pressure)
	}
	if info.Text != "no target" {
		t.Errorf("text = %q, expected %q", info.Text, "no target")
	}
}

func TestEvaluatePressureAllComplete(t *testing.T) {
	st := &State{
		Config:           baseConfig(),
		CurrentAge:       22,
		CurrentDayInYear: 1,
		Targets: []Target{
			{Description: "house", Amount: 36500, DeadlineAge: 25, Completed: true, CompletedAge: 21},
		},
	}

	info := EvaluatePressure(st)
	if info.Pressure != 0 {
		t.Errorf("pressure = %d, expected 0", info.Pressure)
	}
	if info.Text != "all complete" {
		t.Errorf("text = %q, expected %q", info.Text, "all complete")
	}
}

func TestEvaluatePressureDeadlinePassed(t *testing.T) {
	st := &State{
		Config:           baseConfig(),
		CurrentAge:       25,
		CurrentDayInYear: 1,
		CurrentMoney:     1000,
		Targets: []Target{
			{Description: "house", Amount: 36500, DeadlineAge: 25},
		},
	}

	info := EvaluatePressure(st)
	if info.Pressure != constants.MaxPressure {
		t.Errorf("pressure = %d, expected %d", info.Pressure, constants.MaxPressure)
	}
	if info.Text != "deadline passed" {
		t.Errorf("text = %q, expected %q", info.Text, "deadline passed")
	}
	if info.RemainingDays != 0 {
		t.Errorf("remainingDays = %d, expected 0", info.RemainingDays)
	}
	if !strings.Contains(info.Reason, "25") {
		t.Errorf("reason %q should mention the deadline age", info.Reason)
	}
}

func TestEvaluatePressureBaseBands(t *testing.T) {
	// With dayCount 0 and no gambles, the time, failure, and progress terms
	// are all zero, so the score equals the base band. safeIncome is 150.
	remainingDays := float64((25-20)*constants.DaysPerYear - 1)

	tests := []struct {
		name          string
		dailyRequired float64
		expected      int
	}{
		{name: "well under schedule", dailyRequired: 30, expected: 10},  // 0.2x
		{name: "comfortable", dailyRequired: 75, expected: 25},          // 0.5x
		{name: "tight", dailyRequired: 120, expected: 40},               // 0.8x
		{name: "at the edge", dailyRequired: 150, expected: 55},         // 1.0x
		{name: "beyond safe income", dailyRequired: 225, expected: 75},  // 1.5x
		{name: "unreachable by work", dailyRequired: 400, expected: 90}, // 2.7x
		{name: "already funded", dailyRequired: -10, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := tt.dailyRequired * remainingDays
			var money float64
			if amount <= 0 {
				// Overshoot the target so remaining money is negative.
				money = -amount + 100
				amount = 100
			}
			st := &State{
				Config:           baseConfig(),
				CurrentAge:       20,
				CurrentDayInYear: 1,
				CurrentMoney:     money,
				Targets: []Target{
					{Description: "goal", Amount: amount, DeadlineAge: 25},
				},
			}

			info := EvaluatePressure(st)
			if info.Pressure != tt.expected {
				t.Errorf("pressure = %d, expected %d", info.Pressure, tt.expected)
			}
		})
	}
}

func TestEvaluatePressureRange(t *testing.T) {
	tests := []struct {
		name  string
		state *State
	}{
		{
			name: "mid run with losses",
			state: &State{
				Config:           baseConfig(),
				CurrentAge:       23,
				CurrentDayInYear: 100,
				DayCount:         1195,
				CurrentMoney:     5000,
				History:          History{Losses: 40, Wins: 10, TotalGambles: 50},
				Targets: []Target{
					{Description: "house", Amount: 36500, DeadlineAge: 25},
				},
			},
		},
		{
			name: "far ahead of schedule",
			state: &State{
				Config:           baseConfig(),
				CurrentAge:       20,
				CurrentDayInYear: 10,
				DayCount:         9,
				CurrentMoney:     100000,
				Targets: []Target{
					{Description: "house", Amount: 36500, DeadlineAge: 25},
				},
			},
		},
		{
			name: "every penalty maxed",
			state: &State{
				Config:           baseConfig(),
				CurrentAge:       24,
				CurrentDayInYear: 300,
				DayCount:         1760,
				CurrentMoney:     0,
				History:          History{Losses: 100, TotalGambles: 100},
				Targets: []Target{
					{Description: "house", Amount: 365000, DeadlineAge: 25},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := EvaluatePressure(tt.state)
			if info.Pressure < 0 || info.Pressure > constants.MaxPressure {
				t.Errorf("pressure = %d, expected within [0, %d]", info.Pressure, constants.MaxPressure)
			}
		})
	}
}

func TestEvaluatePressureLabels(t *testing.T) {
	// Base band at dayCount 0 maps straight to a label.
	remainingDays := float64((25-20)*constants.DaysPerYear - 1)

	tests := []struct {
		dailyRequired float64
		text          string
	}{
		{dailyRequired: 30, text: "relaxed"},        // 10
		{dailyRequired: 75, text: "steady"},         // 25
		{dailyRequired: 120, text: "reflective"},    // 40
		{dailyRequired: 225, text: "anxious"},       // 75
		{dailyRequired: 400, text: "high-pressure"}, // 90
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			st := &State{
				Config:           baseConfig(),
				CurrentAge:       20,
				CurrentDayInYear: 1,
				Targets: []Target{
					{Description: "goal", Amount: tt.dailyRequired * remainingDays, DeadlineAge: 25},
				},
			}
			info := EvaluatePressure(st)
			if info.Text != tt.text {
				t.Errorf("text = %q (pressure %d), expected %q", info.Text, info.Pressure, tt.text)
			}
		})
	}
}

func TestEvaluatePressureSkipsCompletedAndExpired(t *testing.T) {
	st := &State{
		Config:           baseConfig(),
		CurrentAge:       26,
		CurrentDayInYear: 1,
		CurrentMoney:     40000,
		Targets: []Target{
			{Description: "house", Amount: 36500, DeadlineAge: 25, Completed: true, CompletedAge: 24},
			{Description: "missed", Amount: 1000, DeadlineAge: 25}, // expired, not completed
			{Description: "car", Amount: 20000, DeadlineAge: 28},
		},
	}

	info := EvaluatePressure(st)
	if info.CurrentTarget == nil {
		t.Fatal("expected a current target")
	}
	if info.CurrentTarget.Description != "car" {
		t.Errorf("current target = %q, expected %q", info.CurrentTarget.Description, "car")
	}
}
