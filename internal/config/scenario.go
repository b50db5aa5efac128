package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lifesim/internal/sim"
)

// Scenario bundles a simulation config with its savings targets so a run can
// be pre-seeded server-side and offered to the client as a preset.
type Scenario struct {
	Config  sim.Config   `yaml:"config" json:"config"`
	Targets []sim.Target `yaml:"targets" json:"targets"`
	Speed   int          `yaml:"speed,omitempty" json:"speed,omitempty"`
}

// LoadScenario reads and parses a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario file: %w", err)
	}
	if err := scenario.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func (s *Scenario) validate() error {
	if s.Config.DeadlineAge <= s.Config.StartAge {
		return errors.New("deadlineAge must be greater than startAge")
	}
	if s.Config.WorkIncome <= 0 {
		return errors.New("workIncome must be positive")
	}
	if s.Config.GambleWinRate < 0 || s.Config.GambleWinRate > 100 {
		return errors.New("gambleWinRate must be between 0 and 100")
	}
	for i, t := range s.Targets {
		if t.Description == "" {
			return fmt.Errorf("target %d is missing a description", i)
		}
		if t.Amount <= 0 {
			return fmt.Errorf("target %q amount must be positive", t.Description)
		}
	}
	return nil
}
