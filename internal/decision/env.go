package decision

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig carries decision-provider settings sourced from the environment.
// The API key is environment-only so it never lands in a config file.
type EnvConfig struct {
	APIKey  string `env:"LIFESIM_API_KEY"`
	BaseURL string `env:"LIFESIM_BASE_URL"`
	Model   string `env:"LIFESIM_MODEL"`
}

// LoadEnv reads decision-provider settings from the environment.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse decision environment: %w", err)
	}
	return cfg, nil
}
