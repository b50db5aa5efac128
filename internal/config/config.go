// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"

	"lifesim/pkg/constants"
)

// Configuration holds all configuration for lifesim.
type Configuration struct {
	Server   ServerConfig   `yaml:"server,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Decision DecisionConfig `yaml:"decision,omitempty"`
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Address string `yaml:"address,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// DecisionConfig holds decision-provider options. The API key is deliberately
// absent: credentials come from the environment only.
type DecisionConfig struct {
	BaseURL              string `yaml:"baseUrl,omitempty"`
	Model                string `yaml:"model,omitempty"`
	TimeoutSeconds       int    `yaml:"timeoutSeconds,omitempty"`
	RetryIntervalSeconds int    `yaml:"retryIntervalSeconds,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields defaults without error.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := &Configuration{}
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := viper.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

func (c *Configuration) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = constants.DefaultServerAddress
	}
	if c.Decision.BaseURL == "" {
		c.Decision.BaseURL = constants.DefaultDecisionBaseURL
	}
	if c.Decision.Model == "" {
		c.Decision.Model = constants.DefaultDecisionModel
	}
	if c.Decision.TimeoutSeconds <= 0 {
		c.Decision.TimeoutSeconds = constants.DefaultDecisionTimeoutSeconds
	}
	if c.Decision.RetryIntervalSeconds <= 0 {
		c.Decision.RetryIntervalSeconds = constants.DefaultRetryIntervalSeconds
	}
}
