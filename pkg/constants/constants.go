// Package constants provides shared constants for the lifesim application.
package constants

// Simulation constants
const (
	// DaysPerYear is the number of simulated days in one year of age
	DaysPerYear = 365

	// LogWindow is the number of trailing log entries included in a snapshot
	LogWindow = 30

	// DefaultSpeed is the default client pacing hint in milliseconds
	DefaultSpeed = 500

	// MaxPressure is the upper bound of the pressure score
	MaxPressure = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Decision provider defaults
const (
	// DefaultDecisionBaseURL is the default OpenAI-compatible chat completions endpoint
	DefaultDecisionBaseURL = "https://api.siliconflow.cn/v1/chat/completions"

	// DefaultDecisionModel is the default chat model
	DefaultDecisionModel = "deepseek-ai/DeepSeek-V2.5"

	// DefaultDecisionTimeoutSeconds is the per-attempt request timeout
	DefaultDecisionTimeoutSeconds = 10

	// DefaultRetryIntervalSeconds is the fixed backoff between decision attempts
	DefaultRetryIntervalSeconds = 1
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":3000"

	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Currency constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
