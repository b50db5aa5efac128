package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lifesim/internal/config"
	"lifesim/internal/decision"
	"lifesim/internal/server"
	"lifesim/internal/sim"
	"lifesim/pkg/constants"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	scenarioLocation := flag.String("scenario", "", "path to an optional scenario preset file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Environment settings (the API key in particular) override the file.
	envCfg, err := decision.LoadEnv()
	if err != nil {
		logger.Fatal("failed to load decision environment",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if envCfg.APIKey == "" {
		logger.Warn("decision API key not configured; every decision attempt will fail and retry",
			zap.String("op", "main"),
		)
	}

	clientCfg := decision.ClientConfig{
		BaseURL:       firstNonEmpty(envCfg.BaseURL, conf.Decision.BaseURL),
		APIKey:        envCfg.APIKey,
		Model:         firstNonEmpty(envCfg.Model, conf.Decision.Model),
		Timeout:       time.Duration(conf.Decision.TimeoutSeconds) * time.Second,
		RetryInterval: time.Duration(conf.Decision.RetryIntervalSeconds) * time.Second,
	}
	provider := decision.NewClient(logger, clientCfg)
	engine := sim.NewEngine(logger, provider)

	var scenario *config.Scenario
	if *scenarioLocation != "" {
		scenario, err = config.LoadScenario(*scenarioLocation)
		if err != nil {
			logger.Fatal("failed to load scenario preset",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		logger.Info("scenario preset loaded",
			zap.String("op", "main"),
			zap.String("path", *scenarioLocation),
			zap.Int("targets", len(scenario.Targets)),
		)
	}

	handler := server.NewHandler(logger, engine, scenario)

	logger.Info("server listening",
		zap.String("op", "main"),
		zap.String("address", conf.Server.Address),
		zap.Bool("decisionKeyConfigured", envCfg.APIKey != ""),
	)

	srv := &http.Server{Addr: conf.Server.Address, Handler: handler}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server exited",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
