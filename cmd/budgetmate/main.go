package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hoff1997/budgetmate/internal/config"
	"github.com/hoff1997/budgetmate/internal/planner"
	"github.com/hoff1997/budgetmate/internal/server"
	"github.com/hoff1997/budgetmate/pkg/constants"
	"github.com/hoff1997/budgetmate/pkg/output"
	"github.com/hoff1997/budgetmate/pkg/validation"
)

// version is overridden at build time via -ldflags.
var version = "dev"

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
	// Process command line flags first to get profile location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to profile file")
	mode := flag.String("mode", "report", "operation: report, scenario, payday, payoff, serve")
	scenarioID := flag.String("scenario", "", "scenario id for -mode scenario")
	payFlag := flag.String("pay", "", "pay amount override for -mode payday, e.g. 4200 or $4,200.00")
	budgetFlag := flag.String("budget", "", "monthly budget override for -mode payoff")
	strategyFlag := flag.String("strategy", "", "payoff strategy override: snowball, avalanche, hybrid")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the profile to get logging configuration
	profile, err := config.LoadProfile(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load profile at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(profile.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := profile.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Repair the profile and display any warnings
	for _, warning := range profile.Normalize() {
		logger.Warn("Profile warning: "+warning,
			zap.String("op", "main"),
		)
	}
	for _, warning := range profile.Validate() {
		logger.Warn("Profile warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Parse CLI amount overrides
	payAmount, err := validation.ParseOptionalAmount(*payFlag)
	if err != nil {
		logger.Fatal("invalid -pay amount",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	monthlyBudget, err := validation.ParseOptionalAmount(*budgetFlag)
	if err != nil {
		logger.Fatal("invalid -budget amount",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch *mode {
	case "report":
		report, err := planner.GetHealthReport(logger, profile)
		if err != nil {
			logger.Fatal("failed to compute envelope health",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		renderHealth(logger, report, outputFormat)
	case "scenario":
		if *scenarioID == "" {
			logger.Fatal("-mode scenario requires -scenario",
				zap.String("op", "main"),
			)
		}
		report, err := planner.GetScenarioReport(logger, profile, *scenarioID)
		if err != nil {
			logger.Fatal("failed to simulate scenario",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		renderScenario(logger, report, outputFormat)
	case "payday":
		report, err := planner.GetPaydayReport(logger, profile, payAmount)
		if err != nil {
			logger.Fatal("failed to compute payday allocation",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		renderPayday(logger, report, outputFormat)
	case "payoff":
		report, err := planner.GetPayoffReport(logger, profile, *strategyFlag, monthlyBudget)
		if err != nil {
			logger.Fatal("failed to simulate debt payoff",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		renderPayoff(logger, report, outputFormat)
	case "serve":
		runServer(logger, profile)
	default:
		logger.Fatal("unknown mode "+*mode+", expected report, scenario, payday, payoff, or serve",
			zap.String("op", "main"),
		)
	}
}

func renderHealth(logger *zap.Logger, report *planner.HealthReport, format string) {
	switch format {
	case constants.OutputFormatPretty:
		output.PrettyHealth(report)
	case constants.OutputFormatCSV:
		output.CsvHealth(report)
	case constants.OutputFormatJSON:
		renderJSON(logger, report)
	}
}

func renderScenario(logger *zap.Logger, report *planner.ScenarioReport, format string) {
	switch format {
	case constants.OutputFormatPretty:
		output.PrettyScenario(report)
	case constants.OutputFormatCSV:
		output.CsvScenario(report)
	case constants.OutputFormatJSON:
		renderJSON(logger, report)
	}
}

func renderPayday(logger *zap.Logger, report *planner.PaydayReport, format string) {
	switch format {
	case constants.OutputFormatPretty:
		output.PrettyPayday(report)
	case constants.OutputFormatCSV:
		output.CsvPayday(report)
	case constants.OutputFormatJSON:
		renderJSON(logger, report)
	}
}

func renderPayoff(logger *zap.Logger, report *planner.PayoffReport, format string) {
	switch format {
	case constants.OutputFormatPretty:
		output.PrettyPayoff(report)
	case constants.OutputFormatCSV:
		output.CsvPayoff(report)
	case constants.OutputFormatJSON:
		renderJSON(logger, report)
	}
}

func renderJSON(logger *zap.Logger, report interface{}) {
	if err := output.JSONFormat(report); err != nil {
		logger.Error("failed to render JSON output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

func runServer(logger *zap.Logger, profile *config.Profile) {
	settings, err := server.ResolveSettings(profile.Server)
	if err != nil {
		logger.Fatal("invalid server configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	handler := server.NewHandler(logger, settings.MaxBodyBytes, version)

	logger.Info("starting budget API server",
		zap.String("op", "main"),
		zap.String("address", settings.Address),
		zap.Int64("maxBodyBytes", settings.MaxBodyBytes),
		zap.String("version", version),
	)

	if err := http.ListenAndServe(settings.Address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
