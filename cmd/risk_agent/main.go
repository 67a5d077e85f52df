// Package main provides the risk_agent CLI: scoring, explanation, health and the HTTP transport.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/risk-router/internal/config"
	"github.com/jonathan/risk-router/internal/observability"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	modelsDir  string
	logLevel   string
	verbose    bool
)

// app is the state resolved before every command runs
var app struct {
	cfg    config.Config
	logger *logrus.Logger
}

var rootCmd = &cobra.Command{
	Use:   "risk_agent",
	Short: "Clinical risk routing and explanation",
	Long: "risk_agent routes sparse clinical trend features to the best available specialty model, " +
		"falls back to a weighted ensemble or a rule-based scorer, and explains the result with fact-only sentences.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&modelsDir, "models-dir", "", "Directory holding <model>_model.json artifacts (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print formatted summaries to stderr")
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("models-dir") {
		cfg.ModelsDir = modelsDir
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	logger, err := observability.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	app.cfg = cfg
	app.logger = logger
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
