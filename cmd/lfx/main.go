// Package main is the lfx command: fetch the LFX Mentorship listing, store it, or serve it over MCP.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/lfx-mentorship/internal/config"
	"github.com/honeycarbs/lfx-mentorship/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:          "lfx",
	Short:        "LFX Mentorship project listing tool",
	Long:         "Fetches open LFX Mentorship projects once and writes them as CSV/JSON, stores snapshots, or serves them to agents over MCP.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup() (config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logging.New(cfg.LogLevel), nil
}
