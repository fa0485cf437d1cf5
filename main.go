package main

import (
	"fmt"
	"os"

	"github.com/edgeforge/wictool/cmd"
	"github.com/edgeforge/wictool/internal/config"
	"github.com/edgeforge/wictool/internal/logger"
)

func main() {
	// Get app configuration file from environment if specified
	configFile := os.Getenv("WICTOOL_CONFIG")

	// 1. Initialize application configuration
	if err := config.Initialize(configFile); err != nil {
		// For app configuration errors, we print to stderr and exit since we can't continue
		fmt.Fprintf(os.Stderr, "Error initializing configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logging based on application configuration
	if err := logger.Init(logger.Config{
		Debug:  config.Instance.Debug,
		Format: config.Instance.LogFormat,
		File:   config.Instance.LogFile,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	// 3. Dispatch to the CLI
	cmd.Execute()

	// Ensure logs are flushed before exit
	logger.Sync()
}
