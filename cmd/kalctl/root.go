package main

import (
	"os"

	"github.com/spf13/cobra"

	"kalshield/cmd/internal/logger"
	"kalshield/config"
)

var (
	backendURL string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "kalctl",
	Short:         "KalShield command line tools",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{Level: logLevel, Service: "kalctl", Output: os.Stderr})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "blog backend base URL (defaults to BACKEND_BASE_URL / config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")
	rootCmd.AddCommand(newSearchCmd(), newFeedCmd())
}

// resolveBackend prefers the flag over the app configuration.
func resolveBackend() string {
	if backendURL != "" {
		return backendURL
	}
	config.InitApp()
	return config.GetConfig().Backend.BaseURL
}
