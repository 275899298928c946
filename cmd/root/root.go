// Package root contains the root command for the application
package root

import (
	"vkrishnan/ledger-match/internal/config"
	"vkrishnan/ledger-match/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ledger-match",
		Short: "A CLI tool to map bank statement narrations to ledger names.",
		Long: `ledger-match resolves free-text bank statement narrations to ledger
names using a cascade of matching strategies: learned mappings, user
rules, keyword heuristics and optional semantic matching.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to ledger-match!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
		},
	}

	// Cfg is the loaded application configuration, populated before any
	// subcommand runs.
	Cfg *config.Config

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Specific suggest command flags
	AutoMap   bool
	ShowTrace bool

	// Specific learn command flags
	Narration string
	Ledger    string
	Score     float64
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}
