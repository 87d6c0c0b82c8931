package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowstudio/flowswarm/completion"
	"github.com/flowstudio/flowswarm/completion/anthropic"
	"github.com/flowstudio/flowswarm/logging"
	"github.com/flowstudio/flowswarm/memory"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "flowstudio",
	Short: "AI-powered design system generator",
	Long: `Flow Studio generates complete design systems from a brand
configuration using an intelligent agent swarm.

Specialist agents research trends, analyze the brand, generate design
tokens and theme variations, and evaluate the output for quality and
accessibility. Agents remember past work across runs.

Requires ANTHROPIC_API_KEY in the environment or a local .env file.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(swarmCmd)
	rootCmd.AddCommand(infoCmd)
}

func newLogger() logging.Logger {
	if verbose {
		return logging.NewTextLogger(os.Stderr, slog.LevelDebug)
	}
	return logging.NoOpLogger{}
}

// newClient builds the completion client used by all generation commands. It
// fails when no provider credentials are configured.
func newClient() (*completion.Client, error) {
	provider, err := anthropic.New()
	if err != nil {
		return nil, err
	}
	return completion.NewClient(provider, func(o *completion.Options) {
		o.Logger = newLogger()
	}), nil
}

func newStore() *memory.FileStore {
	return memory.NewFileStore()
}
