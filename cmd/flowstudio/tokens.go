package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/flowstudio/flowswarm/brand"
	"github.com/flowstudio/flowswarm/workflow"
)

var tokensOutput string

var tokensCmd = &cobra.Command{
	Use:   "tokens <brand-config>",
	Short: "Generate design tokens only",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().StringVarP(&tokensOutput, "output", "o", "./design-tokens.json", "Output file path")
}

func runTokens(cmd *cobra.Command, args []string) error {
	cfg, err := brand.Load(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	generator, err := workflow.NewGenerator(client, func(o *workflow.Options) {
		o.Store = newStore()
		o.Logger = newLogger()
	})
	if err != nil {
		return err
	}

	fmt.Printf("Generating design tokens for %q...\n", cfg.Name())
	tokens, err := generator.GenerateTokens(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if err := writeJSON(tokensOutput, tokens); err != nil {
		return err
	}
	color.New(color.FgGreen).Println("Design tokens generated")
	fmt.Printf("Saved to: %s\n", tokensOutput)
	return nil
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
