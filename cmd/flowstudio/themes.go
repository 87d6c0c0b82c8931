package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/flowstudio/flowswarm/workflow"
)

var (
	themesCount  int
	themesOutput string
)

var themesCmd = &cobra.Command{
	Use:   "themes <tokens-file>",
	Short: "Generate theme variations from existing design tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemes,
}

func init() {
	themesCmd.Flags().IntVarP(&themesCount, "count", "c", 20, "Number of themes to generate")
	themesCmd.Flags().StringVarP(&themesOutput, "output", "o", "./themes.json", "Output file path")
}

func runThemes(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read tokens: %w", err)
	}
	var tokens any
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return fmt.Errorf("parse tokens: %w", err)
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

	fmt.Printf("Generating %d theme variations...\n", themesCount)
	themes, err := generator.GenerateThemes(cmd.Context(), tokens, themesCount)
	if err != nil {
		return err
	}

	if err := writeJSON(themesOutput, themes); err != nil {
		return err
	}
	color.New(color.FgGreen).Println("Themes generated")
	fmt.Printf("Saved to: %s\n", themesOutput)
	return nil
}
