package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/flowstudio/flowswarm/brand"
	"github.com/flowstudio/flowswarm/workflow"
)

var (
	generateOutput string
	generateThemes int
	generateTrends bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <brand-config>",
	Short: "Generate a complete design system from a brand configuration",
	Long: `Generate a complete design system from a brand configuration.

The pipeline runs trend research, brand analysis, token generation,
theme variations and quality evaluation, writing each phase's JSON
artifact to the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "./output", "Output directory for generated files")
	generateCmd.Flags().IntVarP(&generateThemes, "themes", "t", 20, "Number of theme variations to generate")
	generateCmd.Flags().BoolVar(&generateTrends, "trends", true, "Run the trend research phase")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	color.New(color.FgCyan, color.Bold).Println("\nFlow Studio - AI Design System Generator")

	cfg, err := brand.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("\nBrand:  %s\nSector: %s\n\n", cfg.Name(), cfg.Sector())

	client, err := newClient()
	if err != nil {
		return err
	}

	generator, err := workflow.NewGenerator(client, func(o *workflow.Options) {
		o.Store = newStore()
		o.Logger = newLogger()
		o.OutputDir = generateOutput
		o.ThemeCount = generateThemes
		o.SkipTrendResearch = !generateTrends
	})
	if err != nil {
		return err
	}

	summary, err := generator.GenerateDesignSystem(cmd.Context(), cfg)
	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Generation failed")
		return err
	}

	color.New(color.FgGreen, color.Bold).Println("Design system generated successfully")
	fmt.Printf("Output:  %s\n", summary.OutputDir)
	fmt.Printf("Quality: %.1f%% (tokens), %.1f%% (themes)\n",
		summary.Quality.Tokens*100, summary.Quality.Themes*100)
	fmt.Printf("Time:    %.2fs\n", summary.Duration.Seconds())
	return nil
}
