package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/flowstudio/flowswarm/agent"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show Flow Studio information",
	Run:   runInfo,
}

func runInfo(cmd *cobra.Command, args []string) {
	color.New(color.FgCyan, color.Bold).Println("\nFlow Studio")
	fmt.Println("AI-powered design system generator using an intelligent agent swarm")
	fmt.Println()
	color.New(color.FgWhite).Println("Available agents:")
	for _, t := range agent.Types() {
		profile := t.Profile()
		fmt.Printf("  %-12s %s\n", profile.Name, profile.Role)
	}
	fmt.Println()
}
