package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/flowstudio/flowswarm/agent"
	"github.com/flowstudio/flowswarm/swarm"
)

var swarmCmd = &cobra.Command{
	Use:   "swarm",
	Short: "Manage the agent swarm",
}

var swarmInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the swarm and list its agents",
	RunE:  runSwarmInit,
}

var swarmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-agent memory statistics",
	RunE:  runSwarmStats,
}

func init() {
	swarmCmd.AddCommand(swarmInitCmd)
	swarmCmd.AddCommand(swarmStatsCmd)
}

func runSwarmInit(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	color.New(color.FgCyan).Println("\nInitializing Flow Studio Swarm...")
	s := swarm.NewFlowStudioSwarm(client, func(o *swarm.Options) {
		o.Store = newStore()
		o.Logger = newLogger()
	})
	stats := s.Stats()

	color.New(color.FgGreen).Printf("Swarm initialized with %d agents\n\n", stats.AgentCount)
	for _, a := range stats.Agents {
		fmt.Printf("  %-12s %s\n", a.Name, a.Role)
	}
	return nil
}

func runSwarmStats(cmd *cobra.Command, args []string) error {
	store := newStore()

	color.New(color.FgCyan).Println("\nAgent Memory Statistics")
	fmt.Println()
	for _, t := range agent.Types() {
		profile := t.Profile()
		stats, err := store.Stats(profile.Name)
		if err != nil {
			return err
		}
		if stats.Count == 0 {
			continue
		}
		fmt.Printf("%-12s %d memories, avg %dms\n",
			profile.Name, stats.Count, stats.MeanElapsed/time.Millisecond)
	}
	return nil
}
