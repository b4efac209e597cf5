package handlers

import (
	"fmt"
	"os"

	"blogsmith/internal/config"

	"github.com/spf13/cobra"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blogsmith",
		Short: "Blogsmith picks a trending topic from content feeds and writes a structured article about it.",
		Long: `Blogsmith aggregates topics from configured content feeds (Hacker News,
Reddit, Dev.to, RSS), ranks them by engagement, freshness, and keyword
relevance, and synthesizes a complete article from the winner using a chain
of generation providers with a built-in template fallback.`,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.blogsmith.yaml)")

	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewTopicsCmd())
	rootCmd.AddCommand(NewSynthesizeCmd())
	rootCmd.AddCommand(NewScheduleCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}
