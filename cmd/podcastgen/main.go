// Package main provides the entry point for the podcast generation CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "podcastgen",
	Short: "Podcast episode generation pipeline",
	Long:  "podcastgen runs a thirteen-stage content pipeline that researches a company, writes an episode script and renders it to audio, with per-stage artifacts for audit and resume.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
