// Package main provides the entry point for the AppTrack HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "apptrack",
	Short: "AppTrack HTTP API Server",
	Long:  "AppTrack tracks job applications per user and auto-fills new entries by extracting structured fields from job posting URLs via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
