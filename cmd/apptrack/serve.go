package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jordan/apptrack/internal/config"
	"github.com/jordan/apptrack/internal/db"
	"github.com/jordan/apptrack/internal/extract"
	"github.com/jordan/apptrack/internal/fetch"
	"github.com/jordan/apptrack/internal/llm"
	"github.com/jordan/apptrack/internal/scrape"
	"github.com/jordan/apptrack/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for managing job applications and scraping job postings.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}
	scrapeConfig, err := config.NewScrapeConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	llmClient, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create inference client: %w", err)
	}
	defer llmClient.Close()

	scraper := scrape.New(llmClient, scrape.Options{
		Fetch: &fetch.Options{
			Timeout:     scrapeConfig.FetchTimeout,
			MaxAttempts: scrapeConfig.MaxAttempts,
			BackoffStep: scrapeConfig.BackoffStep,
		},
		Extract: &extract.Options{
			MaxTextLength: scrapeConfig.MaxTextLength,
		},
		UseBrowser: scrapeConfig.UseBrowser,
	})

	jwtService := server.NewJWTService(jwtConfig)
	userService := server.NewUserService(database, passwordConfig)
	authHandler := server.NewAuthHandler(userService, jwtService)

	srv := server.New(database, scraper, authHandler, jwtService, servePort)
	return srv.Start(ctx)
}
