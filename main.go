package main

import (
	"context"
	"os"
	"strings"

	"flight-agent/config"
	"flight-agent/models"
	"flight-agent/scraper/gflights"
	"flight-agent/services"
	"flight-agent/storage"
	"flight-agent/utils"

	openai "github.com/sashabaranov/go-openai"
)

func main() {
	// ================== Bootstrap ====================
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("Flight Search Agent")
	logger.Info("Model: %s | Max listings: %d | Retries: %d", cfg.OpenAIModel, cfg.MaxListings, cfg.MaxRetries)
	logger.Info("Nav timeout: %s | Settle: %s | Rate delay: %dms", cfg.NavTimeout, cfg.SettleDelay, cfg.RateLimitDelay)

	if cfg.OpenAIKey == "" {
		logger.Error("OPENAI_API_KEY is not set")
		os.Exit(1)
	}

	query := strings.TrimSpace(strings.Join(os.Args[1:], " "))
	if query == "" {
		query = "Find me the cheapest flight from London to Dubai in April"
		logger.Warn("No query given, using example: %q", query)
	}

	// =================== Collaborators ====================
	client := openai.NewClient(cfg.OpenAIKey)
	extractor := services.NewExtractor(client, cfg, logger)
	scraper := gflights.NewScraper(cfg, logger)
	pipeline := services.NewPipeline(extractor, scraper, logger)

	// ============ Optional history storage ================
	var history storage.SearchStorage
	if cfg.DatabaseURL != "" {
		pgWriter, err := storage.NewPostgresWriter(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Error("Cannot connect to PostgreSQL: %v", err)
			os.Exit(1)
		}
		defer pgWriter.Close()

		if err := pgWriter.CreateTables(); err != nil {
			logger.Error("Failed to create DB tables: %v", err)
			os.Exit(1)
		}
		history = pgWriter
	}

	// =============== Pipeline run ===================
	result := pipeline.Run(context.Background(), query)

	// ========= CSV: raw listing dump ================
	if cfg.CSVFilePath != "" && len(result.Listings) > 0 {
		csvWriter := storage.NewCSVWriter(cfg.CSVFilePath, logger)
		if err := csvWriter.SaveRaw(query, result.Listings); err != nil {
			logger.Error("Failed to write CSV: %v", err)
			// Non-fatal: the run result stands either way
		}
	}

	// ========= PostgreSQL: search history ===========
	if history != nil {
		if err := history.RecordSearch(query, result); err != nil {
			logger.Error("Failed to record search history: %v", err)
		}
	}

	// ==== Report ==============================
	services.PrintSearchReport(query, result)

	if result.Status == models.StatusFailure {
		os.Exit(1)
	}
}
