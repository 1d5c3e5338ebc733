package main

import (
	"context"
	"net/http"
	"os"

	"github.com/msrishav-28/eduflow-dev/internal/api"
	"github.com/msrishav-28/eduflow-dev/internal/config"
	"github.com/msrishav-28/eduflow-dev/internal/database"
	"github.com/msrishav-28/eduflow-dev/internal/llm"
	"github.com/msrishav-28/eduflow-dev/internal/logger"
	"github.com/msrishav-28/eduflow-dev/internal/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Create tables on first run
	if err := database.Migrate(context.Background()); err != nil {
		logger.Error("Schema migration failed: %v", err)
		os.Exit(1)
	}

	// Pick the LLM provider from the configured API keys
	llm.Init(cfg)

	// Initialize routes
	router := api.SetupRouter(cfg, llm.Default)

	// Wrap router with CORS middleware
	handler := middleware.CORS(cfg.CORSOrigins)(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
