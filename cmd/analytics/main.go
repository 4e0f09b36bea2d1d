package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/carbonswap/sushiswap-analytics/internal/config"
	"github.com/carbonswap/sushiswap-analytics/internal/datafetcher"
	"github.com/carbonswap/sushiswap-analytics/internal/logger"
	"github.com/carbonswap/sushiswap-analytics/internal/state"
	"github.com/carbonswap/sushiswap-analytics/internal/tracker"
	"github.com/carbonswap/sushiswap-analytics/internal/types"
	"github.com/carbonswap/sushiswap-analytics/internal/web"
)

// main is the entry point for the portfolio analytics service.
func main() {
	// --- 1. Initialization Phase ---
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("Warning: .env file not found. Relying on OS environment variables.")
	}

	// Logger first so configuration loading already honors LOG_LEVEL.
	logger.Initialize(os.Getenv("LOG_LEVEL"))

	if err := config.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Portfolio analytics service starting...")

	// Initialize database connection for snapshot history
	dbCfg := state.DBConfig{
		Host: os.Getenv("DB_HOST"), Port: mustAtoi(os.Getenv("DB_PORT"), 5432),
		User: os.Getenv("DB_USER"), Password: os.Getenv("DB_PASSWORD"),
		DBName: os.Getenv("DB_NAME"), SSLMode: os.Getenv("DB_SSLMODE"),
	}
	if err := state.InitDB(dbCfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer state.CloseDB()
	if err := state.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure database schema")
	}

	fetcher := subgraphFetcher{}

	// --- Start Web Server ---
	webPort := os.Getenv("WEB_PORT")
	if webPort == "" {
		webPort = "8080"
	}

	webServer := web.NewWebServer(webPort, fetcher)
	go func() {
		log.Info().Str("port", webPort).Str("url", "http://localhost:"+webPort).Msg("Starting portfolio API server")
		if err := webServer.Start(); err != nil {
			log.Error().Err(err).Msg("Web server stopped")
		}
	}()

	// --- 2. Tracker Loop ---
	portfolioTracker, err := tracker.NewTracker(tracker.Config{
		Fetcher:   fetcher,
		Store:     dbStore{},
		Addresses: config.WatchedAddresses,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create tracker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	portfolioTracker.RunLoop(ctx, config.RefreshInterval)

	log.Info().Msg("Portfolio analytics service shut down.")
}

// subgraphFetcher adapts the datafetcher package to the tracker's Fetcher interface.
type subgraphFetcher struct{}

func (subgraphFetcher) FetchBundle(ctx context.Context, address string) (*types.LedgerBundle, error) {
	return datafetcher.FetchBundle(ctx, address)
}

// dbStore adapts the state package to the tracker's Store interface.
type dbStore struct{}

func (dbStore) SavePortfolioSnapshot(metrics types.PortfolioMetrics) (int64, error) {
	return state.SavePortfolioSnapshot(metrics)
}

func (dbStore) IncrementCycleNumber() (int, error) {
	return state.IncrementCycleNumber()
}

func mustAtoi(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
