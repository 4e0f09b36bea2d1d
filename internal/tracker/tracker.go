package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carbonswap/sushiswap-analytics/internal/analyzer"
	"github.com/carbonswap/sushiswap-analytics/internal/logger"
	"github.com/carbonswap/sushiswap-analytics/internal/types"
)

// Fetcher assembles one complete ledger bundle for an address.
type Fetcher interface {
	FetchBundle(ctx context.Context, address string) (*types.LedgerBundle, error)
}

// Store persists evaluated portfolio snapshots.
type Store interface {
	SavePortfolioSnapshot(metrics types.PortfolioMetrics) (int64, error)
	IncrementCycleNumber() (int, error)
}

// Tracker periodically re-evaluates a fixed set of portfolio addresses:
// fetch a ledger bundle, run the valuation engine, persist the snapshot.
// Each evaluation is a one-shot pure call against a bundle from a single
// fetch cycle; the tracker never hands the engine a partially refreshed one.
type Tracker struct {
	logger    zerolog.Logger
	fetcher   Fetcher
	store     Store
	addresses []string
}

// Config holds the dependencies for creating a new Tracker.
type Config struct {
	Fetcher   Fetcher
	Store     Store
	Addresses []string
}

// NewTracker creates a Tracker with dependency injection.
func NewTracker(cfg Config) (*Tracker, error) {
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("fetcher cannot be nil")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("at least one address is required")
	}

	return &Tracker{
		logger:    logger.GetForComponent("tracker"),
		fetcher:   cfg.Fetcher,
		store:     cfg.Store,
		addresses: cfg.Addresses,
	}, nil
}

// RunLoop starts the refresh loop with the specified interval. The first
// cycle runs immediately.
func (t *Tracker) RunLoop(ctx context.Context, interval time.Duration) {
	t.logger.Info().
		Dur("interval", interval).
		Int("addresses", len(t.addresses)).
		Msg("Starting portfolio refresh loop")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	t.RunCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			t.logger.Info().Msg("Refresh loop stopped due to context cancellation")
			return
		case <-ticker.C:
			t.RunCycle(ctx)
		}
	}
}

// RunCycle refreshes every watched address once. A failure for one address
// skips that address; the cycle itself never aborts.
func (t *Tracker) RunCycle(ctx context.Context) {
	cycleStart := time.Now()

	// Cycle id traces the logs of one refresh across all addresses.
	cycleID := uuid.New().String()
	cycleLogger := t.logger.With().Str("cycle_id", cycleID).Logger()

	cycleNumber, err := t.store.IncrementCycleNumber()
	if err != nil {
		cycleLogger.Error().Err(err).Msg("Failed to increment cycle number, using fallback")
		cycleNumber = int(time.Now().Unix() % 1000000)
	}

	cycleLogger.Info().Int("cycle", cycleNumber).Msg("--- Starting refresh cycle ---")

	refreshed := 0
	for _, address := range t.addresses {
		if ctx.Err() != nil {
			cycleLogger.Info().Msg("Refresh cycle interrupted")
			return
		}
		if err := t.refreshAddress(ctx, cycleLogger, address); err != nil {
			cycleLogger.Error().Err(err).Str("address", address).Msg("Address refresh failed, skipping")
			continue
		}
		refreshed++
	}

	cycleLogger.Info().
		Int("cycle", cycleNumber).
		Int("refreshed", refreshed).
		Int("addresses", len(t.addresses)).
		Str("cycleDuration", time.Since(cycleStart).String()).
		Msg("--- Refresh cycle completed ---")
}

func (t *Tracker) refreshAddress(ctx context.Context, cycleLogger zerolog.Logger, address string) error {
	bundle, err := t.fetcher.FetchBundle(ctx, address)
	if err != nil {
		return fmt.Errorf("fetch bundle: %w", err)
	}

	metrics, err := analyzer.EvaluatePortfolio(bundle, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("evaluate portfolio: %w", err)
	}

	snapshotID, err := t.store.SavePortfolioSnapshot(metrics)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	cycleLogger.Info().
		Str("address", address).
		Int64("snapshotID", snapshotID).
		Bool("priceAvailable", metrics.SushiPrice.Valid).
		Bool("investmentsAvailable", metrics.InvestmentsUSD.Valid).
		Float64("investmentsUSD", metrics.InvestmentsUSD.Value).
		Msg("Portfolio refreshed")
	return nil
}
