/*

This file contains the portfolio aggregator, the engine's entry point.

EvaluatePortfolio is a deterministic, side-effect-free transform from one
LedgerBundle snapshot to a PortfolioMetrics snapshot. It performs no I/O,
keeps no state between calls, and degrades per metric: an absent ledger
marks its section unavailable while everything whose inputs are present
still computes.

*/

package analyzer

import (
	"errors"
	"time"

	"github.com/carbonswap/sushiswap-analytics/internal/logger"
	"github.com/carbonswap/sushiswap-analytics/internal/types"
)

var portfolioLogger = logger.GetForComponent("portfolio_aggregator")

var ErrNilBundle = errors.New("ledger bundle cannot be nil")

// EvaluatePortfolio computes the full metrics snapshot for the bundle's
// address. Only structural misuse returns an error; business-data absence
// degrades the affected metrics instead.
func EvaluatePortfolio(bundle *types.LedgerBundle, evaluatedAt time.Time) (types.PortfolioMetrics, error) {
	if bundle == nil {
		return types.PortfolioMetrics{}, ErrNilBundle
	}

	metrics := types.PortfolioMetrics{
		Address:     bundle.Address,
		EvaluatedAt: evaluatedAt,
	}
	if bundle.LatestBlock != nil {
		metrics.BlockNumber = bundle.LatestBlock.Number
	}

	// Unresolvable price excludes every USD-denominated metric downstream;
	// native-unit metrics remain computable.
	price := types.InvalidMetric()
	resolved, err := ResolveSushiPrice(bundle.SushiToken, bundle.Bundle)
	if err != nil {
		portfolioLogger.Warn().
			Err(err).
			Str("address", bundle.Address).
			Msg("Reference price unavailable, USD metrics excluded")
	} else {
		price = types.ValidMetric(resolved)
	}
	metrics.SushiPrice = price

	metrics.Staking = CalculateStaking(bundle.StakingUser, price, bundle.LatestBlock)
	metrics.Farming, metrics.Lockup = CalculateFarming(bundle, price)

	metrics.InvestmentsUSD = AggregateInvestments(metrics.Staking, metrics.Farming, metrics.Lockup)

	return metrics, nil
}

// AggregateInvestments combines the section outputs into the single
// claimable-plus-locked worth figure:
// farming entries + staking pending + farming pending + farming exits + locked.
// A section whose ledger was absent contributes zero (the address simply has
// nothing there); a section whose USD value could not be computed makes the
// total unavailable. Re-applying this to an engine output reproduces the
// same total.
func AggregateInvestments(staking types.StakingMetrics, farming types.FarmingMetrics, lockup types.LockupMetrics) types.Metric {
	total := types.ValidMetric(0)

	if staking.Available {
		total = total.AddMetric(staking.PendingValueUSD)
	}
	if farming.Available {
		total = total.AddMetric(farming.EntriesUSD)
		total = total.AddMetric(farming.PendingUSD)
		total = total.AddMetric(farming.ExitsUSD)
	}
	if lockup.Available {
		total = total.AddMetric(lockup.TotalLockedUSD)
	}

	return total
}
