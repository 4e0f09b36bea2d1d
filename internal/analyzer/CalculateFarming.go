/*

This file contains the farming position calculator for the masterchef ledger.

Each eligible position is valued three ways at once: a pro-rata share of its
pair's live reserves, the pending reward accrual against the pool's live
accumulator, and the locked portion of those rewards. Deny-listed pools and
deactivated (zero allocPoint) pools are excluded from every aggregate sum,
not just from display.

All accumulator math runs on fixed-point decimals: the pool accumulator is
1e12-scaled, amounts and reward debt 1e18-scaled, and a float64 round trip
in the middle would lose precision on real balances.

*/

package analyzer

import (
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/carbonswap/sushiswap-analytics/internal/config"
	"github.com/carbonswap/sushiswap-analytics/internal/logger"
	"github.com/carbonswap/sushiswap-analytics/internal/types"
	"github.com/carbonswap/sushiswap-analytics/internal/utils"
)

var farmingLogger = logger.GetForComponent("farming_calculator")

var ErrZeroPoolBalance = errors.New("pool balance is zero")

// accruedSushi evaluates the accumulator formula
// (amount * accSushiPerShare / 1e12 - rewardDebt) / 1e18 in fixed point and
// returns the decimal-adjusted result. The accumulator must be the pool's
// current value and the debt the user's stored value from the same fetch
// cycle; mixing snapshots from different times produces invalid deltas.
func accruedSushi(amount, accSushiPerShare, rewardDebt sdkmath.LegacyDec) (float64, error) {
	if amount.IsNil() || accSushiPerShare.IsNil() || rewardDebt.IsNil() {
		return 0, errors.New("accumulator inputs are nil")
	}

	pending := amount.
		Mul(accSushiPerShare).
		Quo(config.AccSushiPrecision).
		Sub(rewardDebt).
		Quo(config.SushiPrecision)

	return utils.DecToFloat64(pending)
}

// positionEligible applies the deny list and the deactivated-pool filter.
func positionEligible(position types.FarmingPosition) bool {
	if config.IsPoolDenied(position.Pool.ID) {
		farmingLogger.Debug().Str("poolID", position.Pool.ID).Msg("Pool is deny-listed, position excluded")
		return false
	}
	if position.Pool.AllocPoint == 0 {
		farmingLogger.Debug().Str("poolID", position.Pool.ID).Msg("Pool is deactivated, position excluded")
		return false
	}
	return true
}

// CalculateFarming evaluates every eligible farming position in the bundle
// and aggregates them, along with the lockup section the positions feed.
func CalculateFarming(bundle *types.LedgerBundle, price types.Metric) (types.FarmingMetrics, types.LockupMetrics) {
	farming := types.FarmingMetrics{Available: bundle.FarmingPositions != nil}
	lockup := types.LockupMetrics{Available: bundle.FarmingPositions != nil && bundle.LockupSnapshots != nil}

	if !farming.Available {
		farmingLogger.Debug().Str("address", bundle.Address).Msg("Farming ledger absent, section unavailable")
		return farming, lockup
	}

	var (
		reserveSum    float64
		entriesSum    float64
		exitsSum      float64
		harvestedSum  float64
		pendingSum    float64
		lockedSum     float64
		lockedOK      = lockup.Available
		positionCount int
	)

	for _, position := range bundle.FarmingPositions {
		if !positionEligible(position) {
			continue
		}

		metrics, err := evaluatePosition(bundle, position, price, lockup.Available)
		if err != nil {
			farmingLogger.Error().
				Err(err).
				Str("poolID", position.Pool.ID).
				Msg("Position excluded from aggregates")
			continue
		}

		farming.Positions = append(farming.Positions, metrics)
		positionCount++

		if metrics.ReserveValueUSD.Valid {
			reserveSum += metrics.ReserveValueUSD.Value
		}
		entriesSum += metrics.EntryUSD
		exitsSum += metrics.ExitUSD
		harvestedSum += metrics.HarvestedUSD
		if metrics.PendingReward.Valid {
			pendingSum += metrics.PendingReward.Value
		}
		if metrics.LockedNative.Valid {
			lockedSum += metrics.LockedNative.Value
		} else {
			lockedOK = false
		}
	}

	farming.ReserveValueUSD = types.ValidMetric(reserveSum)
	farming.EntriesUSD = types.ValidMetric(entriesSum)
	farming.ExitsUSD = types.ValidMetric(exitsSum)
	farming.HarvestedUSD = types.ValidMetric(harvestedSum)
	farming.PendingNative = types.ValidMetric(pendingSum)
	farming.PendingUSD = farming.PendingNative.MulMetric(price)

	if lockedOK {
		lockup.TotalLockedNative = types.ValidMetric(lockedSum)
		lockup.TotalLockedUSD = lockup.TotalLockedNative.MulMetric(price)
	}

	// SLP value stacks reserves, pending and locked; overall profit/loss is
	// reserves + exits + harvested + pending - entries. Both inherit
	// unavailability from the price.
	farming.SLPValueUSD = farming.ReserveValueUSD.
		AddMetric(farming.PendingUSD).
		AddMetric(lockup.TotalLockedUSD)
	if farming.PendingUSD.Valid {
		farming.ProfitLossUSD = types.ValidMetric(reserveSum + exitsSum + harvestedSum + farming.PendingUSD.Value - entriesSum)
	}

	farmingLogger.Debug().
		Str("address", bundle.Address).
		Int("eligiblePositions", positionCount).
		Int("rawPositions", len(bundle.FarmingPositions)).
		Msg("Farming positions evaluated")

	return farming, lockup
}

// evaluatePosition computes every per-position metric. An error means the
// position's data is structurally unusable and it drops from all aggregates.
func evaluatePosition(bundle *types.LedgerBundle, position types.FarmingPosition, price types.Metric, lockupPresent bool) (types.PositionMetrics, error) {
	if position.Amount.IsNil() || position.Pool.Balance.IsNil() {
		return types.PositionMetrics{}, errors.New("position amount or pool balance is nil")
	}

	metrics := types.PositionMetrics{
		PoolID:          position.Pool.ID,
		PairID:          position.Pool.Pair,
		HarvestedNative: position.SushiHarvested,
		HarvestedUSD:    position.SushiHarvestedUSD,
		EntryUSD:        position.EntryUSD,
		ExitUSD:         position.ExitUSD,
	}

	slpAmount, err := utils.DecToFloat64(position.Amount.Quo(config.SushiPrecision))
	if err != nil {
		return types.PositionMetrics{}, fmt.Errorf("slp amount: %w", err)
	}
	metrics.SLPAmount = slpAmount

	// A pool that just launched or was fully withdrawn has a zero balance;
	// the share is undefined and the position is excluded.
	if !position.Pool.Balance.IsPositive() {
		return types.PositionMetrics{}, fmt.Errorf("%w: pool %s", ErrZeroPoolBalance, position.Pool.ID)
	}

	share, err := utils.DecToFloat64(position.Amount.Quo(position.Pool.Balance))
	if err != nil {
		return types.PositionMetrics{}, fmt.Errorf("share: %w", err)
	}
	if share < 0 || share > 1 {
		farmingLogger.Warn().
			Str("poolID", position.Pool.ID).
			Float64("share", share).
			Msg("Share outside [0,1], deposit exceeds live pool balance")
	}
	metrics.Share = types.ValidMetric(share)

	// Locate the backing pair for proportional reserve valuation. A missing
	// pair is priceable-but-currently-unresolved: the position contributes
	// zero reserve value, not an error.
	if pair, ok := bundle.PairByID(position.Pool.Pair); ok {
		metrics.Token0Symbol = pair.Token0.Symbol
		metrics.Token1Symbol = pair.Token1.Symbol
		metrics.Token0Amount = types.ValidMetric(pair.Reserve0 * share)
		metrics.Token1Amount = types.ValidMetric(pair.Reserve1 * share)
		metrics.ReserveValueUSD = types.ValidMetric(pair.ReserveUSD * share)
	} else {
		farmingLogger.Debug().
			Str("poolID", position.Pool.ID).
			Str("pairID", position.Pool.Pair).
			Msg("No matching pair for pool, zero reserve contribution")
		metrics.ReserveValueUSD = types.ValidMetric(0)
	}

	// Live accumulator against stored debt. The result can legitimately be
	// transiently negative and is surfaced, not clamped.
	pendingReward, err := accruedSushi(position.Amount, position.Pool.AccSushiPerShare, position.RewardDebt)
	if err != nil {
		return types.PositionMetrics{}, fmt.Errorf("pending reward: %w", err)
	}
	metrics.PendingReward = types.ValidMetric(pendingReward)
	metrics.PendingRewardUSD = metrics.PendingReward.MulMetric(price)

	if lockupPresent {
		snapshot, matched := bundle.LockupByPool(position.Pool.ID)
		locked, err := CalculateLockedSushi(position, snapshot, matched, pendingReward)
		if err != nil {
			farmingLogger.Error().
				Err(err).
				Str("poolID", position.Pool.ID).
				Msg("Lockup computation failed, locked value unavailable")
		} else {
			metrics.LockedNative = types.ValidMetric(locked)
			metrics.LockedUSD = metrics.LockedNative.MulMetric(price)
		}
	}

	// Per-position profit/loss:
	// reserves + exits + harvested + pending*price - entries.
	if metrics.PendingRewardUSD.Valid && metrics.ReserveValueUSD.Valid {
		metrics.ProfitLossUSD = types.ValidMetric(
			metrics.ReserveValueUSD.Value +
				position.ExitUSD +
				position.SushiHarvestedUSD +
				metrics.PendingRewardUSD.Value -
				position.EntryUSD,
		)
	}

	return metrics, nil
}
