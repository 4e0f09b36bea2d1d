/*

This file contains the staking position calculator for the bar ledger.

xSUSHI is a receipt token: the actual claim is the pro-rata redemption
against the bar's live staked/totalSupply ratio. ROI isolates profit from
principal movement by subtracting net contributions (deposits minus harvests
plus net transfers) from the live claim.

*/

package analyzer

import (
	"errors"
	"math"

	"github.com/carbonswap/sushiswap-analytics/internal/config"
	"github.com/carbonswap/sushiswap-analytics/internal/logger"
	"github.com/carbonswap/sushiswap-analytics/internal/types"
)

var stakingLogger = logger.GetForComponent("staking_calculator")

var ErrZeroTotalSupply = errors.New("bar total supply is zero")

// CalculateStaking evaluates one address's bar position against the resolved
// reference price and the latest block. A nil user means the address never
// interacted with the bar; the section is reported unavailable and every
// other portfolio section still computes.
func CalculateStaking(user *types.StakingUser, price types.Metric, latestBlock *types.BlockReference) types.StakingMetrics {
	if user == nil {
		return types.StakingMetrics{Available: false}
	}

	metrics := types.StakingMetrics{Available: true}

	// Pro-rata receipt-token redemption against the live bar ratio.
	stakedClaim := types.InvalidMetric()
	if user.Bar.TotalSupply > 0 {
		stakedClaim = types.ValidMetric(user.XSushi * user.Bar.SushiStaked / user.Bar.TotalSupply)
	} else {
		stakingLogger.Warn().
			Float64("totalSupply", user.Bar.TotalSupply).
			Msg("Bar total supply is not positive, staked claim unavailable")
	}
	metrics.StakedClaim = stakedClaim

	// Direction of the transfer churn is not meaningful here, only magnitude.
	metrics.NetTransferred = types.ValidMetric(math.Abs(user.XSushiIn - user.XSushiOut))

	metrics.InvestedUSD = types.ValidMetric(user.SushiStakedUSD)

	// A zero claim pends nothing regardless of price availability.
	switch {
	case stakedClaim.Valid && stakedClaim.Value <= 0:
		metrics.PendingValueUSD = types.ValidMetric(0)
	default:
		metrics.PendingValueUSD = stakedClaim.MulMetric(price)
	}

	// Pending claim minus net principal contributed.
	netPrincipal := user.SushiStaked - user.SushiHarvested + user.SushiIn - user.SushiOut
	if stakedClaim.Valid {
		metrics.RoiNative = types.ValidMetric(stakedClaim.Value - netPrincipal)
	}

	netPrincipalUSD := user.SushiStakedUSD - user.SushiHarvestedUSD + user.UsdIn - user.UsdOut
	if metrics.PendingValueUSD.Valid {
		metrics.RoiUSD = types.ValidMetric(metrics.PendingValueUSD.Value - netPrincipalUSD)
	}

	metrics.Roi = annualizeStakingRoi(user, metrics.RoiNative, price, latestBlock)

	return metrics
}

// annualizeStakingRoi projects the native ROI over the position's block age.
// Missing creation block, missing oracle or a non-positive span report as
// insufficient history, never as a non-finite projection.
func annualizeStakingRoi(user *types.StakingUser, roiNative types.Metric, price types.Metric, latestBlock *types.BlockReference) types.Annualized {
	if !roiNative.Valid {
		return types.Annualized{}
	}
	if latestBlock == nil || user.CreatedAtBlock <= 0 {
		stakingLogger.Debug().
			Bool("latestBlockPresent", latestBlock != nil).
			Int64("createdAtBlock", user.CreatedAtBlock).
			Msg("Block history unavailable, skipping ROI annualization")
		return types.Annualized{}
	}

	blockDelta := latestBlock.Number - user.CreatedAtBlock
	projection, err := Annualize(roiNative.Value, blockDelta, config.BlocksPerDay)
	if err != nil {
		if errors.Is(err, ErrInsufficientHistory) {
			stakingLogger.Debug().
				Int64("blockDelta", blockDelta).
				Msg("Insufficient history for ROI annualization")
		} else {
			stakingLogger.Error().Err(err).Msg("ROI annualization failed")
		}
		return types.Annualized{}
	}

	return applyPrice(projection, price)
}
