package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonswap/sushiswap-analytics/internal/config"
	"github.com/carbonswap/sushiswap-analytics/internal/types"
)

func barUserFixture() *types.StakingUser {
	return &types.StakingUser{
		XSushi:            100,
		SushiStaked:       180,
		SushiStakedUSD:    1800,
		SushiHarvested:    30,
		SushiHarvestedUSD: 300,
		XSushiIn:          10,
		XSushiOut:         25,
		SushiIn:           5,
		SushiOut:          15,
		UsdIn:             50,
		UsdOut:            150,
		CreatedAtBlock:    10_000_000,
		Bar: types.StakingPool{
			SushiStaked: 1000,
			TotalSupply: 500,
		},
	}
}

func TestCalculateStakingClaim(t *testing.T) {
	metrics := CalculateStaking(barUserFixture(), types.ValidMetric(2), &types.BlockReference{Number: 10_006_440})

	require.True(t, metrics.Available)

	// Pro-rata redemption: 100 * 1000 / 500.
	require.True(t, metrics.StakedClaim.Valid)
	assert.InDelta(t, 200, metrics.StakedClaim.Value, 1e-9)

	// Only magnitude of the transfer churn matters.
	require.True(t, metrics.NetTransferred.Valid)
	assert.InDelta(t, 15, metrics.NetTransferred.Value, 1e-9)

	require.True(t, metrics.PendingValueUSD.Valid)
	assert.InDelta(t, 400, metrics.PendingValueUSD.Value, 1e-9)

	// Claim minus net principal: 200 - (180 - 30 + 5 - 15) = 60.
	require.True(t, metrics.RoiNative.Valid)
	assert.InDelta(t, 60, metrics.RoiNative.Value, 1e-9)

	// USD mirror: 400 - (1800 - 300 + 50 - 150) = -1000.
	require.True(t, metrics.RoiUSD.Valid)
	assert.InDelta(t, -1000, metrics.RoiUSD.Value, 1e-9)
}

func TestCalculateStakingNetTransferredIsAbsolute(t *testing.T) {
	user := barUserFixture()
	user.XSushiIn, user.XSushiOut = 25, 10

	metrics := CalculateStaking(user, types.ValidMetric(2), nil)
	assert.InDelta(t, 15, metrics.NetTransferred.Value, 1e-9)
}

func TestCalculateStakingAnnualization(t *testing.T) {
	// One day of blocks elapsed: daily ROI equals total ROI.
	metrics := CalculateStaking(barUserFixture(), types.ValidMetric(2), &types.BlockReference{Number: 10_000_000 + config.BlocksPerDay})

	require.True(t, metrics.Roi.DailyNative.Valid)
	assert.InDelta(t, 60, metrics.Roi.DailyNative.Value, 1e-9)
	assert.InDelta(t, 60*365, metrics.Roi.YearlyNative.Value, 1e-9)
	require.True(t, metrics.Roi.DailyUSD.Valid)
	assert.InDelta(t, 120, metrics.Roi.DailyUSD.Value, 1e-9)
}

func TestCalculateStakingInsufficientHistory(t *testing.T) {
	user := barUserFixture()

	// Same block as creation: zero span must degrade, not divide.
	metrics := CalculateStaking(user, types.ValidMetric(2), &types.BlockReference{Number: user.CreatedAtBlock})
	assert.False(t, metrics.Roi.DailyNative.Valid)

	// Missing creation block.
	user.CreatedAtBlock = 0
	metrics = CalculateStaking(user, types.ValidMetric(2), &types.BlockReference{Number: 10_006_440})
	assert.False(t, metrics.Roi.DailyNative.Valid)

	// Missing oracle.
	metrics = CalculateStaking(barUserFixture(), types.ValidMetric(2), nil)
	assert.False(t, metrics.Roi.DailyNative.Valid)
}

func TestCalculateStakingZeroTotalSupply(t *testing.T) {
	user := barUserFixture()
	user.Bar.TotalSupply = 0

	metrics := CalculateStaking(user, types.ValidMetric(2), &types.BlockReference{Number: 10_006_440})

	require.True(t, metrics.Available)
	assert.False(t, metrics.StakedClaim.Valid)
	assert.False(t, metrics.PendingValueUSD.Valid)
	assert.False(t, metrics.RoiNative.Valid)
	assert.False(t, metrics.Roi.DailyNative.Valid)
	// Transfer churn does not depend on the bar ratio.
	assert.True(t, metrics.NetTransferred.Valid)
}

func TestCalculateStakingMissingPrice(t *testing.T) {
	metrics := CalculateStaking(barUserFixture(), types.InvalidMetric(), &types.BlockReference{Number: 10_006_440})

	// Native metrics stay computable without a price.
	assert.True(t, metrics.StakedClaim.Valid)
	assert.True(t, metrics.RoiNative.Valid)
	assert.True(t, metrics.Roi.DailyNative.Valid)

	// USD metrics are excluded, not zeroed.
	assert.False(t, metrics.PendingValueUSD.Valid)
	assert.False(t, metrics.RoiUSD.Valid)
	assert.False(t, metrics.Roi.DailyUSD.Valid)
}

func TestCalculateStakingZeroClaimPendsNothing(t *testing.T) {
	user := barUserFixture()
	user.XSushi = 0

	// A zero claim is worth zero regardless of price availability.
	metrics := CalculateStaking(user, types.InvalidMetric(), nil)
	require.True(t, metrics.PendingValueUSD.Valid)
	assert.Zero(t, metrics.PendingValueUSD.Value)
}

func TestCalculateStakingAbsentLedger(t *testing.T) {
	metrics := CalculateStaking(nil, types.ValidMetric(2), &types.BlockReference{Number: 1})
	assert.False(t, metrics.Available)
}
