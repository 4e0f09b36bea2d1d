package analyzer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonswap/sushiswap-analytics/internal/config"
	"github.com/carbonswap/sushiswap-analytics/internal/types"
)

func TestAnnualize(t *testing.T) {
	// 64.40 rewards over 6440 blocks is exactly 64.40 per day at the
	// mainnet block rate.
	projection, err := Annualize(64.40, 6440, config.BlocksPerDay)
	require.NoError(t, err)

	require.True(t, projection.DailyNative.Valid)
	assert.InDelta(t, 64.40, projection.DailyNative.Value, 1e-9)
	assert.InDelta(t, 64.40*30, projection.MonthlyNative.Value, 1e-9)
	assert.InDelta(t, 64.40*365, projection.YearlyNative.Value, 1e-9)
}

func TestAnnualizeIsLinear(t *testing.T) {
	deltas := []float64{-12.5, 0, 0.001, 9999.25}
	for _, delta := range deltas {
		projection, err := Annualize(delta, 123456, config.BlocksPerDay)
		require.NoError(t, err)

		daily := projection.DailyNative.Value
		assert.Equal(t, daily*30, projection.MonthlyNative.Value)
		assert.Equal(t, daily*365, projection.YearlyNative.Value)
	}
}

func TestAnnualizeGuardsBlockSpan(t *testing.T) {
	// A zero or negative span is insufficient history, never a
	// divide-by-zero artifact.
	_, err := Annualize(100, 0, config.BlocksPerDay)
	require.ErrorIs(t, err, ErrInsufficientHistory)

	_, err = Annualize(100, -5, config.BlocksPerDay)
	require.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestAnnualizeRejectsBadInputs(t *testing.T) {
	_, err := Annualize(math.NaN(), 100, config.BlocksPerDay)
	require.Error(t, err)

	_, err = Annualize(math.Inf(1), 100, config.BlocksPerDay)
	require.Error(t, err)

	_, err = Annualize(100, 100, 0)
	require.Error(t, err)
}

func TestApplyPrice(t *testing.T) {
	projection, err := Annualize(10, 6440, config.BlocksPerDay)
	require.NoError(t, err)

	priced := applyPrice(projection, types.ValidMetric(2))
	require.True(t, priced.DailyUSD.Valid)
	assert.InDelta(t, priced.DailyNative.Value*2, priced.DailyUSD.Value, 1e-9)
	assert.InDelta(t, priced.YearlyNative.Value*2, priced.YearlyUSD.Value, 1e-9)

	unpriced := applyPrice(projection, types.InvalidMetric())
	assert.False(t, unpriced.DailyUSD.Valid)
	assert.False(t, unpriced.MonthlyUSD.Valid)
	assert.False(t, unpriced.YearlyUSD.Valid)
	assert.True(t, unpriced.DailyNative.Valid)
}
