/*

This file contains the annualization engine.

A reward delta observed over a block-height span is normalized into daily,
monthly and yearly projections through a fixed blocks-per-day constant.
Monthly and yearly are exact linear multiples of daily. The block-time
estimate makes these projections deliberate approximations, not
calendar-accurate figures.

*/

package analyzer

import (
	"errors"
	"fmt"
	"math"

	"github.com/carbonswap/sushiswap-analytics/internal/config"
	"github.com/carbonswap/sushiswap-analytics/internal/types"
)

var ErrInsufficientHistory = errors.New("insufficient block history for annualization")

// Annualize projects delta, observed over blockSpan blocks, onto calendar
// periods. blockSpan <= 0 is an input-validation failure, never a silent
// zero: a brand-new position has no deposit age to project from.
func Annualize(delta float64, blockSpan int64, blocksPerDay float64) (types.Annualized, error) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return types.Annualized{}, fmt.Errorf("delta is not finite: %f", delta)
	}
	if blocksPerDay <= 0 {
		return types.Annualized{}, fmt.Errorf("blocksPerDay must be positive, got %f", blocksPerDay)
	}
	if blockSpan <= 0 {
		return types.Annualized{}, ErrInsufficientHistory
	}

	daily := delta / float64(blockSpan) * blocksPerDay

	return types.Annualized{
		DailyNative:   types.ValidMetric(daily),
		MonthlyNative: types.ValidMetric(daily * config.DaysPerMonth),
		YearlyNative:  types.ValidMetric(daily * config.DaysPerYear),
	}, nil
}

// applyPrice fills the USD projections from the native ones. An unavailable
// price leaves every USD projection unavailable.
func applyPrice(projection types.Annualized, price types.Metric) types.Annualized {
	projection.DailyUSD = projection.DailyNative.MulMetric(price)
	projection.MonthlyUSD = projection.MonthlyNative.MulMetric(price)
	projection.YearlyUSD = projection.YearlyNative.MulMetric(price)
	return projection
}
