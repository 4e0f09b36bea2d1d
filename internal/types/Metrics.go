/*

This file contains the engine's output types.

Every derived number travels as a Metric, an explicit optional: a metric that
could not be computed (missing price, zero divisor, absent ledger) carries
Valid=false instead of a NaN, an Infinity or a silently wrong zero. The
presentation layer renders invalid metrics as "unavailable".

PortfolioMetrics is derived, never authoritative: it is recomputed on every
evaluation and only persisted as a history snapshot.

*/

package types

import (
	"math"
	"time"
)

// Metric is an optional float64 value.
type Metric struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// ValidMetric wraps a computed value. A non-finite value degrades to an
// invalid metric rather than leaking NaN/Inf to consumers.
func ValidMetric(value float64) Metric {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Metric{}
	}
	return Metric{Value: value, Valid: true}
}

// InvalidMetric marks a metric as unavailable.
func InvalidMetric() Metric {
	return Metric{}
}

// Scale multiplies a metric by a plain factor, preserving unavailability.
func (m Metric) Scale(factor float64) Metric {
	if !m.Valid {
		return Metric{}
	}
	return ValidMetric(m.Value * factor)
}

// MulMetric multiplies two metrics; unavailable if either side is.
func (m Metric) MulMetric(other Metric) Metric {
	if !m.Valid || !other.Valid {
		return Metric{}
	}
	return ValidMetric(m.Value * other.Value)
}

// AddMetric sums two metrics; unavailable if either side is.
func (m Metric) AddMetric(other Metric) Metric {
	if !m.Valid || !other.Valid {
		return Metric{}
	}
	return ValidMetric(m.Value + other.Value)
}

// Annualized projects an observed per-block delta onto calendar periods.
// Monthly and yearly are exact linear multiples of daily.
type Annualized struct {
	DailyNative   Metric `json:"daily_native"`
	MonthlyNative Metric `json:"monthly_native"`
	YearlyNative  Metric `json:"yearly_native"`
	DailyUSD      Metric `json:"daily_usd"`
	MonthlyUSD    Metric `json:"monthly_usd"`
	YearlyUSD     Metric `json:"yearly_usd"`
}

// StakingMetrics is the bar section of a portfolio.
type StakingMetrics struct {
	// Available is false when the staking ledger was absent for the address.
	Available bool `json:"available"`

	StakedClaim     Metric `json:"staked_claim"`      // pro-rata SUSHI redeemable for the xSUSHI balance
	NetTransferred  Metric `json:"net_transferred"`   // magnitude of xSUSHI churn, direction discarded
	InvestedUSD     Metric `json:"invested_usd"`      // lifetime staked value in USD
	PendingValueUSD Metric `json:"pending_value_usd"` // current claim valued at the reference price
	RoiNative       Metric `json:"roi_native"`        // claim minus net principal contributed
	RoiUSD          Metric `json:"roi_usd"`

	Roi Annualized `json:"roi_projection"`
}

// PositionMetrics is the evaluation of a single farming position.
type PositionMetrics struct {
	PoolID       string `json:"pool_id"`
	PairID       string `json:"pair_id"`
	Token0Symbol string `json:"token0_symbol"`
	Token1Symbol string `json:"token1_symbol"`

	SLPAmount        float64 `json:"slp_amount"` // deposited SLP in human units
	Share            Metric  `json:"share"`      // proportional claim on pool reserves, [0,1]
	Token0Amount     Metric  `json:"token0_amount"`
	Token1Amount     Metric  `json:"token1_amount"`
	ReserveValueUSD  Metric  `json:"reserve_value_usd"`
	PendingReward    Metric  `json:"pending_reward"` // newly accrued SUSHI, may be transiently negative
	PendingRewardUSD Metric  `json:"pending_reward_usd"`
	HarvestedNative  float64 `json:"harvested_native"`
	HarvestedUSD     float64 `json:"harvested_usd"`
	LockedNative     Metric  `json:"locked_native"`
	LockedUSD        Metric  `json:"locked_usd"`
	EntryUSD         float64 `json:"entry_usd"`
	ExitUSD          float64 `json:"exit_usd"`
	ProfitLossUSD    Metric  `json:"profit_loss_usd"`
}

// FarmingMetrics is the pools section of a portfolio. Aggregates run only
// over eligible positions: deny-listed pools and zero-allocPoint pools are
// excluded from every sum, not just from display.
type FarmingMetrics struct {
	// Available is false when the farming ledger was absent for the address.
	Available bool `json:"available"`

	Positions []PositionMetrics `json:"positions"`

	ReserveValueUSD Metric `json:"reserve_value_usd"` // sum of pro-rata pair reserves
	SLPValueUSD     Metric `json:"slp_value_usd"`     // reserves + pending + locked
	EntriesUSD      Metric `json:"entries_usd"`
	ExitsUSD        Metric `json:"exits_usd"`
	HarvestedUSD    Metric `json:"harvested_usd"`
	PendingNative   Metric `json:"pending_native"`
	PendingUSD      Metric `json:"pending_usd"`
	ProfitLossUSD   Metric `json:"profit_loss_usd"`
}

// LockupMetrics is the vesting section of a portfolio.
type LockupMetrics struct {
	// Available is false when the lockup ledger was absent for the address.
	Available bool `json:"available"`

	TotalLockedNative Metric `json:"total_locked_native"`
	TotalLockedUSD    Metric `json:"total_locked_usd"`
}

// PortfolioMetrics is the complete evaluation for one address.
type PortfolioMetrics struct {
	Address     string    `json:"address"`
	EvaluatedAt time.Time `json:"evaluated_at"`
	BlockNumber int64     `json:"block_number,omitempty"`

	SushiPrice Metric `json:"sushi_price"`

	Staking StakingMetrics `json:"staking"`
	Farming FarmingMetrics `json:"farming"`
	Lockup  LockupMetrics  `json:"lockup"`

	// InvestmentsUSD is the current claimable-plus-locked worth: farming
	// entries + staking pending + farming pending + farming exits + locked.
	InvestmentsUSD Metric `json:"investments_usd"`
}
