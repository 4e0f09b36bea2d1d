/*

This file contains the masterchef-subgraph record types: one farming position
per pool per user, plus the lockup snapshot shape.

Amounts here are raw integer-scaled on-chain quantities, kept as fixed-point
decimals until the calculators convert them. Mixing them with already
decimal-adjusted USD fields without an explicit scale conversion reports
wrong money to a user.

*/

package types

import (
	sdkmath "cosmossdk.io/math"
)

// FarmingPool is the MasterChef pool state a position was fetched with.
type FarmingPool struct {
	ID   string `json:"id"`
	Pair string `json:"pair"` // exchange-subgraph pair id backing this pool

	// Balance is the pool's total deposited SLP quantity, raw 1e18 scale.
	Balance sdkmath.LegacyDec `json:"balance"`

	// AllocPoint is the pool's reward allocation weight. Zero means the pool
	// has been deactivated and must not contribute to any aggregate.
	AllocPoint int64 `json:"allocPoint"`

	// AccSushiPerShare is the cumulative reward-per-share accumulator the
	// contract updates on each interaction, raw 1e12 scale.
	AccSushiPerShare sdkmath.LegacyDec `json:"accSushiPerShare"`
}

// FarmingPosition is one user's deposit into one MasterChef pool.
type FarmingPosition struct {
	// Amount is the user's deposited SLP quantity, raw 1e18 scale.
	Amount sdkmath.LegacyDec `json:"amount"`

	// RewardDebt is the accumulator value recorded at the user's last
	// interaction; pending reward is the position-scaled accumulator minus
	// this debt.
	RewardDebt sdkmath.LegacyDec `json:"rewardDebt"`

	EntryUSD                  float64 `json:"entryUSD"`
	ExitUSD                   float64 `json:"exitUSD"`
	SushiHarvested            float64 `json:"sushiHarvested"`
	SushiHarvestedUSD         float64 `json:"sushiHarvestedUSD"`
	SushiHarvestedSinceLockup float64 `json:"sushiHarvestedSinceLockup"`

	Pool FarmingPool `json:"pool"`
}

// LockupSnapshot has the same shape as a FarmingPosition but was captured at
// the moment the reward time-lock was established. It is used only as the
// reference point for the vesting-delta computation, matched to current
// positions by pool id.
type LockupSnapshot FarmingPosition
