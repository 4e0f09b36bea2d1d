/*

This file contains the on-chain protocol constants the valuation math depends on.

Every magic number the contracts bake in lives here with its provenance, so the
calculators never inline a scale factor.

*/

package config

import (
	sdkmath "cosmossdk.io/math"
)

const (
	// SushiTokenAddress is the SUSHI token contract, used to resolve the
	// reference derived-ETH rate from the exchange subgraph.
	SushiTokenAddress = "0x6b3595068778dd592e39a122f4f5a5cf09c90fe2"

	// BlocksPerDay is the mainnet block production estimate used for
	// annualization (~13.4s block time). Projections derived from it are a
	// deliberate approximation, not calendar-accurate.
	BlocksPerDay = 6440

	// DaysPerMonth and DaysPerYear extend a daily projection. Same
	// approximation caveat as BlocksPerDay.
	DaysPerMonth = 30
	DaysPerYear  = 365

	// LockupRewardMultiplier encodes the MasterChef lockup rule: locked
	// rewards vest at double the raw accrual rate. Protocol behavior,
	// preserved exactly.
	LockupRewardMultiplier = 2
)

var (
	// AccSushiPrecision is the 1e12 scale of the MasterChef accSushiPerShare
	// accumulator.
	AccSushiPrecision = sdkmath.LegacyNewDec(10).Power(12)

	// SushiPrecision is the 1e18 scale of SLP and SUSHI token amounts.
	SushiPrecision = sdkmath.LegacyNewDec(10).Power(18)
)
