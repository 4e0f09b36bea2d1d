/*

This file contains the lockup/vesting calculator.

A portion of farming rewards is time-locked. The locked amount for a
position is the delta between its current accrual (harvested since lockup
plus live pending) and the accrual captured in the lockup snapshot at
lock-in time, doubled by the protocol's lockup multiplier. A position with
no matching snapshot belongs to a user who joined after lock-in and has
nothing vested to report.

*/

package analyzer

import (
	"fmt"

	"github.com/carbonswap/sushiswap-analytics/internal/config"
	"github.com/carbonswap/sushiswap-analytics/internal/logger"
	"github.com/carbonswap/sushiswap-analytics/internal/types"
)

var lockupLogger = logger.GetForComponent("lockup_calculator")

// CalculateLockedSushi computes the locked native reward for one farming
// position. pendingReward is the position's live pending accrual, already
// decimal-adjusted; matched reports whether a lockup snapshot exists for
// the position's pool. No snapshot means the user joined after lock-in and
// has zero locked value.
func CalculateLockedSushi(position types.FarmingPosition, snapshot types.LockupSnapshot, matched bool, pendingReward float64) (float64, error) {
	if !matched {
		lockupLogger.Debug().
			Str("poolID", position.Pool.ID).
			Msg("No lockup snapshot for pool, nothing vested")
		return 0, nil
	}

	accruedAtLock, err := accruedSushi(snapshot.Amount, snapshot.Pool.AccSushiPerShare, snapshot.RewardDebt)
	if err != nil {
		return 0, fmt.Errorf("lockup snapshot accrual for pool %s: %w", position.Pool.ID, err)
	}

	// Locked value vests at double the raw reward rate. Protocol rule,
	// preserved exactly.
	locked := (position.SushiHarvestedSinceLockup + pendingReward - accruedAtLock) * config.LockupRewardMultiplier
	return locked, nil
}
