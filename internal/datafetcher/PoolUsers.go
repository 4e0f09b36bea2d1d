/*

This file fetches one address's farming positions from the masterchef
subgraph: one record per pool the address has deposited into, each carrying
the pool snapshot (live balance and reward accumulator) from the same fetch.

Pending-reward math requires the pool accumulator and the user's reward debt
to come from a single fetch cycle, so a position and its pool snapshot are
never stitched together from separate requests.

*/

package datafetcher

import (
	"context"
	"fmt"

	"github.com/carbonswap/sushiswap-analytics/internal/config"
	"github.com/carbonswap/sushiswap-analytics/internal/logger"
	"github.com/carbonswap/sushiswap-analytics/internal/types"
	"github.com/carbonswap/sushiswap-analytics/internal/utils"
)

var poolUsersLogger = logger.GetForComponent("pool_users_fetcher")

const poolUsersQuery = `query ($address: String!) {
  users(where: { address: $address }) {
    pool {
      id
      pair
      balance
      allocPoint
      accSushiPerShare
    }
    amount
    rewardDebt
    entryUSD
    exitUSD
    sushiHarvested
    sushiHarvestedUSD
    sushiHarvestedSinceLockup
  }
}`

type rawPoolUser struct {
	Pool struct {
		ID               string `json:"id"`
		Pair             string `json:"pair"`
		Balance          string `json:"balance"`
		AllocPoint       string `json:"allocPoint"`
		AccSushiPerShare string `json:"accSushiPerShare"`
	} `json:"pool"`
	Amount                    string `json:"amount"`
	RewardDebt                string `json:"rewardDebt"`
	EntryUSD                  string `json:"entryUSD"`
	ExitUSD                   string `json:"exitUSD"`
	SushiHarvested            string `json:"sushiHarvested"`
	SushiHarvestedUSD         string `json:"sushiHarvestedUSD"`
	SushiHarvestedSinceLockup string `json:"sushiHarvestedSinceLockup"`
}

// GetFarmingPositions fetches all farming positions for one address. An
// address that never farmed yields an empty (non-nil) slice.
func GetFarmingPositions(ctx context.Context, address string) ([]types.FarmingPosition, error) {
	raws, err := fetchPoolUsers(ctx, config.MasterChefSubgraph, address)
	if err != nil {
		return nil, err
	}

	positions := make([]types.FarmingPosition, 0, len(raws))
	for _, raw := range raws {
		position, err := convertPoolUser(raw)
		if err != nil {
			return nil, fmt.Errorf("farming position for pool %s: %w", raw.Pool.ID, err)
		}
		positions = append(positions, position)
	}

	poolUsersLogger.Debug().
		Str("address", address).
		Int("positions", len(positions)).
		Msg("Fetched farming positions")
	return positions, nil
}

func fetchPoolUsers(ctx context.Context, endpoint, address string) ([]rawPoolUser, error) {
	var data struct {
		Users []rawPoolUser `json:"users"`
	}

	variables := map[string]interface{}{"address": address}
	if err := querySubgraph(ctx, endpoint, poolUsersQuery, variables, &data); err != nil {
		return nil, err
	}
	return data.Users, nil
}

func convertPoolUser(raw rawPoolUser) (types.FarmingPosition, error) {
	position := types.FarmingPosition{
		Pool: types.FarmingPool{
			ID:   raw.Pool.ID,
			Pair: raw.Pool.Pair,
		},
	}

	var err error
	if position.Amount, err = utils.ParseDec(raw.Amount); err != nil {
		return types.FarmingPosition{}, fmt.Errorf("amount: %w", err)
	}
	if position.RewardDebt, err = utils.ParseDec(raw.RewardDebt); err != nil {
		return types.FarmingPosition{}, fmt.Errorf("rewardDebt: %w", err)
	}
	if position.Pool.Balance, err = utils.ParseDec(raw.Pool.Balance); err != nil {
		return types.FarmingPosition{}, fmt.Errorf("pool.balance: %w", err)
	}
	if position.Pool.AccSushiPerShare, err = utils.ParseDec(raw.Pool.AccSushiPerShare); err != nil {
		return types.FarmingPosition{}, fmt.Errorf("pool.accSushiPerShare: %w", err)
	}
	if position.Pool.AllocPoint, err = utils.ParseInt(raw.Pool.AllocPoint); err != nil {
		return types.FarmingPosition{}, fmt.Errorf("pool.allocPoint: %w", err)
	}
	if position.EntryUSD, err = utils.ParseFloat(raw.EntryUSD); err != nil {
		return types.FarmingPosition{}, fmt.Errorf("entryUSD: %w", err)
	}
	if position.ExitUSD, err = utils.ParseFloat(raw.ExitUSD); err != nil {
		return types.FarmingPosition{}, fmt.Errorf("exitUSD: %w", err)
	}
	if position.SushiHarvested, err = utils.ParseFloat(raw.SushiHarvested); err != nil {
		return types.FarmingPosition{}, fmt.Errorf("sushiHarvested: %w", err)
	}
	if position.SushiHarvestedUSD, err = utils.ParseFloat(raw.SushiHarvestedUSD); err != nil {
		return types.FarmingPosition{}, fmt.Errorf("sushiHarvestedUSD: %w", err)
	}
	if position.SushiHarvestedSinceLockup, err = utils.ParseFloat(raw.SushiHarvestedSinceLockup); err != nil {
		return types.FarmingPosition{}, fmt.Errorf("sushiHarvestedSinceLockup: %w", err)
	}

	return position, nil
}
