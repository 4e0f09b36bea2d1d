/*

This file fetches one address's staking ledger from the bar subgraph.

An address that never interacted with the bar has no user record; that is
valid data (the staking section reports unavailable), not a fetch failure.

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

var barLogger = logger.GetForComponent("bar_fetcher")

const barUserQuery = `query ($id: String!) {
  user(id: $id) {
    id
    bar {
      sushiStaked
      totalSupply
    }
    xSushi
    sushiStaked
    sushiStakedUSD
    sushiHarvested
    sushiHarvestedUSD
    xSushiIn
    xSushiOut
    sushiIn
    sushiOut
    usdIn
    usdOut
    createdAtBlock
  }
}`

type rawBarUser struct {
	ID  string `json:"id"`
	Bar struct {
		SushiStaked string `json:"sushiStaked"`
		TotalSupply string `json:"totalSupply"`
	} `json:"bar"`
	XSushi            string `json:"xSushi"`
	SushiStaked       string `json:"sushiStaked"`
	SushiStakedUSD    string `json:"sushiStakedUSD"`
	SushiHarvested    string `json:"sushiHarvested"`
	SushiHarvestedUSD string `json:"sushiHarvestedUSD"`
	XSushiIn          string `json:"xSushiIn"`
	XSushiOut         string `json:"xSushiOut"`
	SushiIn           string `json:"sushiIn"`
	SushiOut          string `json:"sushiOut"`
	UsdIn             string `json:"usdIn"`
	UsdOut            string `json:"usdOut"`
	CreatedAtBlock    string `json:"createdAtBlock"`
}

// GetBarUser fetches the staking ledger for one address. Returns nil without
// error when the address has never staked.
func GetBarUser(ctx context.Context, address string) (*types.StakingUser, error) {
	var data struct {
		User *rawBarUser `json:"user"`
	}

	variables := map[string]interface{}{"id": address}
	if err := querySubgraph(ctx, config.BarSubgraph, barUserQuery, variables, &data); err != nil {
		return nil, err
	}
	if data.User == nil {
		barLogger.Debug().Str("address", address).Msg("Address has no bar ledger")
		return nil, nil
	}

	return convertBarUser(*data.User)
}

func convertBarUser(raw rawBarUser) (*types.StakingUser, error) {
	user := &types.StakingUser{}

	var convErr error
	parse := func(name, value string, dst *float64) {
		if convErr != nil {
			return
		}
		parsed, err := utils.ParseFloat(value)
		if err != nil {
			convErr = fmt.Errorf("%s: %w", name, err)
			return
		}
		*dst = parsed
	}

	parse("xSushi", raw.XSushi, &user.XSushi)
	parse("sushiStaked", raw.SushiStaked, &user.SushiStaked)
	parse("sushiStakedUSD", raw.SushiStakedUSD, &user.SushiStakedUSD)
	parse("sushiHarvested", raw.SushiHarvested, &user.SushiHarvested)
	parse("sushiHarvestedUSD", raw.SushiHarvestedUSD, &user.SushiHarvestedUSD)
	parse("xSushiIn", raw.XSushiIn, &user.XSushiIn)
	parse("xSushiOut", raw.XSushiOut, &user.XSushiOut)
	parse("sushiIn", raw.SushiIn, &user.SushiIn)
	parse("sushiOut", raw.SushiOut, &user.SushiOut)
	parse("usdIn", raw.UsdIn, &user.UsdIn)
	parse("usdOut", raw.UsdOut, &user.UsdOut)
	parse("bar.sushiStaked", raw.Bar.SushiStaked, &user.Bar.SushiStaked)
	parse("bar.totalSupply", raw.Bar.TotalSupply, &user.Bar.TotalSupply)
	if convErr != nil {
		return nil, convErr
	}

	createdAtBlock, err := utils.ParseInt(raw.CreatedAtBlock)
	if err != nil {
		return nil, fmt.Errorf("createdAtBlock: %w", err)
	}
	user.CreatedAtBlock = createdAtBlock

	return user, nil
}
