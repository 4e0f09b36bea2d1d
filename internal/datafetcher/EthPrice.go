/*

This file fetches the two price-resolver inputs from the exchange subgraph:
the ETH/USD bundle and the SUSHI token's derived-ETH rate.

*/

package datafetcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/carbonswap/sushiswap-analytics/internal/config"
	"github.com/carbonswap/sushiswap-analytics/internal/logger"
	"github.com/carbonswap/sushiswap-analytics/internal/types"
	"github.com/carbonswap/sushiswap-analytics/internal/utils"
)

var priceFetchLogger = logger.GetForComponent("price_fetcher")

var ErrNoBundle = errors.New("exchange subgraph returned no bundle")
var ErrNoToken = errors.New("exchange subgraph returned no reference token")

const ethPriceQuery = `{
  bundles(first: 1) {
    id
    ethPrice
  }
}`

const tokenQuery = `query ($id: String!) {
  token(id: $id) {
    id
    symbol
    derivedETH
  }
}`

// GetEthBundle fetches the USD price of ETH at snapshot time.
func GetEthBundle(ctx context.Context) (*types.EthBundle, error) {
	var data struct {
		Bundles []struct {
			ID       string `json:"id"`
			EthPrice string `json:"ethPrice"`
		} `json:"bundles"`
	}

	if err := querySubgraph(ctx, config.ExchangeSubgraph, ethPriceQuery, nil, &data); err != nil {
		return nil, err
	}
	if len(data.Bundles) == 0 {
		return nil, ErrNoBundle
	}

	ethPrice, err := utils.ParseFloat(data.Bundles[0].EthPrice)
	if err != nil {
		return nil, fmt.Errorf("bundle ethPrice: %w", err)
	}

	priceFetchLogger.Debug().Float64("ethPrice", ethPrice).Msg("Fetched ETH bundle")
	return &types.EthBundle{EthPrice: ethPrice}, nil
}

// GetSushiToken fetches the reference token's derived-ETH rate.
func GetSushiToken(ctx context.Context) (*types.TokenRate, error) {
	var data struct {
		Token *struct {
			ID         string `json:"id"`
			Symbol     string `json:"symbol"`
			DerivedETH string `json:"derivedETH"`
		} `json:"token"`
	}

	variables := map[string]interface{}{"id": config.SushiTokenAddress}
	if err := querySubgraph(ctx, config.ExchangeSubgraph, tokenQuery, variables, &data); err != nil {
		return nil, err
	}
	if data.Token == nil {
		return nil, ErrNoToken
	}

	derivedETH, err := utils.ParseFloat(data.Token.DerivedETH)
	if err != nil {
		return nil, fmt.Errorf("token derivedETH: %w", err)
	}

	return &types.TokenRate{
		ID:         data.Token.ID,
		Symbol:     data.Token.Symbol,
		DerivedETH: derivedETH,
	}, nil
}
