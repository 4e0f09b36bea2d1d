/*

This file fetches the liquidity pair reserve snapshot from the exchange
subgraph, used for proportional valuation of farming positions.

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

var pairsLogger = logger.GetForComponent("pairs_fetcher")

const pairsQuery = `{
  pairs(first: 1000, orderBy: reserveUSD, orderDirection: desc) {
    id
    token0 {
      id
      symbol
    }
    token1 {
      id
      symbol
    }
    reserve0
    reserve1
    reserveUSD
  }
}`

type rawPairToken struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
}

type rawPair struct {
	ID         string       `json:"id"`
	Token0     rawPairToken `json:"token0"`
	Token1     rawPairToken `json:"token1"`
	Reserve0   string       `json:"reserve0"`
	Reserve1   string       `json:"reserve1"`
	ReserveUSD string       `json:"reserveUSD"`
	DerivedETH string       `json:"derivedETH"`
}

// GetPairs fetches the current reserve snapshot for all tracked pairs.
func GetPairs(ctx context.Context) ([]types.ReservePair, error) {
	var data struct {
		Pairs []rawPair `json:"pairs"`
	}

	if err := querySubgraph(ctx, config.ExchangeSubgraph, pairsQuery, nil, &data); err != nil {
		return nil, err
	}

	pairs := make([]types.ReservePair, 0, len(data.Pairs))
	for _, raw := range data.Pairs {
		pair, err := convertPair(raw)
		if err != nil {
			return nil, fmt.Errorf("pair %s: %w", raw.ID, err)
		}
		pairs = append(pairs, pair)
	}

	pairsLogger.Debug().Int("pairs", len(pairs)).Msg("Fetched pair reserve snapshot")
	return pairs, nil
}

func convertPair(raw rawPair) (types.ReservePair, error) {
	reserve0, err := utils.ParseFloat(raw.Reserve0)
	if err != nil {
		return types.ReservePair{}, fmt.Errorf("reserve0: %w", err)
	}
	reserve1, err := utils.ParseFloat(raw.Reserve1)
	if err != nil {
		return types.ReservePair{}, fmt.Errorf("reserve1: %w", err)
	}
	reserveUSD, err := utils.ParseFloat(raw.ReserveUSD)
	if err != nil {
		return types.ReservePair{}, fmt.Errorf("reserveUSD: %w", err)
	}

	// Not every subgraph deployment reports a pair-level derived-ETH rate.
	derivedETH := 0.0
	if raw.DerivedETH != "" {
		derivedETH, err = utils.ParseFloat(raw.DerivedETH)
		if err != nil {
			return types.ReservePair{}, fmt.Errorf("derivedETH: %w", err)
		}
	}

	return types.ReservePair{
		ID:         raw.ID,
		Token0:     types.PairToken{ID: raw.Token0.ID, Symbol: raw.Token0.Symbol},
		Token1:     types.PairToken{ID: raw.Token1.ID, Symbol: raw.Token1.Symbol},
		Reserve0:   reserve0,
		Reserve1:   reserve1,
		ReserveUSD: reserveUSD,
		DerivedETH: derivedETH,
	}, nil
}
