/*

This file fetches the latest block height from the block oracle subgraph.

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

var blocksLogger = logger.GetForComponent("blocks_fetcher")

var ErrNoBlocks = errors.New("block oracle returned no blocks")

const latestBlockQuery = `{
  blocks(first: 1, orderBy: number, orderDirection: desc) {
    id
    number
    timestamp
  }
}`

// GetLatestBlock fetches the latest known block height.
func GetLatestBlock(ctx context.Context) (*types.BlockReference, error) {
	var data struct {
		Blocks []struct {
			ID        string `json:"id"`
			Number    string `json:"number"`
			Timestamp string `json:"timestamp"`
		} `json:"blocks"`
	}

	if err := querySubgraph(ctx, config.BlocksSubgraph, latestBlockQuery, nil, &data); err != nil {
		return nil, err
	}
	if len(data.Blocks) == 0 {
		return nil, ErrNoBlocks
	}

	number, err := utils.ParseInt(data.Blocks[0].Number)
	if err != nil {
		return nil, fmt.Errorf("block number: %w", err)
	}
	if number <= 0 {
		return nil, fmt.Errorf("block number must be positive, got %d", number)
	}

	blocksLogger.Debug().Int64("number", number).Msg("Fetched latest block")
	return &types.BlockReference{Number: number}, nil
}
