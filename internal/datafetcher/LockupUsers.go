/*

This file fetches one address's lockup snapshots. The lockup subgraph froze
the masterchef user shape at lock-in time, so the wire format and decoding
are shared with the farming fetch; only the endpoint and the record meaning
differ.

*/

package datafetcher

import (
	"context"
	"fmt"

	"github.com/carbonswap/sushiswap-analytics/internal/config"
	"github.com/carbonswap/sushiswap-analytics/internal/logger"
	"github.com/carbonswap/sushiswap-analytics/internal/types"
)

var lockupFetchLogger = logger.GetForComponent("lockup_fetcher")

// GetLockupSnapshots fetches the lock-in reference points for one address.
// An address with no lockup history yields an empty (non-nil) slice.
func GetLockupSnapshots(ctx context.Context, address string) ([]types.LockupSnapshot, error) {
	raws, err := fetchPoolUsers(ctx, config.LockupSubgraph, address)
	if err != nil {
		return nil, err
	}

	snapshots := make([]types.LockupSnapshot, 0, len(raws))
	for _, raw := range raws {
		position, err := convertPoolUser(raw)
		if err != nil {
			return nil, fmt.Errorf("lockup snapshot for pool %s: %w", raw.Pool.ID, err)
		}
		snapshots = append(snapshots, types.LockupSnapshot(position))
	}

	lockupFetchLogger.Debug().
		Str("address", address).
		Int("snapshots", len(snapshots)).
		Msg("Fetched lockup snapshots")
	return snapshots, nil
}
