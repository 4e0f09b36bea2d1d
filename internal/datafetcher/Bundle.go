/*

This file assembles the complete ledger bundle for one address.

The six requests are independent and run concurrently, but the engine only
ever receives a finished bundle from a single fetch cycle: a failed request
fails the whole bundle (a metric computed from a half-refreshed cycle is
worse than no metric), while an absent staking user or an empty position
list is valid data.

*/

package datafetcher

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/carbonswap/sushiswap-analytics/internal/logger"
	"github.com/carbonswap/sushiswap-analytics/internal/types"
)

var bundleLogger = logger.GetForComponent("bundle_fetcher")

// FetchBundle fetches all five ledgers for one address concurrently and
// returns the assembled snapshot.
func FetchBundle(ctx context.Context, address string) (*types.LedgerBundle, error) {
	if address == "" {
		return nil, errors.New("address cannot be empty")
	}

	bundle := &types.LedgerBundle{Address: address}

	var wg sync.WaitGroup
	errs := make([]error, 6)

	wg.Add(6)
	go func() {
		defer wg.Done()
		var err error
		if bundle.Bundle, err = GetEthBundle(ctx); err != nil {
			errs[0] = fmt.Errorf("eth bundle: %w", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if bundle.SushiToken, err = GetSushiToken(ctx); err != nil {
			errs[1] = fmt.Errorf("sushi token: %w", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if bundle.StakingUser, err = GetBarUser(ctx, address); err != nil {
			errs[2] = fmt.Errorf("bar user: %w", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if bundle.FarmingPositions, err = GetFarmingPositions(ctx, address); err != nil {
			errs[3] = fmt.Errorf("farming positions: %w", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if bundle.LockupSnapshots, err = GetLockupSnapshots(ctx, address); err != nil {
			errs[4] = fmt.Errorf("lockup snapshots: %w", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if bundle.Pairs, err = GetPairs(ctx); err != nil {
			errs[5] = fmt.Errorf("pairs: %w", err)
		}
	}()
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("bundle fetch for %s: %w", address, err)
	}

	// The block oracle is fetched last and tolerated when down: annualized
	// projections degrade, everything else stays computable.
	latestBlock, err := GetLatestBlock(ctx)
	if err != nil {
		bundleLogger.Warn().
			Err(err).
			Str("address", address).
			Msg("Block oracle unavailable, annualization will be skipped")
	} else {
		bundle.LatestBlock = latestBlock
	}

	bundleLogger.Debug().
		Str("address", address).
		Int("farmingPositions", len(bundle.FarmingPositions)).
		Int("lockupSnapshots", len(bundle.LockupSnapshots)).
		Int("pairs", len(bundle.Pairs)).
		Bool("stakingUser", bundle.StakingUser != nil).
		Msg("Ledger bundle assembled")

	return bundle, nil
}
