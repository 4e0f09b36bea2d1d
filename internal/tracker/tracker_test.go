package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonswap/sushiswap-analytics/internal/types"
)

type stubFetcher struct {
	failFor map[string]bool
	fetched []string
}

func (f *stubFetcher) FetchBundle(ctx context.Context, address string) (*types.LedgerBundle, error) {
	f.fetched = append(f.fetched, address)
	if f.failFor[address] {
		return nil, errors.New("subgraph unreachable")
	}
	return &types.LedgerBundle{
		Address:          address,
		Bundle:           &types.EthBundle{EthPrice: 2000},
		SushiToken:       &types.TokenRate{DerivedETH: 0.001},
		FarmingPositions: []types.FarmingPosition{},
		LockupSnapshots:  []types.LockupSnapshot{},
	}, nil
}

type stubStore struct {
	saved        []types.PortfolioMetrics
	cycle        int
	cycleFails   bool
	saveFailures int
}

func (s *stubStore) SavePortfolioSnapshot(metrics types.PortfolioMetrics) (int64, error) {
	if s.saveFailures > 0 {
		s.saveFailures--
		return 0, errors.New("database unavailable")
	}
	s.saved = append(s.saved, metrics)
	return int64(len(s.saved)), nil
}

func (s *stubStore) IncrementCycleNumber() (int, error) {
	if s.cycleFails {
		return 0, errors.New("counter table missing")
	}
	s.cycle++
	return s.cycle, nil
}

func TestNewTrackerValidation(t *testing.T) {
	fetcher := &stubFetcher{}
	store := &stubStore{}
	addresses := []string{"0x00000000000000000000000000000000000000aa"}

	_, err := NewTracker(Config{Store: store, Addresses: addresses})
	assert.Error(t, err)

	_, err = NewTracker(Config{Fetcher: fetcher, Addresses: addresses})
	assert.Error(t, err)

	_, err = NewTracker(Config{Fetcher: fetcher, Store: store})
	assert.Error(t, err)

	tracker, err := NewTracker(Config{Fetcher: fetcher, Store: store, Addresses: addresses})
	require.NoError(t, err)
	assert.NotNil(t, tracker)
}

func TestRunCycleRefreshesEveryAddress(t *testing.T) {
	fetcher := &stubFetcher{}
	store := &stubStore{}
	addresses := []string{
		"0x00000000000000000000000000000000000000aa",
		"0x00000000000000000000000000000000000000bb",
	}

	tracker, err := NewTracker(Config{Fetcher: fetcher, Store: store, Addresses: addresses})
	require.NoError(t, err)

	tracker.RunCycle(context.Background())

	assert.Equal(t, addresses, fetcher.fetched)
	require.Len(t, store.saved, 2)
	assert.Equal(t, addresses[0], store.saved[0].Address)
	assert.Equal(t, addresses[1], store.saved[1].Address)
	assert.Equal(t, 1, store.cycle)
}

func TestRunCycleSkipsFailedAddress(t *testing.T) {
	failing := "0x00000000000000000000000000000000000000aa"
	healthy := "0x00000000000000000000000000000000000000bb"
	fetcher := &stubFetcher{failFor: map[string]bool{failing: true}}
	store := &stubStore{}

	tracker, err := NewTracker(Config{Fetcher: fetcher, Store: store, Addresses: []string{failing, healthy}})
	require.NoError(t, err)

	tracker.RunCycle(context.Background())

	// The failing address is skipped, the cycle itself continues.
	require.Len(t, store.saved, 1)
	assert.Equal(t, healthy, store.saved[0].Address)
}

func TestRunCycleSurvivesCounterFailure(t *testing.T) {
	fetcher := &stubFetcher{}
	store := &stubStore{cycleFails: true}

	tracker, err := NewTracker(Config{
		Fetcher:   fetcher,
		Store:     store,
		Addresses: []string{"0x00000000000000000000000000000000000000aa"},
	})
	require.NoError(t, err)

	tracker.RunCycle(context.Background())
	assert.Len(t, store.saved, 1)
}

func TestRunCycleStopsOnCancelledContext(t *testing.T) {
	fetcher := &stubFetcher{}
	store := &stubStore{}

	tracker, err := NewTracker(Config{
		Fetcher:   fetcher,
		Store:     store,
		Addresses: []string{"0x00000000000000000000000000000000000000aa"},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tracker.RunCycle(ctx)
	assert.Empty(t, store.saved)
}
