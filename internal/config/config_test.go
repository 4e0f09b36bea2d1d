package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress("0x6b3595068778dd592e39a122f4f5a5cf09c90fe2"))
	assert.True(t, IsValidAddress("0x0000000000000000000000000000000000000000"))

	for _, invalid := range []string{
		"",
		"0x",
		"6b3595068778dd592e39a122f4f5a5cf09c90fe2",
		"0x6b3595068778dd592e39a122f4f5a5cf09c90fe",   // too short
		"0x6b3595068778dd592e39a122f4f5a5cf09c90fe2a", // too long
		"0x6B3595068778DD592E39A122F4F5A5CF09C90FE2",  // not normalized
		"0xzz95068778dd592e39a122f4f5a5cf09c90fe2zz",  // non-hex
	} {
		assert.False(t, IsValidAddress(invalid), invalid)
	}
}

func TestIsPoolDenied(t *testing.T) {
	assert.True(t, IsPoolDenied("14"))
	assert.True(t, IsPoolDenied("29"))
	assert.False(t, IsPoolDenied("1"))
	assert.False(t, IsPoolDenied(""))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORTFOLIO_ADDRESSES", "0x00000000000000000000000000000000000000AA, 0x00000000000000000000000000000000000000bb")
	t.Setenv("REFRESH_INTERVAL_SECONDS", "300")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "30")
	t.Setenv("EXCHANGE_SUBGRAPH", "http://localhost/exchange")
	t.Setenv("BAR_SUBGRAPH", "http://localhost/bar")
	t.Setenv("MASTERCHEF_SUBGRAPH", "http://localhost/masterchef")
	t.Setenv("LOCKUP_SUBGRAPH", "http://localhost/lockup")
	t.Setenv("BLOCKS_SUBGRAPH", "http://localhost/blocks")

	require.NoError(t, LoadConfig())

	// Addresses are trimmed and normalized to lowercase.
	assert.Equal(t, []string{
		"0x00000000000000000000000000000000000000aa",
		"0x00000000000000000000000000000000000000bb",
	}, WatchedAddresses)
	assert.Equal(t, "http://localhost/exchange", ExchangeSubgraph)
}

func TestLoadConfigRejectsBadAddresses(t *testing.T) {
	t.Setenv("PORTFOLIO_ADDRESSES", "not-an-address")
	t.Setenv("REFRESH_INTERVAL_SECONDS", "300")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "30")

	assert.Error(t, LoadConfig())
}

func TestLoadConfigRequiresAddresses(t *testing.T) {
	t.Setenv("PORTFOLIO_ADDRESSES", " , ")
	t.Setenv("REFRESH_INTERVAL_SECONDS", "300")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "30")

	assert.Error(t, LoadConfig())
}
