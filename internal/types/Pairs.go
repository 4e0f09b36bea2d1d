/*

This file contains the exchange-subgraph record types: pair reserve snapshots,
the reference token rate and the ETH/USD bundle.

*/

package types

// PairToken identifies one side of a liquidity pair.
type PairToken struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
}

// ReservePair is an immutable snapshot of a liquidity pair's current reserves
// and their USD valuation, refreshed once per fetch cycle.
type ReservePair struct {
	ID         string    `json:"id"`
	Token0     PairToken `json:"token0"`
	Token1     PairToken `json:"token1"`
	Reserve0   float64   `json:"reserve0"`
	Reserve1   float64   `json:"reserve1"`
	ReserveUSD float64   `json:"reserveUSD"`
	DerivedETH float64   `json:"derivedETH"`
}

// TokenRate carries a token's exchange rate against the network's native asset.
type TokenRate struct {
	ID         string  `json:"id"`
	Symbol     string  `json:"symbol"`
	DerivedETH float64 `json:"derivedETH"`
}

// EthBundle is the USD price of the network's native asset at snapshot time.
type EthBundle struct {
	EthPrice float64 `json:"ethPrice"`
}
