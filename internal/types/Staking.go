/*

This file contains the bar-subgraph record types for one address's lifetime
interaction with the staking contract.

xSushi is a receipt-token balance. The actual staked-asset claim requires
converting through the bar's staked/totalSupply ratio at read time, because
the ratio moves as rewards accrue (share dilution).

*/

package types

// StakingPool is the bar contract's global state at snapshot time.
type StakingPool struct {
	SushiStaked float64 `json:"sushiStaked"`
	TotalSupply float64 `json:"totalSupply"`
}

// StakingUser is one address's cumulative staking ledger plus the embedded
// bar snapshot it was fetched with.
type StakingUser struct {
	XSushi            float64 `json:"xSushi"`
	SushiStaked       float64 `json:"sushiStaked"`
	SushiStakedUSD    float64 `json:"sushiStakedUSD"`
	SushiHarvested    float64 `json:"sushiHarvested"`
	SushiHarvestedUSD float64 `json:"sushiHarvestedUSD"`
	XSushiIn          float64 `json:"xSushiIn"`
	XSushiOut         float64 `json:"xSushiOut"`
	SushiIn           float64 `json:"sushiIn"`
	SushiOut          float64 `json:"sushiOut"`
	UsdIn             float64 `json:"usdIn"`
	UsdOut            float64 `json:"usdOut"`
	CreatedAtBlock    int64   `json:"createdAtBlock"`

	Bar StakingPool `json:"bar"`
}
