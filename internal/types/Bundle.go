/*

LedgerBundle is the engine's entire input surface: one complete, internally
time-consistent snapshot of the five ledgers for a single address. Callers
must assemble the whole bundle from one fetch cycle before evaluating; the
engine never mutates it and must not be handed a bundle that is refreshed
mid-computation.

*/

package types

// LedgerBundle is the input snapshot handed to the valuation engine.
type LedgerBundle struct {
	Address string `json:"address"`

	// Bundle and SushiToken resolve the reference USD price. Either being
	// nil makes every USD-denominated metric unavailable.
	Bundle     *EthBundle `json:"bundle"`
	SushiToken *TokenRate `json:"sushiToken"`

	// StakingUser is nil when the address never interacted with the bar.
	StakingUser *StakingUser `json:"stakingUser"`

	FarmingPositions []FarmingPosition `json:"farmingPositions"`
	LockupSnapshots  []LockupSnapshot  `json:"lockupSnapshots"`
	Pairs            []ReservePair     `json:"pairs"`

	// LatestBlock is nil when the block oracle was unavailable.
	LatestBlock *BlockReference `json:"latestBlock"`
}

// PairByID finds the reserve pair backing a pool, by exchange pair id.
func (b *LedgerBundle) PairByID(id string) (ReservePair, bool) {
	for _, pair := range b.Pairs {
		if pair.ID == id {
			return pair, true
		}
	}
	return ReservePair{}, false
}

// LockupByPool finds the lockup snapshot matching a MasterChef pool id.
// No match means the user joined after lock-in and has nothing vested.
func (b *LedgerBundle) LockupByPool(poolID string) (LockupSnapshot, bool) {
	for _, snapshot := range b.LockupSnapshots {
		if snapshot.Pool.ID == poolID {
			return snapshot, true
		}
	}
	return LockupSnapshot{}, false
}
