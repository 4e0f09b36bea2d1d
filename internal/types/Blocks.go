package types

// BlockReference is the latest known block height, used with a position's
// createdAtBlock to derive elapsed-block duration for annualization.
type BlockReference struct {
	Number int64 `json:"number"`
}
