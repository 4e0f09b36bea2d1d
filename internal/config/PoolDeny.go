/*

Some MasterChef pools are excluded from all portfolio reporting regardless of
on-chain activity (broken or migrated pools). A denied pool contributes to no
aggregate sum, it is not just hidden from display.

Pool ids here are MasterChef pool ids as the subgraph reports them.

*/

package config

var (
	PoolDeny = map[string]bool{
		"14": true,
		"29": true,
	}
)

// IsPoolDenied reports whether a MasterChef pool id is on the deny list.
func IsPoolDenied(poolID string) bool {
	return PoolDeny[poolID]
}
