package pool

import (
	"github.com/gagliardetto/solana-go"

	"github.com/igneous-labs/inf-jup-interface/internal/accounts"
	"github.com/igneous-labs/inf-jup-interface/internal/inferr"
)

// AccountsToUpdate computes the address set the caller should fetch before
// the next Update. The result is not deduplicated; callers dedupe before
// fetching.
//
// The clock sysvar is never part of the set: refreshes use the no-clock
// path and quoting enforces epoch freshness through the staleness check
// instead. LSTs whose calculator has not been created yet contribute
// nothing; they are picked up one cycle later, after Update lazily creates
// their calculator.
func (p *Pool) AccountsToUpdate() ([]solana.PublicKey, error) {
	// the stored list bytes are re-parsed rather than trusted: an
	// unparseable list surfaces here as an error instead of silently
	// yielding an empty per-LST set.
	states, err := accounts.DecodeLstStateList(p.lstStateListData)
	if err != nil {
		return nil, &inferr.AccountDeser{Address: LstStateListID}
	}

	out := []solana.PublicKey{PoolStateID, LstStateListID, p.state.LpTokenMint}

	mints := make([]solana.PublicKey, 0, len(states))
	for _, ls := range states {
		mints = append(mints, ls.Mint)
	}
	out = append(out, p.pricing.AccountsToUpdateAll(mints)...)

	for _, ls := range states {
		c, ok := p.calcs[ls.Mint]
		if !ok {
			continue
		}
		out = append(out, ReservesAddress(ls))
		for _, pk := range c.AccountsToUpdate() {
			if pk == solana.SysVarClockPubkey {
				continue
			}
			out = append(out, pk)
		}
	}
	return out, nil
}
