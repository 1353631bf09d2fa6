// Package pool implements the core state mirror and quoting engine: it
// computes the address set to fetch each cycle, applies fetched account
// bytes in dependency order, and prices trades from the most recent mirror
// without network access.
package pool

import (
	"github.com/gagliardetto/solana-go"

	"github.com/igneous-labs/inf-jup-interface/internal/accounts"
	"github.com/igneous-labs/inf-jup-interface/internal/calc"
	"github.com/igneous-labs/inf-jup-interface/internal/inferr"
	"github.com/igneous-labs/inf-jup-interface/internal/pricing"
)

// Pool owns the mirrored slice of ledger state for one controller pool.
// It is not safe for concurrent use; callers either synchronize externally
// or quote against a Clone.
type Pool struct {
	state            accounts.PoolState
	lstStateListData []byte
	lstStates        []accounts.LstState
	lpTokenSupply    uint64

	pricing  *pricing.Pricing
	calcs    map[solana.PublicKey]*calc.Calc
	splPools calc.SplPoolTable
	reserves map[solana.PublicKey]uint64
}

// defaultState is the placeholder descriptor used before the first update
// cycle. It pins the fields that feed address-set generation (pricing
// program, LP mint) to their expected mainnet values so the pool reaches
// steady state after at most two cycles; everything else is replaced
// wholesale by the first successful update.
func defaultState() accounts.PoolState {
	return accounts.PoolState{
		PricingProgram: pricing.FlatFeeProgramID,
		LpTokenMint:    InfMintID,
	}
}

// New builds a Pool from an initial LST state list account snapshot.
// A calculator is initialized for every listed mint up front so the first
// update cycle cannot fail on missing calculators.
func New(lstStateListData []byte, splPools calc.SplPoolTable) (*Pool, error) {
	states, err := accounts.DecodeLstStateList(lstStateListData)
	if err != nil {
		return nil, &inferr.AccountDeser{Address: LstStateListID}
	}

	pr, err := pricing.NewFromProgram(pricing.FlatFeeProgramID)
	if err != nil {
		return nil, err
	}

	p := &Pool{
		state:            defaultState(),
		lstStateListData: append([]byte(nil), lstStateListData...),
		lstStates:        states,
		pricing:          pr,
		calcs:            make(map[solana.PublicKey]*calc.Calc, len(states)),
		splPools:         splPools,
		reserves:         make(map[solana.PublicKey]uint64, len(states)),
	}

	for _, ls := range states {
		if _, err := p.getOrCreateCalc(ls); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// getOrCreateCalc returns the calculator for the entry's mint, creating it
// on first sight. At most one calculator ever exists per mint.
func (p *Pool) getOrCreateCalc(ls accounts.LstState) (*calc.Calc, error) {
	if c, ok := p.calcs[ls.Mint]; ok {
		return c, nil
	}
	c, err := calc.New(ls.SolValCalc, ls.Mint, p.splPools)
	if err != nil {
		return nil, err
	}
	p.calcs[ls.Mint] = c
	return c, nil
}

// Calc returns the calculator for mint, if one has been created.
func (p *Pool) Calc(mint solana.PublicKey) (*calc.Calc, bool) {
	c, ok := p.calcs[mint]
	return c, ok
}

// LpTokenMint returns the pool's LP token mint address.
func (p *Pool) LpTokenMint() solana.PublicKey {
	return p.state.LpTokenMint
}

// State returns the current pool descriptor.
func (p *Pool) State() accounts.PoolState {
	return p.state
}

// Reserves returns the cached reserve balance for mint.
func (p *Pool) Reserves(mint solana.PublicKey) uint64 {
	return p.reserves[mint]
}

// ReserveMints returns all listed LST mints plus the LP token mint.
func (p *Pool) ReserveMints() []solana.PublicKey {
	out := make([]solana.PublicKey, 0, len(p.lstStates)+1)
	for _, ls := range p.lstStates {
		out = append(out, ls.Mint)
	}
	return append(out, p.state.LpTokenMint)
}

// lstState returns the list entry and index for mint.
func (p *Pool) lstState(mint solana.PublicKey) (accounts.LstState, int, bool) {
	for i, ls := range p.lstStates {
		if ls.Mint == mint {
			return ls, i, true
		}
	}
	return accounts.LstState{}, 0, false
}

// totalSolValue recomputes the pool's total SOL value as the sum of every
// listed LST's reserve value. It is never cached across cycles.
func (p *Pool) totalSolValue() (uint64, error) {
	var total uint64
	for _, ls := range p.lstStates {
		c, ok := p.calcs[ls.Mint]
		if !ok {
			return 0, &inferr.MissingCalcData{Mint: ls.Mint}
		}
		v, err := c.SolValue(p.reserves[ls.Mint])
		if err != nil {
			return 0, err
		}
		sum := total + v
		if sum < total {
			return 0, inferr.ErrOverflow
		}
		total = sum
	}
	return total, nil
}

// Clone deep-copies all owned state, yielding an independent snapshot that
// may be quoted against concurrently with updates to the original.
func (p *Pool) Clone() *Pool {
	cp := &Pool{
		state:            p.state,
		lstStateListData: append([]byte(nil), p.lstStateListData...),
		lstStates:        append([]accounts.LstState(nil), p.lstStates...),
		lpTokenSupply:    p.lpTokenSupply,
		pricing:          p.pricing.Clone(),
		calcs:            make(map[solana.PublicKey]*calc.Calc, len(p.calcs)),
		splPools:         p.splPools,
		reserves:         make(map[solana.PublicKey]uint64, len(p.reserves)),
	}
	for mint, c := range p.calcs {
		cp.calcs[mint] = c.Clone()
	}
	for mint, amount := range p.reserves {
		cp.reserves[mint] = amount
	}
	return cp
}
