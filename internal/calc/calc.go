// Package calc implements the per-LST value calculators as a closed tagged
// union. A calculator converts an LST amount into the pool's SOL valuation
// unit using backend-specific on-chain state, and records the epoch its
// exchange rate was computed in so quoting can refuse stale rates.
package calc

import (
	"github.com/gagliardetto/solana-go"

	"github.com/igneous-labs/inf-jup-interface/internal/accounts"
	"github.com/igneous-labs/inf-jup-interface/internal/inferr"
)

// SplPoolTable maps an SPL-lineage LST mint to its stake pool address.
// The pool addresses come from the LST registry, not from on-chain state.
type SplPoolTable map[solana.PublicKey]solana.PublicKey

// Calc is one LST's value calculator. Exactly one exists per listed mint;
// the kind is fixed at creation and only the exchange-rate state mutates.
type Calc struct {
	kind      Kind
	mint      solana.PublicKey
	stakePool solana.PublicKey // spl lineages only

	rate            Ratio
	lastUpdateEpoch uint64
	hasData         bool
}

// New builds a calculator for mint from its value calculator program id.
// SPL-lineage backends need the mint's stake pool address from splPools;
// a missing entry is MissingSplData. Unknown programs are UnknownCalcProgram.
func New(program, mint solana.PublicKey, splPools SplPoolTable) (*Calc, error) {
	kind, ok := KindOfProgram(program)
	if !ok {
		return nil, &inferr.UnknownCalcProgram{Program: program}
	}

	c := &Calc{kind: kind, mint: mint}
	switch kind {
	case KindWsol:
		// identity backend, no data dependency
		c.rate = Ratio{Num: 1, Den: 1}
		c.hasData = true
	default:
		if kind.splLineage() {
			pool, ok := splPools[mint]
			if !ok {
				return nil, &inferr.MissingSplData{Mint: mint}
			}
			c.stakePool = pool
		}
	}
	return c, nil
}

// Kind returns the backend kind.
func (c *Calc) Kind() Kind { return c.kind }

// Mint returns the LST mint this calculator values.
func (c *Calc) Mint() solana.PublicKey { return c.mint }

// HasData reports whether the exchange rate has been populated by at least
// one successful refresh.
func (c *Calc) HasData() bool { return c.hasData }

// LastUpdateEpoch returns the epoch the exchange rate was computed in.
// Only meaningful for epoch-affected kinds.
func (c *Calc) LastUpdateEpoch() uint64 { return c.lastUpdateEpoch }

// Rate returns the current exchange rate.
func (c *Calc) Rate() Ratio { return c.rate }

// sourceAccount returns the single backend account the refresh reads, or
// false for the wSOL identity backend.
func (c *Calc) sourceAccount() (solana.PublicKey, bool) {
	switch c.kind {
	case KindSpl, KindSanctumSpl, KindSanctumSplMulti:
		return c.stakePool, true
	case KindLido:
		return LidoStateID, true
	case KindMarinade:
		return MarinadeStateID, true
	default:
		return solana.PublicKey{}, false
	}
}

// AccountsToUpdate returns the addresses a refresh of this calculator
// reads, including the clock sysvar for epoch-affected kinds. Callers that
// never fetch the clock must filter it out themselves.
func (c *Calc) AccountsToUpdate() []solana.PublicKey {
	src, ok := c.sourceAccount()
	if !ok {
		return nil
	}
	out := []solana.PublicKey{src}
	if c.kind.EpochAffected() {
		out = append(out, solana.SysVarClockPubkey)
	}
	return out
}

// IxAccounts returns the calculator account suffix appended to trade
// instructions: the calculator program, the mint, and the backend state
// account when the backend has one.
func (c *Calc) IxAccounts() []solana.PublicKey {
	out := []solana.PublicKey{ProgramOfKind(c.kind), c.mint}
	if src, ok := c.sourceAccount(); ok {
		out = append(out, src)
	}
	return out
}

// UpdateNoClock refreshes the exchange rate from fetched bytes without
// touching the clock sysvar. The epoch marker is taken from the backend
// account itself, which is what the staleness check compares against.
func (c *Calc) UpdateNoClock(f accounts.Fetcher) error {
	src, ok := c.sourceAccount()
	if !ok {
		return nil
	}
	data, ok := f.Account(src)
	if !ok {
		return &inferr.MissingAccount{Address: src}
	}

	switch c.kind {
	case KindSpl, KindSanctumSpl, KindSanctumSplMulti:
		sp, err := accounts.DecodeStakePool(data)
		if err != nil {
			return &inferr.AccountDeser{Address: src}
		}
		c.rate = Ratio{Num: sp.TotalLamports, Den: sp.PoolTokenSupply}
		c.lastUpdateEpoch = sp.LastUpdateEpoch
	case KindLido:
		ls, err := accounts.DecodeLidoState(data)
		if err != nil {
			return &inferr.AccountDeser{Address: src}
		}
		c.rate = Ratio{Num: ls.SolBalance, Den: ls.StSolSupply}
		c.lastUpdateEpoch = ls.ComputedInEpoch
	case KindMarinade:
		ms, err := accounts.DecodeMarinadeState(data)
		if err != nil {
			return &inferr.AccountDeser{Address: src}
		}
		c.rate = Ratio{Num: ms.TotalLamports, Den: ms.MsolSupply}
	}
	c.hasData = true
	return nil
}

// Update is the normal refresh: for epoch-affected kinds it additionally
// requires the clock sysvar to have been fetched. The update orchestrator
// never uses this path for epoch-affected kinds; the staleness gate covers
// correctness instead.
func (c *Calc) Update(f accounts.Fetcher) error {
	if c.kind.EpochAffected() {
		if _, ok := f.Account(solana.SysVarClockPubkey); !ok {
			return &inferr.MissingAccount{Address: solana.SysVarClockPubkey}
		}
	}
	return c.UpdateNoClock(f)
}

// SolValue converts an LST amount into its SOL value, rounding down.
func (c *Calc) SolValue(amount uint64) (uint64, error) {
	if !c.hasData {
		return 0, &inferr.MissingCalcData{Mint: c.mint}
	}
	return c.rate.Apply(amount)
}

// SolValueCeil converts an LST amount into its SOL value, rounding up.
func (c *Calc) SolValueCeil(amount uint64) (uint64, error) {
	if !c.hasData {
		return 0, &inferr.MissingCalcData{Mint: c.mint}
	}
	return c.rate.ApplyCeil(amount)
}

// LstFromSol converts a SOL value into an LST amount, rounding down.
func (c *Calc) LstFromSol(solValue uint64) (uint64, error) {
	if !c.hasData {
		return 0, &inferr.MissingCalcData{Mint: c.mint}
	}
	return c.rate.Reverse(solValue)
}

// LstFromSolCeil converts a SOL value into an LST amount, rounding up.
func (c *Calc) LstFromSolCeil(solValue uint64) (uint64, error) {
	if !c.hasData {
		return 0, &inferr.MissingCalcData{Mint: c.mint}
	}
	return c.rate.ReverseCeil(solValue)
}

// Clone returns an independent copy.
func (c *Calc) Clone() *Calc {
	cp := *c
	return &cp
}
