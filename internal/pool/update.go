package pool

import (
	"github.com/gagliardetto/solana-go"

	"github.com/igneous-labs/inf-jup-interface/internal/accounts"
	"github.com/igneous-labs/inf-jup-interface/internal/inferr"
	"github.com/igneous-labs/inf-jup-interface/internal/pricing"
)

// Update applies newly fetched account bytes to the mirror. Stages run in
// strict dependency order: pool descriptor, LST state list, LP token
// supply, pricing scheme, then each listed LST in list order. Each stage
// either fully applies or returns an error leaving that stage's prior
// state in place.
//
// Per-LST failures follow the strict policy: any error, including missing
// calculator source data, aborts the whole update.
func (p *Pool) Update(f accounts.Fetcher) error {
	if err := p.updatePoolState(f); err != nil {
		return err
	}
	if err := p.updateLstStateList(f); err != nil {
		return err
	}
	if err := p.updateLpTokenSupply(f); err != nil {
		return err
	}
	if err := p.updatePricing(f); err != nil {
		return err
	}

	for _, ls := range p.lstStates {
		if err := p.updateLst(ls, f); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pool) updatePoolState(f accounts.Fetcher) error {
	data, ok := f.Account(PoolStateID)
	if !ok {
		return &inferr.MissingAccount{Address: PoolStateID}
	}
	ps, err := accounts.DecodePoolState(data)
	if err != nil {
		return &inferr.AccountDeser{Address: PoolStateID}
	}
	p.state = ps
	return nil
}

func (p *Pool) updateLstStateList(f accounts.Fetcher) error {
	data, ok := f.Account(LstStateListID)
	if !ok {
		return &inferr.MissingAccount{Address: LstStateListID}
	}
	states, err := accounts.DecodeLstStateList(data)
	if err != nil {
		return &inferr.AccountDeser{Address: LstStateListID}
	}
	p.lstStateListData = append(p.lstStateListData[:0], data...)
	p.lstStates = states
	return nil
}

func (p *Pool) updateLpTokenSupply(f accounts.Fetcher) error {
	data, ok := f.Account(p.state.LpTokenMint)
	if !ok {
		return &inferr.MissingAccount{Address: p.state.LpTokenMint}
	}
	supply, err := accounts.MintSupply(data)
	if err != nil {
		return &inferr.AccountDeser{Address: p.state.LpTokenMint}
	}
	p.lpTokenSupply = supply
	return nil
}

func (p *Pool) updatePricing(f accounts.Fetcher) error {
	// Refresh a candidate and commit only on success, so a failed cycle
	// keeps the previous scheme. The descriptor may have switched pricing
	// programs this cycle; the new program's accounts were not in this
	// cycle's fetch set, so the switch lands one cycle later.
	var next *pricing.Pricing
	if p.pricing.Program() != p.state.PricingProgram {
		pr, err := pricing.NewFromProgram(p.state.PricingProgram)
		if err != nil {
			return err
		}
		next = pr
	} else {
		next = p.pricing.Clone()
	}

	mints := make([]solana.PublicKey, 0, len(p.lstStates))
	for _, ls := range p.lstStates {
		mints = append(mints, ls.Mint)
	}
	if err := next.UpdateAll(mints, f); err != nil {
		return err
	}
	p.pricing = next
	return nil
}

func (p *Pool) updateLst(ls accounts.LstState, f accounts.Fetcher) error {
	reservesAddr := ReservesAddress(ls)
	data, ok := f.Account(reservesAddr)
	if !ok {
		return &inferr.MissingAccount{Address: reservesAddr}
	}
	amount, err := accounts.TokenAccountAmount(data)
	if err != nil {
		return &inferr.AccountDeser{Address: reservesAddr}
	}
	p.reserves[ls.Mint] = amount

	c, err := p.getOrCreateCalc(ls)
	if err != nil {
		return err
	}
	if c.Kind().EpochAffected() {
		// never require the clock sysvar to have been fetched
		return c.UpdateNoClock(f)
	}
	return c.Update(f)
}
