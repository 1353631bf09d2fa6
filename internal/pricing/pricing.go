// Package pricing implements the pluggable fee policy applied on top of
// raw LST valuations, as a closed tagged union of the flat-fee and
// flat-slab pricing programs. A pricing scheme is refreshed once per update
// cycle over the full mint set, independently of per-LST calculators.
package pricing

import (
	"github.com/gagliardetto/solana-go"

	"github.com/igneous-labs/inf-jup-interface/internal/accounts"
	"github.com/igneous-labs/inf-jup-interface/internal/calc"
	"github.com/igneous-labs/inf-jup-interface/internal/inferr"
	"github.com/igneous-labs/inf-jup-interface/internal/pda"
)

// Pricing program ids.
var (
	FlatFeeProgramID  = solana.MustPublicKeyFromBase58("BQ7oQeykroNA55zo58L7PBKeoASXug8s8ZPrhDyAjpvG")
	FlatSlabProgramID = solana.MustPublicKeyFromBase58("s1b6NRXj6ygNu1QMKXh2H9LUR2aPApAAm1UQ2DjdhNV")
)

// PDA seeds of the flat-fee pricing program.
var (
	flatFeeStateSeed = []byte("state")
	feeAccountSeed   = []byte("fee")
)

const bpsDenominator = 10_000

// Kind identifies a pricing scheme variant.
type Kind uint8

const (
	// KindFlatFee reads one program state account plus one fee account
	// per mint.
	KindFlatFee Kind = iota
	// KindFlatSlab reads a single slab account holding all per-mint fees.
	KindFlatSlab
)

func (k Kind) String() string {
	if k == KindFlatSlab {
		return "flat-slab"
	}
	return "flat-fee"
}

// Pricing is a pricing scheme instance with the per-mint fee state its
// variant requires.
type Pricing struct {
	kind Kind

	// flat fee
	stateID            solana.PublicKey
	lpWithdrawalFeeBps uint16
	fees               map[solana.PublicKey]FeeRate

	// flat slab
	slabID      solana.PublicKey
	defaultFees FeeRate
}

// NewFromProgram builds the pricing variant for the given pricing program
// id, or UnknownPricingProgram.
func NewFromProgram(program solana.PublicKey) (*Pricing, error) {
	switch program {
	case FlatFeeProgramID:
		stateID, _, err := pda.FindCanonical([][]byte{flatFeeStateSeed}, FlatFeeProgramID)
		if err != nil {
			return nil, err
		}
		return &Pricing{
			kind:    KindFlatFee,
			stateID: stateID,
			fees:    make(map[solana.PublicKey]FeeRate),
		}, nil
	case FlatSlabProgramID:
		slabID, _, err := pda.FindCanonical([][]byte{flatFeeStateSeed}, FlatSlabProgramID)
		if err != nil {
			return nil, err
		}
		return &Pricing{
			kind:   KindFlatSlab,
			slabID: slabID,
			fees:   make(map[solana.PublicKey]FeeRate),
		}, nil
	default:
		return nil, &inferr.UnknownPricingProgram{Program: program}
	}
}

// Kind returns the scheme variant.
func (p *Pricing) Kind() Kind { return p.kind }

// Program returns the pricing program id of the variant.
func (p *Pricing) Program() solana.PublicKey {
	if p.kind == KindFlatSlab {
		return FlatSlabProgramID
	}
	return FlatFeeProgramID
}

// FeeAccountID derives the flat-fee per-mint fee account address.
func FeeAccountID(mint solana.PublicKey) (solana.PublicKey, error) {
	id, _, err := pda.FindCanonical([][]byte{feeAccountSeed, mint[:]}, FlatFeeProgramID)
	return id, err
}

// AccountsToUpdateAll returns the refresh addresses for the full mint set.
// Not deduped; mints failing fee-account derivation contribute nothing.
func (p *Pricing) AccountsToUpdateAll(mints []solana.PublicKey) []solana.PublicKey {
	if p.kind == KindFlatSlab {
		return []solana.PublicKey{p.slabID}
	}
	out := make([]solana.PublicKey, 0, len(mints)+1)
	out = append(out, p.stateID)
	for _, mint := range mints {
		id, err := FeeAccountID(mint)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}

// UpdateAll refreshes fee state for the full mint set from fetched bytes.
// Flat fee tolerates missing per-mint fee accounts during update; the
// missing rate surfaces at quote time instead.
func (p *Pricing) UpdateAll(mints []solana.PublicKey, f accounts.Fetcher) error {
	if p.kind == KindFlatSlab {
		data, ok := f.Account(p.slabID)
		if !ok {
			return &inferr.MissingAccount{Address: p.slabID}
		}
		slab, err := DecodeSlab(data)
		if err != nil {
			return &inferr.AccountDeser{Address: p.slabID}
		}
		p.defaultFees = slab.DefaultFees
		p.fees = make(map[solana.PublicKey]FeeRate, len(slab.Entries))
		for _, e := range slab.Entries {
			p.fees[e.Mint] = e.Fees
		}
		return nil
	}

	data, ok := f.Account(p.stateID)
	if !ok {
		return &inferr.MissingAccount{Address: p.stateID}
	}
	st, err := DecodeFlatFeeState(data)
	if err != nil {
		return &inferr.AccountDeser{Address: p.stateID}
	}
	p.lpWithdrawalFeeBps = st.LpWithdrawalFeeBps

	for _, mint := range mints {
		id, err := FeeAccountID(mint)
		if err != nil {
			return err
		}
		data, ok := f.Account(id)
		if !ok {
			continue
		}
		fa, err := DecodeFeeAccount(data)
		if err != nil {
			return &inferr.AccountDeser{Address: id}
		}
		p.fees[mint] = FeeRate{InputFeeBps: fa.InputFeeBps, OutputFeeBps: fa.OutputFeeBps}
	}
	return nil
}

// rateFor returns the fee rate for mint, or an error for flat fee mints
// whose fee account has not been fetched.
func (p *Pricing) rateFor(mint solana.PublicKey) (FeeRate, error) {
	fees, ok := p.fees[mint]
	if ok {
		return fees, nil
	}
	if p.kind == KindFlatSlab {
		return p.defaultFees, nil
	}
	id, err := FeeAccountID(mint)
	if err != nil {
		return FeeRate{}, err
	}
	return FeeRate{}, &inferr.MissingAccount{Address: id}
}

// PriceExactIn prices an exact-in swap: given the SOL value of the input
// amount, it returns the SOL value of the output after fees.
func (p *Pricing) PriceExactIn(inpMint, outMint solana.PublicKey, solValueIn uint64) (uint64, error) {
	bps, err := p.pairFeeBps(inpMint, outMint)
	if err != nil {
		return 0, err
	}
	keep := int32(bpsDenominator) - bps
	if keep <= 0 {
		return 0, nil
	}
	r := calc.Ratio{Num: uint64(keep), Den: bpsDenominator}
	return r.Apply(solValueIn)
}

// PriceExactOut prices an exact-out swap: given the SOL value the output
// amount must carry, it returns the SOL value the input must provide.
func (p *Pricing) PriceExactOut(inpMint, outMint solana.PublicKey, solValueOut uint64) (uint64, error) {
	bps, err := p.pairFeeBps(inpMint, outMint)
	if err != nil {
		return 0, err
	}
	keep := int32(bpsDenominator) - bps
	if keep <= 0 {
		return 0, inferr.ErrZeroValue
	}
	r := calc.Ratio{Num: uint64(keep), Den: bpsDenominator}
	return r.ReverseCeil(solValueOut)
}

// PriceLpTokensToMint prices the SOL value credited when minting LP tokens
// for a deposit. Neither variant charges an add-liquidity fee here.
func (p *Pricing) PriceLpTokensToMint(_ solana.PublicKey, solValue uint64) (uint64, error) {
	return solValue, nil
}

// PriceLpTokensToRedeem prices the SOL value released when redeeming LP
// tokens, after the LP withdrawal fee.
func (p *Pricing) PriceLpTokensToRedeem(mint solana.PublicKey, solValue uint64) (uint64, error) {
	if p.kind == KindFlatSlab {
		bps, err := p.pairFeeBps(mint, mint)
		if err != nil {
			return 0, err
		}
		keep := int32(bpsDenominator) - bps
		if keep <= 0 {
			return 0, nil
		}
		r := calc.Ratio{Num: uint64(keep), Den: bpsDenominator}
		return r.Apply(solValue)
	}
	keep := int32(bpsDenominator) - int32(p.lpWithdrawalFeeBps)
	if keep <= 0 {
		return 0, nil
	}
	r := calc.Ratio{Num: uint64(keep), Den: bpsDenominator}
	return r.Apply(solValue)
}

func (p *Pricing) pairFeeBps(inpMint, outMint solana.PublicKey) (int32, error) {
	inp, err := p.rateFor(inpMint)
	if err != nil {
		return 0, err
	}
	out, err := p.rateFor(outMint)
	if err != nil {
		return 0, err
	}
	return int32(inp.InputFeeBps) + int32(out.OutputFeeBps), nil
}

// IxAccounts returns the pricing account suffix appended to trade
// instructions for the given mint pair.
func (p *Pricing) IxAccounts(inpMint, outMint solana.PublicKey) ([]solana.PublicKey, error) {
	if p.kind == KindFlatSlab {
		return []solana.PublicKey{FlatSlabProgramID, p.slabID}, nil
	}
	inpFee, err := FeeAccountID(inpMint)
	if err != nil {
		return nil, err
	}
	outFee, err := FeeAccountID(outMint)
	if err != nil {
		return nil, err
	}
	return []solana.PublicKey{FlatFeeProgramID, inpFee, outFee}, nil
}

// Clone returns an independent copy.
func (p *Pricing) Clone() *Pricing {
	cp := *p
	cp.fees = make(map[solana.PublicKey]FeeRate, len(p.fees))
	for mint, fees := range p.fees {
		cp.fees[mint] = fees
	}
	return &cp
}
