package pool

import (
	"errors"

	"github.com/gagliardetto/solana-go"

	"github.com/igneous-labs/inf-jup-interface/internal/calc"
	"github.com/igneous-labs/inf-jup-interface/internal/inferr"
)

// LimitTy selects which leg of the trade the amount fixes.
type LimitTy uint8

const (
	// ExactIn fixes the input amount.
	ExactIn LimitTy = iota
	// ExactOut fixes the output amount.
	ExactOut
)

// TradeKind identifies the trade variant resolved from the mint pair.
type TradeKind uint8

const (
	// SwapExactIn trades one LST for another, input fixed.
	SwapExactIn TradeKind = iota
	// SwapExactOut trades one LST for another, output fixed.
	SwapExactOut
	// AddLiquidity deposits an LST and mints LP tokens.
	AddLiquidity
	// RemoveLiquidity burns LP tokens and withdraws an LST.
	RemoveLiquidity
)

func (k TradeKind) String() string {
	switch k {
	case SwapExactIn:
		return "swap-exact-in"
	case SwapExactOut:
		return "swap-exact-out"
	case AddLiquidity:
		return "add-liquidity"
	default:
		return "remove-liquidity"
	}
}

// Pair is an ordered (input, output) mint pair.
type Pair struct {
	Inp solana.PublicKey
	Out solana.PublicKey
}

// Quote is a priced trade before host-level post-processing.
type Quote struct {
	Kind        TradeKind
	Inp         uint64
	Out         uint64
	LpFee       uint64
	ProtocolFee uint64
	InpMint     solana.PublicKey
	OutMint     solana.PublicKey
	// FeeMint is the mint both fee figures are denominated in.
	FeeMint solana.PublicKey
}

// ErrExactOutLiquidity is returned for exact-out add/remove liquidity
// trades, which the controller does not support.
var ErrExactOutLiquidity = errors.New("exact out unsupported for liquidity trades")

// tradeKind resolves the trade variant from the mint pair.
func (p *Pool) tradeKind(pair Pair, limit LimitTy) (TradeKind, error) {
	switch {
	case pair.Out == p.state.LpTokenMint:
		if limit == ExactOut {
			return AddLiquidity, ErrExactOutLiquidity
		}
		return AddLiquidity, nil
	case pair.Inp == p.state.LpTokenMint:
		if limit == ExactOut {
			return RemoveLiquidity, ErrExactOutLiquidity
		}
		return RemoveLiquidity, nil
	case limit == ExactOut:
		return SwapExactOut, nil
	default:
		return SwapExactIn, nil
	}
}

// listedCalc returns the calculator for a mint that must be on the LST
// state list.
func (p *Pool) listedCalc(mint solana.PublicKey) (*calc.Calc, error) {
	if _, _, ok := p.lstState(mint); !ok {
		return nil, &inferr.UnsupportedMint{Mint: mint}
	}
	c, ok := p.calcs[mint]
	if !ok {
		return nil, &inferr.MissingCalcData{Mint: mint}
	}
	return c, nil
}

// QuoteTrade prices a trade for the pair at the given amount and limit.
// The variant is resolved from the pair: trades into the LP mint add
// liquidity, trades out of it remove liquidity, anything else swaps.
func (p *Pool) QuoteTrade(pair Pair, amount uint64, limit LimitTy) (Quote, error) {
	kind, err := p.tradeKind(pair, limit)
	if err != nil {
		return Quote{}, err
	}
	switch kind {
	case AddLiquidity:
		return p.quoteAddLiquidity(pair, amount)
	case RemoveLiquidity:
		return p.quoteRemoveLiquidity(pair, amount)
	case SwapExactOut:
		return p.quoteSwapExactOut(pair, amount)
	default:
		return p.quoteSwapExactIn(pair, amount)
	}
}

func (p *Pool) quoteSwapExactIn(pair Pair, amount uint64) (Quote, error) {
	inCalc, err := p.listedCalc(pair.Inp)
	if err != nil {
		return Quote{}, err
	}
	outCalc, err := p.listedCalc(pair.Out)
	if err != nil {
		return Quote{}, err
	}

	inSol, err := inCalc.SolValue(amount)
	if err != nil {
		return Quote{}, err
	}
	outSol, err := p.pricing.PriceExactIn(pair.Inp, pair.Out, inSol)
	if err != nil {
		return Quote{}, err
	}
	if outSol == 0 {
		return Quote{}, inferr.ErrZeroValue
	}
	outAmount, err := outCalc.LstFromSol(outSol)
	if err != nil {
		return Quote{}, err
	}
	if outAmount == 0 {
		return Quote{}, inferr.ErrZeroValue
	}
	if available := p.reserves[pair.Out]; outAmount > available {
		return Quote{}, &inferr.NotEnoughLiquidity{Required: outAmount, Available: available}
	}

	lpFee, protocolFee, err := p.swapFees(outCalc, inSol, outSol)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Kind:        SwapExactIn,
		Inp:         amount,
		Out:         outAmount,
		LpFee:       lpFee,
		ProtocolFee: protocolFee,
		InpMint:     pair.Inp,
		OutMint:     pair.Out,
		FeeMint:     pair.Out,
	}, nil
}

func (p *Pool) quoteSwapExactOut(pair Pair, amount uint64) (Quote, error) {
	inCalc, err := p.listedCalc(pair.Inp)
	if err != nil {
		return Quote{}, err
	}
	outCalc, err := p.listedCalc(pair.Out)
	if err != nil {
		return Quote{}, err
	}

	if available := p.reserves[pair.Out]; amount > available {
		return Quote{}, &inferr.NotEnoughLiquidity{Required: amount, Available: available}
	}

	outSol, err := outCalc.SolValueCeil(amount)
	if err != nil {
		return Quote{}, err
	}
	if outSol == 0 {
		return Quote{}, inferr.ErrZeroValue
	}
	inSol, err := p.pricing.PriceExactOut(pair.Inp, pair.Out, outSol)
	if err != nil {
		return Quote{}, err
	}
	inAmount, err := inCalc.LstFromSolCeil(inSol)
	if err != nil {
		return Quote{}, err
	}
	if inAmount == 0 {
		return Quote{}, inferr.ErrZeroValue
	}

	lpFee, protocolFee, err := p.swapFees(outCalc, inSol, outSol)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Kind:        SwapExactOut,
		Inp:         inAmount,
		Out:         amount,
		LpFee:       lpFee,
		ProtocolFee: protocolFee,
		InpMint:     pair.Inp,
		OutMint:     pair.Out,
		FeeMint:     pair.Out,
	}, nil
}

// swapFees materializes the SOL-value fee into the output mint and splits
// it between LPs and the protocol per the descriptor's trading fee bps.
func (p *Pool) swapFees(outCalc *calc.Calc, inSol, outSol uint64) (lpFee, protocolFee uint64, err error) {
	var feeSol uint64
	if inSol > outSol {
		feeSol = inSol - outSol
	}
	feeAmount, err := outCalc.LstFromSol(feeSol)
	if err != nil {
		return 0, 0, err
	}
	split := calc.Ratio{Num: uint64(p.state.TradingProtocolFeeBps), Den: 10_000}
	protocolFee, err = split.Apply(feeAmount)
	if err != nil {
		return 0, 0, err
	}
	return feeAmount - protocolFee, protocolFee, nil
}

func (p *Pool) quoteAddLiquidity(pair Pair, amount uint64) (Quote, error) {
	inCalc, err := p.listedCalc(pair.Inp)
	if err != nil {
		return Quote{}, err
	}

	inSol, err := inCalc.SolValue(amount)
	if err != nil {
		return Quote{}, err
	}
	creditSol, err := p.pricing.PriceLpTokensToMint(pair.Inp, inSol)
	if err != nil {
		return Quote{}, err
	}
	if creditSol == 0 {
		return Quote{}, inferr.ErrZeroValue
	}

	totalSol, err := p.totalSolValue()
	if err != nil {
		return Quote{}, err
	}

	var lpMinted uint64
	if totalSol == 0 || p.lpTokenSupply == 0 {
		lpMinted = creditSol
	} else {
		share := calc.Ratio{Num: p.lpTokenSupply, Den: totalSol}
		lpMinted, err = share.Apply(creditSol)
		if err != nil {
			return Quote{}, err
		}
	}
	if lpMinted == 0 {
		return Quote{}, inferr.ErrZeroValue
	}

	// Rebate-style pricing can credit more than the deposit's SOL value.
	var feeSol uint64
	if inSol > creditSol {
		feeSol = inSol - creditSol
	}
	feeAmount, err := inCalc.LstFromSol(feeSol)
	if err != nil {
		return Quote{}, err
	}
	split := calc.Ratio{Num: uint64(p.state.LpProtocolFeeBps), Den: 10_000}
	protocolFee, err := split.Apply(feeAmount)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Kind:        AddLiquidity,
		Inp:         amount,
		Out:         lpMinted,
		LpFee:       feeAmount - protocolFee,
		ProtocolFee: protocolFee,
		InpMint:     pair.Inp,
		OutMint:     pair.Out,
		FeeMint:     pair.Inp,
	}, nil
}

func (p *Pool) quoteRemoveLiquidity(pair Pair, amount uint64) (Quote, error) {
	outCalc, err := p.listedCalc(pair.Out)
	if err != nil {
		return Quote{}, err
	}
	if p.lpTokenSupply == 0 {
		return Quote{}, inferr.ErrZeroValue
	}

	totalSol, err := p.totalSolValue()
	if err != nil {
		return Quote{}, err
	}
	share := calc.Ratio{Num: totalSol, Den: p.lpTokenSupply}
	grossSol, err := share.Apply(amount)
	if err != nil {
		return Quote{}, err
	}
	netSol, err := p.pricing.PriceLpTokensToRedeem(pair.Out, grossSol)
	if err != nil {
		return Quote{}, err
	}
	if netSol == 0 {
		return Quote{}, inferr.ErrZeroValue
	}

	outAmount, err := outCalc.LstFromSol(netSol)
	if err != nil {
		return Quote{}, err
	}
	if outAmount == 0 {
		return Quote{}, inferr.ErrZeroValue
	}
	if available := p.reserves[pair.Out]; outAmount > available {
		return Quote{}, &inferr.NotEnoughLiquidity{Required: outAmount, Available: available}
	}

	// Rebate-style pricing can release more than the gross share.
	var feeSol uint64
	if grossSol > netSol {
		feeSol = grossSol - netSol
	}
	feeAmount, err := outCalc.LstFromSol(feeSol)
	if err != nil {
		return Quote{}, err
	}
	split := calc.Ratio{Num: uint64(p.state.LpProtocolFeeBps), Den: 10_000}
	protocolFee, err := split.Apply(feeAmount)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Kind:        RemoveLiquidity,
		Inp:         amount,
		Out:         outAmount,
		LpFee:       feeAmount - protocolFee,
		ProtocolFee: protocolFee,
		InpMint:     pair.Inp,
		OutMint:     pair.Out,
		FeeMint:     pair.Out,
	}, nil
}
