package pool

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/igneous-labs/inf-jup-interface/internal/inferr"
)

// TradeArgs names the user-side accounts of a trade. The mints and the
// variant come from the quote.
type TradeArgs struct {
	Quote Quote

	// Signer is the wallet authorizing the trade.
	Signer solana.PublicKey
	// InpTokenAccount is the signer's token account debited by the trade.
	InpTokenAccount solana.PublicKey
	// OutTokenAccount is the signer's token account credited by the trade.
	OutTokenAccount solana.PublicKey
}

// TradeIx is the ordered account set of a trade instruction plus the
// index data the controller needs to locate the involved list entries.
// Every meta carries full signer and writable flags so an execution layer
// can splice the list into an instruction unchanged.
type TradeIx struct {
	Accounts []*solana.AccountMeta

	// InpLstIndex and OutLstIndex are positions on the LST state list.
	// The LP mint side of a liquidity trade has no index; the relevant
	// field is left zero.
	InpLstIndex uint32
	OutLstIndex uint32

	// InpCalcAccounts and OutCalcAccounts count the calculator accounts
	// appended for each side, so the program can split the tail of the
	// account list.
	InpCalcAccounts uint8
	OutCalcAccounts uint8
}

func meta(pk solana.PublicKey) *solana.AccountMeta {
	return &solana.AccountMeta{PublicKey: pk}
}

func writable(pk solana.PublicKey) *solana.AccountMeta {
	return &solana.AccountMeta{PublicKey: pk, IsWritable: true}
}

func signer(pk solana.PublicKey) *solana.AccountMeta {
	return &solana.AccountMeta{PublicKey: pk, IsSigner: true}
}

func readonlyMetas(pks []solana.PublicKey) []*solana.AccountMeta {
	out := make([]*solana.AccountMeta, 0, len(pks))
	for _, pk := range pks {
		out = append(out, meta(pk))
	}
	return out
}

// TradeAccounts packages the account set for the quoted trade.
func (p *Pool) TradeAccounts(args TradeArgs) (TradeIx, error) {
	switch args.Quote.Kind {
	case SwapExactIn, SwapExactOut:
		return p.swapAccounts(args)
	case AddLiquidity:
		return p.addLiquidityAccounts(args)
	case RemoveLiquidity:
		return p.removeLiquidityAccounts(args)
	default:
		return TradeIx{}, fmt.Errorf("trade accounts: unknown trade kind %d", args.Quote.Kind)
	}
}

func (p *Pool) swapAccounts(args TradeArgs) (TradeIx, error) {
	inpLs, inpIdx, ok := p.lstState(args.Quote.InpMint)
	if !ok {
		return TradeIx{}, &inferr.UnsupportedMint{Mint: args.Quote.InpMint}
	}
	outLs, outIdx, ok := p.lstState(args.Quote.OutMint)
	if !ok {
		return TradeIx{}, &inferr.UnsupportedMint{Mint: args.Quote.OutMint}
	}
	inpCalc, err := p.listedCalc(args.Quote.InpMint)
	if err != nil {
		return TradeIx{}, err
	}
	outCalc, err := p.listedCalc(args.Quote.OutMint)
	if err != nil {
		return TradeIx{}, err
	}
	pricingKeys, err := p.pricing.IxAccounts(args.Quote.InpMint, args.Quote.OutMint)
	if err != nil {
		return TradeIx{}, err
	}

	inpCalcKeys := inpCalc.IxAccounts()
	outCalcKeys := outCalc.IxAccounts()

	metas := []*solana.AccountMeta{
		signer(args.Signer),
		meta(args.Quote.InpMint),
		meta(args.Quote.OutMint),
		writable(args.InpTokenAccount),
		writable(args.OutTokenAccount),
		writable(ProtocolFeeAccumulatorAddress(outLs)),
		meta(solana.TokenProgramID),
		writable(PoolStateID),
		meta(LstStateListID),
		writable(ReservesAddress(inpLs)),
		writable(ReservesAddress(outLs)),
	}
	metas = append(metas, readonlyMetas(inpCalcKeys)...)
	metas = append(metas, readonlyMetas(outCalcKeys)...)
	metas = append(metas, readonlyMetas(pricingKeys)...)

	return TradeIx{
		Accounts:        metas,
		InpLstIndex:     uint32(inpIdx),
		OutLstIndex:     uint32(outIdx),
		InpCalcAccounts: uint8(len(inpCalcKeys)),
		OutCalcAccounts: uint8(len(outCalcKeys)),
	}, nil
}

func (p *Pool) addLiquidityAccounts(args TradeArgs) (TradeIx, error) {
	ls, idx, ok := p.lstState(args.Quote.InpMint)
	if !ok {
		return TradeIx{}, &inferr.UnsupportedMint{Mint: args.Quote.InpMint}
	}
	c, err := p.listedCalc(args.Quote.InpMint)
	if err != nil {
		return TradeIx{}, err
	}
	pricingKeys, err := p.pricing.IxAccounts(args.Quote.InpMint, args.Quote.InpMint)
	if err != nil {
		return TradeIx{}, err
	}

	calcKeys := c.IxAccounts()

	metas := []*solana.AccountMeta{
		signer(args.Signer),
		meta(args.Quote.InpMint),
		writable(args.InpTokenAccount),
		writable(args.OutTokenAccount),
		writable(p.state.LpTokenMint),
		writable(ProtocolFeeAccumulatorAddress(ls)),
		meta(solana.TokenProgramID),
		writable(PoolStateID),
		writable(LstStateListID),
		writable(ReservesAddress(ls)),
	}
	metas = append(metas, readonlyMetas(calcKeys)...)
	metas = append(metas, readonlyMetas(pricingKeys)...)

	return TradeIx{
		Accounts:        metas,
		InpLstIndex:     uint32(idx),
		InpCalcAccounts: uint8(len(calcKeys)),
	}, nil
}

func (p *Pool) removeLiquidityAccounts(args TradeArgs) (TradeIx, error) {
	ls, idx, ok := p.lstState(args.Quote.OutMint)
	if !ok {
		return TradeIx{}, &inferr.UnsupportedMint{Mint: args.Quote.OutMint}
	}
	c, err := p.listedCalc(args.Quote.OutMint)
	if err != nil {
		return TradeIx{}, err
	}
	pricingKeys, err := p.pricing.IxAccounts(args.Quote.OutMint, args.Quote.OutMint)
	if err != nil {
		return TradeIx{}, err
	}

	calcKeys := c.IxAccounts()

	metas := []*solana.AccountMeta{
		signer(args.Signer),
		meta(args.Quote.OutMint),
		writable(args.InpTokenAccount),
		writable(args.OutTokenAccount),
		writable(p.state.LpTokenMint),
		writable(ProtocolFeeAccumulatorAddress(ls)),
		meta(solana.TokenProgramID),
		writable(PoolStateID),
		writable(LstStateListID),
		writable(ReservesAddress(ls)),
	}
	metas = append(metas, readonlyMetas(calcKeys)...)
	metas = append(metas, readonlyMetas(pricingKeys)...)

	return TradeIx{
		Accounts:        metas,
		OutLstIndex:     uint32(idx),
		OutCalcAccounts: uint8(len(calcKeys)),
	}, nil
}
