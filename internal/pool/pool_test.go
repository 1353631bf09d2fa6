package pool

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/igneous-labs/inf-jup-interface/internal/accounts"
	"github.com/igneous-labs/inf-jup-interface/internal/calc"
	"github.com/igneous-labs/inf-jup-interface/internal/inferr"
	"github.com/igneous-labs/inf-jup-interface/internal/pda"
	"github.com/igneous-labs/inf-jup-interface/internal/pricing"
)

var (
	jitoMint      = solana.MustPublicKeyFromBase58("J1toso1uCk3RLmjorhTtrVwY9HJ7X8V9yYac6Y7kGCPn")
	jitoStakePool = solana.MustPublicKeyFromBase58("Jito4APyf642JPZPx3hGc6WWJ8zPKtRbRs4P815Awbb")
)

func testLstStates() []accounts.LstState {
	return []accounts.LstState{
		{
			PoolReservesBump:           255,
			ProtocolFeeAccumulatorBump: 255,
			Mint:                       jitoMint,
			SolValCalc:                 calc.SplCalcProgramID,
		},
		{
			PoolReservesBump:           254,
			ProtocolFeeAccumulatorBump: 254,
			Mint:                       WsolMintID,
			SolValCalc:                 calc.WsolCalcProgramID,
		},
	}
}

func mintData(supply uint64) []byte {
	data := make([]byte, accounts.MintLen)
	binary.LittleEndian.PutUint64(data[36:], supply)
	return data
}

func tokenAccountData(amount uint64) []byte {
	data := make([]byte, accounts.TokenAccountLen)
	binary.LittleEndian.PutUint64(data[64:], amount)
	return data
}

// testAccounts builds a complete fetched account set for one update cycle:
// a 2-LST pool (jito backed by a stake pool, wSOL identity) priced by the
// flat fee program with a 100 bps output fee on wSOL.
func testAccounts(t *testing.T, states []accounts.LstState) accounts.Map {
	t.Helper()

	listData, err := accounts.MarshalLstStateList(states)
	if err != nil {
		t.Fatalf("marshal lst list failed: %v", err)
	}
	stateData, err := accounts.MarshalPoolState(accounts.PoolState{
		TotalSolValue:         2_000_000,
		TradingProtocolFeeBps: 5000,
		LpProtocolFeeBps:      5000,
		PricingProgram:        pricing.FlatFeeProgramID,
		LpTokenMint:           InfMintID,
	})
	if err != nil {
		t.Fatalf("marshal pool state failed: %v", err)
	}

	flatFeeStateID, _, err := pda.FindCanonical([][]byte{[]byte("state")}, pricing.FlatFeeProgramID)
	if err != nil {
		t.Fatalf("derive flat fee state failed: %v", err)
	}
	flatFeeStateData, err := pricing.MarshalFlatFeeState(pricing.FlatFeeState{LpWithdrawalFeeBps: 100})
	if err != nil {
		t.Fatalf("marshal flat fee state failed: %v", err)
	}

	jitoFeeID, err := pricing.FeeAccountID(jitoMint)
	if err != nil {
		t.Fatalf("derive fee account failed: %v", err)
	}
	jitoFeeData, err := pricing.MarshalFeeAccount(pricing.FeeAccount{})
	if err != nil {
		t.Fatalf("marshal fee account failed: %v", err)
	}
	wsolFeeID, err := pricing.FeeAccountID(WsolMintID)
	if err != nil {
		t.Fatalf("derive fee account failed: %v", err)
	}
	wsolFeeData, err := pricing.MarshalFeeAccount(pricing.FeeAccount{OutputFeeBps: 100})
	if err != nil {
		t.Fatalf("marshal fee account failed: %v", err)
	}

	stakePoolData, err := accounts.MarshalStakePool(accounts.StakePool{
		AccountType:     1,
		TotalLamports:   2_000_000_000,
		PoolTokenSupply: 1_000_000_000,
		LastUpdateEpoch: 600,
	})
	if err != nil {
		t.Fatalf("marshal stake pool failed: %v", err)
	}

	return accounts.Map{
		PoolStateID:                stateData,
		LstStateListID:             listData,
		InfMintID:                  mintData(1_000_000),
		flatFeeStateID:             flatFeeStateData,
		jitoFeeID:                  jitoFeeData,
		wsolFeeID:                  wsolFeeData,
		jitoStakePool:              stakePoolData,
		ReservesAddress(states[0]): tokenAccountData(500_000),
		ReservesAddress(states[1]): tokenAccountData(1_000_000),
	}
}

func testPool(t *testing.T) (*Pool, accounts.Map) {
	t.Helper()

	states := testLstStates()
	listData, err := accounts.MarshalLstStateList(states)
	if err != nil {
		t.Fatalf("marshal lst list failed: %v", err)
	}
	p, err := New(listData, calc.SplPoolTable{jitoMint: jitoStakePool})
	if err != nil {
		t.Fatalf("new pool failed: %v", err)
	}
	return p, testAccounts(t, states)
}

func TestNewRejectsBadList(t *testing.T) {
	_, err := New([]byte{1, 2, 3}, nil)
	var deser *inferr.AccountDeser
	if !errors.As(err, &deser) {
		t.Fatalf("expected deser error, got %v", err)
	}
}

func TestAccountsToUpdateNeverContainsClock(t *testing.T) {
	p, m := testPool(t)

	for cycle := 0; cycle < 2; cycle++ {
		addrs, err := p.AccountsToUpdate()
		if err != nil {
			t.Fatalf("cycle %d: unexpected error: %v", cycle, err)
		}
		for _, pk := range addrs {
			if pk == solana.SysVarClockPubkey {
				t.Fatalf("cycle %d: address set contains clock sysvar", cycle)
			}
		}
		if err := p.Update(m); err != nil {
			t.Fatalf("cycle %d: update failed: %v", cycle, err)
		}
	}
}

func TestAccountsToUpdateCoversAllState(t *testing.T) {
	p, m := testPool(t)
	if err := p.Update(m); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	addrs, err := p.AccountsToUpdate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set := make(map[solana.PublicKey]struct{}, len(addrs))
	for _, pk := range addrs {
		set[pk] = struct{}{}
	}

	states := testLstStates()
	want := []solana.PublicKey{
		PoolStateID,
		LstStateListID,
		InfMintID,
		jitoStakePool,
		ReservesAddress(states[0]),
		ReservesAddress(states[1]),
	}
	for _, pk := range want {
		if _, ok := set[pk]; !ok {
			t.Fatalf("address set missing %s", pk)
		}
	}
}

func TestAccountsToUpdateBadStoredList(t *testing.T) {
	p, _ := testPool(t)
	p.lstStateListData = []byte{1, 2, 3}

	_, err := p.AccountsToUpdate()
	var deser *inferr.AccountDeser
	if !errors.As(err, &deser) {
		t.Fatalf("expected deser error, got %v", err)
	}
}

func TestUpdateStrictPolicyAborts(t *testing.T) {
	p, m := testPool(t)
	if err := p.Update(m); err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	broken := m.Clone()
	delete(broken, jitoStakePool)

	err := p.Update(broken)
	var missing *inferr.MissingAccount
	if !errors.As(err, &missing) {
		t.Fatalf("expected missing account error, got %v", err)
	}
	if missing.Address != jitoStakePool {
		t.Fatalf("error address %s, want %s", missing.Address, jitoStakePool)
	}

	// the mirror before the failed stage still serves quotes
	q, err := p.QuoteTrade(Pair{Inp: jitoMint, Out: WsolMintID}, 10_000, ExactIn)
	if err != nil {
		t.Fatalf("quote after failed update: %v", err)
	}
	if q.Out == 0 {
		t.Fatalf("quote output is zero")
	}
}

func TestUpdateIdempotent(t *testing.T) {
	p, m := testPool(t)

	if err := p.Update(m); err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	first, err := p.QuoteTrade(Pair{Inp: jitoMint, Out: WsolMintID}, 10_000, ExactIn)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}

	if err := p.Update(m); err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	second, err := p.QuoteTrade(Pair{Inp: jitoMint, Out: WsolMintID}, 10_000, ExactIn)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}

	if first != second {
		t.Fatalf("quotes differ across identical updates: %+v != %+v", first, second)
	}
}

func TestQuoteSwapExactIn(t *testing.T) {
	p, m := testPool(t)
	if err := p.Update(m); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	q, err := p.QuoteTrade(Pair{Inp: jitoMint, Out: WsolMintID}, 10_000, ExactIn)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}

	// 10000 jito at 2:1 = 20000 sol, 100 bps fee leaves 19800 wsol,
	// the 200 sol fee splits evenly at 5000 bps protocol share
	if q.Kind != SwapExactIn {
		t.Fatalf("kind %v, want swap exact in", q.Kind)
	}
	if q.Inp != 10_000 || q.Out != 19_800 {
		t.Fatalf("amounts %d/%d, want 10000/19800", q.Inp, q.Out)
	}
	if q.LpFee != 100 || q.ProtocolFee != 100 {
		t.Fatalf("fees %d/%d, want 100/100", q.LpFee, q.ProtocolFee)
	}
	if q.FeeMint != WsolMintID {
		t.Fatalf("fee mint %s, want wsol", q.FeeMint)
	}
}

func TestQuoteSwapExactOut(t *testing.T) {
	p, m := testPool(t)
	if err := p.Update(m); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	q, err := p.QuoteTrade(Pair{Inp: jitoMint, Out: WsolMintID}, 19_800, ExactOut)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if q.Kind != SwapExactOut {
		t.Fatalf("kind %v, want swap exact out", q.Kind)
	}
	if q.Inp != 10_000 || q.Out != 19_800 {
		t.Fatalf("amounts %d/%d, want 10000/19800", q.Inp, q.Out)
	}
}

func TestQuoteNotEnoughLiquidity(t *testing.T) {
	p, m := testPool(t)
	if err := p.Update(m); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	_, err := p.QuoteTrade(Pair{Inp: jitoMint, Out: WsolMintID}, 10_000_000, ExactIn)
	var insufficient *inferr.NotEnoughLiquidity
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected liquidity error, got %v", err)
	}
	if insufficient.Available != 1_000_000 {
		t.Fatalf("available %d, want 1000000", insufficient.Available)
	}
	if insufficient.Required <= insufficient.Available {
		t.Fatalf("required %d not above available %d", insufficient.Required, insufficient.Available)
	}
}

func TestQuoteUnsupportedMint(t *testing.T) {
	p, m := testPool(t)
	if err := p.Update(m); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stranger := solana.MustPublicKeyFromBase58("mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So")
	_, err := p.QuoteTrade(Pair{Inp: stranger, Out: WsolMintID}, 1000, ExactIn)
	var unsupported *inferr.UnsupportedMint
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected unsupported mint error, got %v", err)
	}
	if unsupported.Mint != stranger {
		t.Fatalf("error mint %s, want %s", unsupported.Mint, stranger)
	}
}

func TestQuoteAddLiquidity(t *testing.T) {
	p, m := testPool(t)
	if err := p.Update(m); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	q, err := p.QuoteTrade(Pair{Inp: jitoMint, Out: InfMintID}, 10_000, ExactIn)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}

	// total pool value 2_000_000 sol against 1_000_000 lp supply:
	// depositing 20000 sol of value mints 10000 lp
	if q.Kind != AddLiquidity {
		t.Fatalf("kind %v, want add liquidity", q.Kind)
	}
	if q.Out != 10_000 {
		t.Fatalf("lp minted %d, want 10000", q.Out)
	}
	if q.FeeMint != jitoMint {
		t.Fatalf("fee mint %s, want input mint", q.FeeMint)
	}
}

func TestQuoteRemoveLiquidity(t *testing.T) {
	p, m := testPool(t)
	if err := p.Update(m); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	q, err := p.QuoteTrade(Pair{Inp: InfMintID, Out: WsolMintID}, 10_000, ExactIn)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}

	// 10000 lp redeems 20000 sol of value, 100 bps withdrawal fee
	if q.Kind != RemoveLiquidity {
		t.Fatalf("kind %v, want remove liquidity", q.Kind)
	}
	if q.Out != 19_800 {
		t.Fatalf("out %d, want 19800", q.Out)
	}
	if q.LpFee != 100 || q.ProtocolFee != 100 {
		t.Fatalf("fees %d/%d, want 100/100", q.LpFee, q.ProtocolFee)
	}
	if q.FeeMint != WsolMintID {
		t.Fatalf("fee mint %s, want output mint", q.FeeMint)
	}
}

func TestQuoteLiquidityExactOutRejected(t *testing.T) {
	p, m := testPool(t)
	if err := p.Update(m); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if _, err := p.QuoteTrade(Pair{Inp: jitoMint, Out: InfMintID}, 1000, ExactOut); !errors.Is(err, ErrExactOutLiquidity) {
		t.Fatalf("expected exact out rejection, got %v", err)
	}
	if _, err := p.QuoteTrade(Pair{Inp: InfMintID, Out: WsolMintID}, 1000, ExactOut); !errors.Is(err, ErrExactOutLiquidity) {
		t.Fatalf("expected exact out rejection, got %v", err)
	}
}

func TestTradeAccountsSwap(t *testing.T) {
	p, m := testPool(t)
	if err := p.Update(m); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	q, err := p.QuoteTrade(Pair{Inp: jitoMint, Out: WsolMintID}, 10_000, ExactIn)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}

	user := solana.MustPublicKeyFromBase58("mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So")
	ix, err := p.TradeAccounts(TradeArgs{
		Quote:           q,
		Signer:          user,
		InpTokenAccount: user,
		OutTokenAccount: user,
	})
	if err != nil {
		t.Fatalf("trade accounts failed: %v", err)
	}

	// 11 fixed keys + 3 input calc + 2 output calc + 3 pricing
	if len(ix.Accounts) != 19 {
		t.Fatalf("account count %d, want 19", len(ix.Accounts))
	}
	if !ix.Accounts[0].IsSigner || ix.Accounts[0].PublicKey != user {
		t.Fatalf("first account must be the signer")
	}
	if ix.InpCalcAccounts != 3 || ix.OutCalcAccounts != 2 {
		t.Fatalf("calc account counts %d/%d, want 3/2", ix.InpCalcAccounts, ix.OutCalcAccounts)
	}
	if ix.InpLstIndex != 0 || ix.OutLstIndex != 1 {
		t.Fatalf("lst indices %d/%d, want 0/1", ix.InpLstIndex, ix.OutLstIndex)
	}

	var signers int
	for _, meta := range ix.Accounts {
		if meta.IsSigner {
			signers++
		}
	}
	if signers != 1 {
		t.Fatalf("%d signers, want 1", signers)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p, m := testPool(t)
	if err := p.Update(m); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	cp := p.Clone()

	states := testLstStates()
	changed := m.Clone()
	changed[ReservesAddress(states[1])] = tokenAccountData(1)
	if err := p.Update(changed); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if cp.Reserves(WsolMintID) != 1_000_000 {
		t.Fatalf("clone reserves %d changed by original's update", cp.Reserves(WsolMintID))
	}
	if p.Reserves(WsolMintID) != 1 {
		t.Fatalf("original reserves %d, want 1", p.Reserves(WsolMintID))
	}
}

func TestUpdatePricingSwitchFailureKeepsPriorScheme(t *testing.T) {
	p, m := testPool(t)
	if err := p.Update(m); err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	before, err := p.QuoteTrade(Pair{Inp: jitoMint, Out: WsolMintID}, 10_000, ExactIn)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}

	// descriptor switches to the slab program, but the slab account was
	// not part of this cycle's fetch set
	switched := m.Clone()
	stateData, err := accounts.MarshalPoolState(accounts.PoolState{
		TotalSolValue:         2_000_000,
		TradingProtocolFeeBps: 5000,
		LpProtocolFeeBps:      5000,
		PricingProgram:        pricing.FlatSlabProgramID,
		LpTokenMint:           InfMintID,
	})
	if err != nil {
		t.Fatalf("marshal pool state failed: %v", err)
	}
	switched[PoolStateID] = stateData

	err = p.Update(switched)
	var missing *inferr.MissingAccount
	if !errors.As(err, &missing) {
		t.Fatalf("expected missing account error, got %v", err)
	}
	slabID, _, err := pda.FindCanonical([][]byte{[]byte("state")}, pricing.FlatSlabProgramID)
	if err != nil {
		t.Fatalf("derive slab failed: %v", err)
	}
	if missing.Address != slabID {
		t.Fatalf("error address %s, want %s", missing.Address, slabID)
	}

	// the retained flat fee scheme still prices quotes
	after, err := p.QuoteTrade(Pair{Inp: jitoMint, Out: WsolMintID}, 10_000, ExactIn)
	if err != nil {
		t.Fatalf("quote after failed update: %v", err)
	}
	if after != before {
		t.Fatalf("failed update changed quote: %+v != %+v", after, before)
	}
}

func TestQuoteRemoveLiquidityRebateFees(t *testing.T) {
	p, m := testPool(t)

	stateData, err := accounts.MarshalPoolState(accounts.PoolState{
		TotalSolValue:         2_000_000,
		TradingProtocolFeeBps: 5000,
		LpProtocolFeeBps:      5000,
		PricingProgram:        pricing.FlatSlabProgramID,
		LpTokenMint:           InfMintID,
	})
	if err != nil {
		t.Fatalf("marshal pool state failed: %v", err)
	}
	m[PoolStateID] = stateData
	slabID, _, err := pda.FindCanonical([][]byte{[]byte("state")}, pricing.FlatSlabProgramID)
	if err != nil {
		t.Fatalf("derive slab failed: %v", err)
	}
	slabData, err := pricing.MarshalSlab(pricing.Slab{
		DefaultFees: pricing.FeeRate{InputFeeBps: -50, OutputFeeBps: -50},
	})
	if err != nil {
		t.Fatalf("marshal slab failed: %v", err)
	}
	m[slabID] = slabData

	if err := p.Update(m); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	q, err := p.QuoteTrade(Pair{Inp: InfMintID, Out: WsolMintID}, 10_000, ExactIn)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}

	// 10000 lp redeems 20000 sol of value, the 100 bps rebate releases
	// 20200 with no fee left to split
	if q.Out != 20_200 {
		t.Fatalf("out %d, want 20200", q.Out)
	}
	if q.LpFee != 0 || q.ProtocolFee != 0 {
		t.Fatalf("fees %d/%d, want 0/0", q.LpFee, q.ProtocolFee)
	}
}
