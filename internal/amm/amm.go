// Package amm adapts the pool to the shape a trade-routing host expects:
// a poll/update/quote cycle over an opaque account-map boundary.
package amm

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/igneous-labs/inf-jup-interface/internal/accounts"
	"github.com/igneous-labs/inf-jup-interface/internal/pool"
)

// QuoteParams is one priced-trade request from the host.
type QuoteParams struct {
	InputMint  solana.PublicKey
	OutputMint solana.PublicKey
	Amount     uint64
	SwapMode   pool.LimitTy
}

// Quote is the host-facing result of a priced trade.
type Quote struct {
	InAmount  uint64
	OutAmount uint64
	FeeAmount uint64
	FeeMint   solana.PublicKey
	FeePct    decimal.Decimal
}

// SwapParams names the user accounts needed to package a quoted trade.
type SwapParams struct {
	Quote pool.Quote

	TokenTransferAuthority  solana.PublicKey
	SourceTokenAccount      solana.PublicKey
	DestinationTokenAccount solana.PublicKey
}

// ProgramDependency is an on-chain program this adapter's instructions
// invoke, paired with a human-readable label.
type ProgramDependency struct {
	ID    solana.PublicKey
	Label string
}

// Amm is the host plugin contract. One instance owns all mutable state;
// concurrent callers clone or synchronize externally.
type Amm interface {
	Label() string
	ProgramID() solana.PublicKey
	Key() solana.PublicKey
	ReserveMints() []solana.PublicKey
	ProgramDependencies() []ProgramDependency

	AccountsToUpdate() ([]solana.PublicKey, error)
	Update(f accounts.Fetcher) error

	Quote(params QuoteParams) (Quote, error)
	SwapAccounts(params SwapParams) (pool.TradeIx, error)
	SupportsExactOut() bool

	Clone() Amm
}
