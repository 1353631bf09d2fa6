// Package inferr defines the error taxonomy shared by the update and quote
// paths. Errors carry the offending address or mint so callers can log them
// in base58 without extra context.
package inferr

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// MissingAccount reports a required account absent from the fetched set.
type MissingAccount struct {
	Address solana.PublicKey
}

func (e *MissingAccount) Error() string {
	return fmt.Sprintf("missing account: %s", e.Address)
}

// AccountDeser reports account data that failed to deserialize.
type AccountDeser struct {
	Address solana.PublicKey
}

func (e *AccountDeser) Error() string {
	return fmt.Sprintf("account deser: %s", e.Address)
}

// MissingSplData reports an SPL stake pool backend mint with no known
// stake pool address.
type MissingSplData struct {
	Mint solana.PublicKey
}

func (e *MissingSplData) Error() string {
	return fmt.Sprintf("missing spl stake pool data: %s", e.Mint)
}

// MissingCalcData reports a listed mint whose value calculator has no
// backend data fetched yet.
type MissingCalcData struct {
	Mint solana.PublicKey
}

func (e *MissingCalcData) Error() string {
	return fmt.Sprintf("missing calculator data: %s", e.Mint)
}

// UnsupportedMint reports a mint not present in the pool's LST state list.
type UnsupportedMint struct {
	Mint solana.PublicKey
}

func (e *UnsupportedMint) Error() string {
	return fmt.Sprintf("unsupported mint: %s", e.Mint)
}

// UnknownPricingProgram reports a pool descriptor pointing at a pricing
// program this package has no variant for.
type UnknownPricingProgram struct {
	Program solana.PublicKey
}

func (e *UnknownPricingProgram) Error() string {
	return fmt.Sprintf("unknown pricing program: %s", e.Program)
}

// UnknownCalcProgram reports an LST state pointing at a value calculator
// program this package has no variant for.
type UnknownCalcProgram struct {
	Program solana.PublicKey
}

func (e *UnknownCalcProgram) Error() string {
	return fmt.Sprintf("unknown value calculator program: %s", e.Program)
}

// CalcStale reports a calculator whose exchange rate was computed in an
// epoch before the current one.
type CalcStale struct {
	Kind string
}

func (e *CalcStale) Error() string {
	return fmt.Sprintf("input calc: %s calculator not updated for current epoch", e.Kind)
}

// NotEnoughLiquidity reports a trade that would draw more than the pool
// reserves hold.
type NotEnoughLiquidity struct {
	Required  uint64
	Available uint64
}

func (e *NotEnoughLiquidity) Error() string {
	return fmt.Sprintf("not enough liquidity. required: %d. available: %d", e.Required, e.Available)
}

var (
	// ErrOverflow is returned when a value computation exceeds u64 range.
	ErrOverflow = errors.New("math overflow")

	// ErrZeroValue is returned when a trade computation produces a
	// zero-valued result.
	ErrZeroValue = errors.New("zero value result")

	// ErrPercentageConversion is returned when a fee percentage cannot be
	// represented as a finite decimal.
	ErrPercentageConversion = errors.New("fee percentage conversion failed")
)
