package calc

import (
	"math/bits"

	"github.com/igneous-labs/inf-jup-interface/internal/inferr"
)

// Ratio is an exchange rate as a u64 fraction. Applying it converts LST
// amounts into the pool's common SOL valuation unit and back.
type Ratio struct {
	Num uint64
	Den uint64
}

// Apply returns floor(amount * Num / Den).
func (r Ratio) Apply(amount uint64) (uint64, error) {
	return mulDivFloor(amount, r.Num, r.Den)
}

// ApplyCeil returns ceil(amount * Num / Den).
func (r Ratio) ApplyCeil(amount uint64) (uint64, error) {
	return mulDivCeil(amount, r.Num, r.Den)
}

// Reverse returns floor(amount * Den / Num).
func (r Ratio) Reverse(amount uint64) (uint64, error) {
	return mulDivFloor(amount, r.Den, r.Num)
}

// ReverseCeil returns ceil(amount * Den / Num).
func (r Ratio) ReverseCeil(amount uint64) (uint64, error) {
	return mulDivCeil(amount, r.Den, r.Num)
}

func mulDivFloor(amount, num, den uint64) (uint64, error) {
	if den == 0 {
		return 0, inferr.ErrZeroValue
	}
	hi, lo := bits.Mul64(amount, num)
	if hi >= den {
		return 0, inferr.ErrOverflow
	}
	quo, _ := bits.Div64(hi, lo, den)
	return quo, nil
}

func mulDivCeil(amount, num, den uint64) (uint64, error) {
	if den == 0 {
		return 0, inferr.ErrZeroValue
	}
	hi, lo := bits.Mul64(amount, num)
	if hi >= den {
		return 0, inferr.ErrOverflow
	}
	quo, rem := bits.Div64(hi, lo, den)
	if rem == 0 {
		return quo, nil
	}
	if quo == ^uint64(0) {
		return 0, inferr.ErrOverflow
	}
	return quo + 1, nil
}
