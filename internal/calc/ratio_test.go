package calc

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/igneous-labs/inf-jup-interface/internal/inferr"
)

func TestRatioApply(t *testing.T) {
	r := Ratio{Num: 3, Den: 2}

	got, err := r.Apply(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Fatalf("apply = %d, want 7", got)
	}

	got, err = r.ApplyCeil(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 8 {
		t.Fatalf("apply ceil = %d, want 8", got)
	}
}

func TestRatioZeroDenominator(t *testing.T) {
	r := Ratio{Num: 1, Den: 0}
	if _, err := r.Apply(1); !errors.Is(err, inferr.ErrZeroValue) {
		t.Fatalf("expected zero value error, got %v", err)
	}

	// Reverse divides by Num
	r = Ratio{Num: 0, Den: 1}
	if _, err := r.Reverse(1); !errors.Is(err, inferr.ErrZeroValue) {
		t.Fatalf("expected zero value error, got %v", err)
	}
}

func TestRatioOverflow(t *testing.T) {
	r := Ratio{Num: ^uint64(0), Den: 1}
	if _, err := r.Apply(2); !errors.Is(err, inferr.ErrOverflow) {
		t.Fatalf("expected overflow error, got %v", err)
	}
}

func TestRatioRounding_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("ceil >= floor and round trip never gains", prop.ForAll(
		func(amount uint32, num uint32, den uint32) bool {
			r := Ratio{Num: uint64(num), Den: uint64(den)}

			floor, err := r.Apply(uint64(amount))
			if err != nil {
				return false
			}
			ceil, err := r.ApplyCeil(uint64(amount))
			if err != nil {
				return false
			}
			if ceil < floor || ceil > floor+1 {
				return false
			}

			back, err := r.Reverse(floor)
			if err != nil {
				return false
			}
			return back <= uint64(amount)
		},
		gen.UInt32(),
		gen.UInt32Range(1, 1<<30),
		gen.UInt32Range(1, 1<<30),
	))

	properties.TestingRun(t)
}
