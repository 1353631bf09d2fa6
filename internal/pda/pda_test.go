package pda

import (
	"testing"

	"github.com/gagliardetto/solana-go"
)

func TestFindCanonicalOffCurve(t *testing.T) {
	program := solana.MustPublicKeyFromBase58("5ocnV1qiCgaQR8Jb8xWnVbApfaygJ8tNoZfgPwsgx9kx")
	seeds := [][]byte{[]byte("state")}

	pk, bump, err := FindCanonical(seeds, program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pk.IsOnCurve() {
		t.Fatalf("canonical pda %s is on curve", pk)
	}

	raw := DeriveRaw(append(seeds, []byte{bump}), program)
	if raw != pk {
		t.Fatalf("raw derivation mismatch: %s != %s", raw, pk)
	}
}

func TestFindCanonicalDeterministic(t *testing.T) {
	program := solana.MustPublicKeyFromBase58("5ocnV1qiCgaQR8Jb8xWnVbApfaygJ8tNoZfgPwsgx9kx")

	a, bumpA, err := FindCanonical([][]byte{[]byte("fee")}, program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, bumpB, err := FindCanonical([][]byte{[]byte("fee")}, program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b || bumpA != bumpB {
		t.Fatalf("derivation not deterministic: %s/%d != %s/%d", a, bumpA, b, bumpB)
	}
}

func TestDeriveRawVariesWithSeeds(t *testing.T) {
	program := solana.MustPublicKeyFromBase58("5ocnV1qiCgaQR8Jb8xWnVbApfaygJ8tNoZfgPwsgx9kx")

	a := DeriveRaw([][]byte{[]byte("state"), {255}}, program)
	b := DeriveRaw([][]byte{[]byte("state"), {254}}, program)
	if a == b {
		t.Fatalf("different bumps produced same address: %s", a)
	}
}
