package pda

import (
	"crypto/sha256"
	"errors"

	"github.com/gagliardetto/solana-go"
)

// Marker is the domain separator appended when hashing program derived addresses.
const Marker = "ProgramDerivedAddress"

// ErrNoValidPDA is returned when no bump in [0, 255] produces an off-curve address.
var ErrNoValidPDA = errors.New("no valid pda found")

// DeriveRaw hashes seeds, the program id, and the PDA marker into an address.
//
// It omits the following checks for performance, at the cost of safety:
// it does not check that seed lengths are within bounds, and it does not
// check that the resulting address is off-curve. Callers must already know
// the seeds produce a valid PDA, e.g. because the bump was read from
// on-chain state.
func DeriveRaw(seeds [][]byte, programID solana.PublicKey) solana.PublicKey {
	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(Marker))

	var out solana.PublicKey
	copy(out[:], h.Sum(nil))
	return out
}

// FindCanonical searches bump seeds from 255 downwards and returns the first
// derived address that is off-curve, together with the bump used.
func FindCanonical(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	bumped := make([][]byte, len(seeds)+1)
	copy(bumped, seeds)

	for i := 255; i >= 0; i-- {
		bump := uint8(i)
		bumped[len(seeds)] = []byte{bump}
		candidate := DeriveRaw(bumped, programID)
		if !candidate.IsOnCurve() {
			return candidate, bump, nil
		}
	}
	return solana.PublicKey{}, 0, ErrNoValidPDA
}
