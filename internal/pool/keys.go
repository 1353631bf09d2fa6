package pool

import (
	"github.com/gagliardetto/solana-go"

	"github.com/igneous-labs/inf-jup-interface/internal/accounts"
	"github.com/igneous-labs/inf-jup-interface/internal/pda"
)

// Program and mint ids of the pool controller.
var (
	// ProgramID is the pool controller program.
	ProgramID = solana.MustPublicKeyFromBase58("5ocnV1qiCgaQR8Jb8xWnVbApfaygJ8tNoZfgPwsgx9kx")

	// InfMintID is the pool's LP token mint.
	InfMintID = solana.MustPublicKeyFromBase58("5oVNBeEEQvYi1cX3ir8Dx5n1P7pdxydbGF2X4TxVusJm")

	// WsolMintID is the wrapped native mint.
	WsolMintID = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
)

// Controller PDA seeds.
var (
	poolStateSeed    = []byte("state")
	lstStateListSeed = []byte("lst-state-list")
	protocolFeeSeed  = []byte("protocol-fee")
)

// Singleton controller accounts. The pool is one-per-program, so both
// addresses are canonical PDAs of fixed seeds.
var (
	PoolStateID    = mustFindPDA([][]byte{poolStateSeed}, ProgramID)
	LstStateListID = mustFindPDA([][]byte{lstStateListSeed}, ProgramID)
)

func mustFindPDA(seeds [][]byte, program solana.PublicKey) solana.PublicKey {
	pk, _, err := pda.FindCanonical(seeds, program)
	if err != nil {
		panic(err)
	}
	return pk
}

// ReservesAddress derives an LST's pool reserves token account from the
// bump stored in its list entry. Uses the unchecked derivation: the stored
// bump is trusted to be the canonical one.
func ReservesAddress(ls accounts.LstState) solana.PublicKey {
	return pda.DeriveRaw([][]byte{
		PoolStateID[:],
		solana.TokenProgramID[:],
		ls.Mint[:],
		{ls.PoolReservesBump},
	}, solana.SPLAssociatedTokenAccountProgramID)
}

// ProtocolFeeAccumulatorAddress derives an LST's protocol fee accumulator
// token account from the bump stored in its list entry.
func ProtocolFeeAccumulatorAddress(ls accounts.LstState) solana.PublicKey {
	return pda.DeriveRaw([][]byte{
		protocolFeeSeed,
		ls.Mint[:],
		{ls.ProtocolFeeAccumulatorBump},
	}, ProgramID)
}
