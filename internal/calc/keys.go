package calc

import "github.com/gagliardetto/solana-go"

// Value calculator program ids and the pool programs they read.
var (
	SplCalcProgramID                  = solana.MustPublicKeyFromBase58("9iGTjoKzs5jQvuhLXQ4FVs4P4NW3KFzFtHXtja14VYqc")
	SplStakePoolProgramID             = solana.MustPublicKeyFromBase58("SPoo1Ku8WFXoNDMHPsrGSTSG1Y47rzgn41SLUNakuHy")
	SanctumSplCalcProgramID           = solana.MustPublicKeyFromBase58("4XdrMXtkA19nS41gh9XcFxxRSfnP3H5nUQh3XrRVWrb3")
	SanctumSplStakePoolProgramID      = solana.MustPublicKeyFromBase58("SP12tWFxD9oJsVWNavTTBZvMbA6gkAmxtVgxdqvyvhY")
	SanctumSplMultiCalcProgramID      = solana.MustPublicKeyFromBase58("ssmbu3KZxgonUtjEMCKspZzxvUQCxAFnyh1rcHUeEDo")
	SanctumSplMultiStakePoolProgramID = solana.MustPublicKeyFromBase58("SPMBzsVUuoHA4Jm6KunbsotaahvVikZs1JyTW6iJvbn")
	LidoCalcProgramID                 = solana.MustPublicKeyFromBase58("1idUSy4MGGKyKhvjSnGZ6Zc7Q4eKQcibym4BkEEw9KR")
	LidoProgramID                     = solana.MustPublicKeyFromBase58("CrX7kMhLC3cSsXJdT7JDgqrRVWGnUpX3gfEfxxU2NVLi")
	LidoStateID                       = solana.MustPublicKeyFromBase58("Gcw9PPdFtzXEGYgRuAS1x2PZBEA7Hccnj8CAM37v2rxo")
	MarinadeCalcProgramID             = solana.MustPublicKeyFromBase58("mare3SCyfZkAndpBRBeonETmkCCB3TJTTrz8ZN2dnhP")
	MarinadeProgramID                 = solana.MustPublicKeyFromBase58("MarBmsSgKXdrN1egZf5sqe1TMai9K1rChYNDJgjq7aD")
	MarinadeStateID                   = solana.MustPublicKeyFromBase58("BvwFNMgQzqomP248d3Qcn1oNiAuJbjiDqpZF6sFes87G")
	WsolCalcProgramID                 = solana.MustPublicKeyFromBase58("wsoGmxQLSvwWpuaidCApxN5kEowLe2HLQLJhCQnj4bE")
)

// KindOfProgram maps a value calculator program id to its backend kind.
func KindOfProgram(program solana.PublicKey) (Kind, bool) {
	switch program {
	case SplCalcProgramID:
		return KindSpl, true
	case SanctumSplCalcProgramID:
		return KindSanctumSpl, true
	case SanctumSplMultiCalcProgramID:
		return KindSanctumSplMulti, true
	case LidoCalcProgramID:
		return KindLido, true
	case MarinadeCalcProgramID:
		return KindMarinade, true
	case WsolCalcProgramID:
		return KindWsol, true
	default:
		return 0, false
	}
}

// ProgramOfKind is the inverse of KindOfProgram.
func ProgramOfKind(k Kind) solana.PublicKey {
	switch k {
	case KindSpl:
		return SplCalcProgramID
	case KindSanctumSpl:
		return SanctumSplCalcProgramID
	case KindSanctumSplMulti:
		return SanctumSplMultiCalcProgramID
	case KindLido:
		return LidoCalcProgramID
	case KindMarinade:
		return MarinadeCalcProgramID
	default:
		return WsolCalcProgramID
	}
}
