package calc

// Kind identifies a value calculator backend. The set is closed: one
// variant per supported LST program lineage.
type Kind uint8

const (
	// KindSpl is the stock SPL stake pool backend.
	KindSpl Kind = iota
	// KindSanctumSpl is the Sanctum fork of the SPL stake pool program.
	KindSanctumSpl
	// KindSanctumSplMulti is the Sanctum multi-validator fork.
	KindSanctumSplMulti
	// KindLido is the Lido (stSOL) backend.
	KindLido
	// KindMarinade is the Marinade (mSOL) backend.
	KindMarinade
	// KindWsol is the identity backend for wrapped SOL.
	KindWsol
)

func (k Kind) String() string {
	switch k {
	case KindSpl:
		return "spl"
	case KindSanctumSpl:
		return "sanctum-spl"
	case KindSanctumSplMulti:
		return "sanctum-spl-multi"
	case KindLido:
		return "lido"
	case KindMarinade:
		return "marinade"
	case KindWsol:
		return "wsol"
	default:
		return "unknown"
	}
}

// EpochAffected reports whether the backend's exchange rate encodes
// time-bound reward accrual that the ledger epoch invalidates. Marinade's
// rate is oracle-style and wSOL is identity, so neither goes stale.
func (k Kind) EpochAffected() bool {
	switch k {
	case KindSpl, KindSanctumSpl, KindSanctumSplMulti, KindLido:
		return true
	default:
		return false
	}
}

// splLineage reports whether the backend reads an SPL-layout stake pool
// account and therefore needs a per-mint stake pool address.
func (k Kind) splLineage() bool {
	switch k {
	case KindSpl, KindSanctumSpl, KindSanctumSplMulti:
		return true
	default:
		return false
	}
}
