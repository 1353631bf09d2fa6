package accounts

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// Backend source account layouts. Only the prefix needed for valuation is
// modeled; real accounts carry more fields after it.

// StakePoolLen is the prefix size read from SPL-lineage stake pool accounts.
const StakePoolLen = 25

// StakePool is the valuation prefix of an SPL-lineage stake pool account.
type StakePool struct {
	AccountType     uint8
	TotalLamports   uint64
	PoolTokenSupply uint64
	LastUpdateEpoch uint64
}

// DecodeStakePool deserializes the valuation prefix of a stake pool account.
func DecodeStakePool(data []byte) (StakePool, error) {
	if len(data) < StakePoolLen {
		return StakePool{}, fmt.Errorf("stake pool: want at least %d bytes, got %d", StakePoolLen, len(data))
	}
	var sp StakePool
	if err := bin.NewBinDecoder(data).Decode(&sp); err != nil {
		return StakePool{}, fmt.Errorf("stake pool: %w", err)
	}
	return sp, nil
}

// MarshalStakePool serializes a stake pool valuation prefix.
func MarshalStakePool(sp StakePool) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(StakePoolLen)
	if err := bin.NewBinEncoder(&buf).Encode(&sp); err != nil {
		return nil, fmt.Errorf("stake pool: %w", err)
	}
	return buf.Bytes(), nil
}

// LidoStateLen is the prefix size read from the Lido state account.
const LidoStateLen = 24

// LidoState is the exchange-rate prefix of the Lido state account.
type LidoState struct {
	ComputedInEpoch uint64
	StSolSupply     uint64
	SolBalance      uint64
}

// DecodeLidoState deserializes the exchange-rate prefix of the Lido state.
func DecodeLidoState(data []byte) (LidoState, error) {
	if len(data) < LidoStateLen {
		return LidoState{}, fmt.Errorf("lido state: want at least %d bytes, got %d", LidoStateLen, len(data))
	}
	var ls LidoState
	if err := bin.NewBinDecoder(data).Decode(&ls); err != nil {
		return LidoState{}, fmt.Errorf("lido state: %w", err)
	}
	return ls, nil
}

// MarshalLidoState serializes a Lido exchange-rate prefix.
func MarshalLidoState(ls LidoState) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(LidoStateLen)
	if err := bin.NewBinEncoder(&buf).Encode(&ls); err != nil {
		return nil, fmt.Errorf("lido state: %w", err)
	}
	return buf.Bytes(), nil
}

// MarinadeStateLen is the prefix size read from the Marinade state account.
const MarinadeStateLen = 16

// MarinadeState is the valuation prefix of the Marinade state account.
// Marinade's mSOL price is a plain supply ratio with no per-epoch reward
// accrual, so no epoch marker is carried.
type MarinadeState struct {
	MsolSupply    uint64
	TotalLamports uint64
}

// DecodeMarinadeState deserializes the valuation prefix of the Marinade state.
func DecodeMarinadeState(data []byte) (MarinadeState, error) {
	if len(data) < MarinadeStateLen {
		return MarinadeState{}, fmt.Errorf("marinade state: want at least %d bytes, got %d", MarinadeStateLen, len(data))
	}
	var ms MarinadeState
	if err := bin.NewBinDecoder(data).Decode(&ms); err != nil {
		return MarinadeState{}, fmt.Errorf("marinade state: %w", err)
	}
	return ms, nil
}

// MarshalMarinadeState serializes a Marinade valuation prefix.
func MarshalMarinadeState(ms MarinadeState) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(MarinadeStateLen)
	if err := bin.NewBinEncoder(&buf).Encode(&ms); err != nil {
		return nil, fmt.Errorf("marinade state: %w", err)
	}
	return buf.Bytes(), nil
}
