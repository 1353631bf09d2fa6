package accounts

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// PoolStateLen is the serialized size of the pool state account.
const PoolStateLen = 176

// PoolState is the pool descriptor account. The admin, rebalance authority
// and fee beneficiary fields are inert to pricing; they are carried so the
// descriptor can be replaced wholesale on every update.
type PoolState struct {
	TotalSolValue          uint64
	TradingProtocolFeeBps  uint16
	LpProtocolFeeBps       uint16
	Version                uint8
	IsDisabled             uint8
	IsRebalancing          uint8
	Padding                [1]uint8
	Admin                  solana.PublicKey
	RebalanceAuthority     solana.PublicKey
	ProtocolFeeBeneficiary solana.PublicKey
	PricingProgram         solana.PublicKey
	LpTokenMint            solana.PublicKey
}

// DecodePoolState deserializes a pool state account.
func DecodePoolState(data []byte) (PoolState, error) {
	if len(data) < PoolStateLen {
		return PoolState{}, fmt.Errorf("pool state: want %d bytes, got %d", PoolStateLen, len(data))
	}
	var ps PoolState
	if err := bin.NewBinDecoder(data).Decode(&ps); err != nil {
		return PoolState{}, fmt.Errorf("pool state: %w", err)
	}
	return ps, nil
}

// MarshalPoolState serializes a pool state account.
func MarshalPoolState(ps PoolState) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(PoolStateLen)
	if err := bin.NewBinEncoder(&buf).Encode(&ps); err != nil {
		return nil, fmt.Errorf("pool state: %w", err)
	}
	return buf.Bytes(), nil
}
