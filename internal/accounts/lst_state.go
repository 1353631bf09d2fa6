package accounts

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// LstStateLen is the serialized size of one LST state list entry.
const LstStateLen = 80

// LstState is one entry of the LST state list: a tradeable asset, its
// cached SOL value, and the value calculator program backing it. The
// reserve and fee accumulator addresses are derived from the stored bumps
// rather than stored directly.
type LstState struct {
	IsInputDisabled            uint8
	PoolReservesBump           uint8
	ProtocolFeeAccumulatorBump uint8
	Padding                    [5]uint8
	SolValue                   uint64
	Mint                       solana.PublicKey
	SolValCalc                 solana.PublicKey
}

// DecodeLstStateList deserializes a packed LST state list account.
func DecodeLstStateList(data []byte) ([]LstState, error) {
	if len(data)%LstStateLen != 0 {
		return nil, fmt.Errorf("lst state list: length %d not a multiple of %d", len(data), LstStateLen)
	}
	out := make([]LstState, 0, len(data)/LstStateLen)
	dec := bin.NewBinDecoder(data)
	for i := 0; i < len(data)/LstStateLen; i++ {
		var ls LstState
		if err := dec.Decode(&ls); err != nil {
			return nil, fmt.Errorf("lst state %d: %w", i, err)
		}
		out = append(out, ls)
	}
	return out, nil
}

// MarshalLstStateList serializes LST states into a packed list account.
func MarshalLstStateList(states []LstState) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(states) * LstStateLen)
	enc := bin.NewBinEncoder(&buf)
	for i := range states {
		if err := enc.Encode(&states[i]); err != nil {
			return nil, fmt.Errorf("lst state %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}
