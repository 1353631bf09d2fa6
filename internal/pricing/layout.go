package pricing

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// FeeRate is a per-mint fee pair in basis points. Negative values are
// rebates.
type FeeRate struct {
	InputFeeBps  int16
	OutputFeeBps int16
}

// FlatFeeStateLen is the serialized size of the flat-fee program state.
const FlatFeeStateLen = 34

// FlatFeeState is the flat-fee pricing program's state account.
type FlatFeeState struct {
	Manager            solana.PublicKey
	LpWithdrawalFeeBps uint16
}

// DecodeFlatFeeState deserializes the flat-fee program state account.
func DecodeFlatFeeState(data []byte) (FlatFeeState, error) {
	if len(data) < FlatFeeStateLen {
		return FlatFeeState{}, fmt.Errorf("flat fee state: want %d bytes, got %d", FlatFeeStateLen, len(data))
	}
	var st FlatFeeState
	if err := bin.NewBinDecoder(data).Decode(&st); err != nil {
		return FlatFeeState{}, fmt.Errorf("flat fee state: %w", err)
	}
	return st, nil
}

// MarshalFlatFeeState serializes a flat-fee program state account.
func MarshalFlatFeeState(st FlatFeeState) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(FlatFeeStateLen)
	if err := bin.NewBinEncoder(&buf).Encode(&st); err != nil {
		return nil, fmt.Errorf("flat fee state: %w", err)
	}
	return buf.Bytes(), nil
}

// FeeAccountLen is the serialized size of a per-mint flat-fee account.
const FeeAccountLen = 6

// FeeAccount is a per-mint fee account of the flat-fee pricing program.
type FeeAccount struct {
	Bump         uint8
	Padding      [1]uint8
	InputFeeBps  int16
	OutputFeeBps int16
}

// DecodeFeeAccount deserializes a per-mint fee account.
func DecodeFeeAccount(data []byte) (FeeAccount, error) {
	if len(data) < FeeAccountLen {
		return FeeAccount{}, fmt.Errorf("fee account: want %d bytes, got %d", FeeAccountLen, len(data))
	}
	var fa FeeAccount
	if err := bin.NewBinDecoder(data).Decode(&fa); err != nil {
		return FeeAccount{}, fmt.Errorf("fee account: %w", err)
	}
	return fa, nil
}

// MarshalFeeAccount serializes a per-mint fee account.
func MarshalFeeAccount(fa FeeAccount) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(FeeAccountLen)
	if err := bin.NewBinEncoder(&buf).Encode(&fa); err != nil {
		return nil, fmt.Errorf("fee account: %w", err)
	}
	return buf.Bytes(), nil
}

// Flat-slab layout sizes: a 36 byte header followed by packed 36 byte
// entries.
const (
	SlabHeaderLen = 36
	SlabEntryLen  = 36
)

// SlabEntry is one per-mint fee entry of the flat-slab account.
type SlabEntry struct {
	Mint solana.PublicKey
	Fees FeeRate
}

// Slab is the decoded flat-slab pricing account: per-mint entries plus a
// default applied to unlisted mints.
type Slab struct {
	Manager     solana.PublicKey
	DefaultFees FeeRate
	Entries     []SlabEntry
}

// DecodeSlab deserializes a flat-slab pricing account.
func DecodeSlab(data []byte) (Slab, error) {
	if len(data) < SlabHeaderLen || (len(data)-SlabHeaderLen)%SlabEntryLen != 0 {
		return Slab{}, fmt.Errorf("slab: bad length %d", len(data))
	}
	dec := bin.NewBinDecoder(data)
	var sl Slab
	if err := dec.Decode(&sl.Manager); err != nil {
		return Slab{}, fmt.Errorf("slab manager: %w", err)
	}
	if err := dec.Decode(&sl.DefaultFees); err != nil {
		return Slab{}, fmt.Errorf("slab default fees: %w", err)
	}
	n := (len(data) - SlabHeaderLen) / SlabEntryLen
	sl.Entries = make([]SlabEntry, 0, n)
	for i := 0; i < n; i++ {
		var e SlabEntry
		if err := dec.Decode(&e); err != nil {
			return Slab{}, fmt.Errorf("slab entry %d: %w", i, err)
		}
		sl.Entries = append(sl.Entries, e)
	}
	return sl, nil
}

// MarshalSlab serializes a flat-slab pricing account.
func MarshalSlab(sl Slab) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(SlabHeaderLen + len(sl.Entries)*SlabEntryLen)
	enc := bin.NewBinEncoder(&buf)
	if err := enc.Encode(&sl.Manager); err != nil {
		return nil, fmt.Errorf("slab manager: %w", err)
	}
	if err := enc.Encode(&sl.DefaultFees); err != nil {
		return nil, fmt.Errorf("slab default fees: %w", err)
	}
	for i := range sl.Entries {
		if err := enc.Encode(&sl.Entries[i]); err != nil {
			return nil, fmt.Errorf("slab entry %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}
