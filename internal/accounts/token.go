package accounts

import (
	"encoding/binary"
	"fmt"
)

// SPL token program account sizes.
const (
	MintLen         = 82
	TokenAccountLen = 165
)

// SPL token layout offsets.
const (
	mintSupplyOffset         = 36
	tokenAccountAmountOffset = 64
)

// MintSupply reads the supply field of an SPL token mint account.
func MintSupply(data []byte) (uint64, error) {
	if len(data) < MintLen {
		return 0, fmt.Errorf("mint: want %d bytes, got %d", MintLen, len(data))
	}
	return binary.LittleEndian.Uint64(data[mintSupplyOffset : mintSupplyOffset+8]), nil
}

// TokenAccountAmount reads the amount field of an SPL token account.
func TokenAccountAmount(data []byte) (uint64, error) {
	if len(data) < TokenAccountLen {
		return 0, fmt.Errorf("token account: want %d bytes, got %d", TokenAccountLen, len(data))
	}
	return binary.LittleEndian.Uint64(data[tokenAccountAmountOffset : tokenAccountAmountOffset+8]), nil
}
