package watcher

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/igneous-labs/inf-jup-interface/internal/pool"
)

// ParsePairs converts "inputMint:outputMint" strings into pairs.
func ParsePairs(inputs []string) ([]pool.Pair, error) {
	pairs := make([]pool.Pair, 0, len(inputs))
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		parts := strings.SplitN(input, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid pair %q: want inputMint:outputMint", input)
		}
		inp, err := solana.PublicKeyFromBase58(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid input mint in pair %q: %w", input, err)
		}
		out, err := solana.PublicKeyFromBase58(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid output mint in pair %q: %w", input, err)
		}
		if inp == out {
			return nil, fmt.Errorf("invalid pair %q: mints are equal", input)
		}
		pairs = append(pairs, pool.Pair{Inp: inp, Out: out})
	}
	return pairs, nil
}

// ParseSwapMode converts a mode string into a trade limit.
func ParseSwapMode(input string) (pool.LimitTy, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "exact-in", "exactin":
		return pool.ExactIn, nil
	case "exact-out", "exactout":
		return pool.ExactOut, nil
	default:
		return pool.ExactIn, fmt.Errorf("invalid swap mode %q", input)
	}
}
