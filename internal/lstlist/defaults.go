package lstlist

import "github.com/gagliardetto/solana-go"

// DefaultEntries is a minimal registry snapshot used when the remote
// list cannot be fetched. It covers the fixed-state backends plus one
// well-known stake-pool LST.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Name:   "Jito Staked SOL",
			Symbol: "JitoSOL",
			Mint:   solana.MustPublicKeyFromBase58("J1toso1uCk3RLmjorhTtrVwY9HJ7X8V9yYac6Y7kGCPn"),
			Pool: PoolInfo{
				Program: "Spl",
				Pool:    solana.MustPublicKeyFromBase58("Jito4APyf642JPZPx3hGc6WWJ8zPKtRbRs4P815Awbb"),
			},
		},
		{
			Name:   "Lido Staked SOL",
			Symbol: "stSOL",
			Mint:   solana.MustPublicKeyFromBase58("7dHbWXmci3dT8UFYWYZweBLXgycu7Y3iL6trKn1Y7ARj"),
			Pool:   PoolInfo{Program: "Lido"},
		},
		{
			Name:   "Marinade Staked SOL",
			Symbol: "mSOL",
			Mint:   solana.MustPublicKeyFromBase58("mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So"),
			Pool:   PoolInfo{Program: "Marinade"},
		},
		{
			Name:   "Wrapped SOL",
			Symbol: "SOL",
			Mint:   solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112"),
			Pool:   PoolInfo{Program: "SPLToken"},
		},
	}
}
