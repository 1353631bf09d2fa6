package lstlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
)

func TestLoadFromServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[
			{
				"name": "Jito Staked SOL",
				"symbol": "JitoSOL",
				"mint": "J1toso1uCk3RLmjorhTtrVwY9HJ7X8V9yYac6Y7kGCPn",
				"pool": {"program": "Spl", "pool": "Jito4APyf642JPZPx3hGc6WWJ8zPKtRbRs4P815Awbb"}
			},
			{
				"name": "Marinade Staked SOL",
				"symbol": "mSOL",
				"mint": "mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So",
				"pool": {"program": "Marinade"}
			}
		]`))
	}))
	defer srv.Close()

	loader := NewLoader(Config{URL: srv.URL}, nil)
	entries := loader.Load(context.Background())
	if len(entries) != 2 {
		t.Fatalf("loaded %d entries, want 2", len(entries))
	}
	if entries[0].Symbol != "JitoSOL" {
		t.Fatalf("first symbol %q, want JitoSOL", entries[0].Symbol)
	}

	table := SplPools(entries)
	if len(table) != 1 {
		t.Fatalf("spl table size %d, want 1", len(table))
	}
	jito := solana.MustPublicKeyFromBase58("J1toso1uCk3RLmjorhTtrVwY9HJ7X8V9yYac6Y7kGCPn")
	want := solana.MustPublicKeyFromBase58("Jito4APyf642JPZPx3hGc6WWJ8zPKtRbRs4P815Awbb")
	if table[jito] != want {
		t.Fatalf("stake pool %s, want %s", table[jito], want)
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	loader := NewLoader(Config{URL: srv.URL, MaxRetries: 1, RetryBackoff: time.Millisecond}, nil)
	entries := loader.Load(context.Background())
	if len(entries) != len(DefaultEntries()) {
		t.Fatalf("loaded %d entries, want embedded defaults", len(entries))
	}
}

func TestSplPoolsFiltersLineages(t *testing.T) {
	entries := DefaultEntries()
	table := SplPools(entries)

	// only the stake-pool program backend contributes
	if len(table) != 1 {
		t.Fatalf("spl table size %d, want 1", len(table))
	}
}
