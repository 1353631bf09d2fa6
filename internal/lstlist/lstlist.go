// Package lstlist loads the public LST registry that maps stake-pool
// backed mints to their pool accounts.
package lstlist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/igneous-labs/inf-jup-interface/internal/calc"
	"github.com/igneous-labs/inf-jup-interface/internal/retry"
)

// DefaultURL is the canonical registry location.
const DefaultURL = "https://raw.githubusercontent.com/igneous-labs/sanctum-lst-list/master/sanctum-lst-list.json"

// Entry is one registry row.
type Entry struct {
	Name   string           `json:"name"`
	Symbol string           `json:"symbol"`
	Mint   solana.PublicKey `json:"mint"`
	Pool   PoolInfo         `json:"pool"`
}

// PoolInfo identifies the backend of an LST. Pool is only set for
// stake-pool program backends.
type PoolInfo struct {
	Program string           `json:"program"`
	Pool    solana.PublicKey `json:"pool,omitempty"`
}

// Config controls registry loading.
type Config struct {
	URL          string
	HTTPTimeout  time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// Loader fetches the registry with retries, falling back to an embedded
// default list when the remote is unreachable.
type Loader struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

func NewLoader(cfg Config, logger *zap.Logger) *Loader {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.HTTPTimeout},
		logger: logger,
	}
}

// Load returns the registry entries. A fetch failure after all retries
// is not fatal: the embedded default list is returned instead.
func (l *Loader) Load(ctx context.Context) []Entry {
	var entries []Entry
	err := retry.Do(ctx, l.cfg.MaxRetries, l.cfg.RetryBackoff, func(ctx context.Context) error {
		fetched, err := l.fetch(ctx)
		if err != nil {
			return err
		}
		entries = fetched
		return nil
	})
	if err != nil {
		l.logger.Warn("lst registry fetch failed, using embedded defaults",
			zap.String("url", l.cfg.URL),
			zap.Error(err),
		)
		return DefaultEntries()
	}

	l.logger.Info("lst registry loaded",
		zap.String("url", l.cfg.URL),
		zap.Int("entries", len(entries)),
	)
	return entries
}

func (l *Loader) fetch(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build registry request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch registry: unexpected status %s", resp.Status)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	return entries, nil
}

// SplPools extracts the mint to stake-pool table for stake-pool program
// backends. Other backends have fixed state accounts and need no entry.
func SplPools(entries []Entry) calc.SplPoolTable {
	table := make(calc.SplPoolTable)
	for _, e := range entries {
		switch e.Pool.Program {
		case "Spl", "SanctumSpl", "SanctumSplMulti":
			table[e.Mint] = e.Pool.Pool
		}
	}
	return table
}
