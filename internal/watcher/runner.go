// Package watcher drives the poll/update/quote cycle against live chain
// state and persists the resulting quotes.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/igneous-labs/inf-jup-interface/internal/accounts"
	"github.com/igneous-labs/inf-jup-interface/internal/amm"
	"github.com/igneous-labs/inf-jup-interface/internal/chain"
	"github.com/igneous-labs/inf-jup-interface/internal/lstlist"
	"github.com/igneous-labs/inf-jup-interface/internal/model"
	"github.com/igneous-labs/inf-jup-interface/internal/pool"
	"github.com/igneous-labs/inf-jup-interface/internal/retry"
	"github.com/igneous-labs/inf-jup-interface/internal/storage"
)

// checkpointName keys the watcher's epoch row in durable sinks.
const checkpointName = "watcher"

// RunConfig holds runtime settings for the watcher.
type RunConfig struct {
	Pairs        []pool.Pair
	Amount       uint64
	Interval     time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// Runner refreshes the pool mirror on an interval and quotes the
// configured pairs from it.
type Runner struct {
	cfg     RunConfig
	chain   *chain.Client
	loader  *lstlist.Loader
	storage storage.Storage
	logger  *zap.Logger

	clock amm.ClockRef
	inf   amm.Amm
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, chainClient *chain.Client, loader *lstlist.Loader, storageSink storage.Storage, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:     cfg,
		chain:   chainClient,
		loader:  loader,
		storage: storageSink,
		logger:  logger,
		clock:   amm.NewClockRef(),
	}
}

// Run executes the watch loop until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	if r.chain == nil {
		return fmt.Errorf("chain client is nil")
	}
	if r.storage == nil {
		return fmt.Errorf("storage is nil")
	}
	if len(r.cfg.Pairs) == 0 {
		return fmt.Errorf("at least one pair is required")
	}
	if r.cfg.Amount == 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	if r.cfg.Interval <= 0 {
		r.cfg.Interval = 30 * time.Second
	}

	if err := r.bootstrap(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		if err := r.cycle(ctx); err != nil {
			r.logger.Warn("cycle failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// restoreCheckpoint reports the epoch the previous run last observed.
// Sinks without durable state skip it silently.
func (r *Runner) restoreCheckpoint(ctx context.Context) {
	cp, ok := r.storage.(storage.EpochCheckpointer)
	if !ok {
		return
	}
	epoch, found, err := cp.LoadEpoch(ctx, checkpointName)
	if err != nil {
		r.logger.Warn("load epoch checkpoint failed", zap.Error(err))
		return
	}
	if found {
		r.logger.Info("resuming from checkpoint", zap.Uint64("last_epoch", epoch))
	}
}

func (r *Runner) saveCheckpoint(ctx context.Context, epoch uint64) {
	cp, ok := r.storage.(storage.EpochCheckpointer)
	if !ok {
		return
	}
	if err := cp.SaveEpoch(ctx, checkpointName, epoch); err != nil {
		r.logger.Warn("save epoch checkpoint failed", zap.Error(err))
	}
}

// bootstrap fetches the LST state list account and builds the adapter.
func (r *Runner) bootstrap(ctx context.Context) error {
	r.restoreCheckpoint(ctx)

	entries := r.loader.Load(ctx)

	fetched, err := r.fetchWithRetry(ctx, []solana.PublicKey{pool.LstStateListID})
	if err != nil {
		return fmt.Errorf("fetch lst state list: %w", err)
	}
	listData, ok := fetched.Account(pool.LstStateListID)
	if !ok {
		return fmt.Errorf("lst state list account %s not found", pool.LstStateListID)
	}

	inf, err := amm.NewInf(listData, lstlist.SplPools(entries), r.clock)
	if err != nil {
		return fmt.Errorf("init adapter: %w", err)
	}
	r.inf = inf

	r.logger.Info("watcher start",
		zap.String("pool", inf.Key().String()),
		zap.Int("reserve_mints", len(inf.ReserveMints())),
		zap.Int("pairs", len(r.cfg.Pairs)),
	)
	return nil
}

// cycle runs one refresh: advance the epoch counter, fetch the address
// set, apply it, then quote every configured pair. An update failure
// leaves the previous mirror in place.
func (r *Runner) cycle(ctx context.Context) error {
	epoch, err := r.epochWithRetry(ctx)
	if err != nil {
		return fmt.Errorf("current epoch: %w", err)
	}
	r.clock.Epoch.Store(epoch)

	addrs, err := r.inf.AccountsToUpdate()
	if err != nil {
		return fmt.Errorf("accounts to update: %w", err)
	}

	fetched, err := r.fetchWithRetry(ctx, addrs)
	if err != nil {
		return fmt.Errorf("fetch accounts: %w", err)
	}

	if err := r.inf.Update(fetched); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	quotedAt := time.Now().UTC()
	records := make([]model.QuoteRecord, 0, len(r.cfg.Pairs))
	for _, pair := range r.cfg.Pairs {
		q, err := r.inf.Quote(amm.QuoteParams{
			InputMint:  pair.Inp,
			OutputMint: pair.Out,
			Amount:     r.cfg.Amount,
			SwapMode:   pool.ExactIn,
		})
		if err != nil {
			r.logger.Warn("quote failed",
				zap.String("input_mint", pair.Inp.String()),
				zap.String("output_mint", pair.Out.String()),
				zap.Error(err),
			)
			continue
		}
		records = append(records, buildQuoteRecord(pair, q, epoch, quotedAt))
	}

	if err := r.storage.PutQuoteBatch(ctx, records); err != nil {
		return fmt.Errorf("store quotes: %w", err)
	}
	r.saveCheckpoint(ctx, epoch)

	r.logger.Info("cycle complete",
		zap.Uint64("epoch", epoch),
		zap.Int("accounts", len(addrs)),
		zap.Int("quotes", len(records)),
	)
	return nil
}

func buildQuoteRecord(pair pool.Pair, q amm.Quote, epoch uint64, quotedAt time.Time) model.QuoteRecord {
	return model.QuoteRecord{
		QuotedAt:   quotedAt,
		Epoch:      epoch,
		SwapMode:   "exact-in",
		InputMint:  pair.Inp.String(),
		OutputMint: pair.Out.String(),
		InAmount:   q.InAmount,
		OutAmount:  q.OutAmount,
		FeeAmount:  q.FeeAmount,
		FeeMint:    q.FeeMint.String(),
		FeePct:     q.FeePct.String(),
	}
}

func (r *Runner) fetchWithRetry(ctx context.Context, pks []solana.PublicKey) (accounts.Map, error) {
	var fetched accounts.Map
	err := retry.Do(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		fetched, err = r.chain.FetchAccounts(ctx, pks)
		if err != nil {
			r.logger.Warn("account fetch failed", zap.Error(err), zap.Int("accounts", len(pks)))
		}
		return err
	})
	return fetched, err
}

func (r *Runner) epochWithRetry(ctx context.Context) (uint64, error) {
	var epoch uint64
	err := retry.Do(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		epoch, err = r.chain.CurrentEpoch(ctx)
		if err != nil {
			r.logger.Warn("epoch fetch failed", zap.Error(err))
		}
		return err
	})
	return epoch, err
}
