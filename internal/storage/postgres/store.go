package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igneous-labs/inf-jup-interface/internal/model"
	"github.com/igneous-labs/inf-jup-interface/internal/storage"
)

// Store provides Postgres persistence for quote records.
type Store struct {
	pool *pgxpool.Pool
}

var (
	_ storage.Storage           = (*Store)(nil)
	_ storage.EpochCheckpointer = (*Store)(nil)
)

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the quotes and watcher_state tables if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS quotes (
			id bigserial PRIMARY KEY,
			quoted_at timestamptz NOT NULL,
			epoch bigint NOT NULL,
			swap_mode text NOT NULL,
			input_mint text NOT NULL,
			output_mint text NOT NULL,
			in_amount numeric NOT NULL,
			out_amount numeric NOT NULL,
			fee_amount numeric NOT NULL,
			fee_mint text NOT NULL,
			fee_pct numeric NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS watcher_state (
			name text PRIMARY KEY,
			last_epoch bigint NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		);
	`)
	return err
}

// PutQuoteBatch inserts a batch of quote records.
func (s *Store) PutQuoteBatch(ctx context.Context, quotes []model.QuoteRecord) error {
	if len(quotes) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, q := range quotes {
		batch.Queue(`
			INSERT INTO quotes (
				quoted_at, epoch, swap_mode, input_mint, output_mint,
				in_amount, out_amount, fee_amount, fee_mint, fee_pct
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			q.QuotedAt,
			int64(q.Epoch),
			q.SwapMode,
			q.InputMint,
			q.OutputMint,
			q.InAmount,
			q.OutAmount,
			q.FeeAmount,
			q.FeeMint,
			q.FeePct,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range quotes {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadEpoch returns the last observed epoch for a watcher name.
func (s *Store) LoadEpoch(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var epoch uint64
	row := s.pool.QueryRow(ctx, `SELECT last_epoch FROM watcher_state WHERE name=$1`, name)
	if err := row.Scan(&epoch); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return epoch, true, nil
}

// SaveEpoch upserts the last observed epoch for a watcher name.
func (s *Store) SaveEpoch(ctx context.Context, name string, epoch uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO watcher_state (name, last_epoch, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_epoch = EXCLUDED.last_epoch, updated_at = now()
	`, name, int64(epoch))
	return err
}
