package storage

import (
	"context"

	"github.com/igneous-labs/inf-jup-interface/internal/model"
)

// Storage defines a sink for quote records.
type Storage interface {
	PutQuoteBatch(ctx context.Context, quotes []model.QuoteRecord) error
}

// EpochCheckpointer persists the last observed epoch under a name so a
// restarted watcher can report how far behind it resumed. Sinks without
// durable state need not implement it.
type EpochCheckpointer interface {
	LoadEpoch(ctx context.Context, name string) (uint64, bool, error)
	SaveEpoch(ctx context.Context, name string, epoch uint64) error
}
