package watcher

import (
	"context"
	"testing"

	"github.com/igneous-labs/inf-jup-interface/internal/model"
	"github.com/igneous-labs/inf-jup-interface/internal/storage"
)

type memSink struct {
	quotes []model.QuoteRecord
	epochs map[string]uint64
}

var (
	_ storage.Storage           = (*memSink)(nil)
	_ storage.EpochCheckpointer = (*memSink)(nil)
)

func (m *memSink) PutQuoteBatch(_ context.Context, quotes []model.QuoteRecord) error {
	m.quotes = append(m.quotes, quotes...)
	return nil
}

func (m *memSink) LoadEpoch(_ context.Context, name string) (uint64, bool, error) {
	epoch, ok := m.epochs[name]
	return epoch, ok, nil
}

func (m *memSink) SaveEpoch(_ context.Context, name string, epoch uint64) error {
	if m.epochs == nil {
		m.epochs = make(map[string]uint64)
	}
	m.epochs[name] = epoch
	return nil
}

type plainSink struct{}

func (plainSink) PutQuoteBatch(context.Context, []model.QuoteRecord) error { return nil }

func TestCheckpointRoundTrip(t *testing.T) {
	sink := &memSink{}
	r := NewRunner(RunConfig{}, nil, nil, sink, nil)
	ctx := context.Background()

	r.saveCheckpoint(ctx, 630)
	epoch, ok := sink.epochs[checkpointName]
	if !ok {
		t.Fatalf("checkpoint %q not persisted", checkpointName)
	}
	if epoch != 630 {
		t.Fatalf("epoch %d, want 630", epoch)
	}

	r.saveCheckpoint(ctx, 631)
	if sink.epochs[checkpointName] != 631 {
		t.Fatalf("epoch %d, want 631", sink.epochs[checkpointName])
	}

	// restore reads without mutating
	r.restoreCheckpoint(ctx)
	if sink.epochs[checkpointName] != 631 {
		t.Fatalf("restore mutated checkpoint to %d", sink.epochs[checkpointName])
	}
}

func TestCheckpointSkipsPlainSinks(t *testing.T) {
	r := NewRunner(RunConfig{}, nil, nil, plainSink{}, nil)
	ctx := context.Background()

	// neither call may panic or touch storage on a sink without state
	r.restoreCheckpoint(ctx)
	r.saveCheckpoint(ctx, 630)
}
