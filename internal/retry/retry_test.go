package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoEventualSuccess(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), 3, time.Millisecond, func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts %d, want 3", attempts)
	}
}

func TestDoExhausted(t *testing.T) {
	wantErr := errors.New("permanent")
	attempts := 0
	err := Do(context.Background(), 2, time.Millisecond, func(context.Context) error {
		attempts++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts %d, want 3", attempts)
	}
}

func TestDoHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, 5, time.Hour, func(context.Context) error {
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}
