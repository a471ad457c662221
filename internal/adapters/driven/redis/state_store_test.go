package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/tokend/internal/core/domain"
)

// setupTestStateStore creates a test Redis client and StateStore
func setupTestStateStore(t *testing.T) (*StateStore, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewStateStore(client)

	return store, mr, func() {
		client.Close()
		mr.Close()
	}
}

func newTestState(value string, ttl time.Duration) *domain.AuthState {
	now := time.Now()
	return &domain.AuthState{
		Value:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestStateStore_SaveAndConsume(t *testing.T) {
	store, _, cleanup := setupTestStateStore(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.Save(ctx, newTestState("state-abc", 10*time.Minute)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	ok, err := store.Consume(ctx, "state-abc")
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if !ok {
		t.Error("expected first Consume() to succeed")
	}
}

func TestStateStore_ConsumeIsSingleUse(t *testing.T) {
	store, _, cleanup := setupTestStateStore(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.Save(ctx, newTestState("state-once", 10*time.Minute)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	ok, err := store.Consume(ctx, "state-once")
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if !ok {
		t.Fatal("expected first Consume() to succeed")
	}

	ok, err = store.Consume(ctx, "state-once")
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if ok {
		t.Error("expected replayed Consume() to fail")
	}
}

func TestStateStore_ConsumeUnknownState(t *testing.T) {
	store, _, cleanup := setupTestStateStore(t)
	defer cleanup()

	ok, err := store.Consume(context.Background(), "never-issued")
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if ok {
		t.Error("expected Consume() of unknown state to fail")
	}
}

func TestStateStore_ExpiredStateIsGone(t *testing.T) {
	store, mr, cleanup := setupTestStateStore(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.Save(ctx, newTestState("state-ttl", time.Minute)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	mr.FastForward(2 * time.Minute)

	ok, err := store.Consume(ctx, "state-ttl")
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if ok {
		t.Error("expected expired state to fail verification")
	}
}

func TestStateStore_SaveAlreadyExpired(t *testing.T) {
	store, _, cleanup := setupTestStateStore(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.Save(ctx, newTestState("state-old", -time.Minute)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	ok, err := store.Consume(ctx, "state-old")
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if ok {
		t.Error("expected already-expired state not to be stored")
	}
}

func TestStateStore_PurgeIsNoOp(t *testing.T) {
	store, _, cleanup := setupTestStateStore(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.Save(ctx, newTestState("state-keep", 10*time.Minute)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	purged, err := store.Purge(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	if purged != 0 {
		t.Errorf("Purge() = %d, want 0", purged)
	}

	// TTL ownership means the live state survives a purge pass.
	ok, err := store.Consume(ctx, "state-keep")
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if !ok {
		t.Error("expected live state to survive Purge()")
	}
}
