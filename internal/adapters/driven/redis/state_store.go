package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/tokend/internal/core/domain"
	"github.com/custodia-labs/tokend/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.StateStore = (*StateStore)(nil)

// statePrefix namespaces handshake state keys.
const statePrefix = "oauth_state:"

// StateStore implements driven.StateStore using Redis.
// States use Redis TTL for automatic expiration, so no explicit pruning is
// needed.
type StateStore struct {
	client *redis.Client
}

// NewStateStore creates a new Redis-backed StateStore.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Save stores a state with a TTL derived from its expiry.
func (s *StateStore) Save(ctx context.Context, state *domain.AuthState) error {
	ttl := time.Until(state.ExpiresAt)
	if ttl <= 0 {
		// Already expired, nothing to store.
		return nil
	}

	err := s.client.Set(ctx, statePrefix+state.Value, state.CreatedAt.UTC().Format(time.RFC3339), ttl).Err()
	if err != nil {
		return fmt.Errorf("save oauth state: %w", err)
	}
	return nil
}

// Consume atomically verifies and deletes the state via GETDEL.
func (s *StateStore) Consume(ctx context.Context, value string) (bool, error) {
	err := s.client.GetDel(ctx, statePrefix+value).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume oauth state: %w", err)
	}
	return true, nil
}

// Purge is a no-op: Redis TTLs expire states natively, and the TTL is far
// shorter than any backstop cutoff.
func (s *StateStore) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}
