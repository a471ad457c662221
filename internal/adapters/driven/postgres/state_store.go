package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/tokend/internal/core/domain"
	"github.com/custodia-labs/tokend/internal/core/ports/driven"
)

// Ensure StateStore implements the interface.
var _ driven.StateStore = (*StateStore)(nil)

// StateStore implements driven.StateStore using PostgreSQL.
type StateStore struct {
	db *DB
}

// NewStateStore creates a new PostgreSQL-backed state store.
func NewStateStore(db *DB) *StateStore {
	return &StateStore{db: db}
}

// Save stores a new handshake state. Already-expired states are pruned
// first, so the table stays small without a dedicated schedule.
func (s *StateStore) Save(ctx context.Context, state *domain.AuthState) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM oauth_states WHERE expires_at < NOW()`)
	if err != nil {
		return fmt.Errorf("prune oauth states: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO oauth_states (state, created_at, expires_at)
		VALUES ($1, $2, $3)
	`, state.Value, state.CreatedAt, state.ExpiresAt)
	if err != nil {
		return fmt.Errorf("save oauth state: %w", err)
	}

	return nil
}

// Consume atomically verifies and deletes the state. The single DELETE
// makes concurrent callbacks race on the row: exactly one observes true.
func (s *StateStore) Consume(ctx context.Context, value string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM oauth_states
		WHERE state = $1 AND expires_at > NOW()
	`, value)
	if err != nil {
		return false, fmt.Errorf("consume oauth state: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("consume oauth state: %w", err)
	}
	return deleted > 0, nil
}

// Purge removes states created before the cutoff regardless of expiry.
func (s *StateStore) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM oauth_states
		WHERE created_at < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge oauth states: %w", err)
	}

	purged, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge oauth states: %w", err)
	}
	return purged, nil
}
