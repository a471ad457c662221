package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/tokend/internal/core/domain"
)

// StateStore manages authorization handshake states for CSRF protection.
// States are single-use and expire after a short period.
type StateStore interface {
	// Save stores a new state. Implementations prune already-expired
	// states as a side effect, so issuing keeps the table small without a
	// dedicated schedule.
	Save(ctx context.Context, state *domain.AuthState) error

	// Consume atomically verifies and deletes the state. Returns true when
	// the state existed and had not expired; false when it was unknown,
	// expired, or already consumed. A replayed callback must observe false.
	Consume(ctx context.Context, value string) (bool, error)

	// Purge removes states created before the cutoff regardless of their
	// expiry, as an absolute backstop. Returns the number removed.
	// Backends that expire keys natively may report zero.
	Purge(ctx context.Context, cutoff time.Time) (int64, error)
}
