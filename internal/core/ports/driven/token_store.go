package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/tokend/internal/core/domain"
)

// TokenUpsert carries the provider's token response into the store.
type TokenUpsert struct {
	AccessToken  string
	RefreshToken string

	// ExpiresIn is the provider-reported lifetime in seconds. The store
	// computes the absolute expiry from it.
	ExpiresIn int

	Scope        string
	TokenType    string
	AccountEmail string
}

// TokenStore persists the current credential and a bounded history of
// superseded ones.
type TokenStore interface {
	// Upsert stores a token response. If an active record with the same
	// refresh token exists, its access token, expiry, scope and token type
	// are updated in place (refresh path). Otherwise a new active record is
	// inserted and retention is enforced: only the newest N records stay
	// active, the rest are flagged inactive. Idempotent under retry.
	Upsert(ctx context.Context, tok TokenUpsert) error

	// Current returns the most recently inserted active credential, or
	// (nil, nil) when none exists.
	Current(ctx context.Context) (*domain.Credential, error)

	// DeleteInactiveBefore permanently removes inactive records created
	// before the cutoff. Returns the number of records deleted.
	DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
