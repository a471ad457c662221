package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/tokend/internal/core/domain"
	"github.com/custodia-labs/tokend/internal/core/ports/driven"
)

// Ensure TokenStore implements the interface.
var _ driven.TokenStore = (*TokenStore)(nil)

// DefaultMaxRecords is the default retention bound for active credentials.
const DefaultMaxRecords = 10

// TokenStore implements driven.TokenStore using PostgreSQL.
type TokenStore struct {
	db         *DB
	maxRecords int
}

// NewTokenStore creates a new PostgreSQL-backed token store.
func NewTokenStore(db *DB) *TokenStore {
	return &TokenStore{
		db:         db,
		maxRecords: DefaultMaxRecords,
	}
}

// NewTokenStoreWithRetention creates a token store with a custom retention
// bound for active records.
func NewTokenStoreWithRetention(db *DB, maxRecords int) *TokenStore {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &TokenStore{
		db:         db,
		maxRecords: maxRecords,
	}
}

// Upsert stores a token response. A matching active refresh token means the
// refresh path: the record is updated in place, keeping the refresh token
// and insertion identity stable. Otherwise a new active record is inserted
// and retention demotes active records beyond the newest maxRecords.
func (s *TokenStore) Upsert(ctx context.Context, tok driven.TokenUpsert) error {
	expiresAt := time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)

	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, `
			SELECT id FROM tokens
			WHERE refresh_token = $1 AND is_active
			ORDER BY id DESC
			LIMIT 1
			FOR UPDATE
		`, tok.RefreshToken).Scan(&id)

		switch {
		case err == nil:
			_, err = tx.ExecContext(ctx, `
				UPDATE tokens
				SET access_token = $1, expires_at = $2, scope = $3, token_type = $4
				WHERE id = $5
			`, tok.AccessToken, expiresAt, tok.Scope, tok.TokenType, id)
			if err != nil {
				return fmt.Errorf("update token: %w", err)
			}
			return nil

		case err == sql.ErrNoRows:
			_, err = tx.ExecContext(ctx, `
				INSERT INTO tokens (access_token, refresh_token, expires_at, scope, token_type, account_email)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, tok.AccessToken, tok.RefreshToken, expiresAt, tok.Scope, tok.TokenType, tok.AccountEmail)
			if err != nil {
				return fmt.Errorf("insert token: %w", err)
			}

			// Retention: only the newest maxRecords stay active.
			_, err = tx.ExecContext(ctx, `
				UPDATE tokens
				SET is_active = FALSE
				WHERE is_active AND id NOT IN (
					SELECT id FROM tokens
					WHERE is_active
					ORDER BY id DESC
					LIMIT $1
				)
			`, s.maxRecords)
			if err != nil {
				return fmt.Errorf("trim active tokens: %w", err)
			}
			return nil

		default:
			return fmt.Errorf("find active token: %w", err)
		}
	})
}

// Current returns the most recently inserted active credential, or
// (nil, nil) when none exists.
func (s *TokenStore) Current(ctx context.Context) (*domain.Credential, error) {
	query := `
		SELECT id, access_token, refresh_token, expires_at, scope, token_type, account_email, created_at, is_active
		FROM tokens
		WHERE is_active
		ORDER BY id DESC
		LIMIT 1
	`

	var cred domain.Credential
	err := s.db.QueryRowContext(ctx, query).Scan(
		&cred.ID,
		&cred.AccessToken,
		&cred.RefreshToken,
		&cred.ExpiresAt,
		&cred.Scope,
		&cred.TokenType,
		&cred.AccountEmail,
		&cred.CreatedAt,
		&cred.Active,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get current token: %w", err)
	}

	return &cred, nil
}

// DeleteInactiveBefore permanently removes inactive records created before
// the cutoff.
func (s *TokenStore) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM tokens
		WHERE is_active = FALSE AND created_at < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete inactive tokens: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete inactive tokens: %w", err)
	}
	return deleted, nil
}
