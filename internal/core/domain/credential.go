package domain

import "time"

// Credential is a stored OAuth2 credential pair. The refresh token acts as
// the stable identity key: the provider does not rotate it on refresh, so
// repeated refreshes update the same record in place.
type Credential struct {
	// ID is the datastore-assigned record identifier, increasing with
	// insertion order.
	ID int64

	// AccessToken is the short-lived bearer credential. Secret.
	AccessToken string

	// RefreshToken is the long-lived credential used to obtain new access
	// tokens. Secret. Identity key for upserts.
	RefreshToken string

	// ExpiresAt is when the access token expires.
	ExpiresAt time.Time

	// Scope is the space-delimited set of granted scopes.
	Scope string

	// TokenType is the token type reported by the provider ("Bearer").
	TokenType string

	// AccountEmail is the email claim extracted from the provider's ID
	// token during the code exchange, if one was returned. Empty otherwise.
	AccountEmail string

	// CreatedAt is when the record was first inserted.
	CreatedAt time.Time

	// Active marks the current credential generation. Superseded records
	// are flagged inactive and eventually swept.
	Active bool
}

// ExpiresIn returns the remaining lifetime of the access token at t,
// clamped at zero.
func (c *Credential) ExpiresIn(t time.Time) time.Duration {
	d := c.ExpiresAt.Sub(t)
	if d < 0 {
		return 0
	}
	return d
}

// Expired reports whether the access token has expired at t.
func (c *Credential) Expired(t time.Time) bool {
	return !c.ExpiresAt.After(t)
}
