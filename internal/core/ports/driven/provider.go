package driven

import (
	"context"
	"fmt"
)

// Token is a token endpoint response from the identity provider.
type Token struct {
	AccessToken  string
	RefreshToken string

	// IDToken is the OpenID Connect ID token, present when identity scopes
	// were granted. Empty on refresh responses.
	IDToken string

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int

	Scope     string
	TokenType string
}

// Provider performs the outbound half of the authorization code flow
// against a single configured identity provider.
type Provider interface {
	// AuthCodeURL builds the authorization endpoint URL carrying the given
	// CSRF state.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for a token pair.
	Exchange(ctx context.Context, code string) (*Token, error)

	// Refresh trades a refresh token for a new access token. The provider
	// does not reissue the refresh token.
	Refresh(ctx context.Context, refreshToken string) (*Token, error)
}

// ProviderError is a non-success response from the provider's token
// endpoint. Transport-level failures are returned as plain errors instead.
type ProviderError struct {
	// StatusCode is the HTTP status the provider answered with.
	StatusCode int

	// Code is the OAuth error code from the payload, if it parsed.
	Code string

	// Body is the raw response body, kept for diagnostics.
	Body string
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider returned HTTP %d: %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("provider returned HTTP %d", e.StatusCode)
}
