package driving

import "context"

// OAuthService drives the credential lifecycle: the authorization code
// handshake with the provider and the refresh-before-expiry policy for the
// stored credential.
type OAuthService interface {
	// Start issues a new CSRF state, persists it, and returns the provider
	// authorization URL to redirect the user to.
	Start(ctx context.Context) (*StartResponse, error)

	// Callback handles the provider redirect: it consumes the state,
	// exchanges the code for tokens, and persists the credential.
	Callback(ctx context.Context, req CallbackRequest) (*CallbackResponse, error)

	// AccessToken returns a valid access token, refreshing proactively when
	// the stored one is within the refresh margin of expiry. When a refresh
	// fails the stored, soon-to-expire token is returned instead.
	AccessToken(ctx context.Context) (string, error)

	// Status reports the stored credential's expiry and grant metadata.
	Status(ctx context.Context) (*StatusResponse, error)

	// Sweep deletes stale handshake states and expired inactive credential
	// history. Best effort: it reports but tolerates partial failure.
	Sweep(ctx context.Context) error
}

// StartResponse contains the authorization URL and the issued state.
// @Description Response containing the provider authorization URL
type StartResponse struct {
	// AuthorizationURL is the URL to redirect the user to for consent.
	AuthorizationURL string `json:"authorization_url" example:"https://accounts.google.com/o/oauth2/v2/auth?client_id=..."`

	// State is the CSRF token that the provider will echo in the callback.
	State string `json:"state" example:"fNqp3zQ8..."`
}

// CallbackRequest represents the provider redirect query parameters.
// @Description OAuth callback parameters from provider redirect
type CallbackRequest struct {
	// Code is the authorization code from the provider.
	Code string `json:"code" example:"4/0AX4XfW..."`

	// State is the CSRF token echoed by the provider.
	State string `json:"state" example:"fNqp3zQ8..."`

	// Error is set when the provider reported an authorization error.
	Error string `json:"error,omitempty" example:"access_denied"`
}

// CallbackResponse is returned after a completed authorization.
// @Description Response after successful authorization
type CallbackResponse struct {
	Message string `json:"message" example:"OAuth successful!"`
	Status  string `json:"status" example:"success"`
}

// StatusResponse reports the stored credential's state.
// @Description Current credential status
type StatusResponse struct {
	// Status is "active" while the access token has lifetime left,
	// "expired" otherwise.
	Status string `json:"status" example:"active"`

	ExpiresInSeconds int64  `json:"expires_in_seconds" example:"3412"`
	ExpiresInMinutes int64  `json:"expires_in_minutes" example:"56"`
	Scope            string `json:"scope" example:"https://www.googleapis.com/auth/userinfo.email"`
	TokenType        string `json:"token_type" example:"Bearer"`

	// AccountEmail is the account the credential was granted for, when the
	// provider returned an ID token.
	AccountEmail string `json:"account_email,omitempty" example:"ops@example.com"`
}

// OAuthError is a client-visible flow error with a stable error code.
type OAuthError struct {
	Code        string `json:"error_code" example:"invalid_state"`
	Description string `json:"error" example:"Invalid state parameter"`
}

func (e *OAuthError) Error() string {
	if e.Description != "" {
		return e.Code + ": " + e.Description
	}
	return e.Code
}

// Common flow errors
var (
	ErrMissingCode     = &OAuthError{Code: "missing_code", Description: "Missing OAuth code"}
	ErrMissingState    = &OAuthError{Code: "missing_state", Description: "Missing state parameter"}
	ErrInvalidState    = &OAuthError{Code: "invalid_state", Description: "Invalid state parameter"}
	ErrInvalidResponse = &OAuthError{Code: "invalid_token_response", Description: "Invalid token response from provider"}
)
