package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/custodia-labs/tokend/internal/core/domain"
	"github.com/custodia-labs/tokend/internal/core/ports/driven"
	"github.com/custodia-labs/tokend/internal/core/ports/driving"
)

// Ensure oauthService implements OAuthService
var _ driving.OAuthService = (*oauthService)(nil)

const (
	// stateTTL is how long an issued state is accepted.
	stateTTL = 10 * time.Minute

	// refreshMargin is how close to expiry the access token may get before
	// a proactive refresh is attempted.
	refreshMargin = 300 * time.Second

	// credentialRetention is how long superseded inactive credentials are
	// kept before the sweeper deletes them.
	credentialRetention = 30 * 24 * time.Hour

	// stateRetention is the absolute backstop for handshake states. States
	// stop verifying after stateTTL regardless; this only bounds table
	// growth when the opportunistic prune never runs.
	stateRetention = 24 * time.Hour
)

// OAuthServiceConfig holds dependencies for the OAuth service.
type OAuthServiceConfig struct {
	// TokenStore persists credentials.
	TokenStore driven.TokenStore

	// StateStore persists CSRF handshake states.
	StateStore driven.StateStore

	// Provider performs the outbound exchange and refresh calls.
	Provider driven.Provider

	// DefaultScope is used when the provider omits the scope field in a
	// token response.
	DefaultScope string

	Logger *slog.Logger
}

type oauthService struct {
	tokens   driven.TokenStore
	states   driven.StateStore
	provider driven.Provider
	scope    string
	logger   *slog.Logger
	now      func() time.Time
}

// NewOAuthService creates a new OAuth credential lifecycle service.
func NewOAuthService(cfg OAuthServiceConfig) driving.OAuthService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &oauthService{
		tokens:   cfg.TokenStore,
		states:   cfg.StateStore,
		provider: cfg.Provider,
		scope:    cfg.DefaultScope,
		logger:   logger,
		now:      time.Now,
	}
}

// Start issues a CSRF state and returns the authorization URL.
func (s *oauthService) Start(ctx context.Context) (*driving.StartResponse, error) {
	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}

	now := s.now()
	authState := &domain.AuthState{
		Value:     state,
		CreatedAt: now,
		ExpiresAt: now.Add(stateTTL),
	}

	// An unsaved state must never be handed out: the callback would be
	// unverifiable.
	if err := s.states.Save(ctx, authState); err != nil {
		s.logger.Error("failed to save oauth state", "error", err)
		return nil, fmt.Errorf("save oauth state: %w", err)
	}

	return &driving.StartResponse{
		AuthorizationURL: s.provider.AuthCodeURL(state),
		State:            state,
	}, nil
}

// Callback verifies the state, exchanges the code and persists the
// resulting credential.
func (s *oauthService) Callback(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResponse, error) {
	if req.Error != "" {
		s.logger.Error("provider reported authorization error", "code", req.Error)
		return nil, &driving.OAuthError{Code: "oauth_error", Description: "OAuth error: " + req.Error}
	}
	if req.Code == "" {
		return nil, driving.ErrMissingCode
	}
	if req.State == "" {
		return nil, driving.ErrMissingState
	}

	ok, err := s.states.Consume(ctx, req.State)
	if err != nil {
		s.logger.Error("failed to verify oauth state", "error", err)
		return nil, fmt.Errorf("verify oauth state: %w", err)
	}
	if !ok {
		s.logger.Warn("invalid or replayed oauth state")
		return nil, driving.ErrInvalidState
	}

	tok, err := s.provider.Exchange(ctx, req.Code)
	if err != nil {
		var perr *driven.ProviderError
		if errors.As(err, &perr) {
			s.logger.Error("code exchange rejected by provider",
				"status", perr.StatusCode, "body", perr.Body)
			return nil, &driving.OAuthError{
				Code:        "token_exchange_failed",
				Description: "Failed to exchange code for token",
			}
		}
		s.logger.Error("code exchange request failed", "error", err)
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	// The authorization path must yield a complete credential pair. A
	// missing refresh token would leave nothing to keep fresh.
	if tok.AccessToken == "" || tok.RefreshToken == "" {
		s.logger.Error("provider token response missing required fields")
		return nil, driving.ErrInvalidResponse
	}

	if err := s.tokens.Upsert(ctx, s.toUpsert(tok, tok.RefreshToken)); err != nil {
		s.logger.Error("failed to save tokens", "error", err)
		return nil, fmt.Errorf("save tokens: %w", err)
	}

	s.logger.Info("authorization flow completed")
	return &driving.CallbackResponse{
		Message: "OAuth successful!",
		Status:  "success",
	}, nil
}

// AccessToken returns a valid access token, refreshing when the stored one
// is within refreshMargin of expiry. A failed refresh falls back to the
// stored token: stale-but-usable beats unavailable.
func (s *oauthService) AccessToken(ctx context.Context) (string, error) {
	cred, err := s.tokens.Current(ctx)
	if err != nil {
		s.logger.Error("failed to load tokens", "error", err)
		return "", fmt.Errorf("load tokens: %w", err)
	}
	if cred == nil {
		s.logger.Warn("no tokens found in store")
		return "", domain.ErrNoCredential
	}

	if cred.ExpiresIn(s.now()) >= refreshMargin {
		return cred.AccessToken, nil
	}

	s.logger.Info("access token expiring soon, refreshing")
	refreshed, err := s.refresh(ctx, cred)
	if err != nil {
		return cred.AccessToken, nil
	}
	return refreshed, nil
}

// Status reports the stored credential's expiry and grant metadata.
func (s *oauthService) Status(ctx context.Context) (*driving.StatusResponse, error) {
	cred, err := s.tokens.Current(ctx)
	if err != nil {
		s.logger.Error("failed to load tokens", "error", err)
		return nil, fmt.Errorf("load tokens: %w", err)
	}
	if cred == nil {
		return nil, domain.ErrNoCredential
	}

	now := s.now()
	status := "active"
	if cred.Expired(now) {
		status = "expired"
	}
	remaining := cred.ExpiresIn(now)

	return &driving.StatusResponse{
		Status:           status,
		ExpiresInSeconds: int64(remaining.Seconds()),
		ExpiresInMinutes: int64(remaining.Minutes()),
		Scope:            cred.Scope,
		TokenType:        cred.TokenType,
		AccountEmail:     cred.AccountEmail,
	}, nil
}

// Sweep removes expired inactive credentials and stale handshake states.
func (s *oauthService) Sweep(ctx context.Context) error {
	now := s.now()
	var firstErr error

	deleted, err := s.tokens.DeleteInactiveBefore(ctx, now.Add(-credentialRetention))
	if err != nil {
		s.logger.Warn("failed to sweep inactive tokens", "error", err)
		firstErr = err
	} else if deleted > 0 {
		s.logger.Info("deleted old inactive tokens", "count", deleted)
	}

	purged, err := s.states.Purge(ctx, now.Add(-stateRetention))
	if err != nil {
		s.logger.Warn("failed to sweep oauth states", "error", err)
		if firstErr == nil {
			firstErr = err
		}
	} else if purged > 0 {
		s.logger.Info("deleted old oauth states", "count", purged)
	}

	return firstErr
}

// refresh exchanges the credential's refresh token for a new access token
// and updates the store. The provider does not rotate the refresh token, so
// the upsert reuses the original one.
func (s *oauthService) refresh(ctx context.Context, cred *domain.Credential) (string, error) {
	tok, err := s.provider.Refresh(ctx, cred.RefreshToken)
	if err != nil {
		var perr *driven.ProviderError
		if errors.As(err, &perr) {
			s.logger.Error("token refresh rejected by provider",
				"status", perr.StatusCode, "body", perr.Body)
		} else {
			s.logger.Error("token refresh request failed", "error", err)
		}
		return "", err
	}

	if err := s.tokens.Upsert(ctx, s.toUpsert(tok, cred.RefreshToken)); err != nil {
		s.logger.Error("failed to save refreshed tokens", "error", err)
		return "", err
	}

	return tok.AccessToken, nil
}

// toUpsert maps a provider token response onto a store write, applying the
// configured default scope when the provider omitted one.
func (s *oauthService) toUpsert(tok *driven.Token, refreshToken string) driven.TokenUpsert {
	scope := tok.Scope
	if scope == "" {
		scope = s.scope
	}
	return driven.TokenUpsert{
		AccessToken:  tok.AccessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    tok.ExpiresIn,
		Scope:        scope,
		TokenType:    tok.TokenType,
		AccountEmail: accountEmail(tok.IDToken),
	}
}

// generateState produces a URL-safe state token with 256 bits of
// randomness.
func generateState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
