// Package google implements the outbound OAuth2 client for Google's
// authorization and token endpoints.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/tokend/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.Provider = (*Client)(nil)

const (
	defaultAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	defaultTokenURL = "https://oauth2.googleapis.com/token"
)

// Config holds the OAuth app credentials and endpoints.
type Config struct {
	ClientID     string
	ClientSecret string

	// RedirectURI is the registered callback URL.
	RedirectURI string

	// Scope is the space-delimited scope set requested during authorization.
	Scope string

	// AuthURL and TokenURL override Google's endpoints, mainly for tests.
	AuthURL  string
	TokenURL string

	// Timeout bounds each outbound call (default: 30s).
	Timeout time.Duration
}

// Client performs code exchange and refresh-grant calls against Google.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a Google OAuth client.
func New(cfg Config) *Client {
	if cfg.AuthURL == "" {
		cfg.AuthURL = defaultAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// AuthCodeURL constructs the authorization URL. access_type=offline and
// prompt=consent force Google to issue a refresh token.
func (c *Client) AuthCodeURL(state string) string {
	params := url.Values{
		"client_id":     {c.cfg.ClientID},
		"redirect_uri":  {c.cfg.RedirectURI},
		"response_type": {"code"},
		"scope":         {c.cfg.Scope},
		"access_type":   {"offline"},
		"prompt":        {"consent"},
		"state":         {state},
	}
	return c.cfg.AuthURL + "?" + params.Encode()
}

// Exchange trades an authorization code for tokens.
func (c *Client) Exchange(ctx context.Context, code string) (*driven.Token, error) {
	return c.token(ctx, url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {c.cfg.RedirectURI},
	})
}

// Refresh trades a refresh token for a new access token. Google does not
// return a new refresh token in refresh responses.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*driven.Token, error) {
	return c.token(ctx, url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"refresh_token": {refreshToken},
		"grant_type":    {"refresh_token"},
	})
}

// token POSTs a form to the token endpoint and decodes the response.
func (c *Client) token(ctx context.Context, params url.Values) (*driven.Token, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.TokenURL,
		strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var tokenResp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		IDToken      string `json:"id_token"`
		TokenType    string `json:"token_type"`
		Scope        string `json:"scope"`
		ExpiresIn    int    `json:"expires_in"`
		Error        string `json:"error"`
		ErrorDesc    string `json:"error_description"`
	}

	if resp.StatusCode != http.StatusOK {
		perr := &driven.ProviderError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
		// Best effort: pull the OAuth error code out of the payload.
		if json.Unmarshal(body, &tokenResp) == nil {
			perr.Code = tokenResp.Error
		}
		return nil, perr
	}

	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if tokenResp.Error != "" {
		return nil, &driven.ProviderError{
			StatusCode: resp.StatusCode,
			Code:       tokenResp.Error,
			Body:       string(body),
		}
	}

	return &driven.Token{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		IDToken:      tokenResp.IDToken,
		TokenType:    tokenResp.TokenType,
		Scope:        tokenResp.Scope,
		ExpiresIn:    tokenResp.ExpiresIn,
	}, nil
}
