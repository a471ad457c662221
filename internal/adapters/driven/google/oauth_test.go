package google

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/custodia-labs/tokend/internal/core/ports/driven"
)

func newTestClient(tokenURL string) *Client {
	return New(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:9001/oauth/google/callback",
		Scope:        "https://www.googleapis.com/auth/userinfo.email",
		TokenURL:     tokenURL,
	})
}

func TestClient_AuthCodeURL(t *testing.T) {
	client := newTestClient("")

	rawURL := client.AuthCodeURL("state-123")
	parsed, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("failed to parse URL: %v", err)
	}

	if !strings.HasPrefix(rawURL, "https://accounts.google.com/o/oauth2/v2/auth?") {
		t.Errorf("unexpected authorization endpoint: %s", rawURL)
	}

	query := parsed.Query()
	want := map[string]string{
		"client_id":     "client-id",
		"redirect_uri":  "http://localhost:9001/oauth/google/callback",
		"response_type": "code",
		"scope":         "https://www.googleapis.com/auth/userinfo.email",
		"access_type":   "offline",
		"prompt":        "consent",
		"state":         "state-123",
	}
	for key, value := range want {
		if got := query.Get(key); got != value {
			t.Errorf("expected %s=%s, got %s", key, value, got)
		}
	}
}

func TestClient_Exchange(t *testing.T) {
	var gotForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("unexpected content type %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		gotForm = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"access_token": "access-1",
			"refresh_token": "refresh-1",
			"id_token": "id-token-1",
			"token_type": "Bearer",
			"scope": "https://www.googleapis.com/auth/userinfo.email",
			"expires_in": 3599
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	tok, err := client.Exchange(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotForm.Get("grant_type") != "authorization_code" {
		t.Errorf("expected grant_type authorization_code, got %s", gotForm.Get("grant_type"))
	}
	if gotForm.Get("code") != "auth-code" {
		t.Errorf("expected code auth-code, got %s", gotForm.Get("code"))
	}
	if gotForm.Get("client_id") != "client-id" || gotForm.Get("client_secret") != "client-secret" {
		t.Error("expected client credentials in the form")
	}
	if gotForm.Get("redirect_uri") != "http://localhost:9001/oauth/google/callback" {
		t.Errorf("expected redirect_uri in the form, got %s", gotForm.Get("redirect_uri"))
	}

	if tok.AccessToken != "access-1" {
		t.Errorf("expected access token access-1, got %s", tok.AccessToken)
	}
	if tok.RefreshToken != "refresh-1" {
		t.Errorf("expected refresh token refresh-1, got %s", tok.RefreshToken)
	}
	if tok.IDToken != "id-token-1" {
		t.Errorf("expected ID token id-token-1, got %s", tok.IDToken)
	}
	if tok.ExpiresIn != 3599 {
		t.Errorf("expected expiry 3599, got %d", tok.ExpiresIn)
	}
}

func TestClient_Exchange_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "invalid_grant", "error_description": "Bad Request"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Exchange(context.Background(), "expired-code")

	var perr *driven.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a ProviderError, got %v", err)
	}
	if perr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", perr.StatusCode)
	}
	if perr.Code != "invalid_grant" {
		t.Errorf("expected error code invalid_grant, got %s", perr.Code)
	}
	if !strings.Contains(perr.Body, "invalid_grant") {
		t.Errorf("expected the raw body to be kept, got %s", perr.Body)
	}
}

func TestClient_Exchange_ErrorInOKResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": "invalid_request"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Exchange(context.Background(), "code")

	var perr *driven.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a ProviderError, got %v", err)
	}
	if perr.Code != "invalid_request" {
		t.Errorf("expected error code invalid_request, got %s", perr.Code)
	}
}

func TestClient_Refresh(t *testing.T) {
	var gotForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		gotForm = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"access_token": "access-2",
			"token_type": "Bearer",
			"expires_in": 3599
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	tok, err := client.Refresh(context.Background(), "refresh-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotForm.Get("grant_type") != "refresh_token" {
		t.Errorf("expected grant_type refresh_token, got %s", gotForm.Get("grant_type"))
	}
	if gotForm.Get("refresh_token") != "refresh-1" {
		t.Errorf("expected refresh_token refresh-1, got %s", gotForm.Get("refresh_token"))
	}

	if tok.AccessToken != "access-2" {
		t.Errorf("expected access token access-2, got %s", tok.AccessToken)
	}
	// Google omits the refresh token in refresh responses.
	if tok.RefreshToken != "" {
		t.Errorf("expected no refresh token, got %s", tok.RefreshToken)
	}
}

func TestClient_Exchange_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)
	_, err := client.Exchange(context.Background(), "code")
	if err == nil {
		t.Fatal("expected error when the endpoint is unreachable")
	}

	var perr *driven.ProviderError
	if errors.As(err, &perr) {
		t.Errorf("expected a plain transport error, got ProviderError %v", perr)
	}
}

func TestClient_Exchange_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Exchange(context.Background(), "code"); err == nil {
		t.Fatal("expected error on a malformed response")
	}
}
