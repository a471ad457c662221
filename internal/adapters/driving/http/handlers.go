package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/tokend/internal/core/domain"
	"github.com/custodia-labs/tokend/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error     string `json:"error" example:"Invalid state parameter"`
	ErrorCode string `json:"error_code" example:"invalid_state"`
}

// TokenResponse carries a valid access token
// @Description Access token response
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"ya29.a0AfH6..."`
	Status      string `json:"status" example:"success"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks the datastore connection)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  StatusResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// OAuth flow endpoints

// handleStart godoc
// @Summary      Start authorization flow
// @Description  Issues a CSRF state and returns the provider authorization URL
// @Tags         OAuth
// @Produce      json
// @Param        provider  path      string  true  "Provider name"
// @Success      200       {object}  driving.StartResponse
// @Failure      404       {object}  ErrorResponse  "Unknown provider"
// @Failure      500       {object}  ErrorResponse  "State could not be saved"
// @Router       /oauth/{provider}/start [get]
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if !s.checkProvider(w, r) {
		return
	}

	resp, err := s.oauthService.Start(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "state_save_failed", "Failed to save state")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleCallback godoc
// @Summary      Authorization callback
// @Description  Verifies the CSRF state and exchanges the authorization code for tokens
// @Tags         OAuth
// @Produce      json
// @Param        provider  path      string  true   "Provider name"
// @Param        code      query     string  false  "Authorization code"
// @Param        state     query     string  false  "CSRF state"
// @Param        error     query     string  false  "Provider-reported error"
// @Success      200       {object}  driving.CallbackResponse
// @Failure      400       {object}  ErrorResponse  "Missing or invalid code, state, or provider error"
// @Failure      404       {object}  ErrorResponse  "Unknown provider"
// @Failure      500       {object}  ErrorResponse  "Provider communication or storage failure"
// @Router       /oauth/{provider}/callback [get]
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	if !s.checkProvider(w, r) {
		return
	}

	q := r.URL.Query()
	resp, err := s.oauthService.Callback(r.Context(), driving.CallbackRequest{
		Code:  q.Get("code"),
		State: q.Get("state"),
		Error: q.Get("error"),
	})
	if err != nil {
		var oerr *driving.OAuthError
		if errors.As(err, &oerr) {
			writeJSON(w, http.StatusBadRequest, oerr)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleToken godoc
// @Summary      Get a valid access token
// @Description  Returns the stored access token, refreshing it first when close to expiry
// @Tags         OAuth
// @Produce      json
// @Param        provider  path      string  true  "Provider name"
// @Success      200       {object}  TokenResponse
// @Failure      404       {object}  ErrorResponse  "No valid token available"
// @Failure      500       {object}  ErrorResponse  "Internal failure"
// @Router       /oauth/{provider}/token [get]
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if !s.checkProvider(w, r) {
		return
	}

	token, err := s.oauthService.AccessToken(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoCredential) {
			writeError(w, http.StatusNotFound, "no_token", "No valid token available")
			return
		}
		writeError(w, http.StatusInternalServerError, "token_retrieval_failed", "Failed to get token")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		Status:      "success",
	})
}

// handleStatus godoc
// @Summary      Credential status
// @Description  Reports expiry and grant metadata for the stored credential
// @Tags         OAuth
// @Produce      json
// @Param        provider  path      string  true  "Provider name"
// @Success      200       {object}  driving.StatusResponse
// @Failure      404       {object}  ErrorResponse  "No token record exists"
// @Failure      500       {object}  ErrorResponse  "Internal failure"
// @Router       /oauth/{provider}/status [get]
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !s.checkProvider(w, r) {
		return
	}

	resp, err := s.oauthService.Status(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoCredential) {
			writeError(w, http.StatusNotFound, "no_token", "No token found")
			return
		}
		writeError(w, http.StatusInternalServerError, "status_check_failed", "Failed to get token status")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// checkProvider rejects requests for any provider other than the single
// configured one.
func (s *Server) checkProvider(w http.ResponseWriter, r *http.Request) bool {
	if r.PathValue("provider") != s.provider {
		writeError(w, http.StatusNotFound, "unknown_provider", "Unknown provider")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, ErrorCode: code})
}
