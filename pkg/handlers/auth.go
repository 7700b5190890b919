package handlers

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/copa-network/copa-console/pkg/auth"
	"github.com/copa-network/copa-console/pkg/config"
)

// LogoutResponse represents the response for logout.
type LogoutResponse struct {
	Success     bool   `json:"success"`
	RedirectURL string `json:"redirect_url"`
}

// AuthHandler handles the login redirect flow against the network's
// authorization server.
type AuthHandler struct {
	authService auth.AuthService
	config      *config.Config
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService auth.AuthService, cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		config:      cfg,
		logger:      logger,
	}
}

// RegisterRoutes registers the auth handler's routes on the given mux.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
}

// Login handles GET /auth/login. It stores a random state in the session
// and redirects the browser to the authorization server.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()

	session, err := auth.GetSession(r)
	if err != nil {
		h.logger.Error("Failed to open session", zap.Error(err))
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}
	session.Values[auth.SessionKeyState] = state
	if err := auth.SaveSession(r, w, session); err != nil {
		h.logger.Error("Failed to save session", zap.Error(err))
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}

	query := url.Values{
		"client_id":     {h.config.Auth.ClientID},
		"redirect_uri":  {h.config.BaseURL + "/auth/callback"},
		"response_type": {"token"},
		"state":         {state},
	}
	http.Redirect(w, r, h.config.Auth.AuthServerURL+"/authorize?"+query.Encode(), http.StatusFound)
}

// Callback handles GET /auth/callback. The authorization server redirects
// back with the state and a signed token; the token is validated against
// the provider JWKS before the session is established.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	session, err := auth.GetSession(r)
	if err != nil {
		h.logger.Error("Failed to open session", zap.Error(err))
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}

	expectedState, _ := session.Values[auth.SessionKeyState].(string)
	if expectedState == "" || r.URL.Query().Get("state") != expectedState {
		h.logger.Warn("OAuth state mismatch", zap.String("remote_addr", r.RemoteAddr))
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_state", "State parameter mismatch"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_token", "Missing token parameter"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	// Validate before trusting: reuse the same path the API middleware uses.
	probe := r.Clone(r.Context())
	probe.Header.Set("Authorization", "Bearer "+token)
	claims, _, err := h.authService.ValidateRequest(probe)
	if err != nil {
		h.logger.Warn("Rejected callback token", zap.Error(err))
		if err := ErrorResponse(w, http.StatusUnauthorized, "invalid_token", "Token validation failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	delete(session.Values, auth.SessionKeyState)
	session.Values[auth.SessionKeyToken] = token
	if err := auth.SaveSession(r, w, session); err != nil {
		h.logger.Error("Failed to save session", zap.Error(err))
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("User logged in", zap.String("subject", claims.Subject))
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout handles POST /auth/logout by expiring the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := auth.GetSession(r)
	if err == nil {
		session.Options.MaxAge = -1
		if err := auth.SaveSession(r, w, session); err != nil {
			h.logger.Error("Failed to expire session", zap.Error(err))
		}
	}

	if err := WriteJSON(w, http.StatusOK, LogoutResponse{Success: true, RedirectURL: "/"}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
