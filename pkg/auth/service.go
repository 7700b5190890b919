package auth

import (
	"errors"
	"net/http"
	"strings"
)

// ErrNoToken is returned when a request carries no usable credential.
var ErrNoToken = errors.New("no token in request")

// AuthService extracts and validates the credential on an incoming request.
type AuthService interface {
	// ValidateRequest returns the claims and raw token for the request, or
	// an error when the request is unauthenticated.
	ValidateRequest(r *http.Request) (*Claims, string, error)
}

type authService struct {
	validator TokenValidator
}

// NewAuthService creates a new auth service around a token validator.
func NewAuthService(validator TokenValidator) AuthService {
	return &authService{validator: validator}
}

var _ AuthService = (*authService)(nil)

// ValidateRequest checks the Authorization header first, then falls back to
// the session cookie written by the OAuth callback.
func (s *authService) ValidateRequest(r *http.Request) (*Claims, string, error) {
	token := bearerToken(r)
	if token == "" {
		token = sessionToken(r)
	}
	if token == "" {
		return nil, "", ErrNoToken
	}

	claims, err := s.validator.ValidateToken(token)
	if err != nil {
		return nil, "", err
	}
	return claims, token, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func sessionToken(r *http.Request) string {
	if Store == nil {
		return ""
	}
	session, err := GetSession(r)
	if err != nil {
		return ""
	}
	token, _ := session.Values[SessionKeyToken].(string)
	return token
}
