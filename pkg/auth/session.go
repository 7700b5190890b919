package auth

import (
	"crypto/sha256"
	"net/http"
	"net/url"

	"github.com/gorilla/sessions"
)

// Store is the global session store for the login flow. It holds the OAuth
// state parameter during the redirect and the bearer token afterwards.
var Store *sessions.CookieStore

// SessionName is the name of the console session cookie.
const SessionName = "console-session"

// Session value keys.
const (
	SessionKeyState = "state"
	SessionKeyToken = "token"
)

// InitSessionStore initializes the cookie-based session store. The secret
// can be any passphrase; it is SHA-256 hashed to derive a 32-byte signing
// key, so it must be consistent across restarts. Cookies are HttpOnly and
// SameSite=Lax; Secure is derived from the base URL scheme so localhost
// development over plain HTTP still works.
func InitSessionStore(secret, baseURL string) {
	key := sha256.Sum256([]byte(secret))

	Store = sessions.NewCookieStore(key[:])
	Store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   8 * 3600,
		HttpOnly: true,
		Secure:   isHTTPS(baseURL),
		SameSite: http.SameSiteLaxMode,
	}
}

// GetSession retrieves the console session from the request, creating a new
// one if none exists.
func GetSession(r *http.Request) (*sessions.Session, error) {
	return Store.Get(r, SessionName)
}

// SaveSession saves the session to the response.
func SaveSession(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	return session.Save(r, w)
}

func isHTTPS(baseURL string) bool {
	if baseURL == "" {
		return true
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return true
	}
	return parsed.Scheme != "http"
}
