package credsync

import (
	"encoding/base64"
	"errors"
	"net/http"
)

// Config holds credential cookie configuration.
type Config struct {
	// CookieName is the name of the credential cookie (default: "session_auth")
	CookieName string `env:"AUTH_COOKIE_NAME" envDefault:"session_auth"`

	// MaxAge in seconds; default is 7 days
	MaxAge int `env:"AUTH_COOKIE_MAX_AGE" envDefault:"604800"`

	Secure bool `env:"AUTH_COOKIE_SECURE" envDefault:"true"`
}

// DefaultConfig returns default credential cookie configuration.
func DefaultConfig() Config {
	return Config{
		CookieName: "session_auth",
		MaxAge:     7 * 24 * 60 * 60,
		Secure:     true,
	}
}

// CookieStore persists the credential in an HTTP cookie, scoped to one
// request/response pair in a server-rendered flow. The cookie is readable
// by the client runtime (not HTTP-only), strict same-site, and carries the
// base64url-encoded JSON credential.
type CookieStore struct {
	w   http.ResponseWriter
	r   *http.Request
	cfg Config
}

// NewCookieStore creates a credential store bound to the given
// request/response pair.
func NewCookieStore(w http.ResponseWriter, r *http.Request, cfg Config) *CookieStore {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultConfig().CookieName
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = DefaultConfig().MaxAge
	}
	return &CookieStore{w: w, r: r, cfg: cfg}
}

// Load reads the credential cookie from the request.
func (s *CookieStore) Load() (Credential, error) {
	cookie, err := s.r.Cookie(s.cfg.CookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return Credential{}, ErrNoCredential
		}
		return Credential{}, err
	}

	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return Credential{}, ErrInvalidCredential
	}
	return DecodeCredential(data)
}

// Save writes the credential cookie to the response.
func (s *CookieStore) Save(cred Credential) error {
	data, err := cred.Encode()
	if err != nil {
		return err
	}

	http.SetCookie(s.w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		MaxAge:   s.cfg.MaxAge,
		Secure:   s.cfg.Secure,
		HttpOnly: false, // the client runtime must be able to read it
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Clear expires the credential cookie.
func (s *CookieStore) Clear() error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.cfg.Secure,
		HttpOnly: false,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}
