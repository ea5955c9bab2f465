package routeguard

import (
	"github.com/dmitrymomot/sessionkit/pkg/navigation"
)

// AuthReader exposes the backend client's authentication validity. It is a
// read-only view; guards never mutate state.
type AuthReader interface {
	IsValid() bool
}

// Config holds route guard configuration.
type Config struct {
	// LoginPath is where unauthenticated visitors of protected routes go
	LoginPath string `env:"GUARD_LOGIN_PATH" envDefault:"/login"`

	// ProtectedPath is where authenticated visitors of guest-only routes go
	ProtectedPath string `env:"GUARD_PROTECTED_PATH" envDefault:"/protected"`
}

// DefaultConfig returns default route guard configuration.
func DefaultConfig() Config {
	return Config{
		LoginPath:     "/login",
		ProtectedPath: "/protected",
	}
}

// Guard produces navigation intents for route transitions based on the
// current authentication validity.
type Guard struct {
	auth AuthReader
	cfg  Config
}

// New creates a guard reading validity from auth.
func New(auth AuthReader, cfg Config) *Guard {
	if cfg.LoginPath == "" {
		cfg.LoginPath = DefaultConfig().LoginPath
	}
	if cfg.ProtectedPath == "" {
		cfg.ProtectedPath = DefaultConfig().ProtectedPath
	}
	return &Guard{auth: auth, cfg: cfg}
}

// RequireAuth gates auth-only routes: invalid authentication yields a
// redirect intent to the login entry point.
func (g *Guard) RequireAuth() navigation.Intent {
	if !g.auth.IsValid() {
		return navigation.NavigateTo(g.cfg.LoginPath, false)
	}
	return navigation.None()
}

// RequireGuest gates guest-only routes: valid authentication yields a
// redirect intent to the protected entry point.
func (g *Guard) RequireGuest() navigation.Intent {
	if g.auth.IsValid() {
		return navigation.NavigateTo(g.cfg.ProtectedPath, false)
	}
	return navigation.None()
}
