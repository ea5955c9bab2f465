package apiclient

import (
	"sync"
)

// ChangeFunc receives the authentication state after every change. The
// token and model are passed by value/snapshot so listeners never need to
// read back from the AuthState.
type ChangeFunc func(token string, model *User)

// AuthState holds the client's current authentication: the bearer token and
// the minimal user snapshot that came with it.
//
// Change listeners run synchronously inside the state mutation, before
// Save or Clear returns. This is what keeps the persisted credential in
// lockstep with the in-memory state: there is no window in which the two
// disagree. Listeners must not call back into the AuthState.
type AuthState struct {
	mu       sync.RWMutex
	token    string
	model    *User
	nextID   int
	onChange map[int]ChangeFunc
}

// NewAuthState creates an empty, unauthenticated state.
func NewAuthState() *AuthState {
	return &AuthState{
		onChange: make(map[int]ChangeFunc),
	}
}

// Save replaces the token and model and notifies listeners synchronously.
func (a *AuthState) Save(token string, model *User) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.token = token
	a.model = model.Clone()

	for _, fn := range a.onChange {
		fn(a.token, a.model.Clone())
	}
}

// Clear drops the token and model and notifies listeners synchronously.
func (a *AuthState) Clear() {
	a.Save("", nil)
}

// Token returns the current bearer token ("" when unauthenticated).
func (a *AuthState) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// Model returns a snapshot of the current user model, or nil.
func (a *AuthState) Model() *User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.model.Clone()
}

// IsValid reports whether a token is loaded.
func (a *AuthState) IsValid() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token != ""
}

// OnChange registers a listener. When fireImmediately is true the listener
// is invoked once with the current state before OnChange returns. The
// returned function unregisters the listener.
func (a *AuthState) OnChange(fn ChangeFunc, fireImmediately bool) (unsubscribe func()) {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.onChange[id] = fn
	if fireImmediately {
		fn(a.token, a.model.Clone())
	}
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.onChange, id)
		a.mu.Unlock()
	}
}
