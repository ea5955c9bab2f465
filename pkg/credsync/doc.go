// Package credsync keeps the persisted credential and the backend client's
// in-memory authentication state in lockstep.
//
// The persisted credential is a {token, model} pair stored either in an
// HTTP cookie (CookieStore, the server-rendered flow) or a local file
// (FileStore, the CLI flow). Writes happen synchronously inside every auth
// state change; there is no window in which the two disagree.
//
// At startup, Sync.Init seeds the auth state from the persisted credential
// and silently verifies it with one refresh call, clearing everything if
// the backend rejects the token.
package credsync
