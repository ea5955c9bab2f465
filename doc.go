// Package sessionkit is a client-side session and API-resilience layer for
// applications talking to a remote authentication backend.
//
// It keeps a single authoritative notion of "who is logged in" synchronized
// between the in-memory session store, the persisted credential, and the
// backend's own validation of the token — and makes every outbound call
// resilient to transient failures while converting backend errors into a
// small taxonomy that drives both programmatic flow and user notification.
//
// The Kit type wires the components; the pkg/ subpackages can also be used
// independently:
//
//   - pkg/apiclient — retrying HTTP client with typed failure variants and
//     the authentication state (token + user snapshot)
//   - pkg/apierrors — error classifier and auth-error interception
//   - pkg/sessionstore — reactive current-user holder
//   - pkg/sessionmgr — login/logout/register/refresh and profile operations
//   - pkg/credsync — credential persistence kept in lockstep with the
//     client's auth state
//   - pkg/routeguard — auth-only / guest-only navigation guards
package sessionkit
