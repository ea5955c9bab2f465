// Package apiclient is the HTTP client for the authentication backend.
//
// It provides two call paths: Call issues a single attempt, CallWithRetry
// wraps it with a sequential exponential backoff schedule for transient
// failures. The client never classifies errors beyond the retry decision;
// it decodes every failure into one of two closed shapes that downstream
// classification consumes:
//
//   - *NetworkError — the call never produced an HTTP status code
//   - *Error — the backend responded with a non-2xx status and (possibly)
//     a structured error payload
//
// The client also owns the AuthState: the bearer token and user snapshot
// used to authenticate outbound calls. State changes notify listeners
// synchronously, which is how the persisted credential stays in lockstep
// with the in-memory state (see the credsync package).
//
// # Usage
//
//	client, err := apiclient.New("https://api.example.com")
//	if err != nil { ... }
//
//	var resp struct {
//		User *apiclient.User `json:"user"`
//	}
//	err = client.CallWithRetry(ctx, http.MethodGet, "/api/auth/me", &resp)
//
// # Limitations
//
// A retry sequence cannot be aborted other than by cancelling the call's
// context; there is no single-flight deduplication of identical concurrent
// calls.
package apiclient
