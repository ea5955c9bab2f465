// Package sessionstore holds the application's current notion of the
// logged-in user.
//
// The store is reactive (subscribers are notified on every mutation) and
// deliberately dumb: it performs no I/O and enforces no policy. The session
// manager is its only legitimate mutator.
package sessionstore
