// Package apierrors classifies failed backend calls into a small, fixed
// taxonomy that drives both programmatic flow and user-facing notification.
//
// Auth detection (IsAuthError, Intercept) runs first and short-circuits
// classification: auth failures are handled centrally (clear session, show
// notice, redirect unless forbidden) and never left to individual call
// sites. Everything else goes through Classify, which maps the failure onto
// a fixed table keyed by message pattern, structured error code, or HTTP
// status, falling back to a generic entry carrying the raw message.
//
// The classifier is pure. It returns values — a Classification, an
// Interception with a navigation intent — and the call site performs the
// side effects. Titles and messages are message catalog keys resolved
// through a pluggable TranslateFunc.
package apierrors
