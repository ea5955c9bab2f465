// Package notifier provides passive user-facing notifications (toasts).
//
// The error-handling layer emits a notification per failed call; the UI layer
// subscribes and renders them. Notifications are fire-and-forget: they never
// mutate state and never block the emitting operation.
package notifier
