// Package sessionmgr exposes the session mutation operations: login,
// register, logout, refresh, profile update, password change, email change
// request, password reset request and account deletion.
//
// The manager is the only writer of the session store. Every failure goes
// through the central policy: auth errors are intercepted (clear session,
// notice, redirect unless forbidden), validation errors pass through to the
// caller silently, and the rest produce one passive notification — the raw
// error is always returned so call sites keep local handling.
package sessionmgr
