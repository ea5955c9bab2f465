// Package logger provides a slog factory and shared attribute helpers.
//
// Attribute helpers keep log field names consistent across packages
// (error, component, event, user_id, request_id, endpoint). The factory
// builds a configured *slog.Logger from options or from environment-driven
// Config.
package logger
