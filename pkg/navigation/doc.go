// Package navigation defines navigation intents as plain values.
//
// Error interception and route guards never navigate directly; they return an
// Intent and let the call site decide when and how to execute it. This keeps
// the producers pure and testable.
package navigation
