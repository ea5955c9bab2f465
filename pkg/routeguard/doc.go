// Package routeguard gates route transitions on authentication validity.
//
// Guards are pure consumers: they read validity and return a navigation
// intent, leaving execution to the router integration.
package routeguard
