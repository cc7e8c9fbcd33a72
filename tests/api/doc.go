// Package api contains end-to-end tests that drive the full router.
//
// Each test builds the router against a fresh SQLite database and a temporary
// media root, so no running server or external database is required.
//
// Usage:
//
//	go test ./tests/api/... -v
package api
