// Package storage is the durable key-value snapshot layer behind the
// session stores. It mirrors the browser split between per-tab session
// storage and cross-session local storage: session-scope entries are wiped
// wholesale on logout, local-scope entries survive until deleted.
package storage

import "errors"

// Scope separates entries that live with the session from entries that
// survive it.
type Scope string

const (
	ScopeSession Scope = "session"
	ScopeLocal   Scope = "local"
)

// Well-known snapshot keys.
const (
	KeyUser  = "user"  // session scope, serialized identity
	KeyToken = "token" // session scope, auth token string
	KeyCart  = "cart"  // local scope, serialized line items
	KeyTheme = "theme" // local scope, "dark" or "light"
)

// ErrNotFound is returned when no entry exists for the key.
var ErrNotFound = errors.New("storage: entry not found")

// Store persists string-serialized snapshots per client.
type Store interface {
	Get(clientID string, scope Scope, key string) (string, error)
	Set(clientID string, scope Scope, key, value string) error
	Delete(clientID string, scope Scope, key string) error
	ClearScope(clientID string, scope Scope) error
}
