package storage

import "errors"

// Well-known keys.
const (
	// AuthTokenKey holds the bearer token attached to API requests.
	AuthTokenKey = "auth_token"
	// ThemeKey holds the selected theme name as a JSON string.
	ThemeKey = "gamifier-theme"
)

// ErrEmptyKey is returned when a key is blank.
var ErrEmptyKey = errors.New("storage: key cannot be empty")

// Store is a persistent string key-value store, the equivalent of browser
// local storage. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	Keys() ([]string, error)
}
