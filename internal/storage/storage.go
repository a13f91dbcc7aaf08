package storage

import (
	"errors"
	"time"
)

// ErrUnavailable is returned by backends that cannot be reached
var ErrUnavailable = errors.New("storage: backend unavailable")

// DefaultTimeout bounds a single call on network backends
const DefaultTimeout = 5 * time.Second

// Storage defines the synchronous key-value interface the document store
// persists into
type Storage interface {
	// GetItem returns the value stored under key. found is false when the
	// key has never been written.
	GetItem(key string) (value string, found bool, err error)

	// SetItem stores value under key, replacing any previous value
	SetItem(key, value string) error

	// Close releases the backend connection
	Close() error
}
