package cache

import (
	"time"
)

// Store defines the interface for the TTL cache that sits in front of
// the RDW datasets. Values are stored as opaque JSON payloads so both
// backends share the same contract.
type Store interface {
	// Get unmarshals the cached value for key into dest. The second
	// return value is false when the key was never set or its entry
	// has expired.
	Get(key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL, unconditionally
	// overwriting any existing entry.
	Set(key string, value interface{}, ttl time.Duration) error

	// Delete removes a single key.
	Delete(key string) error

	// Clear removes all entries owned by this store.
	Clear() error

	// Close releases backend resources.
	Close() error
}
