package cache

import (
	"time"
)

// CacheProvider is an interface for a cache provider.
// It stores and retrieves []byte values, which represent encoded results.
// It also keeps track of expiration times of cache entries.
// Operating on key prefixes is needed in order to purge all results
// stored for a path.
//
// Implementations must be thread-safe!
type CacheProvider interface {
	// Keys calls the given callback for each key with the given prefix.
	// It calls the callback in order to enable very large lists of keys to be
	// processable (provider implementation might use paging, for instance).
	Keys(prefix string, cb func(string)) error
	// Get returns the cached bytes for the given key, if they exist.
	// It also returns a boolean indicating whether retrieval was successful.
	// If the cache entry has expired, the boolean should be false.
	// A missing entry is not an error.
	Get(key string) ([]byte, bool, error)
	// Put stores the given bytes in the cache under the given key.
	// It also sets an expiration time for the entry.
	Put(key string, expires time.Time, bytes []byte) error
	// Purge removes the cache entry for the given key.
	// Purging a missing key is not an error.
	Purge(key string) error
	// Has checks if the specified key exists in the cache and has not expired.
	Has(key string) (bool, error)
	// PurgeExpired removes all entries that have expired at the given time,
	// returning the number of entries removed.
	PurgeExpired(now time.Time) (int, error)
}
