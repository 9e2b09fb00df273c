package model

//
// Key-value store
//

// KeyValueStore is a generic key-value store. We use it to persist the
// resolver health history and the per-run statistics, so the backing
// store is swappable without touching the core.
type KeyValueStore interface {
	// Get returns the value of the given key or an error.
	Get(key string) (value []byte, err error)

	// Set sets the value of the given key.
	Set(key string, value []byte) (err error)
}
