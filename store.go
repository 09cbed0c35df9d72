package payinbox

// Defines all public interfaces for interacting with stores.
//
// Every object the protocol persists is addressed deterministically
// (records by their derived key, wallets by address), so the store
// contract is intentionally small: point reads and writes only, no
// iteration.

// ReadOnlyKVStore is a simple interface to read data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) []byte

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) bool
}

// KVStore is a simple interface to get/set data.
//
// For simplicity, we require all backing stores to implement this
// interface. They *may* implement other methods as well, but at least
// these are required.
type KVStore interface {
	ReadOnlyKVStore

	// Set sets the key. Panics on nil key.
	Set(key, value []byte)

	// Delete deletes the key. Panics on nil key.
	Delete(key []byte)
}

// Batch can write multiple operations to an underlying store as one
// unit. It is how a cache wrap flushes its content.
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write()
}

// CacheableKVStore is a KVStore that supports CacheWrapping.
//
// The cache wrap is the commit mechanism the custody engine relies on:
// the host runs an operation on a wrap and either writes it as a whole
// or discards it, so a rejected attempt leaves no partial effects.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap allows us to maintain a scratch-pad of uncommitted data
// that we can view with all queries.
//
// At the end, call Write to use the cached data, or Discard to drop it.
type KVCacheWrap interface {
	// CacheableKVStore allows us to use this Cache recursively.
	CacheableKVStore

	// Write syncs with the underlying store.
	Write()

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}
