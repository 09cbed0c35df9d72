//nolint
package store

import "github.com/payinbox/payinbox"

// Move references for all storage types into this package for shorter
// names everywhere.

type ReadOnlyKVStore = payinbox.ReadOnlyKVStore
type KVStore = payinbox.KVStore
type CacheableKVStore = payinbox.CacheableKVStore
type KVCacheWrap = payinbox.KVCacheWrap
type Batch = payinbox.Batch
