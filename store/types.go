//nolint
package store

import "github.com/iov-one/tokenswap"

// Move references for all storage types into this package for shorter
// names everywhere.

type KVStore = tokenswap.KVStore
type Iterator = tokenswap.Iterator
type CacheableKVStore = tokenswap.CacheableKVStore
type KVCacheWrap = tokenswap.KVCacheWrap
type ReadOnlyKVStore = tokenswap.ReadOnlyKVStore
type SetDeleter = tokenswap.SetDeleter
type Batch = tokenswap.Batch
