package tokenswap

// KVStore is a simple interface to get/set data. All backing stores used
// by the program must implement at least this interface.
type KVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) []byte

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) bool

	// Set sets the key. Panics on nil key.
	Set(key, value []byte)

	// Delete deletes the key. Panics on nil key.
	Delete(key []byte)

	// Iterator over a domain of keys in ascending order. End is
	// exclusive. Start must be less than end, or the Iterator is
	// invalid.
	// CONTRACT: No writes may happen within a domain while an iterator
	// exists over it.
	Iterator(start, end []byte) Iterator

	// ReverseIterator iterates over a domain of keys in descending
	// order. End is exclusive. Start must be greater than end, or the
	// Iterator is invalid.
	ReverseIterator(start, end []byte) Iterator
}

// Iterator allows access to a set of items within a range of keys.
//
//   var itr Iterator = ...
//   defer itr.Close()
//
//   for ; itr.Valid(); itr.Next() {
//     k, v := itr.Key(), itr.Value()
//     // ...
//   }
type Iterator interface {
	// Valid returns whether the current position is valid. Once
	// invalid, an Iterator is forever invalid.
	Valid() bool

	// Next moves the iterator to the next sequential key. If Valid
	// returns false, this method panics.
	Next()

	// Key returns the key of the cursor.
	// CONTRACT: key readonly []byte
	Key() (key []byte)

	// Value returns the value of the cursor.
	// CONTRACT: value readonly []byte
	Value() (value []byte)

	// Close releases the Iterator.
	Close()
}

// CacheableKVStore is a KVStore that supports grouping temporary writes
// which may be committed or discarded together. This is how the program
// guarantees that a failed operation leaves no partial state behind.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a layered cache over a KVStore. All reads fall through to
// the backing store, all writes are held until Write is called.
type KVCacheWrap interface {
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}

// ReadOnlyKVStore is the subset of KVStore needed when no writes follow.
type ReadOnlyKVStore interface {
	Get(key []byte) []byte
	Has(key []byte) bool
	Iterator(start, end []byte) Iterator
	ReverseIterator(start, end []byte) Iterator
}

// SetDeleter is the subset of KVStore that a Batch proxies.
type SetDeleter interface {
	Set(key, value []byte)
	Delete(key []byte)
}

// Batch can write multiple operations to a store at once.
type Batch interface {
	SetDeleter
	Write() error
}
