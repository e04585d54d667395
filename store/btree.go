package store

import (
	"bytes"

	"github.com/google/btree"
)

const (
	// DefaultFreeListSize is the size we hold for free nodes in the btree.
	DefaultFreeListSize = btree.DefaultFreeListSize
)

// BTreeCacheable adds a simple btree-based CacheWrap strategy to a KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later written to this
// store, or rolled back.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// NewBatch returns a batch that writes to this store on Write.
func (b BTreeCacheable) NewBatch() Batch {
	return NewNonAtomicBatch(b.KVStore)
}

// MemStore returns a simple in-memory implementation, useful for tests.
// There is no persistence here.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, NewNonAtomicBatch(e), nil)
}

// BTreeCacheWrap places a btree cache over a KVStore. Reads fall through
// to the backing store, writes are held in the btree and the batch until
// Write is called.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a btree cache around this kv store. Use
// ReadOnlyKVStore to emphasize that all writes must go through the Batch.
//
// free may be nil, or set to an existing list to reuse it for memory
// savings.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(2, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another btree on top of this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a non-atomic batch that eventually may write to our
// cachewrap.
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write syncs with the underlying store and then cleans up.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard invalidates this CacheWrap and releases all data.
func (b BTreeCacheWrap) Discard() {
	for stop := false; !stop; {
		rem := b.bt.DeleteMin()
		stop = (rem == nil)
	}
}

// Set writes to the btree and to the batch.
func (b BTreeCacheWrap) Set(key, value []byte) {
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	b.batch.Set(key, value)
}

// Delete marks as deleted in the btree and in the batch.
func (b BTreeCacheWrap) Delete(key []byte) {
	b.bt.ReplaceOrInsert(newDeletedItem(key))
	b.batch.Delete(key)
}

// Get reads from the btree if present, else the backing store.
func (b BTreeCacheWrap) Get(key []byte) []byte {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch t := res.(type) {
		case setItem:
			return t.value
		case deletedItem:
			return nil
		default:
			panic("unknown item in btree")
		}
	}
	return b.back.Get(key)
}

// Has reads from the btree if present, else the backing store.
func (b BTreeCacheWrap) Has(key []byte) bool {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch res.(type) {
		case setItem:
			return true
		case deletedItem:
			return false
		default:
			panic("unknown item in btree")
		}
	}
	return b.back.Has(key)
}

// Iterator over a domain of keys in ascending order. Combines results
// from the btree and the backing store.
func (b BTreeCacheWrap) Iterator(start, end []byte) Iterator {
	items := b.collect(start, end, false)
	return newItemIter(items, b.back.Iterator(start, end), false)
}

// ReverseIterator over a domain of keys in descending order. Combines
// results from the btree and the backing store.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) Iterator {
	items := b.collect(start, end, true)
	return newItemIter(items, b.back.ReverseIterator(start, end), true)
}

// collect snapshots all btree items within the iteration domain. The
// iterator contract forbids writes while an iterator is open, so the
// snapshot stays consistent with the live tree.
func (b BTreeCacheWrap) collect(start, end []byte, reverse bool) []keyer {
	var items []keyer
	insert := func(item btree.Item) bool {
		items = append(items, item.(keyer))
		return true
	}
	if reverse {
		switch {
		case start == nil && end == nil:
			b.bt.Descend(insert)
		case start == nil:
			b.bt.DescendLessOrEqual(bkeyLess{end}, insert)
		case end == nil:
			b.bt.DescendGreaterThan(bkeyLess{start}, insert)
		default:
			b.bt.DescendRange(bkeyLess{end}, bkeyLess{start}, insert)
		}
		return items
	}
	switch {
	case start == nil && end == nil:
		b.bt.Ascend(insert)
	case start == nil:
		b.bt.AscendLessThan(bkey{end}, insert)
	case end == nil:
		b.bt.AscendGreaterOrEqual(bkey{start}, insert)
	default:
		b.bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	return items
}

// we enforce all data in our btree implements keyer so we can compare
// nicely
type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item and may be used for queries or
// embedded in data to store.
type bkey struct {
	key []byte
}

var _ keyer = bkey{}
var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff the second argument is greater than the first.
// Panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}

type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{key}, value}
}

// bkeyLess is used to change how ranges are matched: use as a query key
// so an exact match sorts just above it, anything below stays below.
type bkeyLess struct {
	key []byte
}

var _ keyer = bkeyLess{}
var _ btree.Item = bkeyLess{}

func (k bkeyLess) Key() []byte {
	return k.key
}

// Less returns true iff the second argument is greater than or equal to
// the first. Panics if the item to compare doesn't implement keyer.
func (k bkeyLess) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) <= 0
}
