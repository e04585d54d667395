package store

import (
	"bytes"
)

// source marks where the current item comes from when merging the cache
// with the parent store.
type source int32

const (
	us source = iota
	parent
	both
	none
)

// itemIter merges a snapshot of cached items with the iterator of the
// backing store, honoring overwrites and deletes held in the cache.
type itemIter struct {
	items []keyer
	idx   int
	// if we are iterating in a cache-wrap (and who isn't), we need to
	// combine this iterator with the parent
	parent Iterator
	// reverse flips the merge comparison so descending iteration
	// selects the larger key first
	reverse bool
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(items []keyer, parent Iterator, reverse bool) *itemIter {
	iter := &itemIter{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
	iter.skipAllDeleted()
	return iter
}

// Valid implements Iterator and returns true iff it can be read.
func (i *itemIter) Valid() bool {
	return i.cacheValid() || i.parentValid()
}

// Next moves the iterator to the next sequential key, as defined by the
// order of iteration. If Valid returns false, this method panics.
func (i *itemIter) Next() {
	switch i.firstKey() {
	case us:
		i.idx++
	case both:
		i.idx++
		fallthrough
	case parent:
		i.parent.Next()
	default:
		panic("advanced past the end")
	}

	// keep advancing over all deleted entries
	i.skipAllDeleted()
}

// Key returns the key of the cursor.
func (i *itemIter) Key() (key []byte) {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].Key()
	case parent:
		return i.parent.Key()
	default: // none
		panic("advanced past the end")
	}
}

// Value returns the value of the cursor.
func (i *itemIter) Value() (value []byte) {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].(setItem).value
	case parent:
		return i.parent.Value()
	default: // none
		panic("advanced past the end")
	}
}

// Close releases the Iterator.
func (i *itemIter) Close() {
	if i.parent != nil {
		i.parent.Close()
	}
	i.items = nil
}

// skipAllDeleted loops and skips any number of deleted items.
func (i *itemIter) skipAllDeleted() {
	for i.skipDeleted() {
	}
}

// skipDeleted jumps over all elements we can safely fast forward.
// Returns true if skipped, so we can skip again.
func (i *itemIter) skipDeleted() bool {
	src := i.firstKey()
	if src == us || src == both {
		if _, ok := i.items[i.idx].(deletedItem); ok {
			i.idx++
			// if the parent had the same key, advance it as well
			if src == both {
				i.parent.Next()
			}
			return true
		}
	}
	return false
}

// firstKey selects the side holding the next key in iteration order, if
// any: the lowest key ascending, the highest descending.
func (i *itemIter) firstKey() source {
	// if only one or none is valid, it is clear which to use
	if !i.parentValid() {
		if !i.cacheValid() {
			return none
		}
		return us
	} else if !i.cacheValid() {
		return parent
	}

	// both are valid... compare keys
	parKey := i.parent.Key()
	usKey := i.items[i.idx].Key()

	cmp := bytes.Compare(parKey, usKey)
	if i.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

func (i *itemIter) cacheValid() bool {
	return i.idx < len(i.items)
}

// parentValid makes sure the parent is non-nil before checking if it is
// valid.
func (i *itemIter) parentValid() bool {
	return (i.parent != nil) && i.parent.Valid()
}
