package store

// EmptyKVStore never holds any data, used as a base layer under a cache.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

// Get always returns nil.
func (e EmptyKVStore) Get(key []byte) []byte { return nil }

// Has always returns false.
func (e EmptyKVStore) Has(key []byte) bool { return false }

// Set is a noop.
func (e EmptyKVStore) Set(key, value []byte) {}

// Delete is a noop.
func (e EmptyKVStore) Delete(key []byte) {}

// Iterator is always empty.
func (e EmptyKVStore) Iterator(start, end []byte) Iterator {
	return newItemIter(nil, nil, false)
}

// ReverseIterator is always empty.
func (e EmptyKVStore) ReverseIterator(start, end []byte) Iterator {
	return newItemIter(nil, nil, true)
}

// NewBatch returns a batch that can write to this store later.
func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

type opKind int32

const (
	setKind opKind = iota + 1
	delKind
)

// op is either a set or a delete waiting to be applied.
type op struct {
	kind  opKind
	key   []byte
	value []byte // only for set
}

func (o op) apply(out SetDeleter) {
	switch o.kind {
	case setKind:
		out.Set(o.key, o.value)
	case delKind:
		out.Delete(o.key)
	default:
		panic("unknown op kind")
	}
}

// NonAtomicBatch just piles up ops and applies them in order on Write.
// There is no guarantee of atomicity; it is meant to batch writes onto an
// in-memory cache layer that provides the atomicity itself.
type NonAtomicBatch struct {
	out SetDeleter
	ops []op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch creates an empty batch to be later written to the
// given SetDeleter.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{
		out: out,
	}
}

// Set adds a set operation to the batch.
func (b *NonAtomicBatch) Set(key, value []byte) {
	b.ops = append(b.ops, op{
		kind:  setKind,
		key:   key,
		value: value,
	})
}

// Delete adds a delete operation to the batch.
func (b *NonAtomicBatch) Delete(key []byte) {
	b.ops = append(b.ops, op{
		kind: delKind,
		key:  key,
	})
}

// Write applies all pending operations in order and resets the batch.
func (b *NonAtomicBatch) Write() error {
	for _, o := range b.ops {
		o.apply(b.out)
	}
	b.ops = nil
	return nil
}
