package ledger

import (
	"encoding/binary"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Account is the ledger-level state of one account. Data is opaque to the
// ledger; its meaning is defined by the owner program.
type Account struct {
	// Owner is the program that may mutate this account's data.
	Owner tokenswap.Address
	// Reserve is the balance backing the storage allocation. It is
	// returned to a designated recipient when the account is closed.
	Reserve uint64
	// Data is the raw account state.
	Data []byte
}

// DataIsEmpty returns true if no data was ever allocated for this
// account.
func (a *Account) DataIsEmpty() bool {
	return len(a.Data) == 0
}

// OwnedBy returns true if the account's owner equals the given program.
func (a *Account) OwnedBy(program tokenswap.Address) bool {
	return a.Owner.Equals(program)
}

// Validate ensures the account can be persisted.
func (a *Account) Validate() error {
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

// Marshal encodes the account as owner, little-endian reserve, and the
// length-prefixed data bytes.
func (a *Account) Marshal() ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	raw := make([]byte, 0, tokenswap.AddressLength+12+len(a.Data))
	raw = append(raw, a.Owner...)
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], a.Reserve)
	raw = append(raw, scratch[:]...)
	binary.LittleEndian.PutUint32(scratch[:4], uint32(len(a.Data)))
	raw = append(raw, scratch[:4]...)
	raw = append(raw, a.Data...)
	return raw, nil
}

// Unmarshal decodes an account, rejecting undersized or oversized input.
func (a *Account) Unmarshal(raw []byte) error {
	head := tokenswap.AddressLength + 12
	if len(raw) < head {
		return errors.Wrapf(errors.ErrModel, "account too short: %d", len(raw))
	}
	owner := make(tokenswap.Address, tokenswap.AddressLength)
	copy(owner, raw[:tokenswap.AddressLength])
	reserve := binary.LittleEndian.Uint64(raw[tokenswap.AddressLength:])
	size := binary.LittleEndian.Uint32(raw[tokenswap.AddressLength+8:])
	if len(raw) != head+int(size) {
		return errors.Wrapf(errors.ErrModel, "account data length: %d", size)
	}
	data := make([]byte, size)
	copy(data, raw[head:])
	a.Owner = owner
	a.Reserve = reserve
	a.Data = data
	return nil
}

// accountPrefix scopes all account records in the key-value store.
const accountPrefix = "acct:"

// Bucket provides access to the account records.
type Bucket struct{}

// NewBucket returns a bucket to access the ledger accounts.
func NewBucket() Bucket {
	return Bucket{}
}

func (b Bucket) dbKey(addr tokenswap.Address) []byte {
	return append([]byte(accountPrefix), addr...)
}

// Get loads the account at the given address, or nil if none exists.
func (b Bucket) Get(db tokenswap.KVStore, addr tokenswap.Address) (*Account, error) {
	raw := db.Get(b.dbKey(addr))
	if raw == nil {
		return nil, nil
	}
	var acct Account
	if err := acct.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &acct, nil
}

// Save persists the account under the given address.
func (b Bucket) Save(db tokenswap.KVStore, addr tokenswap.Address, acct *Account) error {
	raw, err := acct.Marshal()
	if err != nil {
		return errors.Wrapf(err, "account %s", addr)
	}
	db.Set(b.dbKey(addr), raw)
	return nil
}

// Delete removes the account record entirely.
func (b Bucket) Delete(db tokenswap.KVStore, addr tokenswap.Address) {
	db.Delete(b.dbKey(addr))
}
