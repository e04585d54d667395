package ledger

import (
	"math"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Rent parameters of the ledger. An account's reserve must cover at least
// the rent minimum for its allocation, or the ledger would reclaim it.
const (
	rentBase    uint64 = 1000
	rentPerByte uint64 = 10
)

// RentMinimum returns the smallest reserve that keeps an account with the
// given data allocation alive.
func RentMinimum(space int) uint64 {
	return rentBase + rentPerByte*uint64(space)
}

// CreateAccount allocates a new account at the given address, funded from
// an existing account's reserve and owned by the given program.
//
// The authority condition is the creating program's derivation capability
// for the new address; it must resolve to exactly that address. The
// caller is responsible for verifying that the funding account's holder
// authorized the debit.
func CreateAccount(db tokenswap.KVStore, from, to tokenswap.Address, reserve uint64, space int, owner tokenswap.Address, authority tokenswap.Condition) error {
	bucket := NewBucket()

	if !authority.Address().Equals(to) {
		return errors.Wrapf(errors.ErrUnauthorized, "authority does not derive %s", to)
	}
	if reserve < RentMinimum(space) {
		return errors.Wrapf(errors.ErrAmount, "reserve %d below rent minimum %d", reserve, RentMinimum(space))
	}

	funder, err := bucket.Get(db, from)
	if err != nil {
		return err
	}
	if funder == nil {
		return errors.Wrapf(errors.ErrNotFound, "funding account %s", from)
	}
	if funder.Reserve < reserve {
		return errors.Wrapf(errors.ErrAmount, "funding account holds %d, needs %d", funder.Reserve, reserve)
	}

	if existing, err := bucket.Get(db, to); err != nil {
		return err
	} else if existing != nil {
		return errors.Wrapf(errors.ErrDuplicate, "account %s", to)
	}

	funder.Reserve -= reserve
	if err := bucket.Save(db, from, funder); err != nil {
		return err
	}
	created := &Account{
		Owner:   owner,
		Reserve: reserve,
		Data:    make([]byte, space),
	}
	return bucket.Save(db, to, created)
}

// CloseAndSweep moves the account's entire reserve to the destination and
// destroys the record in one step. Once closed, the address no longer
// resolves to an account.
func CloseAndSweep(db tokenswap.KVStore, addr, dest tokenswap.Address) error {
	bucket := NewBucket()

	acct, err := bucket.Get(db, addr)
	if err != nil {
		return err
	}
	if acct == nil {
		return errors.Wrapf(errors.ErrNotFound, "account %s", addr)
	}

	recipient, err := bucket.Get(db, dest)
	if err != nil {
		return err
	}
	if recipient == nil {
		return errors.Wrapf(errors.ErrNotFound, "sweep destination %s", dest)
	}
	if recipient.Reserve > math.MaxUint64-acct.Reserve {
		return errors.Wrapf(errors.ErrOverflow, "sweep destination %s", dest)
	}

	recipient.Reserve += acct.Reserve
	if err := bucket.Save(db, dest, recipient); err != nil {
		return err
	}
	bucket.Delete(db, addr)
	return nil
}

// SetData replaces the data of a program-owned account. The data must fit
// the existing allocation exactly; reallocation is not supported.
func SetData(db tokenswap.KVStore, addr tokenswap.Address, program tokenswap.Address, data []byte) error {
	bucket := NewBucket()

	acct, err := bucket.Get(db, addr)
	if err != nil {
		return err
	}
	if acct == nil {
		return errors.Wrapf(errors.ErrNotFound, "account %s", addr)
	}
	if !acct.OwnedBy(program) {
		return errors.Wrapf(errors.ErrUnauthorized, "account %s not owned by %s", addr, program)
	}
	if len(data) != len(acct.Data) {
		return errors.Wrapf(errors.ErrInput, "data size %d does not match allocation %d", len(data), len(acct.Data))
	}
	acct.Data = data
	return bucket.Save(db, addr, acct)
}
