package token

import (
	"math"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x"
	"github.com/iov-one/tokenswap/x/ledger"
)

// Controller implements the transfer and close primitives of the token
// program. It is the only code allowed to rewrite token account state,
// which it keeps inside ledger accounts owned by the token program
// identity.
type Controller struct {
	auth    x.Authenticator
	program tokenswap.Address
	bucket  ledger.Bucket
}

// NewController returns a controller for token state owned by the given
// token program identity. The authenticator decides who may debit an
// account.
func NewController(auth x.Authenticator, program tokenswap.Address) Controller {
	return Controller{
		auth:    auth,
		program: program,
		bucket:  ledger.NewBucket(),
	}
}

// ProgramID returns the token program identity this controller serves.
func (c Controller) ProgramID() tokenswap.Address {
	return c.program
}

// IsMint returns true if the given address holds a mint descriptor owned
// by the token program.
func (c Controller) IsMint(db tokenswap.KVStore, addr tokenswap.Address) (bool, error) {
	acct, err := c.bucket.Get(db, addr)
	if err != nil {
		return false, err
	}
	if acct == nil || !acct.OwnedBy(c.program) {
		return false, nil
	}
	var mint Mint
	if err := mint.Unmarshal(acct.Data); err != nil {
		return false, nil
	}
	return true, nil
}

// GetAccount loads the token account at the given address. It fails if
// the address does not hold a token account owned by the token program.
func (c Controller) GetAccount(db tokenswap.KVStore, addr tokenswap.Address) (*Account, error) {
	raw, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "token account %s", addr)
	}
	if !raw.OwnedBy(c.program) {
		return nil, errors.Wrapf(errors.ErrType, "account %s not owned by token program", addr)
	}
	var acct Account
	if err := acct.Unmarshal(raw.Data); err != nil {
		return nil, errors.Wrapf(err, "token account %s", addr)
	}
	return &acct, nil
}

// Balance returns the live balance of the token account at the given
// address.
func (c Controller) Balance(db tokenswap.KVStore, addr tokenswap.Address) (uint64, error) {
	acct, err := c.GetAccount(db, addr)
	if err != nil {
		return 0, err
	}
	return acct.Balance, nil
}

// Transfer moves the given amount between two token accounts of the same
// mint. The source account's authority must be fulfilled in the context.
func (c Controller) Transfer(ctx tokenswap.Context, db tokenswap.KVStore, from, to tokenswap.Address, amount uint64) error {
	sender, err := c.GetAccount(db, from)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	recipient, err := c.GetAccount(db, to)
	if err != nil {
		return errors.Wrap(err, "destination")
	}

	if !c.auth.HasAddress(ctx, sender.Authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "authority %s", sender.Authority)
	}
	if !sender.Mint.Equals(recipient.Mint) {
		return errors.Wrapf(errors.ErrType, "mint %s does not match %s", sender.Mint, recipient.Mint)
	}
	if sender.Balance < amount {
		return errors.Wrapf(errors.ErrAmount, "balance %d, transfer %d", sender.Balance, amount)
	}
	if recipient.Balance > math.MaxUint64-amount {
		return errors.Wrapf(errors.ErrOverflow, "destination %s", to)
	}

	sender.Balance -= amount
	recipient.Balance += amount

	if err := c.saveAccount(db, from, sender); err != nil {
		return err
	}
	return c.saveAccount(db, to, recipient)
}

// CloseAccount destroys an emptied token account and sweeps its reserve
// to the destination ledger account. The token account's authority must
// be fulfilled in the context.
func (c Controller) CloseAccount(ctx tokenswap.Context, db tokenswap.KVStore, addr, dest tokenswap.Address) error {
	acct, err := c.GetAccount(db, addr)
	if err != nil {
		return err
	}
	if !c.auth.HasAddress(ctx, acct.Authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "authority %s", acct.Authority)
	}
	if acct.Balance != 0 {
		return errors.Wrapf(errors.ErrState, "cannot close account holding %d", acct.Balance)
	}
	return ledger.CloseAndSweep(db, addr, dest)
}

func (c Controller) saveAccount(db tokenswap.KVStore, addr tokenswap.Address, acct *Account) error {
	data, err := acct.Marshal()
	if err != nil {
		return err
	}
	return ledger.SetData(db, addr, c.program, data)
}

// NewMint writes a mint descriptor at the given address. This is genesis
// level setup; live instructions never create mints.
func (c Controller) NewMint(db tokenswap.KVStore, addr tokenswap.Address, decimals uint8) error {
	mint := Mint{Decimals: decimals}
	data, err := mint.Marshal()
	if err != nil {
		return err
	}
	return c.bucket.Save(db, addr, &ledger.Account{
		Owner:   c.program,
		Reserve: ledger.RentMinimum(MintSize),
		Data:    data,
	})
}

// NewAccount writes a token account holding the given balance at the
// given address and adds the balance to the mint's supply. This is
// genesis level setup; live instructions only move existing balances.
func (c Controller) NewAccount(db tokenswap.KVStore, addr tokenswap.Address, mint, authority tokenswap.Address, balance uint64) error {
	mintAcct, err := c.bucket.Get(db, mint)
	if err != nil {
		return err
	}
	if mintAcct == nil || !mintAcct.OwnedBy(c.program) {
		return errors.Wrapf(errors.ErrNotFound, "mint %s", mint)
	}
	var m Mint
	if err := m.Unmarshal(mintAcct.Data); err != nil {
		return errors.Wrapf(err, "mint %s", mint)
	}
	if m.Supply > math.MaxUint64-balance {
		return errors.Wrapf(errors.ErrOverflow, "mint %s supply", mint)
	}
	m.Supply += balance
	mintData, err := m.Marshal()
	if err != nil {
		return err
	}
	mintAcct.Data = mintData
	if err := c.bucket.Save(db, mint, mintAcct); err != nil {
		return err
	}

	acct := Account{Mint: mint, Authority: authority, Balance: balance}
	data, err := acct.Marshal()
	if err != nil {
		return err
	}
	return c.bucket.Save(db, addr, &ledger.Account{
		Owner:   c.program,
		Reserve: ledger.RentMinimum(AccountSize()),
		Data:    data,
	})
}
