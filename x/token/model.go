package token

import (
	"encoding/binary"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// MintSize is the serialized size of a Mint.
const MintSize = 9

// Mint describes one fungible asset class.
type Mint struct {
	// Supply is the total amount in circulation across all accounts.
	Supply uint64
	// Decimals is the display precision. It has no effect on transfer
	// arithmetic, which is always in base units.
	Decimals uint8
}

// Marshal encodes the mint in its fixed layout: little-endian supply,
// then decimals.
func (m *Mint) Marshal() ([]byte, error) {
	raw := make([]byte, MintSize)
	binary.LittleEndian.PutUint64(raw, m.Supply)
	raw[8] = m.Decimals
	return raw, nil
}

// Unmarshal decodes a mint, rejecting input of the wrong size.
func (m *Mint) Unmarshal(raw []byte) error {
	if len(raw) != MintSize {
		return errors.Wrapf(errors.ErrModel, "mint size: %d", len(raw))
	}
	m.Supply = binary.LittleEndian.Uint64(raw)
	m.Decimals = raw[8]
	return nil
}

// AccountSize is the serialized size of an Account. Two addresses and a
// little-endian balance, in that fixed order.
func AccountSize() int {
	return 2*tokenswap.AddressLength + 8
}

// Account is a holding account for one mint. The authority is the only
// identity allowed to debit or close it.
type Account struct {
	Mint      tokenswap.Address
	Authority tokenswap.Address
	Balance   uint64
}

// Validate ensures the account can be persisted.
func (a *Account) Validate() error {
	if err := a.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := a.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	return nil
}

// Marshal encodes the account in its fixed layout: mint, authority,
// little-endian balance.
func (a *Account) Marshal() ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	raw := make([]byte, 0, AccountSize())
	raw = append(raw, a.Mint...)
	raw = append(raw, a.Authority...)
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], a.Balance)
	raw = append(raw, scratch[:]...)
	return raw, nil
}

// Unmarshal decodes an account, rejecting input of the wrong size.
func (a *Account) Unmarshal(raw []byte) error {
	if len(raw) != AccountSize() {
		return errors.Wrapf(errors.ErrModel, "token account size: %d", len(raw))
	}
	mint := make(tokenswap.Address, tokenswap.AddressLength)
	copy(mint, raw[:tokenswap.AddressLength])
	authority := make(tokenswap.Address, tokenswap.AddressLength)
	copy(authority, raw[tokenswap.AddressLength:])
	a.Mint = mint
	a.Authority = authority
	a.Balance = binary.LittleEndian.Uint64(raw[2*tokenswap.AddressLength:])
	return nil
}
