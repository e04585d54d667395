package escrow

import (
	"encoding/binary"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Escrow is the persisted state of one open offer. All fields are set by
// Make and never mutated afterwards; the record is destroyed by whichever
// of Take and Refund settles first.
type Escrow struct {
	// Maker created the offer and deposited MintX into the vault.
	Maker tokenswap.Address
	// MintX is the asset class the maker deposited.
	MintX tokenswap.Address
	// MintY is the asset class the maker wants in return.
	MintY tokenswap.Address
	// Amount is the quantity of MintY the maker demands. The deposited
	// MintX quantity is not stored; the vault balance is the source of
	// truth.
	Amount uint64
	// Bump is the nonce that derived this record's address.
	Bump byte
}

// Size returns the serialized size of an escrow record. Three addresses,
// a little-endian amount and the bump byte, in that fixed order.
func Size() int {
	return 3*tokenswap.AddressLength + 9
}

// Validate ensures the escrow record is well formed.
func (e *Escrow) Validate() error {
	if err := e.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := e.MintX.Validate(); err != nil {
		return errors.Wrap(err, "mint x")
	}
	if err := e.MintY.Validate(); err != nil {
		return errors.Wrap(err, "mint y")
	}
	return nil
}

// Marshal encodes the record in its fixed on-ledger layout.
func (e *Escrow) Marshal() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	raw := make([]byte, 0, Size())
	raw = append(raw, e.Maker...)
	raw = append(raw, e.MintX...)
	raw = append(raw, e.MintY...)
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], e.Amount)
	raw = append(raw, scratch[:]...)
	raw = append(raw, e.Bump)
	return raw, nil
}

// Unmarshal decodes a record, rejecting input of the wrong size.
func (e *Escrow) Unmarshal(raw []byte) error {
	if len(raw) != Size() {
		return errors.Wrapf(errors.ErrModel, "escrow size: %d", len(raw))
	}
	next := func(n int) []byte {
		chunk := raw[:n]
		raw = raw[n:]
		return chunk
	}
	e.Maker = append(tokenswap.Address(nil), next(tokenswap.AddressLength)...)
	e.MintX = append(tokenswap.Address(nil), next(tokenswap.AddressLength)...)
	e.MintY = append(tokenswap.Address(nil), next(tokenswap.AddressLength)...)
	e.Amount = binary.LittleEndian.Uint64(next(8))
	e.Bump = raw[0]
	return nil
}

// Condition returns the derivation capability for the escrow of the
// given maker and bump under the given program. Only the program holding
// the seeds can present it, which is what lets the program sign for the
// vault.
func Condition(program, maker tokenswap.Address, bump byte) tokenswap.Condition {
	data := make([]byte, 0, len(program)+len(maker)+1)
	data = append(data, program...)
	data = append(data, maker...)
	data = append(data, bump)
	return tokenswap.NewCondition("escrow", "pda", data)
}

// Derive computes the escrow address for the given seeds. The address
// lives in the "escrow" condition namespace, disjoint from all signature
// key addresses, so no private key can ever claim it. Derivation fails
// only on malformed seeds.
func Derive(program, maker tokenswap.Address, bump byte) (tokenswap.Address, error) {
	if err := program.Validate(); err != nil {
		return nil, errors.Wrap(err, "program")
	}
	if err := maker.Validate(); err != nil {
		return nil, errors.Wrap(err, "maker")
	}
	return Condition(program, maker, bump).Address(), nil
}
