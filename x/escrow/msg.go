package escrow

import (
	"encoding/binary"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Operation tags routed to this package's handlers.
const (
	OpMake   tokenswap.Op = 0
	OpTake   tokenswap.Op = 1
	OpRefund tokenswap.Op = 2
)

// Account positions expected by each handler, in caller-supplied order.
const (
	// Make: maker(signer), mint x, mint y, maker source for x, vault,
	// escrow, system program, token program.
	makeNumAccounts = 8
	// Take: taker(signer), maker, mint x, mint y, taker destination for
	// x, taker source for y, maker destination for y, vault, escrow,
	// token program, system program.
	takeNumAccounts = 11
	// Refund: maker(signer), mint x, maker destination for x, escrow,
	// vault, token program, system program.
	refundNumAccounts = 7
)

// MakeMsg is the decoded payload of a Make instruction.
type MakeMsg struct {
	// Bump is the nonce chosen off-ledger so that address derivation
	// succeeds for this maker.
	Bump byte
	// AmountY is the quantity of mint y the maker demands.
	AmountY uint64
	// AmountX is the quantity of mint x to move into the vault.
	AmountX uint64
}

// makeMsgSize is the minimal payload: one bump byte and two little-endian
// 8-byte quantities. Any extra bytes are ignored.
const makeMsgSize = 17

// parseMakeMsg decodes a Make payload. It never reads past the validated
// length; all integers are little-endian.
func parseMakeMsg(raw []byte) (*MakeMsg, error) {
	if len(raw) < makeMsgSize {
		return nil, errors.Wrapf(errors.ErrMsg, "payload size %d, need %d", len(raw), makeMsgSize)
	}
	return &MakeMsg{
		Bump:    raw[0],
		AmountY: binary.LittleEndian.Uint64(raw[1:9]),
		AmountX: binary.LittleEndian.Uint64(raw[9:17]),
	}, nil
}
