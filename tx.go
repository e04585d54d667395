package tokenswap

import (
	"github.com/iov-one/tokenswap/errors"
)

// AccountMeta describes one account handed to the program by the caller.
// The Signer flag means the enclosing ledger transaction carried a valid
// signature for this address; the program never sees the signature
// itself. The Writable flag means the ledger granted the transaction an
// exclusive write lock on the account.
type AccountMeta struct {
	Address  Address
	Signer   bool
	Writable bool
}

// Instruction is the envelope the ledger hands to the program on every
// invocation: the ordered account list supplied by the caller and the
// instruction payload with the operation tag already stripped.
type Instruction struct {
	Accounts []AccountMeta
	Data     []byte
}

// RequireAccounts returns an error unless the instruction carries at
// least n accounts. Handlers destructure the account list by position, so
// they must check the length exactly once, before any other work.
func (ins *Instruction) RequireAccounts(n int) error {
	if len(ins.Accounts) < n {
		return errors.Wrapf(errors.ErrInput, "got %d accounts, need %d", len(ins.Accounts), n)
	}
	return nil
}

// ParseInstruction splits raw instruction bytes into the operation tag
// and the remaining payload. An empty payload has no tag to read and is
// rejected.
func ParseInstruction(accounts []AccountMeta, raw []byte) (Op, *Instruction, error) {
	if len(raw) == 0 {
		return 0, nil, errors.Wrap(errors.ErrInput, "empty instruction data")
	}
	ins := &Instruction{
		Accounts: accounts,
		Data:     raw[1:],
	}
	return Op(raw[0]), ins, nil
}
